package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sorveteria-api/internal/application/admin"
	cartapp "github.com/sorveteria-api/internal/application/cart"
	orderapp "github.com/sorveteria-api/internal/application/order"
	"github.com/sorveteria-api/internal/application/payment"
	productapp "github.com/sorveteria-api/internal/application/product"
	"github.com/sorveteria-api/internal/application/verification"
	"github.com/sorveteria-api/internal/config"
	"github.com/sorveteria-api/internal/domain"
	"github.com/sorveteria-api/internal/transport/http/handler"
	appmiddleware "github.com/sorveteria-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		// Gestão routes stay closed when no signing keys are configured.
		authMw = appmiddleware.Unavailable("admin authentication not configured")
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verifySvc := verification.NewService(deps.VerificationRepo, deps.SMSSender, cfg.DefaultCountryCode, cfg.CodeTTL)
	productSvc := productapp.NewService(deps.ProductRepo, deps.ImageStore)
	cartSvc := cartapp.NewService(deps.CartStore, deps.ProductRepo)
	orderSvc := orderapp.NewService(deps.OrderRepo, deps.CartStore, verifySvc, deps.SMSSender, cfg.DefaultCountryCode)
	paymentSvc := payment.NewService(deps.Gateway)

	var signer admin.TokenSigner
	if deps.JWTProvider != nil {
		signer = deps.JWTProvider
	}
	adminSvc := admin.NewService(cfg.AdminPassword, signer)

	healthH := handler.NewHealthHandler()
	verifyH := handler.NewVerifyHandler(verifySvc)
	productH := handler.NewProductHandler(productSvc)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/verify-code/request", verifyH.Request)
		r.With(sensitiveRL.Limit).Post("/verify-code", verifyH.Verify)

		r.Get("/payments/check", paymentH.Check)

		r.Get("/products", productH.List)
		r.Get("/products/{id}", productH.Get)
		r.Get("/products/{id}/image-url", productH.ImageURL)

		r.Post("/carts", cartH.Create)
		r.Get("/carts/{id}", cartH.Get)
		r.Post("/carts/{id}/items", cartH.AddItem)
		r.Put("/carts/{id}/items/{productId}", cartH.UpdateQuantity)
		r.Delete("/carts/{id}/items/{productId}", cartH.RemoveItem)
		r.Delete("/carts/{id}", cartH.Clear)

		r.Post("/orders", orderH.Checkout)
		r.Get("/orders/{id}", orderH.Get)

		r.With(sensitiveRL.Limit).Post("/gestao/login", adminH.Login)

		// ── Gestão routes (admin token required) ─────────────────────────────
		r.Route("/gestao", func(r chi.Router) {
			r.Use(authMw)
			r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

			r.Post("/logout", adminH.Logout)

			r.Get("/products", productH.ListAll)
			r.Post("/products", productH.Create)
			r.Put("/products/{id}", productH.Update)
			r.Patch("/products/{id}/availability", productH.SetAvailability)
			r.Delete("/products/{id}", productH.Delete)
			r.Post("/products/{id}/image", productH.UploadImage)
			r.Post("/products/{id}/image/base64", productH.UploadImageBase64)

			r.Get("/orders", orderH.List)
			r.Patch("/orders/{id}/status", orderH.UpdateStatus)
		})
	})

	return r
}
