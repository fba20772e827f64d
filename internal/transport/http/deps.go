package http

import (
	"github.com/sorveteria-api/internal/application/payment"
	"github.com/sorveteria-api/internal/application/verification"
	"github.com/sorveteria-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/sorveteria-api/internal/infrastructure/jwt"
	"github.com/sorveteria-api/internal/infrastructure/rediscart"
	s3infra "github.com/sorveteria-api/internal/infrastructure/s3"
)

// Deps holds all infrastructure dependencies for the router. SMSSender,
// Gateway and JWTProvider may be nil when not configured; the affected
// features degrade gracefully instead of blocking startup.
type Deps struct {
	VerificationRepo verification.CodeRepo
	ProductRepo      *dynamo.ProductRepo
	OrderRepo        *dynamo.OrderRepo
	CartStore        *rediscart.Store
	ImageStore       *s3infra.Store
	SMSSender        verification.SMSSender
	Gateway          payment.Gateway
	JWTProvider      *jwtinfra.Provider
}
