package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once in main and passed explicitly to every constructor.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSRegion      string

	RedisAddr string
	CartTTL   time.Duration // idle expiry of persisted carts

	MPAccessToken string // Mercado Pago bearer token
	MPBaseURL     string

	AdminPassword     string // bcrypt hash, or plain value for local setups
	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	AdminTokenExpiry  time.Duration

	DefaultCountryCode string // calling code prefixed to local phone numbers
	CodeTTL            time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Products          string
	Orders            string
	VerificationCodes string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Products:          getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Orders:            getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			VerificationCodes: getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "verification_codes"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "sorveteria-images"),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CartTTL:   time.Duration(getEnvInt("CART_TTL_HOURS", 72)) * time.Hour,

		MPAccessToken: getEnv("MP_ACCESS_TOKEN", ""),
		MPBaseURL:     getEnv("MP_BASE_URL", "https://api.mercadopago.com"),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		AdminTokenExpiry:  time.Duration(getEnvInt("ADMIN_TOKEN_EXPIRY_HOURS", 12)) * time.Hour,

		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "55"),
		CodeTTL:            time.Duration(getEnvInt("CODE_TTL_MINUTES", 10)) * time.Minute,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
