package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs. It is built once in main and
// handed to each component, so nothing reads the environment after startup.
type Config struct {
	Port      string
	ClientURL string

	MongoURI    string
	MongoDBName string

	JWTSecret string

	StripeSecretKey     string
	StripeWebhookSecret string

	RedisAddr     string
	RedisPassword string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	AMQPURL string

	UploadsDir string
}

// Load reads .env (if present) and builds the Config.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found — falling back to system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		ClientURL:           getEnv("CLIENT_URL", "http://localhost:5173"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:         getEnv("MONGO_DB", "digitalstore"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		RedisAddr:           os.Getenv("REDIS_HOST"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            getEnvInt("SMTP_PORT", 587),
		SMTPUsername:        os.Getenv("SMTP_USERNAME"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		EmailFrom:           getEnv("EMAIL_FROM", "noreply@digitalstore.com"),
		MinioEndpoint:       os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:      os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:      os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:         getEnv("MINIO_BUCKET", "uploads"),
		MinioUseSSL:         os.Getenv("MINIO_USE_SSL") == "true",
		ElasticURL:          os.Getenv("ELASTIC_URL"),
		ElasticUser:         os.Getenv("ELASTIC_USER"),
		ElasticPassword:     os.Getenv("ELASTIC_PASSWORD"),
		AMQPURL:             os.Getenv("RABBITMQ_URL"),
		UploadsDir:          getEnv("UPLOADS_DIR", "uploads"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "secretkey"
		log.Println("⚠️  JWT_SECRET not set — using insecure default, do not ship this")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}
