package main

import (
	"context"
	"log"
	"os"

	"digitalstore_back_end/internal/cache"
	"digitalstore_back_end/internal/config"
	"digitalstore_back_end/internal/database"
	"digitalstore_back_end/internal/events"
	"digitalstore_back_end/internal/handlers"
	"digitalstore_back_end/internal/middleware"
	"digitalstore_back_end/internal/routes"
	"digitalstore_back_end/internal/services"
	"digitalstore_back_end/internal/store"
	"digitalstore_back_end/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	cfg := config.Load()

	stripe.Key = cfg.StripeSecretKey
	if stripe.Key == "" {
		log.Fatal("❌ Cannot initialize Stripe: STRIPE_SECRET_KEY is missing")
	}
	log.Println("✅ Stripe initialized")

	ctx := context.Background()
	dbs := database.Connect(ctx, cfg)
	defer dbs.Close(ctx)

	stores := store.NewMongoStores(ctx, dbs.Mongo)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatal("❌ Cannot create uploads directory:", err)
	}

	var uploader services.Uploader = services.NewDiskUploader(cfg.UploadsDir)
	if dbs.MinIO != nil {
		uploader = services.NewMinioUploader(dbs.MinIO, cfg.MinioBucket, cfg.MinioEndpoint, cfg.MinioUseSSL)
	}

	var search *services.Search
	if dbs.Elastic != nil {
		search = services.NewSearch(dbs.Elastic)
	}

	var processed cache.EventMarker
	if dbs.Redis != nil {
		processed = cache.NewRedisEventMarker(dbs.Redis)
	}

	var mailer utils.Mailer
	if cfg.SMTPHost != "" {
		mailer = utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	} else {
		log.Println("⚠️  SMTP_HOST not set — confirmation emails are disabled")
	}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		var err error
		publisher, err = events.Connect(cfg.AMQPURL)
		if err != nil {
			log.Println("⚠️  RabbitMQ unavailable, order events disabled:", err)
		} else {
			defer publisher.Close()
		}
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, &routes.Deps{
		Auth:         handlers.NewAuthHandler(stores.Users, cfg.JWTSecret),
		Products:     handlers.NewProductHandler(stores.Products, stores.Categories, uploader, search),
		Categories:   handlers.NewCategoryHandler(stores.Categories),
		Orders:       handlers.NewOrderHandler(stores.Orders, publisher),
		Checkout:     handlers.NewCheckoutHandler(stores.Orders, processed, mailer, publisher, cfg.ClientURL, cfg.StripeWebhookSecret),
		Settings:     handlers.NewSettingsHandler(stores.Settings, uploader),
		AuthRequired: middleware.AuthRequired(stores.Users, cfg.JWTSecret),
		UploadsDir:   cfg.UploadsDir,
	})

	log.Println("🚀 Digital Store backend listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}
