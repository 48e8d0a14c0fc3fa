package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/nilesh-dagdi/CampusMart/config"
	"github.com/nilesh-dagdi/CampusMart/handlers"
	"github.com/nilesh-dagdi/CampusMart/internal/heartbeat"
	"github.com/nilesh-dagdi/CampusMart/internal/imagehost"
	"github.com/nilesh-dagdi/CampusMart/internal/mailer"
	"github.com/nilesh-dagdi/CampusMart/internal/metrics"
	"github.com/nilesh-dagdi/CampusMart/internal/otp"
	"github.com/nilesh-dagdi/CampusMart/internal/purchase"
	"github.com/nilesh-dagdi/CampusMart/middleware"
	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	resetDB := flag.Bool("reset-db", false, "drop and recreate all tables, then seed")
	resetPurchases := flag.Bool("reset-purchases", false, "set all items AVAILABLE, purge PENDING purchases, then exit")
	flag.Parse()

	cfg := config.LoadConfig()
	db := config.ConnectDatabase(cfg.DatabaseURL)

	if *resetDB {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		return
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	purchaseSvc := purchase.NewService(purchase.NewGormStore(db))

	// Maintenance escape hatch for purchases initiated but never
	// confirmed nor cancelled.
	if *resetPurchases {
		items, purged, err := purchaseSvc.Reset(context.Background())
		if err != nil {
			log.Fatalf("Purchase reset failed: %v", err)
		}
		log.Printf("Reset %d items to AVAILABLE, deleted %d pending purchases.", items, purged)
		return
	}

	tokenTTL, err := time.ParseDuration(cfg.JWTExpiration)
	if err != nil {
		log.Printf("Invalid JWT_EXPIRES_IN %q, using 168h", cfg.JWTExpiration)
		tokenTTL = 168 * time.Hour
	}

	otpSvc := otp.NewService(otp.NewGormStore(db))
	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.MailFrom)
	images := imagehost.New(cfg.ImageHostURL, cfg.ImageHostKey)

	metrics.Register()

	app := fiber.New(fiber.Config{
		AppName:      "CampusMart API",
		ServerHeader: "CampusMart Server/1.0",
		BodyLimit:    10 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app, cfg)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(models.SuccessResponse("API is healthy", nil))
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(db, cfg, otpSvc, mail, tokenTTL)
	itemHandler := handlers.NewItemHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseSvc)
	messageHandler := handlers.NewMessageHandler(db)
	userHandler := handlers.NewUserHandler(db)
	uploadHandler := handlers.NewUploadHandler(images)

	authRequired := utils.AuthMiddleware(cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	items := api.Group("/items")
	items.Get("/", itemHandler.GetItems)
	items.Get("/:id", itemHandler.GetItem)
	items.Post("/", authRequired, itemHandler.CreateItem)
	items.Put("/:id", authRequired, itemHandler.UpdateItem)
	items.Delete("/:id", authRequired, itemHandler.DeleteItem)

	wishlist := api.Group("/wishlist", authRequired)
	wishlist.Get("/", wishlistHandler.GetWishlist)
	wishlist.Post("/:itemId", wishlistHandler.AddToWishlist)
	wishlist.Delete("/:itemId", wishlistHandler.RemoveFromWishlist)

	purchases := api.Group("/purchases", authRequired)
	purchases.Post("/initiate", purchaseHandler.InitiatePurchase)
	purchases.Post("/confirm", purchaseHandler.ConfirmPurchase)
	purchases.Post("/cancel", purchaseHandler.CancelPurchase)
	purchases.Get("/my-purchases", purchaseHandler.GetMyPurchases)

	messages := api.Group("/messages", authRequired)
	messages.Post("/", messageHandler.SendMessage)
	messages.Get("/", messageHandler.GetMyMessages)

	users := api.Group("/users", authRequired)
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Delete("/profile", userHandler.DeleteProfile)
	users.Post("/change-password", userHandler.ChangePassword)

	api.Post("/upload", authRequired, uploadHandler.UploadImage)

	middleware.SetupErrorHandler(app)

	if cron := heartbeat.Start(cfg.SelfURL); cron != nil {
		defer cron.Stop()
	}

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
