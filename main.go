package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/stylehub-labs/stylehub-backend-go/config"
	"github.com/stylehub-labs/stylehub-backend-go/database"
	"github.com/stylehub-labs/stylehub-backend-go/handlers"
	customMiddleware "github.com/stylehub-labs/stylehub-backend-go/middleware"
	"github.com/stylehub-labs/stylehub-backend-go/payments"
	"github.com/stylehub-labs/stylehub-backend-go/routes"
	"github.com/stylehub-labs/stylehub-backend-go/services"
	"github.com/stylehub-labs/stylehub-backend-go/store"
	"github.com/stylehub-labs/stylehub-backend-go/utils"
)

func main() {
	seed := flag.Bool("seed", false, "seed the product catalog when empty")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := database.Connect(cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}
	if *seed {
		if err := database.SeedProducts(ctx, db); err != nil {
			log.Fatal("Failed to seed products:", err)
		}
	}

	productStore := store.NewMongoProductStore(db)
	cartStore := store.NewMongoCartStore(db)
	orderStore := store.NewMongoOrderStore(db)
	userStore := store.NewMongoUserStore(db)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	var mailer services.Mailer
	if cfg.SendgridAPIKey != "" {
		mailer = utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailSender)
	}

	catalogSvc := services.NewCatalogService(productStore)
	cartSvc := services.NewCartService(cartStore, productStore)
	orderSvc := services.NewOrderService(orderStore, productStore, cartStore)
	paymentSvc := services.NewPaymentService(
		orderStore,
		orderSvc,
		userStore,
		payments.NewStripeProvider(cfg.StripeSecretKey, cfg.FrontendURL),
		mailer,
	)
	authSvc := services.NewAuthService(userStore, tokens)
	adminSvc := services.NewAdminService(productStore, orderStore, userStore)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(cfg)

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(customMiddleware.Metrics())

	routes.SetupRoutes(e, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc),
		Products: handlers.NewProductHandler(catalogSvc),
		Cart:     handlers.NewCartHandler(cartSvc),
		Orders:   handlers.NewOrderHandler(orderSvc, paymentSvc),
		Payments: handlers.NewPaymentHandler(paymentSvc, cfg.StripePublishableKey),
		Admin:    handlers.NewAdminHandler(adminSvc, orderSvc),
	}, tokens, userStore)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
