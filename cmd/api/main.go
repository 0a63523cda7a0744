package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/hydrosys/storefront/internal/analytics"
	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/cart"
	"github.com/hydrosys/storefront/internal/checkout"
	"github.com/hydrosys/storefront/internal/config"
	"github.com/hydrosys/storefront/internal/identity"
	"github.com/hydrosys/storefront/internal/order"
	"github.com/hydrosys/storefront/internal/product"
	"github.com/hydrosys/storefront/internal/report"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	app := fiber.New()
	setupCORS(app)

	api, err := backend.New(cfg.BackendURL, cfg.UpstreamTimeout, nil)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	products := product.NewClient(api)
	carts := cart.NewClient(api)
	orders := order.NewClient(api)
	lines := order.NewLinesClient(api)
	auth := identity.NewClient(api)

	authHandler := identity.NewHandler(auth)
	productHandler := product.NewHandler(products)
	cartHandler := cart.NewHandler(carts)
	orderHandler := order.NewHandler(orders, lines)
	checkoutHandler := checkout.NewHandler(carts, checkout.NewOrchestrator(orders, lines, carts))
	reportHandler := report.NewHandler(orders, products)

	authHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(identity.JWT(cfg.JWTSecret))

	cartHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	reportHandler.RegisterProtectedRoutes(app)

	if cfg.AnalyticsURL != "" {
		source := analytics.NewClient(cfg.AnalyticsURL, cfg.AnalyticsKey, cfg.UpstreamTimeout)
		analytics.NewHandler(source).RegisterProtectedRoutes(app)
	} else {
		log.Print("analytics source not configured, dashboard endpoints disabled")
	}

	log.Printf("storefront gateway listening on %s (backend %s)", cfg.Addr, cfg.BackendURL)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
