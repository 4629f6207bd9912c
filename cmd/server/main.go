package main

import (
	"net/http"
	"os"

	"ecoshop/internal/api"
	"ecoshop/internal/api/handlers"
	"ecoshop/internal/cache"
	"ecoshop/internal/database"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"
)

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := database.LoadConfig()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, err := database.ConnectDB(cfg)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	certRepo := repository.NewCertificationRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	orderItemRepo := repository.NewOrderItemRepository(pool)

	var productRepo repository.ProductRepository = repository.NewProductRepository(pool)
	if rdb, err := cache.ConnectRedis(cfg); err != nil {
		log.Warn("redis unavailable, running without product cache", "error", err)
	} else {
		productRepo = cache.NewCachedProductRepository(productRepo, rdb, log)
	}

	router := api.NewRouter(api.Handlers{
		Users:          handlers.NewUserHandler(userRepo, cfg.BcryptCost, log),
		Brands:         handlers.NewBrandHandler(brandRepo, log),
		Products:       handlers.NewProductHandler(productRepo, log),
		Certifications: handlers.NewCertificationHandler(certRepo, log),
		Orders:         handlers.NewOrderHandler(orderRepo, log),
		OrderItems:     handlers.NewOrderItemHandler(orderItemRepo, log),
	}, log)

	log.Info("starting server", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
