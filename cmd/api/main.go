package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"storefront-api/internal/cms"
	"storefront-api/internal/commerce"
	"storefront-api/internal/config"
	"storefront-api/internal/db"
	"storefront-api/internal/httpserver"
	cartrepo "storefront-api/internal/repository/cart"
	cartsvc "storefront-api/internal/service/cart"
	catalogsvc "storefront-api/internal/service/catalog"
	checkoutsvc "storefront-api/internal/service/checkout"
	sessionsvc "storefront-api/internal/service/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	commerceClient := commerce.New(cfg.CommerceAPIURL, cfg.CommerceConsumerKey, cfg.CommerceConsumerSecret, cfg.CommerceTimeout, logger)
	cmsClient := cms.New(cfg.CMSGraphQLURL, cfg.CMSTimeout)

	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo)
	checkoutService := checkoutsvc.New(cartService, commerceClient, cfg.ShippingFeeCents, cfg.BusinessFlagKey, logger)
	catalogService := catalogsvc.New(cmsClient, logger)
	sessionService := sessionsvc.New()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		CatalogSvc:  catalogService,
		OrderAPI:    commerceClient,
		Sessions:    sessionService,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
