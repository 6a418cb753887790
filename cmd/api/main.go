package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"russo-backend/internal/config"
	"russo-backend/internal/db"
	"russo-backend/internal/httpserver"
	cartrepo "russo-backend/internal/repository/cart"
	orderrepo "russo-backend/internal/repository/order"
	productrepo "russo-backend/internal/repository/product"
	statsrepo "russo-backend/internal/repository/stats"
	tokenrepo "russo-backend/internal/repository/token"
	userrepo "russo-backend/internal/repository/user"
	widgetrepo "russo-backend/internal/repository/widget"
	cartsvc "russo-backend/internal/service/cart"
	catalogsvc "russo-backend/internal/service/catalog"
	identitysvc "russo-backend/internal/service/identity"
	ordersvc "russo-backend/internal/service/order"
	"russo-backend/internal/sms"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if !cfg.SMSDevMode {
		logger.Printf("warning: no SMS carrier configured, codes are written to the log")
	}
	smsSender := sms.NewLogSender(logger)

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	identityService := identitysvc.New(userRepo, tokenRepo, smsSender, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	orderService := ordersvc.New(orderRepo)
	widgetRepo := widgetrepo.NewPostgres(dbpool)
	statsRepo := statsrepo.NewPostgres(dbpool)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		IdentitySvc: identityService,
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		WidgetRepo:  widgetRepo,
		StatsRepo:   statsRepo,
	})
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
