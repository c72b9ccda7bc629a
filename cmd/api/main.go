package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	cartitemrepo "storefront/internal/repository/cartitem"
	categoryrepo "storefront/internal/repository/category"
	sliderepo "storefront/internal/repository/heroslide"
	postrepo "storefront/internal/repository/post"
	productrepo "storefront/internal/repository/product"
	supplierrepo "storefront/internal/repository/supplier"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
	authsvc "storefront/internal/service/auth"
	categorysvc "storefront/internal/service/category"
	heroslidesvc "storefront/internal/service/heroslide"
	postsvc "storefront/internal/service/post"
	productsvc "storefront/internal/service/product"
	suppliersvc "storefront/internal/service/supplier"
	usersvc "storefront/internal/service/user"
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

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	supplierRepo := supplierrepo.NewPostgres(dbpool)
	slideRepo := sliderepo.NewPostgres(dbpool)
	postRepo := postrepo.NewPostgres(dbpool)
	cartRepo := cartitemrepo.NewPostgres(dbpool, logger)

	deps := httpserver.Deps{
		AuthSvc:     authsvc.New(userRepo, tokenRepo),
		UserSvc:     usersvc.New(userRepo),
		ProductSvc:  productsvc.New(productRepo),
		CategorySvc: categorysvc.New(categoryRepo),
		SupplierSvc: suppliersvc.New(supplierRepo),
		SlideSvc:    heroslidesvc.New(slideRepo),
		PostSvc:     postsvc.New(postRepo),
		CartRepo:    cartRepo,
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps, strings.Split(cfg.CORSOrigins, ","))
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
