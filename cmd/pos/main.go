package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/restaurant_pos/internal/bundle"
	"github.com/Skotchmaster/restaurant_pos/internal/client/products"
	"github.com/Skotchmaster/restaurant_pos/internal/client/sales"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/httpserver"
	"github.com/Skotchmaster/restaurant_pos/internal/lifecycle"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/search"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/pkg/authclient"
	"github.com/Skotchmaster/restaurant_pos/pkg/config"
	pkgdb "github.com/Skotchmaster/restaurant_pos/pkg/db"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	"github.com/Skotchmaster/restaurant_pos/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/restaurant_pos/pkg/middleware/logging"
)

func main() {
	cfg := config.Load(".env")
	cfg.Required()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	prices, err := bundle.ParsePrices(cfg.BundlePrices.Executive, cfg.BundlePrices.Student, cfg.BundlePrices.Daily)
	if err != nil {
		log.Fatalf("bundle prices: %v", err)
	}

	salesClient := sales.NewClient(cfg.SalesURL, cfg.HTTPClientTimeout)
	deps := service.Deps{
		Products: products.NewClient(cfg.ProductsURL, cfg.HTTPClientTimeout),
		Admin:    salesClient,
		Tracker:  lifecycle.NewTracker(salesClient),
		Prices:   prices,
	}

	var closers []func()

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			log.Fatalf("db open: %v", err)
		}
		drafts := &repo.GormRepo{DB: db}
		if err := drafts.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("db migrate: %v", err)
		}
		cancel()
		deps.Drafts = drafts
		closers = append(closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
	} else {
		logger.Info("draft persistence disabled", "reason", "DATABASE_URL is empty")
	}

	if len(cfg.KafkaBrokers) > 0 {
		prod := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
		deps.Events = prod
		closers = append(closers, func() { _ = prod.Close() })
	} else {
		deps.Events = events.Discard{}
	}

	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("menu search falls back to catalog filter", "error", err)
		} else {
			deps.Index = search.NewIndex(esClient, cfg.ESIndex)
		}
	}

	svc := service.New(deps)

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	if cfg.CSRFEnabled {
		e.Use(csrf.Middleware(csrf.DefaultConfig()))
	}

	var authClient *authclient.Client
	if cfg.AuthHTTPURL != "" {
		authClient = authclient.NewClient(cfg.AuthHTTPURL)
	}

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: svc},
		TablesHandler:   &httpserver.TablesHTTP{Svc: svc},
		SessionsHandler: &httpserver.SessionsHTTP{Svc: svc},
		JWTSecret:       cfg.JWTAccessSecret,
		AuthClient:      authClient,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("pos listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	for _, closeFn := range closers {
		closeFn()
	}

	log.Println("pos stopped")
}
