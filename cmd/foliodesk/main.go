package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foliodesk/foliodesk/internal/app"
	"github.com/foliodesk/foliodesk/internal/balance"
	balancehttp "github.com/foliodesk/foliodesk/internal/balance/http"
	"github.com/foliodesk/foliodesk/internal/pms"
	platformcache "github.com/foliodesk/foliodesk/internal/platform/cache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var reportCache *balance.Cache
	redisClient, err := platformcache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		reportCache = balance.NewCache(redisClient, cfg.ReportCacheTTL)
	}

	pmsClient := pms.NewClient(cfg.PMSBaseURL, cfg.PMSAPIKey)
	if err := pmsClient.Ping(ctx); err != nil {
		logger.Warn("pms ping", slog.Any("error", err))
	}
	links := pms.BackofficeLinks{BaseURL: cfg.PMSWebBaseURL}

	reportService := balance.NewService(pmsClient, links, reportCache, logger)
	reportHandler := balancehttp.NewHandler(logger, reportService)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ReportHandler: reportHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
