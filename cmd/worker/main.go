package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/foliodesk/foliodesk/internal/app"
	"github.com/foliodesk/foliodesk/internal/balance"
	"github.com/foliodesk/foliodesk/internal/pms"
	platformcache "github.com/foliodesk/foliodesk/internal/platform/cache"
	"github.com/foliodesk/foliodesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := platformcache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	pmsClient := pms.NewClient(cfg.PMSBaseURL, cfg.PMSAPIKey)
	links := pms.BackofficeLinks{BaseURL: cfg.PMSWebBaseURL}
	reportCache := balance.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := balance.NewService(pmsClient, links, reportCache, logger)

	refreshJob := jobs.NewReportRefreshJob(reportService, logger, nil)
	refreshTask, err := jobs.NewReportRefreshTask(jobs.ReportRefreshPayload{
		PropertyID: cfg.PMSPropertyID,
		WindowDays: cfg.RefreshWindowDays,
	})
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "45 4 * * *", Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
