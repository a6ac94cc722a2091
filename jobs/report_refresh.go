package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/foliodesk/foliodesk/internal/balance"
)

// ReportRefreshJob rebuilds the folio balance report for a trailing window
// so the first request of the day hits a warm cache.
type ReportRefreshJob struct {
	service *balance.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewReportRefreshJob wires the job dependencies. The now override is for tests.
func NewReportRefreshJob(service *balance.Service, logger *slog.Logger, now func() time.Time) *ReportRefreshJob {
	if now == nil {
		now = time.Now
	}
	return &ReportRefreshJob{service: service, logger: logger, now: now}
}

// Handle processes TaskReportRefresh tasks.
func (j *ReportRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReportRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.PropertyID == "" {
		j.logger.Warn("report refresh skipped, no property configured")
		return asynq.SkipRetry
	}
	window := payload.WindowDays
	if window <= 0 {
		window = 30
	}

	to := j.now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -window)

	for _, detailed := range []bool{true, false} {
		filter := balance.ReportFilter{
			PropertyID: payload.PropertyID,
			From:       from,
			To:         to,
			Detailed:   detailed,
		}
		doc, err := j.service.BuildReport(ctx, filter)
		if err != nil {
			j.logger.Error("report refresh failed",
				slog.String("property", payload.PropertyID),
				slog.Bool("detailed", detailed),
				slog.Any("error", err),
			)
			return err
		}
		j.logger.Info("report refreshed",
			slog.String("property", payload.PropertyID),
			slog.Bool("detailed", detailed),
			slog.String("summary", doc.Summary),
		)
	}
	return nil
}
