// Package jobs hosts the background worker and its task definitions.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportRefresh warms the folio balance report cache.
	TaskReportRefresh = "report:refresh"
)

// ReportRefreshPayload scopes one report warm-up run.
type ReportRefreshPayload struct {
	PropertyID string `json:"propertyId"`
	WindowDays int    `json:"windowDays"`
}

// NewReportRefreshTask constructs an Asynq task.
func NewReportRefreshTask(payload ReportRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportRefresh, data), nil
}
