// Package balancehttp exposes the folio balance report over HTTP.
package balancehttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/foliodesk/foliodesk/internal/balance"
	"github.com/foliodesk/foliodesk/internal/grid"
	"github.com/foliodesk/foliodesk/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// ReportService builds report documents for a filter.
type ReportService interface {
	BuildReport(ctx context.Context, filter balance.ReportFilter) (grid.Document, error)
}

// Handler coordinates HTTP requests for the folio balance report.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
	group    singleflight.Group
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers the report endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/folio-balance", h.handleReport)
	r.Get("/folio-balance/export.csv", h.handleExportCSV)
	r.Get("/folio-balance/export.xlsx", h.handleExportXLSX)
}

type reportQuery struct {
	Property string `validate:"required"`
	From     string `validate:"required,datetime=2006-01-02"`
	To       string `validate:"required,datetime=2006-01-02"`
	View     string `validate:"omitempty,oneof=detailed simple"`
}

func (h *Handler) parseFilter(r *http.Request) (balance.ReportFilter, error) {
	q := reportQuery{
		Property: strings.TrimSpace(r.URL.Query().Get("property")),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
		View:     r.URL.Query().Get("view"),
	}
	if err := h.validate.Struct(q); err != nil {
		return balance.ReportFilter{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	from, err := time.Parse(dateLayout, q.From)
	if err != nil {
		return balance.ReportFilter{}, fmt.Errorf("%w: from: %s", httpx.ErrValidation, err)
	}
	to, err := time.Parse(dateLayout, q.To)
	if err != nil {
		return balance.ReportFilter{}, fmt.Errorf("%w: to: %s", httpx.ErrValidation, err)
	}
	if to.Before(from) {
		return balance.ReportFilter{}, fmt.Errorf("%w: to precedes from", httpx.ErrValidation)
	}
	return balance.ReportFilter{
		PropertyID: q.Property,
		From:       from,
		To:         to,
		Detailed:   q.View != "simple",
	}, nil
}

// buildReport runs the service under singleflight so concurrent identical
// requests share one render.
func (h *Handler) buildReport(ctx context.Context, filter balance.ReportFilter) (grid.Document, error) {
	key := strings.Join([]string{
		filter.PropertyID,
		filter.From.Format(dateLayout),
		filter.To.Format(dateLayout),
		fmt.Sprintf("%t", filter.Detailed),
	}, ":")
	ch := h.group.DoChan(key, func() (interface{}, error) {
		return h.service.BuildReport(ctx, filter)
	})
	select {
	case <-ctx.Done():
		return grid.Document{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return grid.Document{}, res.Err
		}
		return res.Val.(grid.Document), nil
	}
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.buildReport(r.Context(), filter)
	if err != nil {
		h.respondReportError(w, filter, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.buildReport(r.Context(), filter)
	if err != nil {
		h.respondReportError(w, filter, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", exportFilename(filter, "csv"))
	if err := grid.NewCSVSheet(w).Render(doc); err != nil {
		h.logger.Error("render csv export", slog.Any("error", err))
	}
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.buildReport(r.Context(), filter)
	if err != nil {
		h.respondReportError(w, filter, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", exportFilename(filter, "xlsx"))
	if err := grid.NewXLSXSheet(w).Render(doc); err != nil {
		h.logger.Error("render xlsx export", slog.Any("error", err))
	}
}

func (h *Handler) respondReportError(w http.ResponseWriter, filter balance.ReportFilter, err error) {
	h.logger.Error("build folio balance report",
		slog.String("property", filter.PropertyID),
		slog.Any("error", err),
	)
	if errors.Is(err, balance.ErrUnsupportedReference) {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}
	httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrUpstream, err))
}

func exportFilename(filter balance.ReportFilter, ext string) string {
	return fmt.Sprintf(`attachment; filename="folio-balance-%s-%s-%s.%s"`,
		filter.PropertyID, filter.From.Format(dateLayout), filter.To.Format(dateLayout), ext)
}
