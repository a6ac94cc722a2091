package balance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliodesk/foliodesk/internal/grid"
	"github.com/foliodesk/foliodesk/internal/pms"
)

const dateLayout = "2006-01-02"

// Source provides the transaction batch for one property and date range.
// Upstream errors propagate unmodified; retry policy belongs to callers.
type Source interface {
	SearchTransactions(ctx context.Context, propertyID string, from, to time.Time) ([]pms.Transaction, error)
}

// ReportFilter scopes one report invocation.
type ReportFilter struct {
	PropertyID string
	From       time.Time
	To         time.Time
	// Detailed selects the VAT-aware layout; false yields the simplified
	// receivables/liabilities-only view.
	Detailed bool
}

// Service fetches, aggregates and assembles folio balance reports.
type Service struct {
	source Source
	links  LinkBuilder
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs the report service. Cache may be nil.
func NewService(source Source, links LinkBuilder, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, links: links, cache: cache, logger: logger}
}

// BuildReport produces the rendered report document for the filter, serving
// from the versioned cache when one is configured.
func (s *Service) BuildReport(ctx context.Context, filter ReportFilter) (grid.Document, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.buildFresh(ctx, filter)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return grid.Document{}, err
		}
		return value.(grid.Document), nil
	}

	key, err := s.cache.BuildKey(ctx, "balance", "report",
		filter.PropertyID,
		filter.From.Format(dateLayout),
		filter.To.Format(dateLayout),
		viewToken(filter.Detailed),
	)
	if err != nil {
		return grid.Document{}, err
	}
	var doc grid.Document
	if err := s.cache.FetchJSON(ctx, key, &doc, loader); err != nil {
		return grid.Document{}, err
	}
	return doc, nil
}

func (s *Service) buildFresh(ctx context.Context, filter ReportFilter) (grid.Document, error) {
	txns, err := s.source.SearchTransactions(ctx, filter.PropertyID, filter.From, filter.To)
	if err != nil {
		return grid.Document{}, err
	}
	result, err := Aggregate(txns)
	if err != nil {
		return grid.Document{}, err
	}
	doc := BuildTable(result, s.links, TableOptions{
		PropertyID:   filter.PropertyID,
		Title:        "Folio Balance Report",
		Subtitle:     fmt.Sprintf("Property %s, %s to %s", filter.PropertyID, filter.From.Format(dateLayout), filter.To.Format(dateLayout)),
		VATBreakdown: filter.Detailed,
	})
	s.logger.Info("folio balance report built",
		slog.String("property", filter.PropertyID),
		slog.Int("transactions", result.Processed),
		slog.Int("records", len(result.Records)),
		slog.Int("vat_columns", len(result.Columns)),
	)
	return doc, nil
}

func viewToken(detailed bool) string {
	if detailed {
		return "detailed"
	}
	return "simple"
}
