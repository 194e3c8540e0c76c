// Package services orchestrates loading, cleaning and exporting of
// search-performance reports for the transport layer and the CLI.
package services

import (
	"context"
	"io"
	"log/slog"

	"gscclean/internal/dataprocessing"
	"gscclean/internal/infrastructure"
	"gscclean/internal/loader"
	"gscclean/pkg/contracts/domain"
)

// CleanService runs the cleaning pipeline: load a report, classify and filter
// it, and hand the result back. Stateless between calls; the caller owns the
// returned result, there is no session held here.
type CleanService struct {
	logger  *slog.Logger
	cleaner *dataprocessing.Cleaner
	metrics *infrastructure.Metrics
}

// NewCleanService creates the clean service. metrics may be nil outside the
// HTTP server, e.g. in the CLI.
func NewCleanService(logger *slog.Logger, metrics *infrastructure.Metrics) *CleanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanService{
		logger:  logger.With(slog.String("service", "clean")),
		cleaner: dataprocessing.NewCleaner(logger),
		metrics: metrics,
	}
}

// log returns the service logger tagged with the request ID when the
// context carries one.
func (s *CleanService) log(ctx context.Context) *slog.Logger {
	if id := infrastructure.RequestIDFromContext(ctx); id != "" {
		return s.logger.With(slog.String("request_id", id))
	}
	return s.logger
}

// CleanTable runs the core on an already-loaded table.
func (s *CleanService) CleanTable(ctx context.Context, table domain.Table) domain.CleanResult {
	s.log(ctx).InfoContext(ctx, "cleaning table",
		slog.Int("rows", table.RowCount()),
		slog.Int("columns", len(table.Headers)))

	result := s.cleaner.Clean(table)

	if s.metrics != nil {
		s.metrics.RowsSeenTotal.Add(float64(result.Summary.OriginalRows))
		s.metrics.RowsRemovedTotal.Add(float64(result.Summary.RemovedRows))
	}

	if !result.Roles.HasAny() {
		s.log(ctx).WarnContext(ctx, "no recognized columns, table returned unchanged")
	}
	return result
}

// CleanReader loads a report from r (format chosen by filename extension)
// and cleans it. Loader failures surface before the core ever runs.
func (s *CleanService) CleanReader(ctx context.Context, r io.Reader, filename string) (domain.CleanResult, error) {
	if s.metrics != nil {
		s.metrics.UploadsTotal.Inc()
	}

	table, err := loader.Load(r, filename)
	if err != nil {
		if s.metrics != nil {
			s.metrics.LoadFailures.Inc()
		}
		s.log(ctx).ErrorContext(ctx, "failed to load report",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return domain.CleanResult{}, err
	}

	return s.CleanTable(ctx, table), nil
}

// CleanFile loads and cleans the report at path; the CLI entry point.
func (s *CleanService) CleanFile(ctx context.Context, path string) (domain.CleanResult, error) {
	table, err := loader.LoadFile(path)
	if err != nil {
		return domain.CleanResult{}, err
	}
	return s.CleanTable(ctx, table), nil
}
