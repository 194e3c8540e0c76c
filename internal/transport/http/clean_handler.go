package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "gscclean/internal/errors"
	"gscclean/internal/exporter"
	"gscclean/internal/loader"
	"gscclean/internal/services"
	v1 "gscclean/pkg/contracts/api/v1"
	"gscclean/pkg/contracts/domain"
)

// CleanHandler handles report upload and cleaning requests.
type CleanHandler struct {
	service        *services.CleanService
	writer         *exporter.CSVWriter
	logger         *slog.Logger
	validate       *validator.Validate
	maxUploadBytes int64
	maxPreviewRows int
}

// NewCleanHandler creates a new clean handler
func NewCleanHandler(service *services.CleanService, logger *slog.Logger, maxUploadBytes int64, maxPreviewRows int) *CleanHandler {
	return &CleanHandler{
		service:        service,
		writer:         exporter.NewCSVWriter(logger),
		logger:         logger.With(slog.String("handler", "clean")),
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		maxPreviewRows: maxPreviewRows,
	}
}

// Routes returns the clean routes
func (h *CleanHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Clean)       // JSON statistics + preview
	r.Post("/csv", h.CleanCSV) // cleaned table as a CSV download

	return r
}

// Clean handles POST /api/clean: runs the pipeline and responds with the
// identified columns, per-column statistics, the whole-table summary and an
// optional inline preview of the cleaned rows.
func (h *CleanHandler) Clean(w http.ResponseWriter, r *http.Request) {
	result, opts, ok := h.runPipeline(w, r)
	if !ok {
		return
	}

	resp := &v1.CleanResponse{
		IdentifiedColumns: result.Roles,
		ColumnStats:       result.ColumnStats,
		Summary:           result.Summary,
		Headers:           result.Table.Headers,
	}
	if !result.Roles.HasAny() {
		resp.Warning = "no recognized columns found; the table was returned unchanged"
	}
	if opts.PreviewRows > 0 {
		n := opts.PreviewRows
		if n > result.Table.RowCount() {
			n = result.Table.RowCount()
		}
		resp.Preview = result.Table.Rows[:n]
	}

	render.JSON(w, r, resp)
}

// CleanCSV handles POST /api/clean/csv: runs the same pipeline and streams
// the cleaned table back as a CSV attachment, summary counts in headers.
func (h *CleanHandler) CleanCSV(w http.ResponseWriter, r *http.Request) {
	result, _, ok := h.runPipeline(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cleaned_gsc_data.csv"`)
	w.Header().Set("X-Original-Rows", strconv.Itoa(result.Summary.OriginalRows))
	w.Header().Set("X-Cleaned-Rows", strconv.Itoa(result.Summary.CleanedRows))

	if err := h.writer.Write(w, result.Table, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		// Headers are gone already; all we can do is log.
		h.logger.ErrorContext(r.Context(), "failed to stream cleaned CSV",
			slog.String("error", err.Error()))
	}
}

// runPipeline parses the multipart upload, validates the options and cleans
// the report. On failure it renders the error response and returns ok=false.
func (h *CleanHandler) runPipeline(w http.ResponseWriter, r *http.Request) (domain.CleanResult, v1.CleanOptions, bool) {
	var zero domain.CleanResult

	opts, file, header, err := h.parseUpload(w, r)
	if err != nil {
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			render.Render(w, r, apiErr)
		} else {
			render.Render(w, r, apierrors.FromError(err))
		}
		return zero, opts, false
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "report uploaded",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.CleanReader(r.Context(), file, header.Filename)
	if err != nil {
		render.Render(w, r, apierrors.FromError(err))
		return zero, opts, false
	}
	return result, opts, true
}

// parseUpload extracts the report file and options from the multipart form.
func (h *CleanHandler) parseUpload(w http.ResponseWriter, r *http.Request) (v1.CleanOptions, multipart.File, *multipart.FileHeader, error) {
	var opts v1.CleanOptions

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return opts, nil, nil, apierrors.ErrFileTooLarge
		}
		return opts, nil, nil, apierrors.ErrInvalidRequest
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return opts, nil, nil, apierrors.ErrMissingFile
	}

	if !loader.IsSupported(header.Filename) {
		file.Close()
		return opts, nil, nil, apierrors.ErrUnsupportedFormat
	}

	if raw := r.FormValue("preview_rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			file.Close()
			return opts, nil, nil, apierrors.NewValidationError(
				fmt.Sprintf("preview_rows must be an integer, got %q", raw), err)
		}
		opts.PreviewRows = n
	}
	if opts.PreviewRows > h.maxPreviewRows {
		opts.PreviewRows = h.maxPreviewRows
	}

	if err := h.validate.Struct(opts); err != nil {
		file.Close()
		return opts, nil, nil, apierrors.NewValidationError("invalid clean options", err)
	}

	return opts, file, header, nil
}
