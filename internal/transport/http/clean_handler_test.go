package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gscclean/internal/services"
	v1 "gscclean/pkg/contracts/api/v1"
)

const sampleCSV = `Query,Page,Clicks,Impressions,Position
python programming,https://example.com/python,150,1250,5.6
日本語のクエリ,https://example.com/jp,100,900,3.0
seo tips,http://insecure.com,80,700,4.2
`

func newTestHandler(t *testing.T) *CleanHandler {
	t.Helper()
	logger := slog.Default()
	return NewCleanHandler(services.NewCleanService(logger, nil), logger, 1<<20, 100)
}

// multipartUpload builds a request body with the report under the "file"
// field plus any extra form fields.
func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCleanEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "report.csv", sampleCSV, map[string]string{"preview_rows": "10"})

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp v1.CleanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Query", resp.IdentifiedColumns.QueryColumn)
	assert.Equal(t, "Page", resp.IdentifiedColumns.PageColumn)
	assert.Equal(t, []string{"Clicks", "Impressions"}, resp.IdentifiedColumns.NumericColumns)
	assert.Equal(t, 3, resp.Summary.OriginalRows)
	assert.Equal(t, 1, resp.Summary.CleanedRows)
	require.Len(t, resp.Preview, 1)
	assert.Equal(t, "python programming", resp.Preview[0][0])
	assert.Empty(t, resp.Warning)

	queryStats := resp.ColumnStats["Query"]
	assert.Equal(t, 3, queryStats.OriginalCount)
	assert.Equal(t, 2, queryStats.FinalCount)
}

func TestCleanEndpointNoRecognizedColumns(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "report.csv", "Date,Country\n2024-01-01,jp\n", nil)

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp v1.CleanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Warning)
	assert.Empty(t, resp.ColumnStats)
	assert.Equal(t, 1, resp.Summary.CleanedRows)
}

func TestCleanEndpointUnsupportedFormat(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "report.pdf", "junk", nil)

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCleanEndpointMissingFile(t *testing.T) {
	handler := newTestHandler(t)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("preview_rows", "5"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleanEndpointBadPreviewRows(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "report.csv", sampleCSV, map[string]string{"preview_rows": "many"})

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleanCSVEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "report.csv", sampleCSV, nil)

	req := httptest.NewRequest(http.MethodPost, "/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cleaned_gsc_data.csv")
	assert.Equal(t, "3", rec.Header().Get("X-Original-Rows"))
	assert.Equal(t, "1", rec.Header().Get("X-Cleaned-Rows"))

	out := rec.Body.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])
	assert.Contains(t, string(out), "Query,Page,Clicks,Impressions,Position")
	assert.Contains(t, string(out), "python programming")
	assert.NotContains(t, string(out), "insecure.com")
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHealthHandler("test")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
