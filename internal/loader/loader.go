// Package loader reads search-performance reports from CSV or Excel files
// into the domain table the cleaning core consumes. Header strings are
// preserved verbatim, original casing included, because classification
// matches against them.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	apperrors "gscclean/internal/errors"
	"gscclean/pkg/contracts/domain"
)

// Extensions accepted by Load and LoadFile. A .xls file is accepted only
// when it actually holds an OOXML workbook; the legacy binary format is
// rejected with an error naming the limitation.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// IsSupported reports whether the filename has a loadable extension.
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// LoadFile reads the report at path, dispatching on the file extension.
func LoadFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError(fmt.Sprintf("cannot open %s", path), err)
	}
	defer f.Close()
	return Load(f, filepath.Base(path))
}

// Load reads a report from r, using the filename extension to pick the
// format. Unsupported extensions fail before any bytes are read.
func Load(r io.Reader, filename string) (domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return LoadCSV(r)
	case ".xlsx":
		return LoadExcel(r)
	case ".xls":
		// Only OOXML workbooks can be parsed. A .xls file often is one in
		// disguise, so try it, but name the limitation when it is genuinely
		// the legacy binary format.
		table, err := LoadExcel(r)
		if err != nil {
			return domain.Table{}, apperrors.NewLoaderError(
				"legacy binary .xls workbooks are not supported; re-export as .xlsx or .csv", err)
		}
		return table, nil
	default:
		return domain.Table{}, apperrors.NewLoaderError(
			fmt.Sprintf("unsupported file format: %q", ext), nil)
	}
}

// LoadCSV reads CSV text with encoding fallback (UTF-8, then Latin-1, then
// Windows-1252), detects comma vs tab delimiters from the header line, and
// skips records that do not fit the header width instead of failing.
func LoadCSV(r io.Reader) (domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError("cannot read CSV data", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Table{}, apperrors.NewLoaderError("empty CSV file", nil)
	}

	text, err := decodeFallback(data)
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError("cannot decode CSV text", err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var headers []string
	var rows [][]string
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line, mirror the "skip bad lines" loader behavior.
			skipped++
			continue
		}
		if headers == nil {
			headers = record
			continue
		}
		if len(record) > len(headers) {
			skipped++
			continue
		}
		rows = append(rows, record)
	}

	if skipped > 0 {
		slog.Warn("skipped malformed CSV lines", slog.Int("count", skipped))
	}
	if len(headers) == 0 {
		return domain.Table{}, apperrors.NewLoaderError("CSV file has no header row", nil)
	}

	table, err := domain.NewTable(headers, rows)
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError("inconsistent CSV data", err)
	}
	return table, nil
}

// LoadExcel reads the first sheet of an Excel workbook, treating the first
// row as the header. Rows wider than the header are truncated; excelize
// already trims trailing empty cells, so width mismatches are rare.
func LoadExcel(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError("cannot open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, apperrors.NewLoaderError("Excel file has no sheets", nil)
	}

	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError(
			fmt.Sprintf("cannot read sheet %q", sheets[0]), err)
	}
	if len(allRows) == 0 {
		return domain.Table{}, apperrors.NewLoaderError("Excel sheet has no header row", nil)
	}

	headers := allRows[0]
	rows := make([][]string, 0, len(allRows)-1)
	for _, row := range allRows[1:] {
		if len(row) > len(headers) {
			row = row[:len(headers)]
		}
		rows = append(rows, row)
	}

	table, err := domain.NewTable(headers, rows)
	if err != nil {
		return domain.Table{}, apperrors.NewLoaderError("inconsistent Excel data", err)
	}
	return table, nil
}

// decodeFallback decodes report bytes as UTF-8 when valid, otherwise falling
// back to Latin-1 and then Windows-1252, the encodings GSC exports show up
// in outside UTF-8.
func decodeFallback(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, enc := range []encoding.Encoding{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded), nil
		}
	}
	return "", fmt.Errorf("no supported encoding could decode the data")
}

// detectDelimiter picks tab over comma when the header line is tab-separated.
func detectDelimiter(text string) rune {
	header := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		header = text[:idx]
	}
	if strings.Count(header, "\t") > strings.Count(header, ",") {
		return '\t'
	}
	return ','
}
