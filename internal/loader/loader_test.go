package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "gscclean/internal/errors"
)

func TestLoadCSV(t *testing.T) {
	csvData := `Query,Page,Clicks,Impressions,Position
python programming,https://example.com/python,150,1250,5.6
web development,https://example.com/web-dev,178,1780,7.8`

	table, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"Query", "Page", "Clicks", "Impressions", "Position"}, table.Headers)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "https://example.com/web-dev", table.Cell(1, "Page"))
}

func TestLoadCSVQuotedFields(t *testing.T) {
	csvData := "Query,Clicks\n\"tips, tricks\",10\n\"he said \"\"go\"\"\",5\n"

	table, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, "tips, tricks", table.Cell(0, "Query"))
	assert.Equal(t, `he said "go"`, table.Cell(1, "Query"))
}

func TestLoadCSVSkipsBadLines(t *testing.T) {
	// Second data line has more fields than the header and must be skipped;
	// the short third line is padded, not dropped.
	csvData := `Query,Clicks
python,150
overflowing,1,2,3
short`

	table, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "python", table.Cell(0, "Query"))
	assert.Equal(t, "short", table.Cell(1, "Query"))
	assert.Equal(t, "", table.Cell(1, "Clicks"))
}

func TestLoadCSVTabDelimited(t *testing.T) {
	csvData := "Query\tPage\tClicks\npython\thttps://example.com\t150\n"

	table, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"Query", "Page", "Clicks"}, table.Headers)
	assert.Equal(t, "150", table.Cell(0, "Clicks"))
}

func TestLoadCSVEncodingFallback(t *testing.T) {
	// "café,1" with é encoded as Latin-1 0xE9, which is invalid UTF-8.
	data := append([]byte("Query,Clicks\ncaf"), 0xE9)
	data = append(data, []byte(",1\n")...)

	table, err := LoadCSV(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "café", table.Cell(0, "Query"))
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("   \n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoader))
}

func TestLoadExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Query", "Page", "Clicks"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"python", "https://example.com", 150}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"seo tips", "https://example.com/seo", 80}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := LoadExcel(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Query", "Page", "Clicks"}, table.Headers)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "150", table.Cell(0, "Clicks"))
	assert.Equal(t, "seo tips", table.Cell(1, "Query"))
}

func TestLoadXLSNamesLegacyLimitation(t *testing.T) {
	// Arbitrary bytes stand in for a legacy binary workbook.
	_, err := Load(bytes.NewReader([]byte{0xD0, 0xCF, 0x11, 0xE0, 0x00}), "old.xls")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoader))
	assert.Contains(t, err.Error(), "re-export as .xlsx or .csv")
}

func TestLoadXLSAcceptsOOXMLInDisguise(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Query", "Clicks"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"python", 150}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Load(bytes.NewReader(buf.Bytes()), "mislabeled.xls")
	require.NoError(t, err)
	assert.Equal(t, 1, table.RowCount())
}

func TestLoadDispatch(t *testing.T) {
	_, err := Load(strings.NewReader("x"), "report.txt")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoader))

	table, err := Load(strings.NewReader("Query\nhello\n"), "report.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, table.RowCount())
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("report.csv"))
	assert.True(t, IsSupported("Report.XLSX"))
	assert.True(t, IsSupported("old.xls"))
	assert.False(t, IsSupported("report.json"))
	assert.False(t, IsSupported("report"))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/report.csv")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoader))
}
