package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gscclean/pkg/contracts/domain"
)

func testTable(t *testing.T) domain.Table {
	t.Helper()
	table, err := domain.NewTable(
		[]string{"Query", "Page", "Clicks"},
		[][]string{
			{"python programming", "https://example.com/python", "150"},
			{"tips, tricks", `he said "go"`, "5.6"},
		})
	require.NoError(t, err)
	return table
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter(nil).Write(&buf, testTable(t), WriteOptions{})
	require.NoError(t, err)

	want := "Query,Page,Clicks\n" +
		"python programming,https://example.com/python,150\n" +
		"\"tips, tricks\",\"he said \"\"go\"\"\",5.6\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter(nil).Write(&buf, testTable(t), WriteOptions{BOMPrefix: true})
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, buf.Bytes()[:3])
	assert.Contains(t, buf.String(), "Query,Page,Clicks")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "cleaned.csv")

	err := NewCSVWriter(nil).WriteFile(path, testTable(t), WriteOptions{BOMPrefix: true})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), "python programming")
}

func TestWriteEmptyTable(t *testing.T) {
	table, err := domain.NewTable([]string{"Query", "Clicks"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(nil).Write(&buf, table, WriteOptions{}))
	assert.Equal(t, "Query,Clicks\n", buf.String())
}
