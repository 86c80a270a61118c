package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatcli/internal/dataprocessing"
)

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	table := &dataprocessing.Table{
		Name:    "SIZING",
		Headers: []string{"flow", "diameter"},
		Cells:   [][]string{{"500", "63"}, {"1500", "110"}},
	}

	require.NoError(t, w.WriteTable("sizing.csv", table))

	f, err := os.Open(filepath.Join(dir, "sizing.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"flow", "diameter"}, {"500", "63"}, {"1500", "110"}}, rows)
}

func TestWriteCSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteCSV("bom.csv", WriteOptions{
		Headers:   []string{"a"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	}))

	data, err := os.ReadFile(filepath.Join(dir, "bom.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
}

func TestAppendToCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteCSV("log.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	}))
	require.NoError(t, w.AppendToCSV("log.csv", [][]string{{"3", "4"}}))

	f, err := os.Open(filepath.Join(dir, "log.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	sw, err := w.CreateStreamWriter("stream.csv", []string{"value"})
	require.NoError(t, err)
	for _, v := range []string{"1", "2", "3"} {
		require.NoError(t, sw.WriteRecord([]string{v}))
	}
	require.NoError(t, sw.Close())

	f, err := os.Open(filepath.Join(dir, "stream.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestResolvePathAbsolute(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter("/nonexistent/base")

	abs := filepath.Join(dir, "out.csv")
	require.NoError(t, w.WriteCSV(abs, WriteOptions{Headers: []string{"a"}}))
	_, err := os.Stat(abs)
	assert.NoError(t, err)
}
