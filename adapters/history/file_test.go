package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"investigator/domain/core"
)

func TestFileSource_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := "requests_mean,errors_rate\n" +
		"100.5,0.01\n" +
		"99.0,0.02\n" +
		"101.25,\n" + // blank cell is skipped, not zero
		"98.0,0.01\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source, err := NewFileSource(path)
	require.NoError(t, err)

	values, err := source.History(context.Background(), "requests_mean")
	require.NoError(t, err)
	assert.Equal(t, []float64{100.5, 99.0, 101.25, 98.0}, values)

	values, err = source.History(context.Background(), "errors_rate")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.02, 0.01}, values)

	_, err = source.History(context.Background(), "no_such_column")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrVariableNotFound))
}

func TestFileSource_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"latency_p99", "rps"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{250.0, 1200.0}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{260.0, 1180.0}))
	require.NoError(t, f.SaveAs(path))

	source, err := NewFileSource(path)
	require.NoError(t, err)

	values, err := source.History(context.Background(), "latency_p99")
	require.NoError(t, err)
	assert.Equal(t, []float64{250, 260}, values)
}

func TestFileSource_UnsupportedExtension(t *testing.T) {
	_, err := NewFileSource("history.txt")
	assert.Error(t, err)
}

func TestFileSource_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	_, err := NewFileSource(path)
	assert.Error(t, err)
}
