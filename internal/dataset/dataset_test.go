package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sales-coach-go/internal/orchestrator"
	"sales-coach-go/internal/types"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		row := row
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", addr, &row))
	}
	path := filepath.Join(t.TempDir(), "calls.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadDetectsColumns(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, [][]any{
		{"Call ID", "Agent Name", "Recording URL", "Transcript"},
		{"c1", "Asha", "https://x/1.mp3", ""},
		{"c2", "Ravi", "", "Customer said it is too expensive"},
		{"c3", "Asha", "not a link", ""},
		{"", "", "https://x/4.mp3", "text"},
	})

	records, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []types.CallRecord{
		{CallID: "c1", Agent: "Asha", AudioURL: "https://x/1.mp3"},
		{CallID: "c2", Agent: "Ravi", Transcript: "Customer said it is too expensive"},
		{CallID: "row-5", AudioURL: "https://x/4.mp3", Transcript: "text"},
	}, records)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)

	_, err = Load(writeWorkbook(t, [][]any{{"Call ID", "Transcript"}}))
	require.ErrorIs(t, err, ErrNoRows)

	_, err = Load(writeWorkbook(t, [][]any{{"Call ID", "City"}, {"c1", "Pune"}}))
	require.ErrorContains(t, err, "no transcript or audio column")
}

func TestWriteReports(t *testing.T) {
	t.Parallel()

	ok := orchestrator.FallbackReport(0)
	ok.Metadata.Status = types.StatusSuccess
	ok.ObjectionAnalysis.ObjectionsFound = 1
	ok.ObjectionAnalysis.Objections = []types.Objection{{Type: "Price"}}

	fb := orchestrator.FallbackReport(0)
	fb.Error = "no transcript"

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteReports(path, []types.BatchResult{
		{CallRecord: types.CallRecord{CallID: "c1", Agent: "Asha"}, Report: ok},
		{CallRecord: types.CallRecord{CallID: "c2"}, Report: fb},
	}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(callsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Call ID", rows[0][0])
	require.Equal(t, []string{"c1", "Asha", "success"}, rows[1][:3])
	require.Equal(t, "Price", rows[1][11])
	require.Equal(t, "no transcript", rows[2][12])

	action, err := f.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	require.Equal(t, "Run ROI and value-proposition training; share a fee comparison sheet with advisors", action)

	total, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "2", total)
}
