package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"sales-coach-go/internal/actionable"
	"sales-coach-go/internal/aggregator"
	"sales-coach-go/internal/types"
)

const (
	callsSheet   = "Calls"
	summarySheet = "Summary"
)

var callsHeader = []any{
	"Call ID", "Agent", "Status", "Summary", "Call Type", "Sentiment", "Next Step",
	"Score", "Strengths", "Improvements", "Objections Found", "Objection Types", "Error",
}

// WriteReports saves one row per analyzed call plus a Summary sheet with the
// batch roll-up and team action card.
func WriteReports(path string, results []types.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", callsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(callsSheet, "A1", &callsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, res := range results {
		row := reportRow(res)
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(callsSheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	ins := aggregator.Aggregate(results)
	card := actionable.Generate(ins)
	summary := [][]any{
		{"Total Calls", ins.TotalCalls},
		{"Fallback Calls", ins.FallbackCalls},
		{"Price Objection Rate", ins.PriceObjectionRate},
		{"Average Score", ins.AverageScore},
		{"Insight", card.Insight},
		{"Action", card.Action},
		{"Impact", card.Impact},
	}
	for i, row := range summary {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func reportRow(res types.BatchResult) []any {
	ta, cf, oa := res.Report.TranscriptAnalysis, res.Report.CoachingFeedback, res.Report.ObjectionAnalysis
	kinds := make([]string, 0, len(oa.Objections))
	for _, o := range oa.Objections {
		kinds = append(kinds, o.Type)
	}
	return []any{
		res.CallID, res.Agent, res.Report.Metadata.Status,
		ta.Summary, ta.CallType, ta.Sentiment, ta.NextStep,
		cf.Score, strings.Join(cf.Strengths, "; "), strings.Join(cf.Improvements, "; "),
		oa.ObjectionsFound, strings.Join(kinds, "; "), res.Report.Error,
	}
}
