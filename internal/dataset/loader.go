package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"sales-coach-go/internal/types"
)

var (
	ErrNoSheets = errors.New("no sheets")
	ErrNoRows   = errors.New("no data rows")
)

// columns holds the detected header positions, -1 when absent.
type columns struct {
	callID, agent, audio, transcript int
}

func detectColumns(header []string) columns {
	c := columns{callID: -1, agent: -1, audio: -1, transcript: -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "transcript") || l == "text":
			if c.transcript == -1 {
				c.transcript = i
			}
		case strings.Contains(l, "audio") || strings.Contains(l, "record") || strings.Contains(l, "link") || strings.Contains(l, "url"):
			if c.audio == -1 {
				c.audio = i
			}
		case strings.Contains(l, "agent") || strings.Contains(l, "advisor") || strings.Contains(l, "rep"):
			if c.agent == -1 {
				c.agent = i
			}
		case strings.Contains(l, "call id") || strings.Contains(l, "callid") || strings.Contains(l, "call_id") || l == "id":
			if c.callID == -1 {
				c.callID = i
			}
		}
	}
	return c
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

func isHTTPURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Load reads call rows from the first sheet of an xlsx workbook. Columns are
// found by header name. Rows with neither a transcript nor an http(s) audio
// link are skipped; rows without an id get "row-N".
func Load(path string) ([]types.CallRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrNoRows
	}

	cols := detectColumns(rows[0])
	if cols.transcript == -1 && cols.audio == -1 {
		return nil, fmt.Errorf("no transcript or audio column in header %v", rows[0])
	}

	var out []types.CallRecord
	for i, r := range rows[1:] {
		rec := types.CallRecord{
			CallID:     cell(r, cols.callID),
			Agent:      cell(r, cols.agent),
			AudioURL:   cell(r, cols.audio),
			Transcript: cell(r, cols.transcript),
		}
		if !isHTTPURL(rec.AudioURL) {
			rec.AudioURL = ""
		}
		if rec.Transcript == "" && rec.AudioURL == "" {
			continue
		}
		if rec.CallID == "" {
			rec.CallID = fmt.Sprintf("row-%d", i+2)
		}
		out = append(out, rec)
	}
	return out, nil
}
