package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/timetype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	last := len(sparkChars) - 1
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(last)))
		idx = max(0, min(idx, last))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// HistoryRows formats score records as table cells, most recent first.
func HistoryRows(records []model.ScoreRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			r.Characters,
			string(r.Mode),
			fmt.Sprintf("%ds", r.DurationSec),
		})
	}
	return rows
}

// HistoryHeaders are the column titles for HistoryRows.
var HistoryHeaders = []string{"When", "WPM", "Accuracy", "Chars", "Mode", "Time"}

// RenderHistory prints score records as a plain table with a WPM trend.
func RenderHistory(w io.Writer, records []model.ScoreRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet.")
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 5: true}
	for _, line := range formatTable(HistoryHeaders, HistoryRows(records), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTrend [%s]\n", Trend(records))
	return err
}

// Trend plots the WPM of records, which are newest first, from oldest to
// newest.
func Trend(records []model.ScoreRecord) string {
	wpms := make([]float64, len(records))
	for i, r := range records {
		wpms[len(records)-1-i] = float64(r.WPM)
	}
	return Sparkline(wpms)
}
