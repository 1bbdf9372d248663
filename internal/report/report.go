package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"censorr/internal/fuzzy"
	"censorr/internal/interval"
)

// Record is the flattened, persisted form of one term match.
type Record struct {
	StartMS      int64
	EndMS        int64
	MatchedText  string
	TargetWord   string
	Score        float64
	OriginalText string
	MaskedText   string
}

// columns is the fixed CSV column order; downstream consumers rely on it.
var columns = []string{
	"start_ms", "end_ms", "matched_text", "target_word", "score", "original_text", "masked_text",
}

// Collect produces one record per match for a dialogue event. Time bounds
// come from the event, the target word is the configured (not normalized)
// term, and both text snapshots are identical across records of the event.
func Collect(startMS, endMS int64, originalText, maskedText string, matches []fuzzy.Match) []Record {
	records := make([]Record, 0, len(matches))
	for _, match := range matches {
		records = append(records, Record{
			StartMS:      startMS,
			EndMS:        endMS,
			MatchedText:  match.WindowText,
			TargetWord:   match.Term.Word,
			Score:        match.Score,
			OriginalText: originalText,
			MaskedText:   maskedText,
		})
	}
	return records
}

// WriteCSV writes records with a header row. Callers should skip calling
// this entirely when no matches exist; the CSV is never written empty.
func WriteCSV(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create match report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write match report header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.StartMS, 10),
			strconv.FormatInt(rec.EndMS, 10),
			rec.MatchedText,
			rec.TargetWord,
			strconv.FormatFloat(rec.Score, 'f', -1, 64),
			rec.OriginalText,
			rec.MaskedText,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write match report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush match report: %w", err)
	}
	return file.Close()
}

// MuteWindows converts match records into mute spans in seconds.
func MuteWindows(records []Record) []interval.Span {
	spans := make([]interval.Span, 0, len(records))
	for _, rec := range records {
		spans = append(spans, interval.Span{
			Start: float64(rec.StartMS) / 1000.0,
			End:   float64(rec.EndMS) / 1000.0,
		})
	}
	return spans
}

// ReadMuteWindows loads the time bounds from a match report and merges
// them into mute windows in seconds. Rows with unparseable bounds are
// skipped.
func ReadMuteWindows(path string) ([]interval.Span, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open match report: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read match report: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	startCol, endCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "start_ms":
			startCol = i
		case "end_ms":
			endCol = i
		}
	}
	if startCol < 0 || endCol < 0 {
		return nil, fmt.Errorf("match report %s is missing start_ms/end_ms columns", path)
	}

	var spans []interval.Span
	for _, row := range rows[1:] {
		if len(row) <= startCol || len(row) <= endCol {
			continue
		}
		startMS, err := strconv.ParseFloat(row[startCol], 64)
		if err != nil {
			continue
		}
		endMS, err := strconv.ParseFloat(row[endCol], 64)
		if err != nil {
			continue
		}
		spans = append(spans, interval.Span{Start: startMS / 1000, End: endMS / 1000})
	}
	return interval.Merge(spans, interval.DefaultEpsilon), nil
}
