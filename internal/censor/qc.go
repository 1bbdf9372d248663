package censor

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"censorr/internal/catalog"
	"censorr/internal/mask"
	"censorr/internal/services"
	"censorr/internal/subtitle"
)

// Violation is one catalog term surviving verbatim in a masked track.
type Violation struct {
	EventIndex int
	StartMS    int64
	Term       string
	Count      int
}

// VerifyEvents scans masked events for whole-word catalog hits. Fuzzy
// variants are intentionally out of scope here; the check catches exact
// survivors, which indicate a masking bug rather than a near miss.
func VerifyEvents(events []subtitle.Event, cat *catalog.Catalog) []Violation {
	if cat == nil {
		return nil
	}
	var violations []Violation
	for i, ev := range events {
		for _, term := range cat.Terms {
			if count := mask.CountWholeWords(ev.Text, term.Word); count > 0 {
				violations = append(violations, Violation{
					EventIndex: i,
					StartMS:    ev.StartMS,
					Term:       term.Word,
					Count:      count,
				})
			}
		}
	}
	return violations
}

// VerifyFile runs the whole-word scan against a masked SRT file and fails
// with a validation error when any catalog term survived.
func VerifyFile(path string, cat *catalog.Catalog, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	events, err := subtitle.LoadSRT(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "subtitle-qc", "load", "", err)
	}
	violations := VerifyEvents(events, cat)
	if len(violations) == 0 {
		logger.Info("masked track passed verification",
			slog.String("path", path),
			slog.Int("events", len(events)))
		return nil
	}
	for _, v := range violations {
		logger.Error("catalog term survived masking",
			slog.String("term", v.Term),
			slog.Int("event", v.EventIndex),
			slog.Int64("start_ms", v.StartMS),
			slog.Int("count", v.Count))
	}
	return services.Wrap(services.ErrValidation, "subtitle-qc", "scan",
		fmt.Sprintf("%d catalog term(s) survived masking", len(violations)), nil)
}
