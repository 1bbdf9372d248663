package censor

import (
	"context"
	"io"
	"log/slog"
	"math"

	"censorr/internal/catalog"
	"censorr/internal/fuzzy"
	"censorr/internal/mask"
	"censorr/internal/report"
	"censorr/internal/services"
	"censorr/internal/subtitle"
)

// Summary describes one masking pass over a dialogue track.
type Summary struct {
	Events       int
	MaskedEvents int
	Matches      int
	Records      []report.Record
}

// Censor masks catalog terms in subtitle events.
type Censor struct {
	catalog *catalog.Catalog
	matcher *fuzzy.Matcher
	log     *slog.Logger
}

// New builds a Censor for the given catalog. An empty catalog is a hard
// configuration error since a silent no-op pass would look like success.
func New(cat *catalog.Catalog, logger *slog.Logger) (*Censor, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "mask", "catalog",
			"term catalog is empty", nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Censor{catalog: cat, matcher: fuzzy.NewMatcher(cat), log: logger}, nil
}

// MaskEvents masks every event in source order and returns the masked
// copies plus one report record per match.
func (c *Censor) MaskEvents(events []subtitle.Event) ([]subtitle.Event, Summary) {
	masked := make([]subtitle.Event, len(events))
	summary := Summary{Events: len(events)}
	for i, ev := range events {
		matches := c.matcher.FindMatches(ev.Text)
		out := ev
		if len(matches) > 0 {
			out.Text = mask.Apply(ev.Text, matches)
			summary.MaskedEvents++
			summary.Matches += len(matches)
			for _, m := range matches {
				if !mask.Located(ev.Text, m) {
					c.log.Debug("matched window not locatable in original text",
						slog.String("window", m.WindowText),
						slog.String("term", m.Term.Word),
						slog.Int64("start_ms", ev.StartMS))
				}
			}
			summary.Records = append(summary.Records,
				report.Collect(ev.StartMS, ev.EndMS, ev.Text, out.Text, matches)...)
		}
		masked[i] = out
	}
	return masked, summary
}

// MaskFile loads an SRT track, masks it, and writes the masked track to
// outputPath. The match report CSV is written only when matches exist.
func (c *Censor) MaskFile(ctx context.Context, inputPath, outputPath, reportPath string) (Summary, error) {
	events, err := subtitle.LoadSRT(inputPath)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrValidation, "mask", "load", "", err)
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	masked, summary := c.MaskEvents(events)
	if err := subtitle.WriteSRT(outputPath, masked); err != nil {
		return Summary{}, services.Wrap(services.ErrTransient, "mask", "write", "", err)
	}
	if len(summary.Records) > 0 && reportPath != "" {
		if err := report.WriteCSV(reportPath, summary.Records); err != nil {
			return Summary{}, services.Wrap(services.ErrTransient, "mask", "report", "", err)
		}
	}
	c.log.Info("masked dialogue track",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
		slog.Int("events", summary.Events),
		slog.Int("masked_events", summary.MaskedEvents),
		slog.Int("matches", summary.Matches))
	return summary, nil
}
