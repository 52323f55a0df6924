package processor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/merge"
	"github.com/orayew2002/timetracker/overwork"
	"github.com/orayew2002/timetracker/report"
	"github.com/orayew2002/timetracker/timesheet"
)

// Outcome is everything a merge run produces.
type Outcome struct {
	Matrix   *domain.Matrix
	Overwork []domain.OverworkEntry
	Report   []byte
}

// Run parses every input timesheet, merges them (onto summary when it is not
// nil), detects overwork and renders the report. Inputs are parsed in
// parallel and the first failure cancels parses that have not started yet.
// When several files fail, the one earliest in input order is reported.
// A nil parser reads the standard layout.
func Run(ctx context.Context, parser *timesheet.Parser, inputs [][]byte, summary []byte) (*Outcome, error) {
	if parser == nil {
		parser = timesheet.Default()
	}

	sheets := make([]*domain.Sheet, len(inputs))
	errs := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, data := range inputs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			sheet, err := parser.ParseBytes(data)
			if err != nil {
				errs[i] = fmt.Errorf("file %d: %w", i+1, err)
				return errs[i]
			}
			sheets[i] = sheet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var existing *merge.Summary
	if summary != nil {
		s, err := merge.ReadSummary(summary)
		if err != nil {
			return nil, fmt.Errorf("summary: %w", err)
		}
		existing = s
	}

	m, err := merge.Merge(sheets, existing)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	over := overwork.Detect(m)

	data, err := report.Render(m, over)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Outcome{Matrix: m, Overwork: over, Report: data}, nil
}
