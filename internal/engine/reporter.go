package engine

import (
	"fmt"
	"io"
)

// Progress is a snapshot of one generation's state, handed to a Reporter.
type Progress struct {
	Generation      int
	MaxGenerations  int
	PopulationSize  int
	BestCost        float64
	MeanCost        float64
	CostStdDev      float64
	NullGenerations int
}

// Reporter receives progress updates during the generation loop. Reporting
// is best-effort and must never block the search.
type Reporter interface {
	Report(p Progress)
	Done()
}

// noopReporter discards all progress, used when HideProgress is set.
type noopReporter struct{}

func (noopReporter) Report(Progress) {}
func (noopReporter) Done()           {}

// NewWriterReporter returns a Reporter that writes a single,
// carriage-return-erased progress line to w on each update, mirroring the
// "\x1b[2K\r" line-clearing idiom used by the teacher's TSP example.
func NewWriterReporter(w io.Writer) Reporter {
	return &writerReporter{w: w}
}

type writerReporter struct {
	w io.Writer
}

func (r *writerReporter) Report(p Progress) {
	fmt.Fprintf(r.w, "\x1b[2K\rpopulation=%d, round=%d/%d, best=%.1f, mean=%.1f, stddev=%.2f, null rounds=%d",
		p.PopulationSize, p.Generation, p.MaxGenerations, p.BestCost, p.MeanCost, p.CostStdDev, p.NullGenerations)
}

func (r *writerReporter) Done() {
	fmt.Fprintln(r.w)
}
