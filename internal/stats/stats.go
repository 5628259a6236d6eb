// Package stats provides Stats
package stats

import (
	"io"
	"log/slog"
	"os"

	"github.com/tkw1536/pkglib/perf"
)

// Stats reports staged progress of a run.
// Starting and ending stages writes out timing and heap information to an
// underlying io.Writer.
//
// A nil Stats is valid, and discards any information written to it.
type Stats struct {
	logger *slog.Logger

	current StageStats   // current holds information about the current stage
	all     []StageStats // all holds information about the finished stages
}

// NewStats creates a new stats object that writes statistics to the given output.
func NewStats(w io.Writer) *Stats {
	if w == nil {
		return &Stats{}
	}
	return &Stats{
		logger: slog.New(slog.NewTextHandler(w, nil)),
	}
}

// Log logs an informational message.
func (st *Stats) Log(message string, args ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Info(message, args...)
}

// LogError logs an error message.
func (st *Stats) LogError(message string, err error, args ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Error(message, append([]any{"err", err}, args...)...)
}

// LogFatal is like LogError followed by os.Exit(1).
func (st *Stats) LogFatal(message string, err error) {
	st.LogError(message, err)
	os.Exit(1)
}

// Diff returns a performance diff starting at the first, and ending at the
// last finished stage.
func (st *Stats) Diff() perf.Diff {
	if st == nil || len(st.all) == 0 {
		var zero perf.Diff
		return zero
	}
	return st.all[len(st.all)-1].End.Sub(st.all[0].Start)
}

// Start starts a new stage, ending the current one if any.
func (st *Stats) Start(stage Stage) {
	if st == nil {
		return
	}

	st.end()

	st.current.Stage = stage
	st.current.Start = perf.Now()

	if st.logger != nil {
		st.logger.Info("start", "stage", stage)
	}
}

// End ends the current stage if any.
func (st *Stats) End() (prev StageStats) {
	if st == nil {
		return
	}
	return st.end()
}

// end implements End.
func (st *Stats) end() (prev StageStats) {
	if st.current.Stage == StageInitial {
		return
	}

	st.current.End = perf.Now()
	st.all = append(st.all, st.current)
	prev = st.current
	st.current = StageStats{}

	if st.logger != nil {
		st.logger.Info("end", "stage", prev.Stage, "took", prev.Diff())
	}
	return prev
}

// DoStage is a convenience wrapper to start a new stage, call f, and log the
// resulting error if any.
//
// If st is nil, immediately invokes f.
func (st *Stats) DoStage(stage Stage, f func() error) error {
	if st == nil {
		return f()
	}

	st.Start(stage)
	err := f()
	st.end()

	if err != nil {
		st.LogError("failed stage", err, "stage", stage)
		return err
	}
	return nil
}

// StageStats holds the stats for a specific stage
type StageStats struct {
	Stage Stage

	Start perf.Snapshot // At the start of the stage
	End   perf.Snapshot // At the end of the stage
}

// Diff returns a diff of the given stage
func (ss StageStats) Diff() perf.Diff {
	return ss.End.Sub(ss.Start)
}

// Stage represents a stage used for statistics
type Stage string

const (
	StageInitial Stage = ""
	StageBuild   Stage = "build"
	StageQuery   Stage = "query"
	StageReport  Stage = "report"
)
