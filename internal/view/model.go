// Package view owns the presentation state for a single comparison load:
// a loading flag and one immutable snapshot committed atomically when the
// load pipeline finishes.
package view

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/model-compare/internal/dataset"
)

// Snapshot is the committed (Dataset, Stats, Report) unit. It is replaced
// by reference in a single assignment, never mutated field by field.
type Snapshot struct {
	Dataset dataset.Dataset
	Stats   dataset.Stats
	Report  dataset.Report
}

// Model runs the load→parse→transform→aggregate pipeline once per Refresh
// and exposes the result. Loading clears on success and failure alike; a
// failed load commits the empty snapshot rather than surfacing an error.
type Model struct {
	loader *dataset.Loader
	path   string
	format string

	mu      sync.Mutex
	loading bool
	closed  bool
	snap    Snapshot
	done    chan struct{}
}

// NewModel returns a Model that will read path through loader. format is
// "csv", "xlsx", or "auto" (pick by file extension, defaulting to csv).
func NewModel(loader *dataset.Loader, path, format string) *Model {
	return &Model{loader: loader, path: path, format: format}
}

// Refresh starts one asynchronous load. It is a no-op while a load is in
// flight or after Close.
func (m *Model) Refresh(ctx context.Context) {
	m.mu.Lock()
	if m.loading || m.closed {
		m.mu.Unlock()
		return
	}
	m.loading = true
	done := make(chan struct{})
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		snap := m.load(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		m.loading = false
		if m.closed {
			// Result arriving after teardown is dropped.
			return
		}
		m.snap = snap
	}()
}

// Wait blocks until the in-flight Refresh, if any, has committed.
func (m *Model) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Loading reports whether a load is in flight.
func (m *Model) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Snapshot returns the last committed snapshot. A closed model exposes
// nothing.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Snapshot{}
	}
	return m.snap
}

// Close detaches the model. A load still in flight finishes but its result
// is not applied.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *Model) load(ctx context.Context) Snapshot {
	log := zap.L().With(zap.String("component", "view"), zap.String("path", m.path))

	rows, rpt, err := m.read(ctx)
	if err != nil {
		log.Error("load failed, showing empty data", zap.Error(err))
		return emptySnapshot()
	}

	ds := dataset.Transform(rows)
	st := dataset.Aggregate(ds)
	log.Info("load complete",
		zap.Int("rows", st.Total),
		zap.Int("row_errors", rpt.RowErrors),
		zap.Int("bad_fields", rpt.BadFields),
		zap.Int("source_mismatches", st.SourceMismatches),
	)
	return Snapshot{Dataset: ds, Stats: st, Report: rpt}
}

func (m *Model) read(ctx context.Context) ([]dataset.ScoreRow, dataset.Report, error) {
	if resolveFormat(m.path, m.format) == "xlsx" {
		raw, err := m.loader.LoadBytes(ctx, m.path)
		if err != nil {
			return nil, dataset.Report{}, err
		}
		return dataset.ParseXLSX(raw)
	}

	text, err := m.loader.Load(ctx, m.path)
	if err != nil {
		return nil, dataset.Report{}, err
	}
	return dataset.ParseCSV(text)
}

func resolveFormat(path, format string) string {
	if format != "" && format != "auto" {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}

func emptySnapshot() Snapshot {
	return Snapshot{Dataset: dataset.Dataset{}, Stats: dataset.Aggregate(nil)}
}
