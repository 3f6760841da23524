// Package engine provides the caller-owned session around a NeuroNet graph.
//
// An Engine holds the single "current graph" handle. Loading builds a brand
// new graph off to the side and swaps it in atomically once it is complete;
// queries already running keep using the graph they started with, new
// queries see the new one, and a failed load leaves the installed graph
// untouched. There is no package-level state: each Engine is independent.
//
// Basic usage:
//
//	eng := engine.New(engine.DefaultOptions())
//	if _, err := eng.Load("web-Google.txt", graph.LoadOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//	path, err := eng.ShortestPath(0, 42)
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/metrics"
)

var (
	// ErrNoGraph is returned by queries issued before any load succeeded.
	ErrNoGraph = errors.New("no graph loaded")

	// ErrSuperseded is returned by a load that finished after a newer load
	// had already been installed. Its graph is discarded.
	ErrSuperseded = errors.New("load superseded by a newer load")

	// ErrInvalidArgument reports a malformed request, such as an unknown
	// subgraph mode.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Options configures an Engine.
type Options struct {
	// MaxSubgraphNodes caps the node count of a Subgraph view when the
	// request does not set its own limit.
	MaxSubgraphNodes int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the standard configuration.
//
// Defaults:
//   - MaxSubgraphNodes: 500
func DefaultOptions() Options {
	return Options{
		MaxSubgraphNodes: 500,
	}
}

// Snapshot is an installed graph together with where it came from.
type Snapshot struct {
	Graph    *graph.Graph
	Report   graph.LoadReport
	LoadedAt time.Time

	seq         uint64
	summaryOnce sync.Once
	summary     graph.DegreeSummary
}

// DegreeSummary is computed on first use and cached for the snapshot's
// lifetime.
func (s *Snapshot) DegreeSummary() graph.DegreeSummary {
	s.summaryOnce.Do(func() {
		s.summary = s.Graph.DegreeSummary()
	})
	return s.summary
}

// Engine owns the current graph handle. It is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *slog.Logger

	current atomic.Pointer[Snapshot]
	loadSeq atomic.Uint64

	// installMu orders installs so an older load never replaces a newer one.
	installMu sync.Mutex
}

// New returns an Engine with no graph installed.
func New(opts Options) *Engine {
	if opts.MaxSubgraphNodes <= 0 {
		opts.MaxSubgraphNodes = DefaultOptions().MaxSubgraphNodes
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{opts: opts, logger: logger}
}

// Load reads the edge list at path and installs the resulting graph.
//
// It blocks until the graph is built; callers wanting responsiveness run it
// on their own goroutine. On error the previously installed graph stays in
// place. If a load started later has already been installed, the result is
// discarded and ErrSuperseded is returned.
func (e *Engine) Load(path string, opts graph.LoadOptions) (*Snapshot, error) {
	return e.load(path, opts, func(o graph.LoadOptions) (*graph.Graph, graph.LoadReport, error) {
		return graph.LoadFile(path, o)
	})
}

// LoadReader is Load for an already open stream; name labels it in logs.
func (e *Engine) LoadReader(name string, r io.Reader, opts graph.LoadOptions) (*Snapshot, error) {
	return e.load(name, opts, func(o graph.LoadOptions) (*graph.Graph, graph.LoadReport, error) {
		g, report, err := graph.Load(r, o)
		report.Source = name
		return g, report, err
	})
}

type loadFunc func(graph.LoadOptions) (*graph.Graph, graph.LoadReport, error)

func (e *Engine) load(source string, opts graph.LoadOptions, fn loadFunc) (*Snapshot, error) {
	if opts.Logger == nil {
		opts.Logger = e.logger
	}
	seq := e.loadSeq.Add(1)
	start := time.Now()
	e.logger.Info("Loading graph", "source", source, "load", seq)

	g, report, err := fn(opts)
	if err != nil {
		metrics.LoadsTotal.WithLabelValues("failed").Inc()
		e.logger.Error("Graph load failed", "source", source, "load", seq, "error", err)
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	snap := &Snapshot{Graph: g, Report: report, LoadedAt: time.Now(), seq: seq}
	if !e.install(snap) {
		metrics.LoadsTotal.WithLabelValues("superseded").Inc()
		e.logger.Warn("Discarding superseded graph load", "source", source, "load", seq)
		return nil, ErrSuperseded
	}

	elapsed := time.Since(start)
	metrics.LoadsTotal.WithLabelValues("ok").Inc()
	metrics.LoadDuration.Observe(elapsed.Seconds())
	metrics.GraphNodes.Set(float64(g.NumNodes()))
	metrics.GraphEdges.Set(float64(g.NumEdges()))
	metrics.GraphMemoryBytes.Set(float64(g.MemoryBytes()))

	e.logger.Info("Graph loaded",
		"source", source,
		"nodes", g.NumNodes(),
		"edges", g.NumEdges(),
		"skipped_lines", report.SkippedLines,
		"memory_mb", fmt.Sprintf("%.2f", g.MemoryMB()),
		"build_time", g.BuildDuration().String(),
		"total_time", elapsed.String(),
	)
	return snap, nil
}

// install swaps snap in unless a newer load is already installed.
func (e *Engine) install(snap *Snapshot) bool {
	e.installMu.Lock()
	defer e.installMu.Unlock()

	if cur := e.current.Load(); cur != nil && cur.seq > snap.seq {
		return false
	}
	e.current.Store(snap)
	return true
}

// Current returns the installed snapshot, or ErrNoGraph.
func (e *Engine) Current() (*Snapshot, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, ErrNoGraph
	}
	return snap, nil
}

func (e *Engine) graph() (*graph.Graph, error) {
	snap, err := e.Current()
	if err != nil {
		return nil, err
	}
	return snap.Graph, nil
}

// observe records the duration of a query started at start.
func (e *Engine) observe(op string, start time.Time) {
	d := time.Since(start)
	metrics.QueryDuration.WithLabelValues(op).Observe(d.Seconds())
	e.logger.Debug("Query completed", "op", op, "duration", d.String())
}
