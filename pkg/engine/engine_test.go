package engine

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

const scenarioEdges = "0 1\n1 2\n2 3\n1 3\n"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(opts)
}

func loadString(t *testing.T, eng *Engine, edges string) *Snapshot {
	t.Helper()
	snap, err := eng.LoadReader("test", strings.NewReader(edges), graph.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	return snap
}

func TestQueriesBeforeLoad(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.Current(); !errors.Is(err, ErrNoGraph) {
		t.Errorf("Current(): err = %v, want ErrNoGraph", err)
	}
	if _, err := eng.BFS(0, 1); !errors.Is(err, ErrNoGraph) {
		t.Errorf("BFS: err = %v, want ErrNoGraph", err)
	}
	if _, err := eng.Stats(); !errors.Is(err, ErrNoGraph) {
		t.Errorf("Stats: err = %v, want ErrNoGraph", err)
	}
}

func TestScenario(t *testing.T) {
	eng := newTestEngine(t)
	loadString(t, eng, scenarioEdges)

	stats, err := eng.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Nodes != 4 || stats.Edges != 4 || stats.Source != "test" {
		t.Errorf("stats = %+v", stats)
	}

	visits, _ := eng.BFS(0, 2)
	if want := []query.Visit{{Node: 0, Level: 0}, {Node: 1, Level: 1}, {Node: 2, Level: 2}, {Node: 3, Level: 2}}; !slices.Equal(visits, want) {
		t.Errorf("BFS(0, 2) = %v", visits)
	}
	path, _ := eng.ShortestPath(0, 3)
	if !slices.Equal(path, []int{0, 1, 3}) {
		t.Errorf("ShortestPath(0, 3) = %v", path)
	}
	if d, _ := eng.OutDegree(1); d != 2 {
		t.Errorf("OutDegree(1) = %d", d)
	}
	if d, _ := eng.InDegree(3); d != 2 {
		t.Errorf("InDegree(3) = %d", d)
	}
	if nd, _ := eng.MaxDegree(); nd != (query.NodeDegree{Node: 1, Degree: 2}) {
		t.Errorf("MaxDegree() = %v", nd)
	}
	if nbrs, _ := eng.Neighbors(1); !slices.Equal(nbrs, []int{2, 3}) {
		t.Errorf("Neighbors(1) = %v", nbrs)
	}
}

func TestEmptyGraphQueriesOutOfRange(t *testing.T) {
	eng := newTestEngine(t)
	snap := loadString(t, eng, "")
	if snap.Graph.NumNodes() != 0 || snap.Graph.NumEdges() != 0 {
		t.Fatalf("empty load: %d nodes, %d edges", snap.Graph.NumNodes(), snap.Graph.NumEdges())
	}

	checks := map[string]error{}
	_, checks["bfs"] = eng.BFS(0, 1)
	_, checks["dfs"] = eng.DFS(0, 1)
	_, checks["path"] = eng.ShortestPath(0, 0)
	_, checks["out"] = eng.OutDegree(0)
	_, checks["in"] = eng.InDegree(0)
	_, checks["neighbors"] = eng.Neighbors(0)
	_, checks["max"] = eng.MaxDegree()
	for op, err := range checks {
		if !errors.Is(err, graph.ErrOutOfRange) {
			t.Errorf("%s on empty graph: err = %v, want ErrOutOfRange", op, err)
		}
	}
}

func TestFailedLoadKeepsPreviousGraph(t *testing.T) {
	eng := newTestEngine(t)
	before := loadString(t, eng, scenarioEdges)

	_, err := eng.LoadReader("bad", strings.NewReader("0 1\nnot an edge\n"), graph.LoadOptions{})
	var ferr *graph.FormatError
	if !errors.As(err, &ferr) || ferr.Line != 2 {
		t.Fatalf("err = %v, want FormatError on line 2", err)
	}

	_, err = eng.Load(filepath.Join(t.TempDir(), "missing.txt"), graph.LoadOptions{})
	var ioErr *graph.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want IOError", err)
	}

	cur, err := eng.Current()
	if err != nil || cur != before {
		t.Fatalf("installed snapshot changed after failed loads")
	}
	if path, _ := eng.ShortestPath(0, 3); !slices.Equal(path, []int{0, 1, 3}) {
		t.Errorf("previous graph no longer answers: %v", path)
	}
}

func TestLoadReplacesGraph(t *testing.T) {
	eng := newTestEngine(t)
	old := loadString(t, eng, scenarioEdges)

	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("0 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := eng.Load(path, graph.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if cur, _ := eng.Current(); cur != snap {
		t.Fatal("new snapshot not installed")
	}
	if snap.Graph.NumNodes() != 10 {
		t.Errorf("NumNodes() = %d, want 10", snap.Graph.NumNodes())
	}
	// The replaced graph stays valid for anyone still holding it.
	if old.Graph.NumNodes() != 4 {
		t.Error("old snapshot mutated")
	}
}

func TestLoadSkipMalformedOption(t *testing.T) {
	eng := newTestEngine(t)
	snap, err := eng.LoadReader("lenient", strings.NewReader("0 1\n???\n1 2\n"), graph.LoadOptions{SkipMalformed: true})
	if err != nil {
		t.Fatal(err)
	}
	if snap.Report.SkippedLines != 1 || snap.Graph.NumEdges() != 2 {
		t.Errorf("report = %+v", snap.Report)
	}
}

// gatedReader blocks its first Read until release is closed.
type gatedReader struct {
	r       io.Reader
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedReader) Read(p []byte) (int, error) {
	g.once.Do(func() {
		close(g.started)
		<-g.release
	})
	return g.r.Read(p)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	eng := newTestEngine(t)

	slow := &gatedReader{
		r:       strings.NewReader("0 1\n"),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	errc := make(chan error, 1)
	go func() {
		_, err := eng.LoadReader("slow", slow, graph.LoadOptions{})
		errc <- err
	}()
	<-slow.started

	fresh := loadString(t, eng, scenarioEdges)
	close(slow.release)

	if err := <-errc; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("slow load: err = %v, want ErrSuperseded", err)
	}
	if cur, _ := eng.Current(); cur != fresh {
		t.Fatal("stale load replaced the newer graph")
	}
}

func TestConcurrentQueriesDuringReload(t *testing.T) {
	eng := newTestEngine(t)
	loadString(t, eng, scenarioEdges)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				path, err := eng.ShortestPath(0, 3)
				if err != nil {
					t.Errorf("ShortestPath: %v", err)
					return
				}
				// Both graphs contain a two-hop path 0 -> 1 -> 3.
				if len(path) != 3 {
					t.Errorf("unexpected path %v", path)
					return
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		loadString(t, eng, "0 1\n1 3\n3 2\n")
		loadString(t, eng, scenarioEdges)
	}
	wg.Wait()
}

func TestSubgraphModes(t *testing.T) {
	eng := newTestEngine(t)
	// out-degrees: 0:3 1:1 2:1 3:0 4:1
	loadString(t, eng, "0 1\n0 2\n0 3\n1 2\n2 0\n4 0\n")

	cases := []struct {
		name      string
		req       SubgraphRequest
		wantNodes []int
		wantEdges []query.Edge
	}{
		{
			name:      "bfs",
			req:       SubgraphRequest{Mode: ModeBFS, Start: 1, Depth: 1},
			wantNodes: []int{1, 2},
			wantEdges: []query.Edge{{Origin: 1, Destination: 2}},
		},
		{
			name:      "bfs capped",
			req:       SubgraphRequest{Mode: ModeBFS, Start: 0, Depth: 5, MaxNodes: 2},
			wantNodes: []int{0, 1},
			wantEdges: []query.Edge{{Origin: 0, Destination: 1}},
		},
		{
			name:      "topk",
			req:       SubgraphRequest{Mode: ModeTopK, K: 2},
			wantNodes: []int{0, 1},
			wantEdges: []query.Edge{{Origin: 0, Destination: 1}},
		},
		{
			name:      "range",
			req:       SubgraphRequest{Mode: ModeRange, Start: 2, K: 10},
			wantNodes: []int{2, 3, 4},
			wantEdges: []query.Edge{},
		},
		{
			name:      "path",
			req:       SubgraphRequest{Mode: ModePath, Start: 4, Destination: 2},
			wantNodes: []int{4, 0, 2},
			wantEdges: []query.Edge{{Origin: 4, Destination: 0}, {Origin: 0, Destination: 2}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := eng.Subgraph(tc.req)
			if err != nil {
				t.Fatal(err)
			}
			var nodes []int
			for _, n := range view.Nodes {
				nodes = append(nodes, n.Node)
			}
			if !slices.Equal(nodes, tc.wantNodes) {
				t.Errorf("nodes = %v, want %v", nodes, tc.wantNodes)
			}
			if !slices.Equal(view.Edges, tc.wantEdges) {
				t.Errorf("edges = %v, want %v", view.Edges, tc.wantEdges)
			}
		})
	}

	view, err := eng.Subgraph(SubgraphRequest{Mode: ModeSample, K: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Nodes) != 3 {
		t.Errorf("sample view has %d nodes", len(view.Nodes))
	}
	if view.Nodes[0].OutDegree < 0 {
		t.Error("degrees not attached")
	}

	if _, err := eng.Subgraph(SubgraphRequest{Mode: "spiral"}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown mode: err = %v", err)
	}
	if _, err := eng.Subgraph(SubgraphRequest{Mode: ModeBFS, Start: 99}); !errors.Is(err, graph.ErrOutOfRange) {
		t.Errorf("bad start: err = %v", err)
	}
}

func TestSubgraphNodeDegrees(t *testing.T) {
	eng := newTestEngine(t)
	loadString(t, eng, scenarioEdges)

	view, err := eng.Subgraph(SubgraphRequest{Mode: ModeRange, Start: 0, K: 4})
	if err != nil {
		t.Fatal(err)
	}
	want := []SubgraphNode{
		{Node: 0, OutDegree: 1, InDegree: 0},
		{Node: 1, OutDegree: 2, InDegree: 1},
		{Node: 2, OutDegree: 1, InDegree: 1},
		{Node: 3, OutDegree: 0, InDegree: 2},
	}
	if !slices.Equal(view.Nodes, want) {
		t.Errorf("nodes = %+v", view.Nodes)
	}
	if len(view.Edges) != 4 {
		t.Errorf("range view over the whole graph has %d edges, want 4", len(view.Edges))
	}
}
