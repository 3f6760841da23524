package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

func newLoadedService(t *testing.T) *Service {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(engine.New(opts))

	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("0 1\n1 2\n2 3\n1 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, res, err := svc.LoadGraph(context.Background(), nil, LoadGraphArgs{Path: path})
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if res.Stats.Nodes != 4 || res.Stats.Edges != 4 {
		t.Fatalf("LoadGraph stats = %+v", res.Stats)
	}
	return svc
}

func TestToolsBeforeLoad(t *testing.T) {
	svc := NewService(engine.New(engine.DefaultOptions()))
	if _, _, err := svc.Stats(context.Background(), nil, StatsArgs{}); !errors.Is(err, engine.ErrNoGraph) {
		t.Errorf("Stats: err = %v, want ErrNoGraph", err)
	}
}

func TestTraversalTools(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()

	one := 1
	_, bfs, err := svc.BFS(ctx, nil, TraversalArgs{Start: 1, MaxDepth: &one})
	if err != nil {
		t.Fatal(err)
	}
	if want := []query.Visit{{Node: 1, Level: 0}, {Node: 2, Level: 1}, {Node: 3, Level: 1}}; !slices.Equal(bfs.Visits, want) {
		t.Errorf("bfs = %v", bfs.Visits)
	}

	_, dfs, err := svc.DFS(ctx, nil, TraversalArgs{Start: 0})
	if err != nil || !slices.Equal(dfs.Nodes, []int{0, 1, 2, 3}) {
		t.Errorf("dfs = %v, %v", dfs.Nodes, err)
	}

	_, path, err := svc.ShortestPath(ctx, nil, ShortestPathArgs{Origin: 0, Destination: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !path.Found || path.Length != 2 || len(path.Edges) != 2 {
		t.Errorf("path = %+v", path)
	}

	_, path, _ = svc.ShortestPath(ctx, nil, ShortestPathArgs{Origin: 3, Destination: 0})
	if path.Found || len(path.Path) != 0 {
		t.Errorf("unreachable path = %+v", path)
	}

	if _, _, err := svc.BFS(ctx, nil, TraversalArgs{Start: 9}); !errors.Is(err, graph.ErrOutOfRange) {
		t.Errorf("bfs out of range: err = %v", err)
	}
}

func TestDegreeAndSubgraphTools(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()

	_, top, err := svc.TopK(ctx, nil, TopKArgs{K: 2})
	if err != nil {
		t.Fatal(err)
	}
	if want := []query.NodeDegree{{Node: 1, Degree: 2}, {Node: 0, Degree: 1}}; !slices.Equal(top.Nodes, want) {
		t.Errorf("top = %v", top.Nodes)
	}

	_, node, err := svc.NodeInfo(ctx, nil, NodeArgs{Node: 1})
	if err != nil || node.OutDegree != 2 || node.InDegree != 1 || !slices.Equal(node.Neighbors, []int{2, 3}) {
		t.Errorf("node = %+v, %v", node, err)
	}

	_, sample, err := svc.Sample(ctx, nil, SampleArgs{K: 3})
	if err != nil || len(sample.Nodes) != 3 {
		t.Errorf("sample = %v, %v", sample.Nodes, err)
	}

	_, edges, err := svc.InducedEdges(ctx, nil, InducedEdgesArgs{Nodes: []int{1, 3}})
	if err != nil || !slices.Equal(edges.Edges, []query.Edge{{Origin: 1, Destination: 3}}) {
		t.Errorf("induced = %v, %v", edges.Edges, err)
	}

	_, sub, err := svc.Subgraph(ctx, nil, SubgraphArgs{Mode: "bfs", Start: 0, Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.View.Nodes) != 2 || len(sub.View.Edges) != 1 {
		t.Errorf("subgraph = %+v", sub.View)
	}
	if _, _, err := svc.Subgraph(ctx, nil, SubgraphArgs{Mode: "nope"}); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("bad mode: err = %v", err)
	}
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	if NewMCPServer(engine.New(engine.DefaultOptions())) == nil {
		t.Fatal("NewMCPServer returned nil")
	}
}
