package client

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/sanonone/neuronet/internal/server"
	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/query"
)

func startServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s := server.NewServer(engine.New(opts), server.Options{AuthToken: token})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func writeEdges(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClientEndToEnd(t *testing.T) {
	ts := startServer(t, "s3cret")
	client := NewWithURL(ts.URL, "s3cret")

	// Queries before any load are rejected with 409.
	_, err := client.Stats()
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("Stats before load: err = %v", err)
	}

	task, err := client.Load(writeEdges(t, "0 1\n1 2\n2 3\n1 3\n"), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := task.Wait(10*time.Millisecond, 5*time.Second); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if task.Result == nil || task.Result.Nodes != 4 {
		t.Fatalf("task result = %+v", task.Result)
	}

	t.Run("Stats", func(t *testing.T) {
		stats, err := client.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Edges != 4 || stats.MaxDegree != 2 {
			t.Errorf("stats = %+v", stats)
		}
	})

	t.Run("Traversals", func(t *testing.T) {
		visits, err := client.BFS(0, 1)
		if err != nil {
			t.Fatal(err)
		}
		if want := []query.Visit{{Node: 0, Level: 0}, {Node: 1, Level: 1}}; !slices.Equal(visits, want) {
			t.Errorf("BFS(0, 1) = %v", visits)
		}
		order, err := client.DFS(0, query.NoDepthLimit)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(order, []int{0, 1, 2, 3}) {
			t.Errorf("DFS(0) = %v", order)
		}
		path, err := client.ShortestPath(0, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !path.Found || !slices.Equal(path.Path, []int{0, 1, 3}) {
			t.Errorf("ShortestPath(0, 3) = %+v", path)
		}
	})

	t.Run("Degrees", func(t *testing.T) {
		top, err := client.TopK(1)
		if err != nil {
			t.Fatal(err)
		}
		if len(top) != 1 || top[0] != (query.NodeDegree{Node: 1, Degree: 2}) {
			t.Errorf("TopK(1) = %v", top)
		}
		nd, err := client.MaxDegree()
		if err != nil || nd.Node != 1 {
			t.Errorf("MaxDegree() = %v, %v", nd, err)
		}
		n, err := client.Node(3)
		if err != nil {
			t.Fatal(err)
		}
		if n.InDegree != 2 || len(n.Neighbors) != 0 {
			t.Errorf("Node(3) = %+v", n)
		}
	})

	t.Run("Subsets", func(t *testing.T) {
		nodes, err := client.Range(1, 3)
		if err != nil || !slices.Equal(nodes, []int{1, 2}) {
			t.Errorf("Range(1, 3) = %v, %v", nodes, err)
		}
		sample, err := client.Sample(2)
		if err != nil || len(sample) != 2 {
			t.Errorf("Sample(2) = %v, %v", sample, err)
		}
		edges, err := client.InducedEdges([]int{0, 1})
		if err != nil || !slices.Equal(edges, []query.Edge{{Origin: 0, Destination: 1}}) {
			t.Errorf("InducedEdges = %v, %v", edges, err)
		}
		view, err := client.Subgraph(engine.SubgraphRequest{Mode: engine.ModeTopK, K: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(view.Nodes) != 2 || len(view.Edges) != 1 {
			t.Errorf("Subgraph(topk) = %+v", view)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := client.BFS(42, 1)
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("BFS out of range: err = %v", err)
		}

		task, err := client.Load(writeEdges(t, "not an edge\n"), nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := task.Wait(10*time.Millisecond, 5*time.Second); err == nil || task.Status != "failed" {
			t.Errorf("bad load: err = %v, status %s", err, task.Status)
		}
	})
}

func TestClientRejectsWrongToken(t *testing.T) {
	ts := startServer(t, "right")
	_, err := NewWithURL(ts.URL, "wrong").Stats()
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("err = %v, want 401 APIError", err)
	}
}
