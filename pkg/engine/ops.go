package engine

import (
	"time"

	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

// Stats describes the installed graph.
type Stats struct {
	Source        string              `json:"source"`
	Nodes         int                 `json:"nodes"`
	Edges         int                 `json:"edges"`
	MemoryMB      float64             `json:"memory_mb"`
	BuildSeconds  float64             `json:"build_seconds"`
	ParseSeconds  float64             `json:"parse_seconds"`
	SkippedLines  int                 `json:"skipped_lines"`
	Density       float64             `json:"density"`
	MaxDegreeNode int                 `json:"max_degree_node"`
	MaxDegree     int                 `json:"max_degree"`
	Degrees       graph.DegreeSummary `json:"degrees"`
	LoadedAt      time.Time           `json:"loaded_at"`
}

// Stats summarises the installed graph. The degree distribution is computed
// once per loaded graph.
func (e *Engine) Stats() (Stats, error) {
	defer e.observe("stats", time.Now())
	snap, err := e.Current()
	if err != nil {
		return Stats{}, err
	}
	return snap.Stats(), nil
}

// Stats summarises this snapshot's graph.
func (s *Snapshot) Stats() Stats {
	g := s.Graph
	node, deg := g.MaxOutDegree()
	return Stats{
		Source:        s.Report.Source,
		Nodes:         g.NumNodes(),
		Edges:         g.NumEdges(),
		MemoryMB:      g.MemoryMB(),
		BuildSeconds:  g.BuildDuration().Seconds(),
		ParseSeconds:  s.Report.ParseDuration.Seconds(),
		SkippedLines:  s.Report.SkippedLines,
		Density:       g.Density(),
		MaxDegreeNode: node,
		MaxDegree:     deg,
		Degrees:       s.DegreeSummary(),
		LoadedAt:      s.LoadedAt,
	}
}

// OutDegree returns the out-degree of node.
func (e *Engine) OutDegree(node int) (int, error) {
	g, err := e.graph()
	if err != nil {
		return 0, err
	}
	return g.OutDegree(node)
}

// InDegree returns the in-degree of node.
func (e *Engine) InDegree(node int) (int, error) {
	g, err := e.graph()
	if err != nil {
		return 0, err
	}
	return g.InDegree(node)
}

// Neighbors returns a copy of node's out-neighbors in stored order.
func (e *Engine) Neighbors(node int) ([]int, error) {
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	if err := graph.CheckNode(node, g.NumNodes()); err != nil {
		return nil, err
	}
	nbrs := g.Neighbors(node)
	out := make([]int, len(nbrs))
	for i, n := range nbrs {
		out[i] = int(n)
	}
	return out, nil
}

// MaxDegree returns the node with the largest out-degree, smallest id on
// ties. It is cached at build time. An empty graph has no such node and
// reports an out-of-range error.
func (e *Engine) MaxDegree() (query.NodeDegree, error) {
	g, err := e.graph()
	if err != nil {
		return query.NodeDegree{}, err
	}
	if err := graph.CheckNode(0, g.NumNodes()); err != nil {
		return query.NodeDegree{}, err
	}
	node, deg := g.MaxOutDegree()
	return query.NodeDegree{Node: node, Degree: deg}, nil
}

// BFS runs a bounded breadth-first traversal. See query.BFS.
func (e *Engine) BFS(start, maxDepth int) ([]query.Visit, error) {
	defer e.observe("bfs", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.BFS(g, start, maxDepth)
}

// DFS runs a bounded depth-first traversal. See query.DFS.
func (e *Engine) DFS(start, maxDepth int) ([]int, error) {
	defer e.observe("dfs", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.DFS(g, start, maxDepth)
}

// ShortestPath returns a minimum-hop path, empty when none exists.
func (e *Engine) ShortestPath(origin, destination int) ([]int, error) {
	defer e.observe("shortest_path", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.ShortestPath(g, origin, destination)
}

// TopK ranks the k nodes with the largest out-degree.
func (e *Engine) TopK(k int) ([]query.NodeDegree, error) {
	defer e.observe("top_k", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.TopKByDegree(g, k), nil
}

// NodesInRange lists the valid ids in [lo, hi).
func (e *Engine) NodesInRange(lo, hi int) ([]int, error) {
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.NodesInRange(g, lo, hi), nil
}

// RandomSample draws k distinct nodes uniformly at random.
func (e *Engine) RandomSample(k int) ([]int, error) {
	defer e.observe("random_sample", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.RandomSample(g, k, nil), nil
}

// InducedEdges returns the edges with both endpoints in nodes.
func (e *Engine) InducedEdges(nodes []int) ([]query.Edge, error) {
	defer e.observe("induced_edges", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}
	return query.InducedEdges(g, nodes)
}
