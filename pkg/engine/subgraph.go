package engine

import (
	"fmt"
	"time"

	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

// SubgraphMode selects how Subgraph picks its nodes.
type SubgraphMode string

const (
	// ModeBFS takes the nodes discovered by BFS(Start, Depth).
	ModeBFS SubgraphMode = "bfs"
	// ModeTopK takes the K highest out-degree nodes.
	ModeTopK SubgraphMode = "topk"
	// ModeRange takes the ids in [Start, Start+K).
	ModeRange SubgraphMode = "range"
	// ModeSample takes K random nodes.
	ModeSample SubgraphMode = "sample"
	// ModePath takes the shortest path from Start to Destination.
	ModePath SubgraphMode = "path"
)

// SubgraphRequest describes a bounded view of the graph suitable for
// rendering.
type SubgraphRequest struct {
	Mode        SubgraphMode `json:"mode"`
	Start       int          `json:"start"`
	Depth       int          `json:"depth"`
	K           int          `json:"k"`
	Destination int          `json:"destination"`
	// MaxNodes caps the view; 0 uses the engine default.
	MaxNodes int `json:"max_nodes,omitempty"`
}

// SubgraphNode is a node of a view with its degrees in the full graph.
type SubgraphNode struct {
	Node      int `json:"node"`
	OutDegree int `json:"out_degree"`
	InDegree  int `json:"in_degree"`
}

// SubgraphView is a selected node set plus the edges among them. In path
// mode the edges are the path's own hops.
type SubgraphView struct {
	Mode  SubgraphMode   `json:"mode"`
	Nodes []SubgraphNode `json:"nodes"`
	Edges []query.Edge   `json:"edges"`
}

// Subgraph selects nodes according to req, truncates them to the node cap
// and returns them with their induced edges.
func (e *Engine) Subgraph(req SubgraphRequest) (*SubgraphView, error) {
	defer e.observe("subgraph", time.Now())
	g, err := e.graph()
	if err != nil {
		return nil, err
	}

	limit := req.MaxNodes
	if limit <= 0 {
		limit = e.opts.MaxSubgraphNodes
	}

	var nodes []int
	var edges []query.Edge
	switch req.Mode {
	case ModeBFS:
		visits, err := query.BFS(g, req.Start, req.Depth)
		if err != nil {
			return nil, err
		}
		visits = visits[:min(len(visits), limit)]
		nodes = make([]int, len(visits))
		for i, v := range visits {
			nodes[i] = v.Node
		}
	case ModeTopK:
		for _, nd := range query.TopKByDegree(g, min(req.K, limit)) {
			nodes = append(nodes, nd.Node)
		}
	case ModeRange:
		nodes = query.NodesInRange(g, req.Start, req.Start+max(req.K, 0))
		nodes = nodes[:min(len(nodes), limit)]
	case ModeSample:
		nodes = query.RandomSample(g, min(req.K, limit), nil)
	case ModePath:
		path, err := query.ShortestPath(g, req.Start, req.Destination)
		if err != nil {
			return nil, err
		}
		nodes, edges = path, query.PathEdges(path)
	default:
		return nil, fmt.Errorf("%w: unknown subgraph mode %q", ErrInvalidArgument, req.Mode)
	}

	if edges == nil {
		if edges, err = query.InducedEdges(g, nodes); err != nil {
			return nil, err
		}
	}
	return &SubgraphView{Mode: req.Mode, Nodes: describe(g, nodes), Edges: edges}, nil
}

// describe attaches degrees to nodes, which are all valid ids.
func describe(g *graph.Graph, nodes []int) []SubgraphNode {
	out := make([]SubgraphNode, len(nodes))
	for i, n := range nodes {
		outDeg, _ := g.OutDegree(n)
		inDeg, _ := g.InDegree(n)
		out[i] = SubgraphNode{Node: n, OutDegree: outDeg, InDegree: inDeg}
	}
	return out
}
