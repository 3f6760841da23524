package server

import (
	"github.com/sanonone/neuronet/pkg/query"
)

// LoadRequest defines the body for loading a graph from a server-side file.
type LoadRequest struct {
	Path string `json:"path"`
	// SkipMalformed overrides the server default when set.
	SkipMalformed *bool `json:"skip_malformed,omitempty"`
}

// LoadResponse is returned when a load task is accepted.
type LoadResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// TraversalRequest defines the body for BFS and DFS. A nil MaxDepth means
// no depth limit.
type TraversalRequest struct {
	Start    int  `json:"start"`
	MaxDepth *int `json:"max_depth,omitempty"`
}

// PathRequest defines the body for shortest path.
type PathRequest struct {
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
}

// TopKRequest defines the body for degree ranking.
type TopKRequest struct {
	K int `json:"k"`
}

// RangeRequest selects the ids in [Lo, Hi).
type RangeRequest struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// SampleRequest defines the body for random sampling.
type SampleRequest struct {
	K int `json:"k"`
}

// InducedEdgesRequest defines the body for induced edges.
type InducedEdgesRequest struct {
	Nodes []int `json:"nodes"`
}

// BFSResponse lists discovered nodes with their levels.
type BFSResponse struct {
	Visits []query.Visit `json:"visits"`
}

// NodesResponse lists node ids in query order.
type NodesResponse struct {
	Nodes []int `json:"nodes"`
}

// PathResponse holds a path; Found is false when no path exists.
type PathResponse struct {
	Path   []int `json:"path"`
	Found  bool  `json:"found"`
	Length int   `json:"length"`
}

// RankingResponse lists nodes by descending out-degree.
type RankingResponse struct {
	Nodes []query.NodeDegree `json:"nodes"`
}

// EdgesResponse lists edges.
type EdgesResponse struct {
	Edges []query.Edge `json:"edges"`
}

// NodeResponse describes a single node.
type NodeResponse struct {
	Node      int   `json:"node"`
	OutDegree int   `json:"out_degree"`
	InDegree  int   `json:"in_degree"`
	Neighbors []int `json:"neighbors"`
}
