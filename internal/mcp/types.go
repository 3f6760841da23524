package mcp

import (
	"time"

	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

// --- Tool Arguments ---

type StatsArgs struct{}

type LoadGraphArgs struct {
	Path          string `json:"path" jsonschema:"Path of the SNAP edge-list file on the server"`
	SkipMalformed bool   `json:"skip_malformed,omitempty" jsonschema:"Skip unparseable lines instead of failing the load"`
}

type TraversalArgs struct {
	Start    int  `json:"start" jsonschema:"Node id to start from"`
	MaxDepth *int `json:"max_depth,omitempty" jsonschema:"Maximum number of hops from start. Omit for no limit"`
}

type ShortestPathArgs struct {
	Origin      int `json:"origin" jsonschema:"Node id the path starts at"`
	Destination int `json:"destination" jsonschema:"Node id the path ends at"`
}

type TopKArgs struct {
	K int `json:"k" jsonschema:"Number of nodes to return"`
}

type SampleArgs struct {
	K int `json:"k" jsonschema:"Number of distinct nodes to draw"`
}

type NodeArgs struct {
	Node int `json:"node" jsonschema:"Node id to describe"`
}

type InducedEdgesArgs struct {
	Nodes []int `json:"nodes" jsonschema:"Node ids whose mutual edges should be listed"`
}

type SubgraphArgs struct {
	Mode        string `json:"mode" jsonschema:"Node selection: bfs, topk, range, sample or path"`
	Start       int    `json:"start,omitempty" jsonschema:"Start node for bfs and path, first id for range"`
	Depth       int    `json:"depth,omitempty" jsonschema:"Hop limit for bfs"`
	K           int    `json:"k,omitempty" jsonschema:"Node count for topk, range and sample"`
	Destination int    `json:"destination,omitempty" jsonschema:"End node for path"`
	MaxNodes    int    `json:"max_nodes,omitempty" jsonschema:"Cap on the number of nodes returned"`
}

// --- Tool Results ---

// GraphStats mirrors engine.Stats with the load time as RFC 3339 text so the
// inferred output schema stays plain JSON types.
type GraphStats struct {
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
	LoadedAt      string              `json:"loaded_at"`
}

func newGraphStats(st engine.Stats) GraphStats {
	return GraphStats{
		Source:        st.Source,
		Nodes:         st.Nodes,
		Edges:         st.Edges,
		MemoryMB:      st.MemoryMB,
		BuildSeconds:  st.BuildSeconds,
		ParseSeconds:  st.ParseSeconds,
		SkippedLines:  st.SkippedLines,
		Density:       st.Density,
		MaxDegreeNode: st.MaxDegreeNode,
		MaxDegree:     st.MaxDegree,
		Degrees:       st.Degrees,
		LoadedAt:      st.LoadedAt.Format(time.RFC3339),
	}
}

type StatsResult struct {
	Stats GraphStats `json:"stats"`
}

type LoadGraphResult struct {
	Status string     `json:"status"`
	Stats  GraphStats `json:"stats"`
}

type BFSResult struct {
	Visits []query.Visit `json:"visits"`
}

type NodesResult struct {
	Nodes []int `json:"nodes"`
}

type PathResult struct {
	Path   []int        `json:"path"`
	Found  bool         `json:"found"`
	Length int          `json:"length"`
	Edges  []query.Edge `json:"edges"`
}

type RankingResult struct {
	Nodes []query.NodeDegree `json:"nodes"`
}

type NodeResult struct {
	Node      int   `json:"node"`
	OutDegree int   `json:"out_degree"`
	InDegree  int   `json:"in_degree"`
	Neighbors []int `json:"neighbors"`
}

type EdgesResult struct {
	Edges []query.Edge `json:"edges"`
}

type SubgraphResult struct {
	View engine.SubgraphView `json:"view"`
}
