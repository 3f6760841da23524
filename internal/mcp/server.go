package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/neuronet/pkg/engine"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// NewMCPServer exposes the engine's queries as MCP tools.
func NewMCPServer(eng *engine.Engine) *mcp.Server {
	service := NewService(eng)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "NeuroNet",
		Version: Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Summarise the loaded graph: node and edge counts, memory, load timings and degree distribution.",
	}, service.Stats)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "load_graph",
		Description: "Load a SNAP edge-list file and make it the current graph. Blocks until the graph is built.",
	}, service.LoadGraph)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "node_info",
		Description: "Return a node's out-degree, in-degree and out-neighbors.",
	}, service.NodeInfo)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "bfs",
		Description: "Breadth-first traversal from a node, listing each reached node with its hop distance.",
	}, service.BFS)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "dfs",
		Description: "Depth-first traversal from a node, listing nodes in visit order.",
	}, service.DFS)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "shortest_path",
		Description: "Find a minimum-hop directed path between two nodes.",
	}, service.ShortestPath)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "top_k_degree",
		Description: "Rank the k nodes with the most outgoing edges.",
	}, service.TopK)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "random_sample",
		Description: "Draw k distinct nodes uniformly at random.",
	}, service.Sample)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "induced_edges",
		Description: "List every edge whose two endpoints are both in the given node set.",
	}, service.InducedEdges)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "subgraph",
		Description: "Extract a bounded subgraph (nodes with degrees plus their edges) selected by bfs, topk, range, sample or path.",
	}, service.Subgraph)

	return s
}
