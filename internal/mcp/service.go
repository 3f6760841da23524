package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

// Service implements the MCP tool handlers on top of an Engine.
type Service struct {
	engine *engine.Engine
}

func NewService(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// --- Tool Handlers ---

func (s *Service) Stats(ctx context.Context, req *mcp.CallToolRequest, args StatsArgs) (*mcp.CallToolResult, StatsResult, error) {
	stats, err := s.engine.Stats()
	if err != nil {
		return nil, StatsResult{}, err
	}
	return nil, StatsResult{Stats: newGraphStats(stats)}, nil
}

func (s *Service) LoadGraph(ctx context.Context, req *mcp.CallToolRequest, args LoadGraphArgs) (*mcp.CallToolResult, LoadGraphResult, error) {
	snap, err := s.engine.Load(args.Path, graph.LoadOptions{SkipMalformed: args.SkipMalformed})
	if err != nil {
		return nil, LoadGraphResult{}, err
	}
	return nil, LoadGraphResult{Status: "loaded", Stats: newGraphStats(snap.Stats())}, nil
}

func (s *Service) NodeInfo(ctx context.Context, req *mcp.CallToolRequest, args NodeArgs) (*mcp.CallToolResult, NodeResult, error) {
	out, err := s.engine.OutDegree(args.Node)
	if err != nil {
		return nil, NodeResult{}, err
	}
	in, err := s.engine.InDegree(args.Node)
	if err != nil {
		return nil, NodeResult{}, err
	}
	nbrs, err := s.engine.Neighbors(args.Node)
	if err != nil {
		return nil, NodeResult{}, err
	}
	return nil, NodeResult{Node: args.Node, OutDegree: out, InDegree: in, Neighbors: nbrs}, nil
}

func (s *Service) BFS(ctx context.Context, req *mcp.CallToolRequest, args TraversalArgs) (*mcp.CallToolResult, BFSResult, error) {
	visits, err := s.engine.BFS(args.Start, depth(args.MaxDepth))
	if err != nil {
		return nil, BFSResult{}, err
	}
	return nil, BFSResult{Visits: visits}, nil
}

func (s *Service) DFS(ctx context.Context, req *mcp.CallToolRequest, args TraversalArgs) (*mcp.CallToolResult, NodesResult, error) {
	nodes, err := s.engine.DFS(args.Start, depth(args.MaxDepth))
	if err != nil {
		return nil, NodesResult{}, err
	}
	return nil, NodesResult{Nodes: nodes}, nil
}

func (s *Service) ShortestPath(ctx context.Context, req *mcp.CallToolRequest, args ShortestPathArgs) (*mcp.CallToolResult, PathResult, error) {
	path, err := s.engine.ShortestPath(args.Origin, args.Destination)
	if err != nil {
		return nil, PathResult{}, err
	}
	res := PathResult{Path: path, Found: len(path) > 0, Edges: query.PathEdges(path)}
	if res.Found {
		res.Length = len(path) - 1
	}
	return nil, res, nil
}

func (s *Service) TopK(ctx context.Context, req *mcp.CallToolRequest, args TopKArgs) (*mcp.CallToolResult, RankingResult, error) {
	ranked, err := s.engine.TopK(args.K)
	if err != nil {
		return nil, RankingResult{}, err
	}
	return nil, RankingResult{Nodes: ranked}, nil
}

func (s *Service) Sample(ctx context.Context, req *mcp.CallToolRequest, args SampleArgs) (*mcp.CallToolResult, NodesResult, error) {
	nodes, err := s.engine.RandomSample(args.K)
	if err != nil {
		return nil, NodesResult{}, err
	}
	return nil, NodesResult{Nodes: nodes}, nil
}

func (s *Service) InducedEdges(ctx context.Context, req *mcp.CallToolRequest, args InducedEdgesArgs) (*mcp.CallToolResult, EdgesResult, error) {
	edges, err := s.engine.InducedEdges(args.Nodes)
	if err != nil {
		return nil, EdgesResult{}, err
	}
	return nil, EdgesResult{Edges: edges}, nil
}

func (s *Service) Subgraph(ctx context.Context, req *mcp.CallToolRequest, args SubgraphArgs) (*mcp.CallToolResult, SubgraphResult, error) {
	view, err := s.engine.Subgraph(engine.SubgraphRequest{
		Mode:        engine.SubgraphMode(args.Mode),
		Start:       args.Start,
		Depth:       args.Depth,
		K:           args.K,
		Destination: args.Destination,
		MaxNodes:    args.MaxNodes,
	})
	if err != nil {
		return nil, SubgraphResult{}, err
	}
	return nil, SubgraphResult{View: *view}, nil
}

// depth maps an omitted max_depth to no limit.
func depth(d *int) int {
	if d == nil {
		return query.NoDepthLimit
	}
	return *d
}
