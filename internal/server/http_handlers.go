package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
)

const maxRequestBody = 1 << 20

// registerHTTPHandlers sets up the REST API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	// --- Debug (pprof) ---
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	// --- Graph lifecycle ---
	mux.HandleFunc("POST /graph/load", s.handleGraphLoad)
	mux.HandleFunc("GET /tasks/{id}", s.handleGetTask)
	mux.HandleFunc("GET /graph/stats", s.handleGraphStats)
	mux.HandleFunc("GET /graph/nodes/{id}", s.handleGetNode)

	// --- Queries ---
	mux.HandleFunc("POST /query/bfs", s.handleBFS)
	mux.HandleFunc("POST /query/dfs", s.handleDFS)
	mux.HandleFunc("POST /query/path", s.handleShortestPath)
	mux.HandleFunc("POST /query/top-k", s.handleTopK)
	mux.HandleFunc("GET /query/max-degree", s.handleMaxDegree)
	mux.HandleFunc("POST /query/range", s.handleRange)
	mux.HandleFunc("POST /query/sample", s.handleSample)
	mux.HandleFunc("POST /query/induced-edges", s.handleInducedEdges)
	mux.HandleFunc("POST /query/subgraph", s.handleSubgraph)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok", "graph_loaded": false}
	if snap, err := s.Engine.Current(); err == nil {
		resp["graph_loaded"] = true
		resp["source"] = snap.Report.Source
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

// --- Graph lifecycle handlers ---

// handleGraphLoad starts an asynchronous load and returns its task id.
func (s *Server) handleGraphLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Path == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "path is required")
		return
	}
	opts := graph.LoadOptions{SkipMalformed: s.opts.SkipMalformed}
	if req.SkipMalformed != nil {
		opts.SkipMalformed = *req.SkipMalformed
	}

	task := s.taskManager.NewTask(req.Path)
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		s.runLoad(task, req.Path, opts)
	}()

	s.writeHTTPResponse(w, http.StatusAccepted, LoadResponse{TaskID: task.ID, Status: string(TaskStatusStarted)})
}

func (s *Server) runLoad(task *Task, path string, opts graph.LoadOptions) {
	task.SetStatus(TaskStatusRunning)
	task.SetProgress("parsing edge list")
	opts.Progress = func(edges int) {
		task.SetProgress(fmt.Sprintf("parsed %d edges", edges))
	}

	snap, err := s.Engine.Load(path, opts)
	if err != nil {
		slog.Error("Background graph load failed", "task_id", task.ID, "path", path, "error", err)
		task.SetError(err)
		return
	}
	task.SetProgress("")
	task.SetResult(snap.Stats())
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, found := s.taskManager.GetTask(r.PathValue("id"))
	if !found {
		s.writeHTTPError(w, http.StatusNotFound, "task not found")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, task.View())
}

func (s *Server) handleGraphStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Engine.Stats()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, stats)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	node, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "node id must be an integer")
		return
	}
	// One snapshot for all three reads so they describe the same graph.
	snap, err := s.Engine.Current()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	g := snap.Graph
	out, err := g.OutDegree(node)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	in, _ := g.InDegree(node)
	nbrs := g.Neighbors(node)
	resp := NodeResponse{Node: node, OutDegree: out, InDegree: in, Neighbors: make([]int, len(nbrs))}
	for i, n := range nbrs {
		resp.Neighbors[i] = int(n)
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

// --- Query handlers ---

func (s *Server) handleBFS(w http.ResponseWriter, r *http.Request) {
	var req TraversalRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	visits, err := s.Engine.BFS(req.Start, depthOrUnlimited(req.MaxDepth))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, BFSResponse{Visits: visits})
}

func (s *Server) handleDFS(w http.ResponseWriter, r *http.Request) {
	var req TraversalRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	nodes, err := s.Engine.DFS(req.Start, depthOrUnlimited(req.MaxDepth))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, NodesResponse{Nodes: nodes})
}

func (s *Server) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	path, err := s.Engine.ShortestPath(req.Origin, req.Destination)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	resp := PathResponse{Path: nonNil(path), Found: len(path) > 0}
	if resp.Found {
		resp.Length = len(path) - 1
	}
	s.writeHTTPResponse(w, http.StatusOK, resp)
}

func (s *Server) handleTopK(w http.ResponseWriter, r *http.Request) {
	var req TopKRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	ranked, err := s.Engine.TopK(req.K)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, RankingResponse{Nodes: nonNil(ranked)})
}

func (s *Server) handleMaxDegree(w http.ResponseWriter, r *http.Request) {
	nd, err := s.Engine.MaxDegree()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, nd)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	var req RangeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	nodes, err := s.Engine.NodesInRange(req.Lo, req.Hi)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, NodesResponse{Nodes: nonNil(nodes)})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req SampleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	nodes, err := s.Engine.RandomSample(req.K)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, NodesResponse{Nodes: nonNil(nodes)})
}

func (s *Server) handleInducedEdges(w http.ResponseWriter, r *http.Request) {
	var req InducedEdgesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	edges, err := s.Engine.InducedEdges(req.Nodes)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, EdgesResponse{Edges: nonNil(edges)})
}

func (s *Server) handleSubgraph(w http.ResponseWriter, r *http.Request) {
	var req engine.SubgraphRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	view, err := s.Engine.Subgraph(req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	view.Nodes = nonNil(view.Nodes)
	view.Edges = nonNil(view.Edges)
	s.writeHTTPResponse(w, http.StatusOK, view)
}

// --- Helpers ---

func depthOrUnlimited(d *int) int {
	if d == nil {
		return query.NoDepthLimit
	}
	return *d
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// decodeJSON decodes a strict JSON body into dst, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// writeEngineError maps engine and graph errors onto HTTP status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var (
		ferr  *graph.FormatError
		ioErr *graph.IOError
	)
	switch {
	case errors.Is(err, graph.ErrOutOfRange):
		s.writeHTTPError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrNoGraph):
		s.writeHTTPError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrInvalidArgument), errors.As(err, &ferr):
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &ioErr):
		s.writeHTTPError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("Unhandled query error", "error", err)
		s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode HTTP response", "error", err)
		}
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}
