// Package client provides a Go client for interacting with the NeuroNet API.
//
// It offers a type-safe way to perform all major operations, including:
//   - Graph lifecycle (Load with task polling, Stats, node inspection).
//   - Traversals (BFS, DFS, ShortestPath).
//   - Degree and sampling queries (TopK, MaxDegree, Range, Sample).
//   - Subgraph extraction (InducedEdges, Subgraph).
//
// The client handles HTTP communication, JSON serialization/deserialization, and
// standardized error handling.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/query"
)

// --- Custom Errors ---

// APIError represents an error returned by the NeuroNet API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// --- JSON Response Structs ---

// Node describes a single node of the loaded graph.
type Node struct {
	Node      int   `json:"node"`
	OutDegree int   `json:"out_degree"`
	InDegree  int   `json:"in_degree"`
	Neighbors []int `json:"neighbors"`
}

// Path is a shortest path result. Found is false when no path exists.
type Path struct {
	Path   []int `json:"path"`
	Found  bool  `json:"found"`
	Length int   `json:"length"`
}

type visitsResponse struct {
	Visits []query.Visit `json:"visits"`
}

type nodesResponse struct {
	Nodes []int `json:"nodes"`
}

type rankingResponse struct {
	Nodes []query.NodeDegree `json:"nodes"`
}

type edgesResponse struct {
	Edges []query.Edge `json:"edges"`
}

// Task represents an asynchronous graph load on the NeuroNet server.
type Task struct {
	ID              string        `json:"id"`
	Status          string        `json:"status"`
	Source          string        `json:"source"`
	ProgressMessage string        `json:"progress_message,omitempty"`
	Error           string        `json:"error,omitempty"`
	Result          *engine.Stats `json:"result,omitempty"`

	client *Client // Reference to the client for polling.
}

// --- Client ---

// Client is the Go client for interacting with NeuroNet.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new NeuroNet client. apiKey may be empty when the server
// runs without authentication.
func New(host string, port int, apiKey string) *Client {
	return NewWithURL(fmt.Sprintf("http://%s:%d", host, port), apiKey)
}

// NewWithURL creates a client for a full base URL such as
// "http://localhost:9191".
func NewWithURL(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// jsonRequest is a helper method to execute all requests to the API.
// It handles JSON serialization, HTTP calls, and error management.
func (c *Client) jsonRequest(method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

// call runs jsonRequest and decodes the response into out.
func (c *Client) call(method, endpoint string, payload, out any) error {
	respBody, err := c.jsonRequest(method, endpoint, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("invalid JSON response for %s %s: %w", method, endpoint, err)
	}
	return nil
}

// Refresh updates the task's status by querying the server.
func (t *Task) Refresh() error {
	if t.client == nil {
		return fmt.Errorf("client is not associated with the task")
	}
	updatedTask, err := t.client.GetTaskStatus(t.ID)
	if err != nil {
		return err
	}
	t.Status = updatedTask.Status
	t.ProgressMessage = updatedTask.ProgressMessage
	t.Error = updatedTask.Error
	t.Result = updatedTask.Result
	return nil
}

// Wait blocks until the task is completed, checking its status at regular intervals.
func (t *Task) Wait(interval, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-timer.C:
			return fmt.Errorf("timeout exceeded while waiting for task %s", t.ID)
		case <-ticker.C:
			if err := t.Refresh(); err != nil {
				return err
			}
			switch t.Status {
			case "completed":
				return nil
			case "failed":
				return fmt.Errorf("task %s failed with error: %s", t.ID, t.Error)
			case "running", "started":
				// Continue waiting.
			default:
				return fmt.Errorf("unknown task status: %s", t.Status)
			}
		}
	}
}

// --- Graph Methods ---

// Load asks the server to load the edge list at path, which is resolved on
// the server's filesystem. skipMalformed overrides the server default when
// non-nil. The returned Task can be waited on.
func (c *Client) Load(path string, skipMalformed *bool) (*Task, error) {
	payload := map[string]any{"path": path}
	if skipMalformed != nil {
		payload["skip_malformed"] = *skipMalformed
	}
	var accepted struct {
		TaskID string `json:"task_id"`
		Status string `json:"status"`
	}
	if err := c.call(http.MethodPost, "/graph/load", payload, &accepted); err != nil {
		return nil, err
	}
	return &Task{ID: accepted.TaskID, Status: accepted.Status, Source: path, client: c}, nil
}

// GetTaskStatus retrieves the status of a load task.
func (c *Client) GetTaskStatus(taskID string) (*Task, error) {
	var task Task
	if err := c.call(http.MethodGet, "/tasks/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	task.client = c
	return &task, nil
}

// Stats returns the summary of the loaded graph.
func (c *Client) Stats() (*engine.Stats, error) {
	var stats engine.Stats
	if err := c.call(http.MethodGet, "/graph/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Node returns the degrees and out-neighbors of node.
func (c *Client) Node(node int) (*Node, error) {
	var n Node
	if err := c.call(http.MethodGet, "/graph/nodes/"+strconv.Itoa(node), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// --- Query Methods ---

// BFS runs a breadth-first traversal. Pass query.NoDepthLimit for an
// unbounded traversal; a negative maxDepth returns only start.
func (c *Client) BFS(start, maxDepth int) ([]query.Visit, error) {
	var resp visitsResponse
	payload := map[string]int{"start": start, "max_depth": maxDepth}
	if err := c.call(http.MethodPost, "/query/bfs", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Visits, nil
}

// DFS runs a depth-first traversal with the same depth rules as BFS.
func (c *Client) DFS(start, maxDepth int) ([]int, error) {
	var resp nodesResponse
	payload := map[string]int{"start": start, "max_depth": maxDepth}
	if err := c.call(http.MethodPost, "/query/dfs", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// ShortestPath finds a minimum-hop path.
func (c *Client) ShortestPath(origin, destination int) (*Path, error) {
	var p Path
	payload := map[string]int{"origin": origin, "destination": destination}
	if err := c.call(http.MethodPost, "/query/path", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// TopK ranks the k nodes with the largest out-degree.
func (c *Client) TopK(k int) ([]query.NodeDegree, error) {
	var resp rankingResponse
	if err := c.call(http.MethodPost, "/query/top-k", map[string]int{"k": k}, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// MaxDegree returns the node with the largest out-degree.
func (c *Client) MaxDegree() (*query.NodeDegree, error) {
	var nd query.NodeDegree
	if err := c.call(http.MethodGet, "/query/max-degree", nil, &nd); err != nil {
		return nil, err
	}
	return &nd, nil
}

// Range lists the valid node ids in [lo, hi).
func (c *Client) Range(lo, hi int) ([]int, error) {
	var resp nodesResponse
	if err := c.call(http.MethodPost, "/query/range", map[string]int{"lo": lo, "hi": hi}, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// Sample draws k distinct random nodes.
func (c *Client) Sample(k int) ([]int, error) {
	var resp nodesResponse
	if err := c.call(http.MethodPost, "/query/sample", map[string]int{"k": k}, &resp); err != nil {
		return nil, err
	}
	return resp.Nodes, nil
}

// InducedEdges returns the edges with both endpoints in nodes.
func (c *Client) InducedEdges(nodes []int) ([]query.Edge, error) {
	var resp edgesResponse
	if err := c.call(http.MethodPost, "/query/induced-edges", map[string][]int{"nodes": nodes}, &resp); err != nil {
		return nil, err
	}
	return resp.Edges, nil
}

// Subgraph extracts a bounded view of the graph.
func (c *Client) Subgraph(req engine.SubgraphRequest) (*engine.SubgraphView, error) {
	var view engine.SubgraphView
	if err := c.call(http.MethodPost, "/query/subgraph", req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
