package main

import (
	"log/slog"
	"os"

	"github.com/sanonone/neuronet/internal/config"
	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	cfg config.Config

	configPath    string
	httpAddr      string
	logLevel      string
	skipMalformed bool
	jsonOutput    bool

	maxDepth      int
	subgraphMode  string
	subgraphDepth int
	subgraphK     int
	subgraphDest  int

	rootCmd = &cobra.Command{
		Use:   "neuronet",
		Short: "Load SNAP edge lists into a compact in-memory graph and query it",
		Long: `NeuroNet builds a compressed sparse row graph from a SNAP-style
edge list and answers traversal, path, degree and sampling queries, either
one-shot from the command line or over HTTP and MCP.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	// --- Servers ---
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, optionally preloading a graph",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in cmd_serve.go
	}
	mcpCmd = &cobra.Command{
		Use:   "mcp [edge-list]",
		Short: "Serve graph tools over MCP on stdin/stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMCP, // Defined in cmd_serve.go
	}

	// --- One-shot queries ---
	statsCmd = &cobra.Command{
		Use:   "stats <edge-list>",
		Short: "Print node, edge, memory and degree statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats, // Defined in cmd_query.go
	}
	bfsCmd = &cobra.Command{
		Use:   "bfs <edge-list> <start>",
		Short: "Breadth-first traversal with hop levels",
		Args:  cobra.ExactArgs(2),
		RunE:  runBFS,
	}
	dfsCmd = &cobra.Command{
		Use:   "dfs <edge-list> <start>",
		Short: "Depth-first traversal in visit order",
		Args:  cobra.ExactArgs(2),
		RunE:  runDFS,
	}
	pathCmd = &cobra.Command{
		Use:   "path <edge-list> <origin> <destination>",
		Short: "Shortest directed path by hop count",
		Args:  cobra.ExactArgs(3),
		RunE:  runPath,
	}
	topKCmd = &cobra.Command{
		Use:   "topk <edge-list> <k>",
		Short: "Nodes with the largest out-degree",
		Args:  cobra.ExactArgs(2),
		RunE:  runTopK,
	}
	sampleCmd = &cobra.Command{
		Use:   "sample <edge-list> <k>",
		Short: "Distinct nodes drawn uniformly at random",
		Args:  cobra.ExactArgs(2),
		RunE:  runSample,
	}
	subgraphCmd = &cobra.Command{
		Use:   "subgraph <edge-list> <start>",
		Short: "Extract a bounded subgraph with its edges",
		Args:  cobra.ExactArgs(2),
		RunE:  runSubgraph,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	pf.BoolVar(&skipMalformed, "skip-malformed", false, "Skip unparseable edge lines instead of failing the load")

	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "", "Override the configured HTTP listen address")

	for _, c := range []*cobra.Command{statsCmd, bfsCmd, dfsCmd, pathCmd, topKCmd, sampleCmd, subgraphCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	}
	for _, c := range []*cobra.Command{bfsCmd, dfsCmd} {
		c.Flags().IntVarP(&maxDepth, "depth", "d", 0, "Maximum hops from start (default no limit)")
	}
	subgraphCmd.Flags().StringVarP(&subgraphMode, "mode", "m", string(engine.ModeBFS), "Node selection: bfs, topk, range, sample or path")
	subgraphCmd.Flags().IntVarP(&subgraphDepth, "depth", "d", 2, "Hop limit in bfs mode")
	subgraphCmd.Flags().IntVarP(&subgraphK, "count", "k", 50, "Node count in topk, range and sample modes")
	subgraphCmd.Flags().IntVar(&subgraphDest, "to", 0, "Destination in path mode")

	rootCmd.AddCommand(serveCmd, mcpCmd, statsCmd, bfsCmd, dfsCmd, pathCmd, topKCmd, sampleCmd, subgraphCmd)
}

// setup loads the configuration and installs the default logger. Logs go to
// stderr so stdout stays clean for results and the MCP stream.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if httpAddr != "" {
		cfg.Server.HTTPAddr = httpAddr
	}
	if cmd.Flags().Changed("skip-malformed") {
		cfg.Graph.SkipMalformed = skipMalformed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newEngine() *engine.Engine {
	opts := engine.DefaultOptions()
	opts.MaxSubgraphNodes = cfg.Graph.MaxSubgraphNodes
	opts.Logger = slog.Default()
	return engine.New(opts)
}
