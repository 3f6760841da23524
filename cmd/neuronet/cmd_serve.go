package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	nnmcp "github.com/sanonone/neuronet/internal/mcp"
	"github.com/sanonone/neuronet/internal/server"
	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// runServe starts the HTTP API and, when configured, preloads a graph
// concurrently. A failed preload stops the server.
func runServe(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	srv := server.NewServer(eng, server.Options{
		HTTPAddr:      cfg.Server.HTTPAddr,
		AuthToken:     cfg.Server.AuthToken,
		SkipMalformed: cfg.Graph.SkipMalformed,
	})

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(srv.Run)

	if cfg.Graph.Preload != "" {
		g.Go(func() error {
			_, err := eng.Load(cfg.Graph.Preload, graph.LoadOptions{SkipMalformed: cfg.Graph.SkipMalformed})
			return err
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	slog.Info("Server stopped")
	return err
}

// runMCP serves MCP tools over stdio, loading the optional edge list first.
func runMCP(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	path := cfg.Graph.Preload
	if len(args) == 1 {
		path = args[0]
	}
	if path != "" {
		if _, err := eng.Load(path, graph.LoadOptions{SkipMalformed: cfg.Graph.SkipMalformed}); err != nil {
			return err
		}
	}
	slog.Info("Serving MCP on stdio")
	return nnmcp.NewMCPServer(eng).Run(cmd.Context(), &mcp.StdioTransport{})
}
