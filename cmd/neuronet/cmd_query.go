package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/sanonone/neuronet/pkg/engine"
	"github.com/sanonone/neuronet/pkg/graph"
	"github.com/sanonone/neuronet/pkg/query"
	"github.com/spf13/cobra"
)

// loadLocal builds an engine around the edge list at path.
func loadLocal(path string) (*engine.Engine, error) {
	eng := newEngine()
	if _, err := eng.Load(path, graph.LoadOptions{SkipMalformed: cfg.Graph.SkipMalformed}); err != nil {
		return nil, err
	}
	return eng, nil
}

// intArgs parses positional node ids and counts.
func intArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not an integer", a)
		}
		out[i] = n
	}
	return out, nil
}

// emit prints v as indented JSON with --json, otherwise through text.
func emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	st, err := eng.Stats()
	if err != nil {
		return err
	}
	return emit(cmd, st, func(w io.Writer) {
		fmt.Fprintf(w, "source:        %s\n", st.Source)
		fmt.Fprintf(w, "nodes:         %d\n", st.Nodes)
		fmt.Fprintf(w, "edges:         %d\n", st.Edges)
		fmt.Fprintf(w, "memory:        %.2f MB\n", st.MemoryMB)
		fmt.Fprintf(w, "parse time:    %.3fs\n", st.ParseSeconds)
		fmt.Fprintf(w, "build time:    %.3fs\n", st.BuildSeconds)
		fmt.Fprintf(w, "skipped lines: %d\n", st.SkippedLines)
		fmt.Fprintf(w, "density:       %.3g\n", st.Density)
		fmt.Fprintf(w, "max degree:    node %d (%d)\n", st.MaxDegreeNode, st.MaxDegree)
		fmt.Fprintf(w, "out-degree:    mean %.2f, stddev %.2f, median %.0f, p99 %.0f\n",
			st.Degrees.Out.Mean, st.Degrees.Out.StdDev, st.Degrees.Out.Median, st.Degrees.Out.P99)
		fmt.Fprintf(w, "in-degree:     mean %.2f, stddev %.2f, median %.0f, p99 %.0f, max %d\n",
			st.Degrees.In.Mean, st.Degrees.In.StdDev, st.Degrees.In.Median, st.Degrees.In.P99, st.Degrees.In.Max)
	})
}

func runBFS(cmd *cobra.Command, args []string) error {
	ids, err := intArgs(args[1:])
	if err != nil {
		return err
	}
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	visits, err := eng.BFS(ids[0], depthFlag(cmd))
	if err != nil {
		return err
	}
	return emit(cmd, visits, func(w io.Writer) {
		for _, v := range visits {
			fmt.Fprintf(w, "%d\t%d\n", v.Node, v.Level)
		}
	})
}

func runDFS(cmd *cobra.Command, args []string) error {
	ids, err := intArgs(args[1:])
	if err != nil {
		return err
	}
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	order, err := eng.DFS(ids[0], depthFlag(cmd))
	if err != nil {
		return err
	}
	return emit(cmd, order, func(w io.Writer) {
		for _, n := range order {
			fmt.Fprintln(w, n)
		}
	})
}

func runPath(cmd *cobra.Command, args []string) error {
	ids, err := intArgs(args[1:])
	if err != nil {
		return err
	}
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	path, err := eng.ShortestPath(ids[0], ids[1])
	if err != nil {
		return err
	}
	return emit(cmd, path, func(w io.Writer) {
		if len(path) == 0 {
			fmt.Fprintf(w, "no path from %d to %d\n", ids[0], ids[1])
			return
		}
		for i, n := range path {
			if i > 0 {
				fmt.Fprint(w, " -> ")
			}
			fmt.Fprint(w, n)
		}
		fmt.Fprintf(w, "\n(%d hops)\n", len(path)-1)
	})
}

func runTopK(cmd *cobra.Command, args []string) error {
	ids, err := intArgs(args[1:])
	if err != nil {
		return err
	}
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	ranked, err := eng.TopK(ids[0])
	if err != nil {
		return err
	}
	return emit(cmd, ranked, func(w io.Writer) {
		for i, nd := range ranked {
			fmt.Fprintf(w, "%d.\tnode %d\tdegree %d\n", i+1, nd.Node, nd.Degree)
		}
	})
}

func runSample(cmd *cobra.Command, args []string) error {
	ids, err := intArgs(args[1:])
	if err != nil {
		return err
	}
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	nodes, err := eng.RandomSample(ids[0])
	if err != nil {
		return err
	}
	return emit(cmd, nodes, func(w io.Writer) {
		for _, n := range nodes {
			fmt.Fprintln(w, n)
		}
	})
}

func runSubgraph(cmd *cobra.Command, args []string) error {
	ids, err := intArgs(args[1:])
	if err != nil {
		return err
	}
	eng, err := loadLocal(args[0])
	if err != nil {
		return err
	}
	view, err := eng.Subgraph(engine.SubgraphRequest{
		Mode:        engine.SubgraphMode(subgraphMode),
		Start:       ids[0],
		Depth:       subgraphDepth,
		K:           subgraphK,
		Destination: subgraphDest,
	})
	if err != nil {
		return err
	}
	return emit(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "%d nodes, %d edges (%s)\n", len(view.Nodes), len(view.Edges), view.Mode)
		for _, n := range view.Nodes {
			fmt.Fprintf(w, "node %d\tout %d\tin %d\n", n.Node, n.OutDegree, n.InDegree)
		}
		for _, e := range view.Edges {
			fmt.Fprintf(w, "%d -> %d\n", e.Origin, e.Destination)
		}
	})
}

// depthFlag returns --depth, or no limit when the flag was not given.
func depthFlag(cmd *cobra.Command) int {
	if !cmd.Flags().Changed("depth") {
		return query.NoDepthLimit
	}
	return maxDepth
}
