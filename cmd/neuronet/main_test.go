package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sanonone/neuronet/pkg/engine"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeEdges(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("# sample\n0 1\n1 2\n2 3\n1 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStatsCommandJSON(t *testing.T) {
	out, err := runCLI(t, "stats", writeEdges(t), "--json")
	if err != nil {
		t.Fatal(err)
	}
	var st engine.Stats
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if st.Nodes != 4 || st.Edges != 4 {
		t.Errorf("stats = %+v", st)
	}
}

func TestPathCommand(t *testing.T) {
	edges := writeEdges(t)

	out, err := runCLI(t, "path", edges, "0", "3", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var path []int
	if err := json.Unmarshal([]byte(out), &path); err != nil || !slices.Equal(path, []int{0, 1, 3}) {
		t.Errorf("path = %s (%v)", out, err)
	}

	out, err = runCLI(t, "path", edges, "3", "0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no path") {
		t.Errorf("unreachable output = %q", out)
	}
}

func TestQueryCommandErrors(t *testing.T) {
	edges := writeEdges(t)
	if _, err := runCLI(t, "bfs", edges, "99"); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("out of range start: err = %v", err)
	}
	if _, err := runCLI(t, "bfs", edges, "zero"); err == nil {
		t.Error("non-integer start accepted")
	}
	if _, err := runCLI(t, "stats", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("missing file accepted")
	}
}
