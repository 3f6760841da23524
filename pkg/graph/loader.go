package graph

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	maxLineBytes     = 1 << 20
	progressInterval = 1_000_000
	// Rough bytes per SNAP edge line, used to presize the edge buffer.
	bytesPerEdgeHint = 16
)

// LoadOptions controls edge-list parsing.
type LoadOptions struct {
	// SkipMalformed logs and skips lines that do not parse instead of failing
	// the whole load with a *FormatError.
	SkipMalformed bool

	// Logger receives progress and warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// Progress, if set, is called from the loading goroutine with the running
	// edge count every million edges.
	Progress func(edges int)
}

// LoadReport describes what a load read.
type LoadReport struct {
	Source        string        `json:"source"`
	Lines         int           `json:"lines"`
	Edges         int           `json:"edges"`
	CommentLines  int           `json:"comment_lines"`
	SkippedLines  int           `json:"skipped_lines"`
	ParseDuration time.Duration `json:"parse_duration"`
}

// LoadFile reads a SNAP-style edge list from path and builds a Graph.
// An unreadable file yields an *IOError.
func LoadFile(path string, opts LoadOptions) (*Graph, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{Source: path}, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	hint := 0
	if info, err := f.Stat(); err == nil {
		hint = int(info.Size() / bytesPerEdgeHint)
	}
	return load(path, f, hint, opts)
}

// Load reads an edge list from r and builds a Graph.
//
// Every non-blank line whose first non-whitespace byte is not '#' must hold
// exactly two whitespace-separated non-negative integers. An empty input
// yields a valid Graph with no nodes.
func Load(r io.Reader, opts LoadOptions) (*Graph, LoadReport, error) {
	return load("", r, 0, opts)
}

func load(source string, r io.Reader, hint int, opts LoadOptions) (*Graph, LoadReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	report := LoadReport{Source: source}
	start := time.Now()

	b := NewBuilder(hint)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		report.Lines++
		line := sc.Bytes()

		trimmed := bytes.TrimLeft(line, " \t\r\v\f")
		if len(trimmed) == 0 || trimmed[0] == '#' {
			report.CommentLines++
			continue
		}

		origin, destination, reason := parseEdge(trimmed)
		if reason != "" {
			ferr := &FormatError{Line: report.Lines, Text: string(line), Reason: reason}
			if !opts.SkipMalformed {
				return nil, report, ferr
			}
			report.SkippedLines++
			logger.Warn("Skipping malformed edge line", "source", source, "line", report.Lines, "reason", reason)
			continue
		}

		// parseEdge bounds both ids by MaxNodeID, so AddEdge cannot fail.
		_ = b.AddEdge(int(origin), int(destination))
		report.Edges++
		if report.Edges%progressInterval == 0 {
			logger.Info("Loading edge list", "source", source, "edges", report.Edges)
			if opts.Progress != nil {
				opts.Progress(report.Edges)
			}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, report, &FormatError{Line: report.Lines + 1, Reason: "line too long"}
		}
		return nil, report, &IOError{Path: source, Err: err}
	}
	report.ParseDuration = time.Since(start)

	return b.Build(), report, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

// parseEdge parses "origin destination" from a line with no leading
// whitespace. A non-empty reason means the line is malformed.
func parseEdge(line []byte) (origin, destination uint64, reason string) {
	origin, rest, reason := parseID(line)
	if reason != "" {
		return 0, 0, reason
	}
	if len(rest) == 0 || !isSpace(rest[0]) {
		return 0, 0, "expected two whitespace-separated node ids"
	}
	rest = bytes.TrimLeft(rest, " \t\r\v\f")
	destination, rest, reason = parseID(rest)
	if reason != "" {
		return 0, 0, reason
	}
	if len(bytes.TrimLeft(rest, " \t\r\v\f")) != 0 {
		return 0, 0, "unexpected trailing data"
	}
	return origin, destination, ""
}

func parseID(s []byte) (id uint64, rest []byte, reason string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		id = id*10 + uint64(s[i]-'0')
		if id > MaxNodeID {
			return 0, nil, "node id too large"
		}
		i++
	}
	if i == 0 {
		if len(s) == 0 {
			return 0, nil, "expected two whitespace-separated node ids"
		}
		return 0, nil, "expected non-negative integer node id"
	}
	return id, s[i:], ""
}
