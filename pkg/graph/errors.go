package graph

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched (via errors.Is) by every error reporting a node id
// outside [0, NumNodes).
var ErrOutOfRange = errors.New("node id out of range")

// OutOfRangeError reports an invalid node id together with the size of the
// graph it was checked against.
type OutOfRangeError struct {
	Node     int
	NumNodes int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("node %d out of range [0, %d)", e.Node, e.NumNodes)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// FormatError reports an edge-list line that does not parse as
// "origin destination". Line is 1-based.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// IOError wraps a failure to open or read the edge-list source.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read edge list: %v", e.Err)
	}
	return fmt.Sprintf("read edge list %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CheckNode returns an *OutOfRangeError when node is not a valid id for a
// graph with numNodes nodes.
func CheckNode(node, numNodes int) error {
	if node < 0 || node >= numNodes {
		return &OutOfRangeError{Node: node, NumNodes: numNodes}
	}
	return nil
}
