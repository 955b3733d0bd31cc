package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by every CycleError.
var ErrCycle = errors.New("cycle detected")

// visitState is the per-node marker used during the depth-first sort.
type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// Graph is a directed graph over a dense arena of named nodes.
type Graph struct {
	// names holds each node's name at its index.
	names []string
	// index resolves a name to its node.
	index map[string]int
	// deps holds, per node, the nodes it depends on in insertion order.
	deps [][]int
	// edges deduplicates deps.
	edges map[[2]int]struct{}
}

// CycleError reports the node at which a cycle closed and the path that led
// back to it.
type CycleError struct {
	Node int
	Name string
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s involving node '%s'", ErrCycle, e.Name)
	}
	return fmt.Sprintf("%s involving node '%s': %s", ErrCycle, e.Name, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}
