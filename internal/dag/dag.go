package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		edges: make(map[[2]int]struct{}),
	}
}

// AddNode adds a node with the given name and returns its index. If the name
// is already present, its existing index is returned.
func (g *Graph) AddNode(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.names)
	g.names = append(g.names, name)
	g.deps = append(g.deps, nil)
	g.index[name] = i
	return i
}

// Index returns the index of a named node.
func (g *Graph) Index(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Name returns the name of the node at index i.
func (g *Graph) Name(i int) string {
	return g.names[i]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.names)
}

// AddEdge records that node `to` depends on node `from`, so `from` must be
// ordered first. Repeated edges are ignored. A self edge is accepted and
// reported as a cycle by TopoSort.
func (g *Graph) AddEdge(from, to int) error {
	if from < 0 || from >= len(g.names) {
		return fmt.Errorf("source node not found: %d", from)
	}
	if to < 0 || to >= len(g.names) {
		return fmt.Errorf("destination node not found: %d", to)
	}
	e := [2]int{from, to}
	if _, ok := g.edges[e]; ok {
		return nil
	}
	g.edges[e] = struct{}{}
	g.deps[to] = append(g.deps[to], from)
	return nil
}

// Dependencies returns the indices node i depends on, in insertion order.
func (g *Graph) Dependencies(i int) []int {
	out := make([]int, len(g.deps[i]))
	copy(out, g.deps[i])
	return out
}

// TopoSort returns node indices so that every node comes after all of its
// dependencies. Traversal starts from roots in the given order, or from every
// node in index order when no roots are given; nodes unreachable from the
// roots are left out. A cycle aborts the sort with a *CycleError and no
// partial order.
func (g *Graph) TopoSort(roots ...int) ([]int, error) {
	if len(roots) == 0 {
		roots = make([]int, len(g.names))
		for i := range roots {
			roots[i] = i
		}
	}

	state := make([]visitState, len(g.names))
	order := make([]int, 0, len(g.names))
	var stack []int

	var visit func(n int) error
	visit = func(n int) error {
		switch state[n] {
		case done:
			return nil
		case inProgress:
			return g.cycleAt(n, stack)
		}

		state[n] = inProgress
		stack = append(stack, n)
		for _, dep := range g.deps[n] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		order = append(order, n)
		return nil
	}

	for _, r := range roots {
		if r < 0 || r >= len(g.names) {
			return nil, fmt.Errorf("root node not found: %d", r)
		}
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// cycleAt builds the error for a cycle closing at node n, given the current
// traversal stack.
func (g *Graph) cycleAt(n int, stack []int) *CycleError {
	start := 0
	for i, s := range stack {
		if s == n {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		path = append(path, g.names[s])
	}
	path = append(path, g.names[n])
	return &CycleError{Node: n, Name: g.names[n], Path: path}
}
