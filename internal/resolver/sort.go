package resolver

import (
	"fmt"

	"github.com/vk/genlogcfg/internal/dag"
	"github.com/vk/genlogcfg/internal/param"
)

// live returns the arena indices of resolved, non-dropped parameters in
// table order.
func (r *Resolver) live() []int {
	var out []int
	for _, idx := range r.tableOrder() {
		if _, dropped := r.failed[idx]; dropped {
			continue
		}
		if !r.params[idx].Resolved() {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// TopologicalSort returns the keys of every resolved parameter so that each
// parameter follows all parameters its formula refers to. A cycle returns an
// error matching ErrCyclicDependency and no keys.
func (r *Resolver) TopologicalSort() ([]string, error) {
	live := r.live()

	g := dag.New()
	members := make(map[int][]int)
	for _, idx := range live {
		node := g.AddNode(r.params[idx].ID)
		members[node] = append(members[node], idx)
	}

	for _, idx := range live {
		p := r.params[idx]
		node, _ := g.Index(p.ID)
		for _, refID := range sortedIDs(p.Expression.References) {
			dep, ok := g.Index(refID)
			if !ok {
				continue
			}
			if err := g.AddEdge(dep, node); err != nil {
				return nil, fmt.Errorf("failed to link %s to %s: %w", p.ID, refID, err)
			}
		}
	}

	order, err := g.TopoSort()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCyclicDependency, err)
	}

	keys := make([]string, 0, len(live))
	for _, node := range order {
		for _, idx := range members[node] {
			keys = append(keys, r.params[idx].Key().String())
		}
	}
	return keys, nil
}

// Ordered returns the parameters in TopologicalSort order.
func (r *Resolver) Ordered() ([]*param.Parameter, error) {
	keys, err := r.TopologicalSort()
	if err != nil {
		return nil, err
	}
	out := make([]*param.Parameter, len(keys))
	for i, k := range keys {
		out[i] = r.params[r.index[k]]
	}
	return out, nil
}
