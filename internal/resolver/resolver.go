package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/genlogcfg/internal/catalog"
	"github.com/vk/genlogcfg/internal/ctxlog"
	"github.com/vk/genlogcfg/internal/formula"
	"github.com/vk/genlogcfg/internal/param"
)

// Resolver owns one resolution pass. It is not safe for concurrent use.
type Resolver struct {
	ecuID string

	// params is the arena; an index into it is stable for the pass.
	params []*param.Parameter
	// index resolves `id:unit` to an arena index.
	index map[string]int
	// visited holds arena indices already taken off the worklist.
	visited map[int]struct{}
	// failed holds the diagnostic of every dropped parameter.
	failed map[int]*ParamError
	diags  []error
}

// New creates a resolver. ecuID may be empty when no extended parameters are
// requested.
func New(ecuID string) *Resolver {
	return &Resolver{
		ecuID:   ecuID,
		index:   make(map[string]int),
		visited: make(map[int]struct{}),
		failed:  make(map[int]*ParamError),
	}
}

// RegisterSelected adds an explicitly selected parameter, or un-hides it if
// it is already known.
func (r *Resolver) RegisterSelected(id, unit string) *param.Parameter {
	idx, _ := r.register(id, unit)
	p := r.params[idx]
	p.Hidden = false
	return p
}

// Require registers a parameter needed by something other than the
// selection, such as a log trigger. It stays hidden unless also selected.
func (r *Resolver) Require(id, unit string) *param.Parameter {
	idx, _ := r.register(id, unit)
	return r.params[idx]
}

// register adds a hidden parameter for id and unit unless the key is known.
func (r *Resolver) register(id, unit string) (int, bool) {
	key := param.NewKey(id, unit).String()
	if idx, ok := r.index[key]; ok {
		return idx, false
	}
	idx := len(r.params)
	r.params = append(r.params, param.New(id, unit))
	r.index[key] = idx
	return idx, true
}

// Len returns the number of known parameters, dropped ones included.
func (r *Resolver) Len() int {
	return len(r.params)
}

// Lookup returns the parameter registered under key.
func (r *Resolver) Lookup(key string) (*param.Parameter, bool) {
	idx, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.params[idx], true
}

// Keys returns every known key in table order.
func (r *Resolver) Keys() []string {
	order := r.tableOrder()
	keys := make([]string, len(order))
	for i, idx := range order {
		keys[i] = r.params[idx].Key().String()
	}
	return keys
}

// Diagnostics returns every per-parameter diagnostic recorded so far.
func (r *Resolver) Diagnostics() []error {
	out := make([]error, len(r.diags))
	copy(out, r.diags)
	return out
}

// tableOrder returns arena indices sorted regular first, then extended, then
// by key.
func (r *Resolver) tableOrder() []int {
	order := make([]int, len(r.params))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return r.params[order[a]].Key().Less(r.params[order[b]].Key())
	})
	return order
}

// ResolveAll populates every known parameter from cat and registers the
// parameters they depend on, repeating until the set is closed. It returns
// the diagnostics recorded during this call.
func (r *Resolver) ResolveAll(ctx context.Context, cat catalog.Catalog) []error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("ResolveAll: Starting dependency discovery.", "known", len(r.params))
	before := len(r.diags)

	queue := r.tableOrder()
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if _, seen := r.visited[idx]; seen {
			continue
		}
		r.visited[idx] = struct{}{}

		discovered := r.resolveOne(ctx, cat, idx)
		queue = append(queue, discovered...)
	}
	logger.Debug("ResolveAll: Discovery complete.", "known", len(r.params))

	r.dropBrokenDependents(ctx)

	diags := r.diags[before:]
	for _, d := range diags {
		logger.Debug("Parameter skipped.", "error", d)
	}
	logger.Debug("ResolveAll: Finished.", "diagnostics", len(diags))
	return append([]error(nil), diags...)
}

// fail records a diagnostic for the parameter at idx and drops it.
func (r *Resolver) fail(idx int, err error, format string, args ...any) {
	pe := &ParamError{
		Key:    r.params[idx].Key().String(),
		Err:    err,
		Reason: fmt.Sprintf(format, args...),
	}
	r.failed[idx] = pe
	r.diags = append(r.diags, pe)
}

// resolveOne populates one parameter and returns the arena indices of the
// parameters it caused to be registered.
func (r *Resolver) resolveOne(ctx context.Context, cat catalog.Catalog, idx int) []int {
	logger := ctxlog.FromContext(ctx)
	p := r.params[idx]
	logger.Debug("Resolving parameter.", "key", p.Key().String(), "kind", p.Kind().String())

	def, ok := cat.Lookup(p.ID)
	if !ok {
		if s := catalog.Suggest(cat, p.ID); s != "" {
			r.fail(idx, ErrParameterNotFound, "%s: %s (did you mean %s?)", ErrParameterNotFound, p.ID, s)
		} else {
			r.fail(idx, ErrParameterNotFound, "%s: %s", ErrParameterNotFound, p.ID)
		}
		return nil
	}
	conv, ok := def.Conversion(p.Units)
	if !ok {
		r.fail(idx, ErrUnitNotFound, "%s for parameter %s: %s", ErrUnitNotFound, p.ID, p.Units)
		return nil
	}

	expr := formula.Compile(conv.Expr)
	if err := expr.Validate(); err != nil {
		r.fail(idx, err, "%v", err)
		return nil
	}

	var discovered []int
	enqueue := func(id, unit string) {
		if depIdx, created := r.register(id, unit); created {
			logger.Debug("Registered dependency.", "from", p.Key().String(), "key", r.params[depIdx].Key().String())
			discovered = append(discovered, depIdx)
		}
	}

	switch p.Kind() {
	case param.Regular:
		if def.Address != nil {
			p.Address = def.Address.Value
			p.DataBits = def.Address.Bits()
		}
		for _, depID := range def.Depends {
			var unit string
			switch n := catalog.ConversionCount(cat, depID); {
			case n == 0:
				cause := ErrUnitNotFound
				if _, known := cat.Lookup(depID); !known {
					cause = ErrParameterNotFound
				}
				r.fail(idx, cause, "dependency not found for %s: %s", p.ID, depID)
				return discovered
			case n == 1:
				depDef, _ := cat.Lookup(depID)
				unit = depDef.Conversions[0].Units
				expr.References.Set(depID, unit)
			default:
				u, explicit := expr.References.Unit(depID)
				if !explicit {
					logger.Debug("Dependency has several units and no explicit reference, not resolved here.", "from", p.ID, "dependency", depID)
					continue
				}
				unit = u
			}
			enqueue(depID, unit)
		}

	case param.Extended:
		if r.ecuID == "" {
			r.fail(idx, ErrMissingEcuID, "%s - specify using --ecu-id: %s", ErrMissingEcuID, p.ID)
			return nil
		}
		ecu, ok := def.ECU(r.ecuID)
		if !ok {
			r.fail(idx, ErrEcuDefinitionNotFound, "%s for ECU id %s: %s", ErrEcuDefinitionNotFound, r.ecuID, p.ID)
			return nil
		}
		if ecu.Address != nil {
			p.Address = ecu.Address.Value
			if conv.IsFloat() {
				p.IsFloat = true
			} else {
				p.DataBits = ecu.Address.Bits()
			}
		}
	}

	for _, refID := range sortedIDs(expr.References) {
		unit, ok := expr.References.Unit(refID)
		if !ok {
			if catalog.ConversionCount(cat, refID) != 1 {
				logger.Debug("Reference unit cannot be inferred.", "from", p.ID, "reference", refID)
				continue
			}
			refDef, _ := cat.Lookup(refID)
			unit = refDef.Conversions[0].Units
			expr.References.Set(refID, unit)
		}
		enqueue(refID, unit)
	}

	p.Name = def.DisplayName()
	p.Expression = expr
	return discovered
}

// dropBrokenDependents drops every parameter that refers to a dropped one,
// until no more are dropped.
func (r *Resolver) dropBrokenDependents(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for changed := true; changed; {
		changed = false
		for _, idx := range r.tableOrder() {
			p := r.params[idx]
			if _, dropped := r.failed[idx]; dropped || p.Expression == nil {
				continue
			}
			for _, refID := range sortedIDs(p.Expression.References) {
				unit, _ := p.Expression.References.Unit(refID)
				if !r.referenceDropped(refID, unit) {
					continue
				}
				logger.Debug("Dropping parameter with a dropped dependency.", "key", p.Key().String(), "dependency", refID)
				r.fail(idx, ErrDependencyUnresolved, "%s for %s: %s", ErrDependencyUnresolved, p.ID, refID)
				changed = true
				break
			}
		}
	}
}

// referenceDropped reports whether a reference points at dropped parameters
// only. References to parameters never registered are not considered dropped.
func (r *Resolver) referenceDropped(id, unit string) bool {
	if unit != "" {
		idx, ok := r.index[param.NewKey(id, unit).String()]
		if !ok {
			return false
		}
		_, dropped := r.failed[idx]
		return dropped
	}
	seen := false
	for idx, p := range r.params {
		if p.ID != id {
			continue
		}
		if _, dropped := r.failed[idx]; !dropped {
			return false
		}
		seen = true
	}
	return seen
}

// sortedIDs returns the referenced ids in lexical order.
func sortedIDs(refs formula.References) []string {
	ids := make([]string, 0, len(refs))
	for id := range refs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
