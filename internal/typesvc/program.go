// Package typesvc is the stand-in for the external type-checker spec.md
// §1 excludes from this module's scope. It implements only the three call
// shapes spec.md §6 grants internal/mono a contract with — specialize,
// canonical, conformance — as a real, from-scratch Go interface plus a
// deterministic implementation, since no teacher generation has a
// generics/trait-conformance system to ground one on (the bootstrap-stage
// `typing`/`types` packages predate generics entirely).
package typesvc

import (
	"chai/internal/ast"
	"chai/internal/ir"
	"chai/internal/types"
)

// Program is the external collaborator contract internal/mono depends on.
type Program interface {
	// SpecializeType substitutes every types.Param appearing in t with the
	// concrete argument spec assigns to it, per spec.md §6
	// "specialize(T, for: S, in: scope) -> T'".
	SpecializeType(t types.Type, spec types.Specialization, scope ast.DeclSpaceID) types.Type

	// SpecializeMap composes a nested specialization (keyed by a callee's
	// own generic parameters, whose argument types may themselves mention
	// the caller's generic parameters) through the specialization in force
	// at the callee's scope of use, per spec.md §4.F step 6.
	SpecializeMap(inner, outer types.Specialization, scope ast.DeclSpaceID) types.Specialization

	// Canonical produces a canonical representative of t, per spec.md §6
	// "canonical(T, in: scope) -> T''". Monomorphized functions are keyed
	// by the canonical form of their specialization so that two
	// structurally-equal specializations reuse the same function.
	Canonical(t types.Type, scope ast.DeclSpaceID) types.Type

	// Conformance locates the implementation table mapping trait
	// requirements to concrete function ids, per spec.md §6
	// "conformance(of: T, to: Trait, exposedTo: scope) -> Conformance".
	Conformance(of types.Type, trait types.Type, scope ast.DeclSpaceID) (Conformance, bool)
}

// Conformance is the implementation table spec.md §4.F step 7 resolves a
// trait-requirement call through.
type Conformance struct {
	Model        types.Type
	Trait        types.Type
	Requirements map[string]ir.FunctionID
}

// -----------------------------------------------------------------------------

// StandinProgram is a real, deterministic Program: substitution and
// canonicalization are structural recursions over types.Type; conformance
// is a lookup into a table populated by RegisterConformance. Nothing in
// cmd/chaic registers conformances, so the driver's table stays empty.
type StandinProgram struct {
	conformances map[conformanceKey]Conformance
}

type conformanceKey struct {
	model string
	trait string
}

// NewStandinProgram creates an empty StandinProgram.
func NewStandinProgram() *StandinProgram {
	return &StandinProgram{conformances: make(map[conformanceKey]Conformance)}
}

// RegisterConformance records that c.Model conforms to c.Trait via c's
// requirement table.
func (p *StandinProgram) RegisterConformance(c Conformance) {
	p.conformances[conformanceKey{model: c.Model.Repr(), trait: c.Trait.Repr()}] = c
}

func (p *StandinProgram) Conformance(of types.Type, trait types.Type, _ ast.DeclSpaceID) (Conformance, bool) {
	c, ok := p.conformances[conformanceKey{model: of.Repr(), trait: trait.Repr()}]
	return c, ok
}

func (p *StandinProgram) SpecializeType(t types.Type, spec types.Specialization, _ ast.DeclSpaceID) types.Type {
	return substitute(t, spec)
}

func (p *StandinProgram) SpecializeMap(inner, outer types.Specialization, scope ast.DeclSpaceID) types.Specialization {
	if len(inner) == 0 {
		return inner
	}

	out := make(types.Specialization, len(inner))
	for id, arg := range inner {
		if arg.Type != nil {
			out[id] = types.Arg{Type: p.SpecializeType(arg.Type, outer, scope)}
		} else {
			out[id] = arg
		}
	}
	return out
}

func (p *StandinProgram) Canonical(t types.Type, _ ast.DeclSpaceID) types.Type {
	return canonical(t)
}

// substitute replaces every types.Param reachable in t with its argument
// under spec, leaving params spec doesn't cover (a partially-applied
// specialization) untouched.
func substitute(t types.Type, spec types.Specialization) types.Type {
	switch v := t.(type) {
	case *types.Param:
		if arg, ok := spec[v.ID]; ok && arg.Type != nil {
			return arg.Type
		}
		return v
	case *types.Specialized:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = substitute(a, spec)
		}
		return &types.Specialized{Base: v.Base, Args: args}
	case *types.Tuple:
		elems := make([]types.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = substitute(e, spec)
		}
		return &types.Tuple{Elems: elems}
	case *types.Function:
		params := make([]types.Type, len(v.Params))
		for i, pt := range v.Params {
			params[i] = substitute(pt, spec)
		}
		return &types.Function{Params: params, Output: substitute(v.Output, spec), Volatile: v.Volatile}
	case *types.Inout:
		return &types.Inout{Elem: substitute(v.Elem, spec)}
	default:
		// *types.Named and anything else already concrete: nothing to do.
		return t
	}
}

// canonical rebuilds t structurally so that two types reached through
// different substitution paths but structurally equal produce the same
// Repr(), which is what Specialization.Canonical() keys the
// monomorphizer's memo table on.
func canonical(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.Specialized:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = canonical(a)
		}
		return &types.Specialized{Base: v.Base, Args: args}
	case *types.Tuple:
		elems := make([]types.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = canonical(e)
		}
		return &types.Tuple{Elems: elems}
	case *types.Function:
		params := make([]types.Type, len(v.Params))
		for i, pt := range v.Params {
			params[i] = canonical(pt)
		}
		return &types.Function{Params: params, Output: canonical(v.Output), Volatile: v.Volatile}
	case *types.Inout:
		return &types.Inout{Elem: canonical(v.Elem)}
	default:
		return t
	}
}
