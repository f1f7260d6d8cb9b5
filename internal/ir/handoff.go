package ir

import (
	llirir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	llirtypes "github.com/llir/llvm/ir/types"

	"chai/internal/diag"
	"chai/internal/types"
)

// ToLLVMDecl lowers a monomorphic function's signature into an *llirir.Func
// declaration and adds it to m, per SPEC_FULL's domain-stack note: this is
// the one point of contact this module has with the external code
// generator. No instruction bodies are emitted — only the parameter/output
// shape and linkage cross the boundary, so the generator can pick up from
// here.
func ToLLVMDecl(m *llirir.Module, f *Function) *llirir.Func {
	if len(f.Generic) > 0 {
		diag.ICE("ToLLVMDecl called on generic function %s; only monomorphic functions may cross the LLVM handoff", f.ID)
	}

	params := make([]*llirir.Param, len(f.Inputs))
	for i, t := range f.Inputs {
		params[i] = llirir.NewParam("", lowerType(t))
	}

	fn := m.NewFunc(f.Name, lowerType(f.Output), params...)
	fn.Linkage = lowerLinkage(f.Linkage)
	return fn
}

func lowerLinkage(l Linkage) enum.Linkage {
	switch {
	case l&LinkageExternal != 0:
		return enum.LinkageExternal
	case l&LinkagePublic != 0:
		return enum.LinkageExternal
	default:
		return enum.LinkagePrivate
	}
}

// lowerType maps a canonical types.Type to the LLVM type used at the
// signature boundary. Only arity and pointer-vs-scalar shape need to
// survive the handoff — the external generator re-derives full layout from
// its own type table — so every nominal/aggregate type lowers to an opaque
// byte pointer and Chai's handful of built-in scalar names lower to their
// direct LLVM equivalents.
func lowerType(t types.Type) llirtypes.Type {
	switch v := t.(type) {
	case *types.Named:
		switch v.Name {
		case "Int":
			return llirtypes.I64
		case "Bool":
			return llirtypes.I1
		case "Float":
			return llirtypes.Double
		case "Unit":
			return llirtypes.Void
		default:
			return llirtypes.NewPointer(llirtypes.I8)
		}
	case *types.Inout:
		return llirtypes.NewPointer(lowerType(v.Elem))
	case *types.Function:
		params := make([]llirtypes.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = lowerType(p)
		}
		return llirtypes.NewPointer(llirtypes.NewFunc(lowerType(v.Output), params...))
	default:
		// Tuple, Specialized, Param: opaque pointer; their layout is the
		// external type-checker/generator's concern, not this boundary's.
		return llirtypes.NewPointer(llirtypes.I8)
	}
}
