package main

import (
	"fmt"

	"chai/internal/ast"
	"chai/internal/ir"
	"chai/internal/mono"
	"chai/internal/types"
	"chai/internal/typesvc"
)

// shellModule builds a module containing one signature-only ir.Function per
// top-level function declaration in units — no blocks, since lowering a
// function body to IR depends on the external type-checker this module
// never implements (spec.md §1/§6). It exists to give -dump-ir something
// real to print and to pass through the monomorphizer's module-level entry
// point. Generic parameters are carried over, but every function is
// bodyless, so the monomorphizer skips them all.
func shellModule(units []*ast.Unit) *ir.Module {
	mod := ir.NewModule()

	for _, unit := range units {
		for _, d := range unit.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok {
				continue
			}
			mod.AddFunction(shellFunction(fd))
		}
	}

	return mod
}

func shellFunction(fd *ast.FuncDecl) *ir.Function {
	id := ir.FunctionID{Kind: ir.FuncLowered, Decl: fd.Name}

	inputs := make([]types.Type, len(fd.Params))
	for i := range fd.Params {
		inputs[i] = &types.Named{Name: "unknown"}
	}

	var generic []ir.GenericParam
	if fd.Generic != nil {
		for i, p := range fd.Generic.Params {
			generic = append(generic, ir.GenericParam{
				ID:   types.GenericParamID{OwnerID: id.String(), Index: i},
				Name: p.Name,
			})
		}
	}

	return ir.NewFunction(id, fd.Name, fd.Range(), ir.LinkagePrivate, inputs, &types.Named{Name: "unknown"}, generic)
}

// runDumpIR builds the signature-only shell module for units, runs the
// monomorphizer over it (a no-op here since no shell function has a body or
// is generic-with-a-body), and prints its textual representation.
func runDumpIR(units []*ast.Unit, scope ast.DeclSpaceID) {
	mod := shellModule(units)
	mono.New(mod, typesvc.NewStandinProgram()).Run(scope)
	fmt.Println(mod.Repr())
}
