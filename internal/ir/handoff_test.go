package ir

import (
	"testing"

	llirir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	llirtypes "github.com/llir/llvm/ir/types"

	"chai/internal/types"
)

func TestToLLVMDeclLowersSignature(t *testing.T) {
	intType := &types.Named{Name: "Int"}
	f := NewFunction(testFunctionID("add"), "add", noRange(), LinkagePublic, []types.Type{intType, intType}, intType, nil)

	mod := &llirir.Module{}
	fn := ToLLVMDecl(mod, f)

	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 lowered params, got %d", len(fn.Params))
	}
	if fn.Sig.RetType != llirtypes.I64 {
		t.Fatalf("expected Int to lower to i64, got %s", fn.Sig.RetType)
	}
	if fn.Linkage != enum.LinkageExternal {
		t.Fatalf("expected a public function to lower to external linkage")
	}
}

func TestToLLVMDeclRejectsGenericFunction(t *testing.T) {
	paramID := types.GenericParamID{OwnerID: "f", Index: 0}
	param := &types.Param{ID: paramID, Name: "T"}
	f := NewFunction(testFunctionID("f"), "f", noRange(), LinkagePublic, []types.Type{param}, param,
		[]GenericParam{{ID: paramID, Name: "T"}})

	mod := &llirir.Module{}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected ICE panic lowering a generic function")
		}
	}()
	ToLLVMDecl(mod, f)
}

func TestLowerTypeOpaqueFallback(t *testing.T) {
	named := &types.Named{Name: "Point"}
	if got := lowerType(named); !got.Equal(llirtypes.NewPointer(llirtypes.I8)) {
		t.Fatalf("expected an unrecognized named type to lower to an opaque i8 pointer, got %s", got)
	}
}
