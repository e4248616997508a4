// Package types holds the static type model shared between the typed
// expression tree (internal/exprtree), the IR (internal/ir) and the
// descriptor model (internal/descriptors). It deliberately carries no
// type-checking logic of its own — the frontend is responsible for
// assigning a Type to every node before the tree reaches the lowering
// pass; this package only gives that assignment a concrete shape.
package types

import "fmt"

// Type is implemented by every static type a Variable or expression node
// can carry.
type Type interface {
	String() string
	isType()
}

// IntType is a fixed-width signed or unsigned integer.
type IntType struct {
	Bits     int
	Unsigned bool
}

// BoolType is the boolean type.
type BoolType struct{}

// StringType is the string type.
type StringType struct{}

// AnyType stands in for a type the frontend could not narrow further;
// the pass never inspects it, only propagates it.
type AnyType struct{}

// VoidType marks an expression with no value (a New with a void
// initializer is never produced, but method calls to void methods are).
type VoidType struct{}

// ObjectType names a user/service-level class or struct type.
type ObjectType struct {
	Name string
}

// ArrayType is a single-dimensional array of Elem.
type ArrayType struct {
	Elem Type
}

// SymbolType marks a lambda parameter as a handle to another vertex,
// not a value the lowering pass should treat as ordinary data. It
// carries no fields — its entire meaning is "I am the marker interface".
type SymbolType struct{}

func (*IntType) isType()    {}
func (*BoolType) isType()   {}
func (*StringType) isType() {}
func (*AnyType) isType()    {}
func (*VoidType) isType()   {}
func (*ObjectType) isType() {}
func (*ArrayType) isType()  {}
func (*SymbolType) isType() {}

func (t *IntType) String() string {
	if t.Unsigned {
		return fmt.Sprintf("UInt%d", t.Bits)
	}
	return fmt.Sprintf("Int%d", t.Bits)
}
func (*BoolType) String() string   { return "Bool" }
func (*StringType) String() string { return "String" }
func (*AnyType) String() string    { return "Any" }
func (*VoidType) String() string   { return "Void" }
func (t *ObjectType) String() string { return t.Name }
func (t *ArrayType) String() string  { return t.Elem.String() + "[]" }
func (*SymbolType) String() string   { return "Symbol" }

// IsSymbol reports whether t is the Symbol marker type, the test the
// vertex-skipping heuristic runs on a lambda's first parameter.
func IsSymbol(t Type) bool {
	_, ok := t.(*SymbolType)
	return ok
}

// Common, shared instances so callers don't allocate afresh for the
// primitive cases.
var (
	Bool   = &BoolType{}
	String = &StringType{}
	Any    = &AnyType{}
	Void   = &VoidType{}
	Symbol = &SymbolType{}
)
