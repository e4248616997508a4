package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowc/internal/types"
)

func TestIntTypeString(t *testing.T) {
	assert.Equal(t, "Int64", (&types.IntType{Bits: 64}).String())
	assert.Equal(t, "UInt8", (&types.IntType{Bits: 8, Unsigned: true}).String())
}

func TestArrayTypeString(t *testing.T) {
	arr := &types.ArrayType{Elem: types.String}
	assert.Equal(t, "String[]", arr.String())
}

func TestObjectTypeString(t *testing.T) {
	obj := &types.ObjectType{Name: "Account"}
	assert.Equal(t, "Account", obj.String())
}

func TestIsSymbol(t *testing.T) {
	assert.True(t, types.IsSymbol(types.Symbol))
	assert.False(t, types.IsSymbol(types.Any))
	assert.False(t, types.IsSymbol(&types.IntType{Bits: 32}))
}

func TestSharedSingletonsReportTheirNames(t *testing.T) {
	cases := []struct {
		typ  types.Type
		name string
	}{
		{types.Bool, "Bool"},
		{types.String, "String"},
		{types.Any, "Any"},
		{types.Void, "Void"},
		{types.Symbol, "Symbol"},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.typ.String())
	}
}
