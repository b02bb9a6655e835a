package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType_Shapes(t *testing.T) {
	tests := []struct {
		raw   string
		shape TypeShape
		str   string
	}{
		{"DOMString", ShapeName, "DOMString"},
		{"unsigned long long", ShapeName, "unsigned long long"},
		{"Node?", ShapeName, "Node?"},
		{"DOMString or Node", ShapeUnion, "(DOMString or Node)"},
		{"(DOMString or Node)?", ShapeUnion, "(DOMString or Node)?"},
		{"sequence<DOMString>", ShapeGeneric, "sequence<DOMString>"},
		{"sequence&lt;DOMString&gt;", ShapeGeneric, "sequence<DOMString>"},
		{"Promise<void>", ShapeGeneric, "Promise<void>"},
		{"long[]", ShapeArray, "long[]"},
		{"sequence<long>[]", ShapeArray, "sequence<long>[]"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseType(tt.raw)
			assert.Equal(t, tt.shape, got.Shape)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseType_UnionSplitsAtTopLevelOnly(t *testing.T) {
	got := ParseType("sequence<(DOMString or long)> or Blob")
	require.Equal(t, ShapeUnion, got.Shape)
	require.Len(t, got.Branches, 2)

	first := got.Branches[0]
	assert.Equal(t, ShapeGeneric, first.Shape)
	assert.Equal(t, "sequence", first.Name)
	assert.Equal(t, ShapeUnion, first.Elem.Shape)
	assert.Equal(t, Named("Blob"), got.Branches[1])
}

func TestParseType_NullableBranches(t *testing.T) {
	got := ParseType("(Node? or DOMString)")
	require.Equal(t, ShapeUnion, got.Shape)
	assert.True(t, got.Branches[0].Nullable)
	assert.False(t, got.Nullable)
}

func TestTypeExpr_TextRoundTrip(t *testing.T) {
	var te TypeExpr
	require.NoError(t, te.UnmarshalText([]byte("sequence<Node>?")))
	assert.True(t, te.Nullable)

	out, err := te.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sequence<Node>?", string(out))
}

func TestTypeExpr_IsZero(t *testing.T) {
	assert.True(t, TypeExpr{}.IsZero())
	assert.False(t, Named("void").IsZero())
	assert.False(t, Named("").OrNull().IsZero())
}
