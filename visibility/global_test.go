package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
)

func flattenedNames(gs GlobalScope) []string {
	out := make([]string, len(gs.Interfaces))
	for i, f := range gs.Interfaces {
		out[i] = f.Interface
	}
	return out
}

func TestBuildDependencies(t *testing.T) {
	r := newFixtureResolver(t)
	deps := r.Dependencies()

	assert.Equal(t, []string{"EventTarget", "GlobalEventHandlers", "WindowTimers"}, deps["Window"])
	assert.Equal(t, []string{"HTMLElement", "Element", "Node", "EventTarget"}, deps["HTMLDivElement"])
	assert.Empty(t, deps["EventTarget"])
}

func TestGlobal_Window(t *testing.T) {
	r := newFixtureResolver(t)
	gs, err := r.Global(idl.FlavorWeb)
	require.NoError(t, err)

	assert.Equal(t, "Window", gs.Root)
	assert.Equal(t, []string{"Window", "EventTarget", "GlobalEventHandlers", "WindowTimers"}, flattenedNames(gs))

	window := gs.Interfaces[0].Members
	assert.Equal(t, []Property{
		{Name: "name", Type: "never", Const: true},
		{Name: "document", Type: "Document", ReadOnly: true},
		{Name: "onresize", Type: "(this: Window, ev: UIEvent) => any"},
	}, window.Properties, "orientation is not exposed globally")
	require.Len(t, window.Methods, 2)
	assert.Equal(t, "alert", window.Methods[0].Name)
	assert.Equal(t, []string{"toString(): string"}, window.Methods[1].Signatures)
	assert.Empty(t, window.Constants)
	assert.Empty(t, window.Listeners)

	assert.True(t, gs.Interfaces[1].Members.IsEmpty(), "addEventListener and the removed dispatchEvent are skipped")
	assert.Equal(t, "(this: Window, ev: MouseEvent) => any", gs.Interfaces[2].Members.Properties[0].Type)

	require.Len(t, gs.Listeners, 2)
	assert.Contains(t, gs.Listeners[0], "keyof WindowEventMap")
}

func TestGlobal_Worker(t *testing.T) {
	r := newFixtureResolver(t)
	gs, err := r.Global(idl.FlavorWorker)
	require.NoError(t, err)

	assert.Equal(t, []string{"WorkerGlobalScope", "EventTarget", "WindowTimers"}, flattenedNames(gs))
	root := gs.Interfaces[0].Members
	assert.Equal(t, []Property{
		{Name: "location", Type: "any", ReadOnly: true},
		{Name: "onerror", Type: "(this: WorkerGlobalScope, ev: Event) => any"},
	}, root.Properties)
	importScripts, ok := methodNamed(root, "importScripts")
	require.True(t, ok)
	assert.Equal(t, []string{"importScripts(...urls: string[]): void"}, importScripts.Signatures)
}

func TestGlobal_VisitsEachInterfaceOnce(t *testing.T) {
	schema := &idl.Schema{
		Interfaces: []idl.Interface{
			{Name: "Window", Properties: []idl.Property{{Name: "root", Type: idl.Named("long")}}},
			{Name: "A", Properties: []idl.Property{{Name: "a", Type: idl.Named("long")}}},
			{Name: "B", Properties: []idl.Property{{Name: "b", Type: idl.Named("long")}}},
		},
		Dependencies: map[string][]string{"Window": {"A", "B"}, "A": {}, "B": {"A"}},
	}
	gs, err := New(schema, nil, nil).Global(idl.FlavorWeb)
	require.NoError(t, err)
	assert.Equal(t, []string{"Window", "A", "B"}, flattenedNames(gs))
}

func TestGlobal_CycleIsFatal(t *testing.T) {
	schema := &idl.Schema{
		Interfaces:   []idl.Interface{{Name: "Window"}, {Name: "A"}, {Name: "B"}},
		Dependencies: map[string][]string{"Window": {"A"}, "A": {"B"}, "B": {"Window"}},
	}
	_, err := New(schema, nil, nil).Global(idl.FlavorWeb)
	require.Error(t, err)
	assert.True(t, errors.IsCycleError(err))
	assert.Contains(t, err.Error(), "Window -> A -> B -> Window")

	derived := &idl.Schema{Interfaces: []idl.Interface{
		{Name: "Window", Extends: "A"},
		{Name: "A", Extends: "Window"},
	}}
	_, err = New(derived, nil, nil).Global(idl.FlavorWeb)
	require.Error(t, err)
	assert.True(t, errors.IsCycleError(err))
}

func TestGlobal_NoPolluter(t *testing.T) {
	schema := &idl.Schema{Interfaces: []idl.Interface{{Name: "Node"}}}
	gs, err := New(schema, nil, nil).Global(idl.FlavorWeb)
	require.NoError(t, err)
	assert.Empty(t, gs.Interfaces)
}
