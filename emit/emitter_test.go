package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
	domtest "github.com/teranos/domgen/internal/testing"
	"github.com/teranos/domgen/visibility"
)

func fixtureEmitter(t *testing.T) *Emitter {
	t.Helper()
	return New(visibility.New(domtest.Schema(t), domtest.Patches(t), domtest.Tables(t)))
}

func TestEmit_Golden(t *testing.T) {
	schema := &idl.Schema{
		Interfaces: []idl.Interface{
			{
				Name:       "Node",
				Properties: []idl.Property{{Name: "nodeName", Type: idl.Named("DOMString"), ReadOnly: true}},
				Methods: []idl.Method{
					{
						Name:   "appendChild",
						Type:   idl.Named("Node"),
						Params: []idl.Param{{Name: "newChild", Type: idl.Named("Node")}},
					},
					{
						Name: "insertBefore",
						Type: idl.Named("Node"),
						Params: []idl.Param{
							{Name: "newChild", Type: idl.Named("Node")},
							{Name: "refChild", Type: idl.ParseType("Node?")},
						},
					},
				},
				Constants: []idl.Constant{{Name: "ELEMENT_NODE", Type: idl.Named("unsigned short"), Value: "1"}},
			},
			{
				Name:       "Window",
				Extends:    "Node",
				Properties: []idl.Property{{Name: "name", Type: idl.Named("DOMString")}},
				Methods: []idl.Method{{
					Name:   "alert",
					Type:   idl.Named("void"),
					Params: []idl.Param{{Name: "message", Type: idl.Named("any"), Optional: true}},
				}},
			},
		},
		Dictionaries: []idl.Dictionary{{
			Name: "Init",
			Members: []idl.DictionaryMember{
				{Name: "a", Type: idl.Named("boolean")},
				{Name: "b", Type: idl.Named("long"), Required: true},
				{Name: "c", Type: idl.ParseType("Node?")},
			},
		}},
		CallbackFunctions: []idl.CallbackFunction{{
			Name:   "Cb",
			Type:   idl.Named("void"),
			Params: []idl.Param{{Name: "x", Type: idl.Named("long")}},
		}},
	}

	want := `/////////////////////////////
/// DOM APIs
/////////////////////////////

interface Init {
    a?: boolean;
    b: number;
    c?: Node | null;
}

interface EventListener {
    (evt: Event): void;
}

interface Node {
    readonly nodeName: string;
    appendChild(newChild: Node): Node;
    insertBefore(newChild: Node, refChild: Node | null): Node;
    readonly ELEMENT_NODE: number;
}

declare var Node: {
    prototype: Node;
    new(): Node;
    readonly ELEMENT_NODE: number;
}

interface Window extends Node {
    name: string;
    alert(): void;
    alert(message: any): void;
}

declare var Window: {
    prototype: Window;
    new(): Window;
}

declare type EventListenerOrEventListenerObject = EventListener | EventListenerObject;

interface Cb {
    (x: number): void;
}

declare const name: never;
declare function alert(): void;
declare function alert(message: any): void;
declare function toString(): string;
declare var nodeName: string;
declare function appendChild(newChild: Node): Node;
declare function insertBefore(newChild: Node, refChild: Node | null): Node;
`

	got, err := New(visibility.New(schema, nil, nil)).Emit(idl.FlavorWeb)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEmit_SectionOrder(t *testing.T) {
	out, err := fixtureEmitter(t).Emit(idl.FlavorWeb)
	require.NoError(t, err)

	markers := []string{
		"/// DOM APIs",
		"interface EventInit {",
		"interface MouseEventInit extends EventInit {",
		"interface EventListener {",
		"interface EventTarget {",
		"interface Window extends EventTarget, GlobalEventHandlers, WindowTimers {",
		"interface EventListenerObject {",
		"declare type EventListenerOrEventListenerObject",
		"interface FrameRequestCallback {",
		"declare var Image: {",
		"declare const name: never;",
		"declare function addEventListener<K extends keyof WindowEventMap>",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		require.GreaterOrEqual(t, idx, 0, "missing %q", m)
		assert.Greater(t, idx, last, "%q out of order", m)
		last = idx
	}
}

func TestEmit_Web(t *testing.T) {
	out, err := fixtureEmitter(t).Emit(idl.FlavorWeb)
	require.NoError(t, err)

	assert.Contains(t, out, "interface WindowEventMap extends GlobalEventHandlersEventMap {\n    \"resize\": UIEvent;\n}\n")
	assert.Contains(t, out, "interface CSS {\n    escape(ident: string): string;\n    supports(property: string): boolean;\n    supports(property: string, value: string): boolean;\n}\n\ndeclare var CSS: CSS;\n")
	assert.Contains(t, out, "    [index: number]: Element;\n")
	assert.Contains(t, out, "interface NodeListOf<TNode extends Node> extends NodeList {\n    readonly length: number;\n    item(index: number): TNode;\n}\n")
	assert.Contains(t, out, "interface ErrorEventHandler {\n    (message: string, filename?: string, lineno?: number): void;\n}\n")
	assert.Contains(t, out, "declare var Image: {new(): HTMLImageElement; new(width: number): HTMLImageElement; new(width: number, height: number): HTMLImageElement; };\n")
	assert.Contains(t, out, "declare var Event: {\n    prototype: Event;\n    new(typeArg: string): Event;\n    new(typeArg: string, eventInitDict: EventInit): Event;\n    readonly AT_TARGET: number;\n}\n")
	assert.Contains(t, out, "    msCachingEnabled(): boolean;\n")

	assert.NotContains(t, out, "declare var GlobalEventHandlers")
	assert.NotContains(t, out, "MSApp")
	assert.NotContains(t, out, "WorkerUtils")
	assert.NotContains(t, out, "declare var orientation")
}

func TestEmit_Worker(t *testing.T) {
	out, err := fixtureEmitter(t).Emit(idl.FlavorWorker)
	require.NoError(t, err)

	assert.Contains(t, out, "/// Worker APIs")
	assert.Contains(t, out, "interface WorkerGlobalScope extends EventTarget, WindowTimers {")
	assert.Contains(t, out, "declare var WorkerUtils: {\n    prototype: WorkerUtils;\n    new(): WorkerUtils;\n}\n")
	assert.Contains(t, out, "declare function importScripts(...urls: string[]): void;\n")
	assert.Contains(t, out, "declare var onerror: (this: WorkerGlobalScope, ev: Event) => any;\n")

	assert.NotContains(t, out, "declare var Image")
	assert.NotContains(t, out, "interface Document")
	assert.NotContains(t, out, "msCachingEnabled")
	assert.NotContains(t, out, "declare const name")
}

func TestEmit_Idempotent(t *testing.T) {
	for _, f := range idl.Flavors() {
		first, err := fixtureEmitter(t).Emit(f)
		require.NoError(t, err)

		e := fixtureEmitter(t)
		second, err := e.Emit(f)
		require.NoError(t, err)
		third, err := e.Emit(f)
		require.NoError(t, err)

		assert.Equal(t, first, second, "flavor %s", f)
		assert.Equal(t, second, third, "flavor %s", f)
	}
}

func TestEmit_Failures(t *testing.T) {
	t.Run("precondition", func(t *testing.T) {
		schema := &idl.Schema{Interfaces: []idl.Interface{{
			Name: "Document",
			Methods: []idl.Method{{
				Name:   "getElementsByTagName",
				Type:   idl.Named("HTMLCollection"),
				Params: []idl.Param{{Name: "name", Type: idl.Named("DOMString")}},
			}},
		}}}
		_, err := New(visibility.New(schema, nil, nil)).Emit(idl.FlavorWeb)
		require.Error(t, err)
		assert.True(t, errors.IsPreconditionError(err))
		assert.Contains(t, err.Error(), "Document.getElementsByTagName")
	})

	t.Run("cycle", func(t *testing.T) {
		schema := &idl.Schema{
			Interfaces:   []idl.Interface{{Name: "Window"}, {Name: "A"}},
			Dependencies: map[string][]string{"Window": {"A"}, "A": {"Window"}},
		}
		_, err := New(visibility.New(schema, nil, nil)).Emit(idl.FlavorWeb)
		require.Error(t, err)
		assert.True(t, errors.IsCycleError(err))
	})
}

func TestPrinter(t *testing.T) {
	p := NewPrinter()
	p.Block("interface A", func() {
		p.Printl("a: %s;", "string")
		p.Block("interface B", func() {
			p.Printl("b: number;")
		})
	})
	p.Printl("done")
	assert.Equal(t, "interface A {\n    a: string;\n    interface B {\n        b: number;\n    }\n\n}\n\ndone\n", p.String())
}
