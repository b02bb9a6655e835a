// Package typemap maps source type expressions onto TypeScript type expressions.
//
// Mapping is a pure function of the expression, the options and the schema
// index. It never fails: shapes it does not recognize degrade to "any".
package typemap

import (
	"strings"

	"github.com/teranos/domgen/idl"
)

// Any is the universal type. A union containing it collapses to it.
const Any = "any"

// Rendered names of the promise and sequence containers. Generic expressions
// over these are rewritten rather than emitted as-is.
const (
	promiseType  = "PromiseLike"
	sequenceType = "Array"
)

// TypeMapping defines how source primitive and alias names map to TypeScript
var TypeMapping = map[string]string{
	"boolean": "boolean",
	"Boolean": "boolean",

	"DOMString":  "string",
	"USVString":  "string",
	"ByteString": "string",
	"ReadyState": "string",
	"AbortMode":  "string",

	"byte":                "number",
	"octet":               "number",
	"short":               "number",
	"signed short":        "number",
	"unsigned short":      "number",
	"long":                "number",
	"signed long":         "number",
	"unsigned long":       "number",
	"long long":           "number",
	"signed long long":    "number",
	"unsigned long long":  "number",
	"float":               "number",
	"double":              "number",
	"unrestricted float":  "number",
	"unrestricted double": "number",
	"UnrestrictedDouble":  "number",
	"EndOfStreamError":    "number",
	"DOMHighResTimeStamp": "number",
	"DOMTimeStamp":        "number",

	"Date":             "Date",
	"Function":         "Function",
	"CanvasPixelArray": "number[]",
	"EventListener":    "EventListenerOrEventListenerObject",
	"object":           Any,
	"any":              Any,
	"void":             "void",

	"Promise":     promiseType,
	"sequence":    sequenceType,
	"FrozenArray": sequenceType,
}

// BufferTypes are low-level buffer and view names passed through unchanged
var BufferTypes = map[string]bool{
	"ArrayBuffer":       true,
	"ArrayBufferView":   true,
	"DataView":          true,
	"Int8Array":         true,
	"Uint8Array":        true,
	"Uint8ClampedArray": true,
	"Int16Array":        true,
	"Uint16Array":       true,
	"Int32Array":        true,
	"Uint32Array":       true,
	"Float32Array":      true,
	"Float64Array":      true,
}

// DOMTypes collapse to any when DOM types are ignored (worker flavor)
var DOMTypes = map[string]bool{
	"Document": true,
	"Element":  true,
	"Window":   true,
}

// Options carries the per-run settings that affect mapping
type Options struct {
	Flavor         idl.Flavor
	IgnoreDOMTypes bool
}

// OptionsFor returns the mapping options implied by a flavor
func OptionsFor(f idl.Flavor) Options {
	return Options{Flavor: f, IgnoreDOMTypes: f.IgnoresDOMTypes()}
}

// Mapper renders type expressions against the names known to a schema
type Mapper struct {
	index *idl.Index
}

// NewMapper creates a mapper over the given schema index
func NewMapper(index *idl.Index) *Mapper {
	return &Mapper{index: index}
}

// Map renders expr as a TypeScript type. The nullable flag is ignored; see MapNullable.
func (m *Mapper) Map(expr idl.TypeExpr, opts Options) string {
	switch expr.Shape {
	case idl.ShapeUnion:
		return m.mapUnion(expr.Branches, opts)
	case idl.ShapeGeneric:
		return m.mapGeneric(expr.Name, *expr.Elem, opts)
	case idl.ShapeArray:
		return arrayOf(m.Map(*expr.Elem, opts))
	default:
		return m.mapName(expr.Name, opts)
	}
}

// MapNullable renders expr and appends " | null" when it is nullable
func (m *Mapper) MapNullable(expr idl.TypeExpr, opts Options) string {
	t := m.Map(expr, opts)
	if expr.Nullable && t != Any {
		return MakeNullable(t)
	}
	return t
}

// MapRaw parses and renders a raw schema type string
func (m *Mapper) MapRaw(raw string, opts Options) string {
	return m.Map(idl.ParseType(raw), opts)
}

func (m *Mapper) mapName(name string, opts Options) string {
	name = strings.TrimSpace(name)
	if ts, ok := TypeMapping[name]; ok {
		return ts
	}
	if BufferTypes[name] {
		return name
	}
	// Checked before the named-entity passthrough: Window is a known interface.
	if opts.IgnoreDOMTypes && DOMTypes[name] {
		return Any
	}
	if m.index != nil {
		if m.index.IsInterface(name) || m.index.IsCallback(name) || m.index.IsDictionary(name) {
			return name
		}
		// Enumerations are plain strings, not literal unions
		if m.index.IsEnum(name) {
			return "string"
		}
	}
	return Any
}

// mapUnion renders the branches in order, dropping duplicates. A nullable
// branch makes the whole union nullable, with " | null" appended once.
func (m *Mapper) mapUnion(branches []idl.TypeExpr, opts Options) string {
	seen := make(map[string]bool, len(branches))
	parts := make([]string, 0, len(branches))
	nullable := false
	for _, b := range branches {
		t := m.Map(b, opts)
		if t == Any {
			return Any
		}
		nullable = nullable || b.Nullable
		if !seen[t] {
			seen[t] = true
			parts = append(parts, t)
		}
	}
	union := strings.Join(parts, " | ")
	if nullable {
		return MakeNullable(union)
	}
	return union
}

func (m *Mapper) mapGeneric(container string, elem idl.TypeExpr, opts Options) string {
	switch name := m.mapName(container, opts); name {
	case promiseType:
		return Any
	case sequenceType:
		return arrayOf(m.Map(elem, opts))
	case Any:
		return Any
	default:
		return name + "<" + m.Map(elem, opts) + ">"
	}
}

// arrayOf appends [] to t, parenthesizing unions
func arrayOf(t string) string {
	if strings.Contains(t, " | ") || strings.Contains(t, "=>") {
		return "(" + t + ")[]"
	}
	return t + "[]"
}

// MakeNullable appends " | null" unless already present
func MakeNullable(t string) string {
	if strings.HasSuffix(t, " | null") {
		return t
	}
	return t + " | null"
}

// IsNumeric reports whether a rendered type is the number primitive
func IsNumeric(t string) bool {
	return t == "number"
}

// Bound is a mapper with fixed options. It satisfies overload.Renderer.
type Bound struct {
	m    *Mapper
	opts Options
}

// With binds the mapper to opts
func (m *Mapper) With(opts Options) Bound {
	return Bound{m: m, opts: opts}
}

// Options returns the bound options
func (b Bound) Options() Options { return b.opts }

// Render maps t, ignoring nullability
func (b Bound) Render(t idl.TypeExpr) string { return b.m.Map(t, b.opts) }

// RenderNullable maps t, appending " | null" when nullable
func (b Bound) RenderNullable(t idl.TypeExpr) string { return b.m.MapNullable(t, b.opts) }
