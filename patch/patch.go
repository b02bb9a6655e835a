// Package patch resolves hand-authored override, removal and addition
// directives against schema members.
//
// Removals and overrides are looked up by the exact (member name, interface
// name, kind) key. A removal always wins: an override never resurrects a
// removed member.
package patch

import (
	"github.com/teranos/domgen/idl"
)

// Key identifies a member for patch lookup. Callback functions use an empty Interface.
type Key struct {
	Name      string         `json:"name" yaml:"name"`
	Interface string         `json:"interface,omitempty" yaml:"interface,omitempty"`
	Kind      idl.MemberKind `json:"kind" yaml:"kind"`
}

// Removal marks a member as removed
type Removal struct {
	Key `yaml:",inline"`
}

// Override replaces a member's declaration.
// Methods, constructors and callbacks use Signatures (full declaration text
// without the trailing semicolon); properties and constants use Type.
type Override struct {
	Key               `yaml:",inline"`
	Signatures        []string `json:"signatures,omitempty" yaml:"signatures,omitempty"`
	WebOnlySignatures []string `json:"webOnlySignatures,omitempty" yaml:"webOnlySignatures,omitempty"`
	Type              string   `json:"type,omitempty" yaml:"type,omitempty"`
}

// Addition adds a member that the schema lacks.
// With Overload set on a method, Signatures are printed ahead of the schema
// overloads of the existing method of that name instead.
type Addition struct {
	Key            `yaml:",inline"`
	Signatures     []string `json:"signatures,omitempty" yaml:"signatures,omitempty"`
	Type           string   `json:"type,omitempty" yaml:"type,omitempty"`
	ReadOnly       bool     `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Static         bool     `json:"static,omitempty" yaml:"static,omitempty"`
	Overload       bool     `json:"overload,omitempty" yaml:"overload,omitempty"`
	ExposeGlobally *bool    `json:"exposeGlobally,omitempty" yaml:"exposeGlobally,omitempty"`
	// Flavor restricts the addition to one flavor; nil applies to every flavor
	Flavor *idl.Flavor `json:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// GloballyExposed reports whether the addition takes part in global flattening
func (a Addition) GloballyExposed() bool {
	return a.ExposeGlobally == nil || *a.ExposeGlobally
}

// AddedProperty is a property of an added interface
type AddedProperty struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	ReadOnly bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
}

// AddedInterface is an interface contributed entirely by the patch file
type AddedInterface struct {
	Name                  string          `json:"name" yaml:"name"`
	Extends               string          `json:"extends,omitempty" yaml:"extends,omitempty"`
	Properties            []AddedProperty `json:"properties,omitempty" yaml:"properties,omitempty"`
	Methods               []string        `json:"methods,omitempty" yaml:"methods,omitempty"`
	ConstructorSignatures []string        `json:"constructorSignatures,omitempty" yaml:"constructorSignatures,omitempty"`
	Flavor                *idl.Flavor     `json:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// Document is the on-disk shape of a patch file. A file may carry any subset
// of the four sections; multiple files are merged in load order.
type Document struct {
	Removals   []Removal        `json:"removals,omitempty" yaml:"removals,omitempty"`
	Overrides  []Override       `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Additions  []Addition       `json:"additions,omitempty" yaml:"additions,omitempty"`
	Interfaces []AddedInterface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

// State is the outcome of resolving a member
type State int

const (
	NotPatched State = iota
	Removed
	Overridden
)

func (s State) String() string {
	switch s {
	case Removed:
		return "removed"
	case Overridden:
		return "overridden"
	default:
		return "not patched"
	}
}

// Resolution is the tagged result of Resolve. Override is set only when
// State is Overridden.
type Resolution struct {
	State    State
	Override Override
}

// Signatures returns the override declarations to print for a flavor:
// web-only signatures first (web and all flavors only), then the signatures.
func (r Resolution) Signatures(f idl.Flavor) []string {
	if r.State != Overridden {
		return nil
	}
	var out []string
	if f.IncludesWeb() {
		out = append(out, r.Override.WebOnlySignatures...)
	}
	return append(out, r.Override.Signatures...)
}

// Table is the loaded, indexed set of patch directives
type Table struct {
	removals   map[Key]Removal
	overrides  map[Key]Override
	additions  []Addition
	interfaces []AddedInterface
}

// NewTable indexes the given documents. Later documents win on duplicate keys.
func NewTable(docs ...Document) *Table {
	t := &Table{
		removals:  make(map[Key]Removal),
		overrides: make(map[Key]Override),
	}
	for _, d := range docs {
		for _, r := range d.Removals {
			t.removals[r.Key] = r
		}
		for _, o := range d.Overrides {
			t.overrides[o.Key] = o
		}
		t.additions = append(t.additions, d.Additions...)
		t.interfaces = append(t.interfaces, d.Interfaces...)
	}
	return t
}

// Empty returns a table with no directives
func Empty() *Table {
	return NewTable()
}

// Resolve looks up the member. Removal takes precedence over override.
func (t *Table) Resolve(name, iface string, kind idl.MemberKind) Resolution {
	key := Key{Name: name, Interface: iface, Kind: kind}
	if _, ok := t.removals[key]; ok {
		return Resolution{State: Removed}
	}
	if o, ok := t.overrides[key]; ok {
		return Resolution{State: Overridden, Override: o}
	}
	return Resolution{State: NotPatched}
}

// Added returns the additions of a kind for an interface, in file order.
// Overload additions are excluded; see AddedOverloads.
func (t *Table) Added(kind idl.MemberKind, iface string, f idl.Flavor) []Addition {
	var out []Addition
	for _, a := range t.additions {
		if a.Kind == kind && a.Interface == iface && !a.Overload && ShouldKeep(a.Flavor, f) {
			out = append(out, a)
		}
	}
	return out
}

// AddedOverloads returns signatures to print ahead of the schema overloads of a method
func (t *Table) AddedOverloads(name, iface string, f idl.Flavor) []string {
	var out []string
	for _, a := range t.additions {
		if a.Overload && a.Kind == idl.KindMethod && a.Name == name && a.Interface == iface && ShouldKeep(a.Flavor, f) {
			out = append(out, a.Signatures...)
		}
	}
	return out
}

// AddedInterfaces returns the patch-only interfaces of a flavor, in file order
func (t *Table) AddedInterfaces(f idl.Flavor) []AddedInterface {
	var out []AddedInterface
	for _, ai := range t.interfaces {
		if ShouldKeep(ai.Flavor, f) {
			out = append(out, ai)
		}
	}
	return out
}

// ShouldKeep reports whether an entry restricted to entryFlavor applies under f.
// Unrestricted entries always apply; the all flavor takes every entry.
func ShouldKeep(entryFlavor *idl.Flavor, f idl.Flavor) bool {
	return entryFlavor == nil || f == idl.FlavorAll || *entryFlavor == f
}
