// Package visibility decides which members of an interface are declared for a
// given flavor and scope, and in which form.
//
// Every member is resolved against the patch table once: removed members are
// dropped, overridden members take their replacement text, and everything else
// is rendered from the schema through the type mapper and the overload
// combinator. Three factory methods are expanded from the lookup tables
// instead (see special.go).
package visibility

import (
	"go.uber.org/zap"

	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/logger"
	"github.com/teranos/domgen/lookup"
	"github.com/teranos/domgen/overload"
	"github.com/teranos/domgen/patch"
	"github.com/teranos/domgen/typemap"
)

// Property is a declarable property. Type is fully rendered.
type Property struct {
	Name     string
	Type     string
	ReadOnly bool
	Static   bool
	// Const renders the property as a constant binding in the global pass
	Const bool
}

// Method is a declarable method with every overload rendered as full
// declaration text (name, parameters and return type, no trailing semicolon).
// An empty Name marks call signatures.
type Method struct {
	Name       string
	Static     bool
	Signatures []string
}

// Constant is a const member
type Constant struct {
	Name string
	Type string
}

// Indexer is an index signature such as [index: number]: Node
type Indexer struct {
	KeyName   string
	KeyType   string
	ValueType string
}

// Members is the resolved member set of one interface for one flavor and scope,
// in declaration order within each kind.
type Members struct {
	Properties []Property
	Methods    []Method
	Constants  []Constant
	// Listeners are the addEventListener overloads restored for the interface
	Listeners []string
	Indexers  []Indexer
}

// IsEmpty reports whether no member is declared
func (m Members) IsEmpty() bool {
	return len(m.Properties) == 0 && len(m.Methods) == 0 && len(m.Constants) == 0 &&
		len(m.Listeners) == 0 && len(m.Indexers) == 0
}

// Resolver resolves member visibility over one schema. It holds no per-run
// state; the flavor is passed to every call.
type Resolver struct {
	index   *idl.Index
	mapper  *typemap.Mapper
	patches *patch.Table
	tables  *lookup.Tables
	deps    map[string][]string

	// handlers maps an interface to its own event handlers, in declaration order
	handlers        map[string][]Handler
	eventInterfaces []string
	log             *zap.SugaredLogger
}

// New builds a resolver. A nil patch table or lookup table is treated as empty.
func New(schema *idl.Schema, patches *patch.Table, tables *lookup.Tables) *Resolver {
	if patches == nil {
		patches = patch.Empty()
	}
	if tables == nil {
		tables = lookup.Empty()
	}
	index := idl.NewIndex(schema)
	r := &Resolver{
		index:   index,
		mapper:  typemap.NewMapper(index),
		patches: patches,
		tables:  tables,
		log:     logger.Named("visibility"),
	}
	r.deps = schema.Dependencies
	if r.deps == nil {
		r.deps = BuildDependencies(index)
	}
	r.handlers = r.collectHandlers()
	r.eventInterfaces = r.collectEventInterfaces()
	return r
}

// Index returns the schema index
func (r *Resolver) Index() *idl.Index { return r.index }

// Mapper returns the type mapper
func (r *Resolver) Mapper() *typemap.Mapper { return r.mapper }

// Patches returns the patch table
func (r *Resolver) Patches() *patch.Table { return r.patches }

// Dependencies returns the dependency graph used for global flattening
func (r *Resolver) Dependencies() map[string][]string { return r.deps }

func (r *Resolver) render(f idl.Flavor) typemap.Bound {
	return r.mapper.With(typemap.OptionsFor(f))
}

// Members resolves the members of iface for a flavor and scope.
// The All scope is reserved for global flattening: constants, indexers, call
// signatures and listeners are left to the caller.
func (r *Resolver) Members(iface *idl.Interface, f idl.Flavor, scope idl.Scope) (Members, error) {
	var m Members
	m.Properties = r.properties(iface, f, scope)

	methods, err := r.methods(iface, f, scope)
	if err != nil {
		return Members{}, err
	}
	m.Methods = methods

	if scope == idl.All {
		return m, nil
	}
	m.Constants = r.constants(iface, f)
	if scope == idl.InstanceOnly {
		m.Listeners = r.Listeners(iface)
		m.Indexers = r.Indexers(iface, f, scope)
	}
	return m, nil
}

func (r *Resolver) properties(iface *idl.Interface, f idl.Flavor, scope idl.Scope) []Property {
	b := r.render(f)
	var out []Property
	for _, p := range iface.Properties {
		if !scope.Matches(p.Static) || !f.KeepsTagged(p.Tags) {
			continue
		}
		kind := idl.KindProperty
		if p.IsEventHandler() {
			kind = idl.KindEventHandler
		}
		res := r.patches.Resolve(p.Name, iface.Name, kind)
		switch res.State {
		case patch.Removed:
			r.log.Debugw("member removed", logger.FieldInterface, iface.Name, logger.FieldMember, p.Name, logger.FieldKind, kind.String())
			continue
		case patch.Overridden:
			r.log.Debugw("member overridden", logger.FieldInterface, iface.Name, logger.FieldMember, p.Name, logger.FieldKind, kind.String())
			out = append(out, Property{Name: p.Name, Type: res.Override.Type, ReadOnly: p.ReadOnly, Static: p.Static})
			continue
		}

		typ := b.RenderNullable(p.Type)
		if p.IsEventHandler() {
			this := iface.Name
			if scope == idl.All {
				this = f.GlobalPolluter()
			}
			typ = HandlerType(this, r.EventType(iface.Name, p.EventHandler))
		}
		out = append(out, Property{Name: p.Name, Type: typ, ReadOnly: p.ReadOnly, Static: p.Static})
	}

	for _, a := range r.patches.Added(idl.KindProperty, iface.Name, f) {
		if !scope.Matches(a.Static) || (scope == idl.All && !a.GloballyExposed()) {
			continue
		}
		out = append(out, Property{Name: a.Name, Type: a.Type, ReadOnly: a.ReadOnly, Static: a.Static})
	}
	return out
}

func (r *Resolver) constants(iface *idl.Interface, f idl.Flavor) []Constant {
	b := r.render(f)
	var out []Constant
	for _, c := range iface.Constants {
		res := r.patches.Resolve(c.Name, iface.Name, idl.KindConstant)
		switch res.State {
		case patch.Removed:
			continue
		case patch.Overridden:
			out = append(out, Constant{Name: c.Name, Type: res.Override.Type})
		default:
			out = append(out, Constant{Name: c.Name, Type: b.Render(c.Type)})
		}
	}
	for _, a := range r.patches.Added(idl.KindConstant, iface.Name, f) {
		out = append(out, Constant{Name: a.Name, Type: a.Type})
	}
	return out
}

// methods groups same-named declarations in first-seen order and resolves each group once
func (r *Resolver) methods(iface *idl.Interface, f idl.Flavor, scope idl.Scope) ([]Method, error) {
	b := r.render(f)
	listeners := scope == idl.All || len(r.Listeners(iface)) > 0

	var order []string
	groups := make(map[string][]idl.Method)
	for _, m := range iface.Methods {
		if !scope.Matches(m.Static) || !f.KeepsTagged(m.Tags) {
			continue
		}
		// Call signatures have no home on the global object
		if m.Name == "" && scope == idl.All {
			continue
		}
		// Restored listener overloads replace the declared method
		if m.Name == "addEventListener" && listeners {
			continue
		}
		if _, ok := groups[m.Name]; !ok {
			order = append(order, m.Name)
		}
		groups[m.Name] = append(groups[m.Name], m)
	}

	var out []Method
	for _, name := range order {
		decls := groups[name]
		static := decls[0].Static

		if name == "" {
			out = append(out, Method{Static: static, Signatures: renderSignatures("", decls, b)})
			continue
		}

		res := r.patches.Resolve(name, iface.Name, idl.KindMethod)
		switch res.State {
		case patch.Removed:
			r.log.Debugw("member removed", logger.FieldInterface, iface.Name, logger.FieldMember, name, logger.FieldKind, "method")
			continue
		case patch.Overridden:
			r.log.Debugw("member overridden", logger.FieldInterface, iface.Name, logger.FieldMember, name, logger.FieldKind, "method")
			out = append(out, Method{Name: name, Static: static, Signatures: res.Signatures(f)})
			continue
		}

		sigs := r.patches.AddedOverloads(name, iface.Name, f)
		special, err := r.specialSignatures(iface, decls, b)
		if err != nil {
			return nil, err
		}
		if special != nil {
			sigs = append(sigs, special...)
		} else {
			sigs = append(sigs, renderSignatures(name, decls, b)...)
		}
		out = append(out, Method{Name: name, Static: static, Signatures: sigs})
	}

	for _, a := range r.patches.Added(idl.KindMethod, iface.Name, f) {
		if !scope.Matches(a.Static) || (scope == idl.All && !a.GloballyExposed()) {
			continue
		}
		out = append(out, Method{Name: a.Name, Static: a.Static, Signatures: a.Signatures})
	}
	return out, nil
}

func renderSignatures(name string, decls []idl.Method, b overload.Renderer) []string {
	entries := make([]overload.Entry, len(decls))
	for i, d := range decls {
		entries[i] = overload.Entry{Params: d.Params, Return: d.Type}
	}
	sigs := overload.Expand(entries, b)
	out := make([]string, len(sigs))
	for i, s := range sigs {
		out[i] = s.Render(name)
	}
	return out
}

// Constructors renders the construct signatures of iface, e.g. "new(x: number): Foo".
// It returns nil when the constructor is removed by a patch.
func (r *Resolver) Constructors(iface *idl.Interface, f idl.Flavor) []string {
	res := r.patches.Resolve(iface.Name, iface.Name, idl.KindConstructor)
	switch res.State {
	case patch.Removed:
		return nil
	case patch.Overridden:
		return res.Signatures(f)
	}
	if len(iface.Constructors) == 0 {
		return []string{"new(): " + iface.Name}
	}

	b := r.render(f)
	entries := make([]overload.Entry, len(iface.Constructors))
	for i, c := range iface.Constructors {
		entries[i] = overload.Entry{Params: c.Params, Return: idl.Named(iface.Name)}
	}
	var out []string
	for _, s := range overload.Expand(entries, b) {
		out = append(out, s.Render("new"))
	}
	return out
}

// NamedConstructor renders the construct signatures of a named constructor
func (r *Resolver) NamedConstructor(iface *idl.Interface, f idl.Flavor) []string {
	if iface.NamedConstructor == nil {
		return nil
	}
	entries := []overload.Entry{{Params: iface.NamedConstructor.Params, Return: idl.Named(iface.Name)}}
	var out []string
	for _, s := range overload.Expand(entries, r.render(f)) {
		out = append(out, s.Render("new"))
	}
	return out
}

// CallbackSignatures renders the call signatures of a callback function.
// The second result is false when the callback is removed by a patch.
func (r *Resolver) CallbackSignatures(cb *idl.CallbackFunction, f idl.Flavor) ([]string, bool) {
	res := r.patches.Resolve(cb.Name, "", idl.KindCallback)
	switch res.State {
	case patch.Removed:
		return nil, false
	case patch.Overridden:
		return res.Signatures(f), true
	}
	decls := []idl.Method{{Type: cb.Type, Params: cb.Params}}
	return renderSignatures("", decls, r.render(f)), true
}
