// Package emit renders the declaration document of one flavor.
//
// The document is, in order: a banner, dictionaries, the EventListener
// callback interface, every interface (with its event map and constructor
// object), interfaces added by the patch file, the listener alias, callback
// functions, named constructors and finally the flattened global scope.
package emit

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/logger"
	"github.com/teranos/domgen/typemap"
	"github.com/teranos/domgen/visibility"
)

var banners = map[idl.Flavor]string{
	idl.FlavorWeb:    "DOM APIs",
	idl.FlavorWorker: "Worker APIs",
	idl.FlavorAll:    "DOM and Worker APIs",
}

// Emitter renders declaration documents from a resolver
type Emitter struct {
	r   *visibility.Resolver
	log *zap.SugaredLogger
}

// New creates an emitter over r
func New(r *visibility.Resolver) *Emitter {
	return &Emitter{r: r, log: logger.Named("emit")}
}

// emission is the state of one Emit call
type emission struct {
	*Printer
	r      *visibility.Resolver
	flavor idl.Flavor
	// included holds every interface name declared in this document
	included map[string]bool
}

// Emit renders the document for flavor f. Identical inputs always produce
// identical output. A structural precondition violation or a dependency
// cycle aborts the run.
func (e *Emitter) Emit(f idl.Flavor) (string, error) {
	start := time.Now()
	em := &emission{Printer: NewPrinter(), r: e.r, flavor: f, included: make(map[string]bool)}
	for _, iface := range e.r.Interfaces(f) {
		em.included[iface.Name] = true
	}

	sections := []struct {
		name string
		fn   func() (int, error)
	}{
		{"banner", em.banner},
		{"dictionaries", em.dictionaries},
		{"callback interface", em.callbackInterface},
		{"interfaces", em.interfaces},
		{"added interfaces", em.addedInterfaces},
		{"listener alias", em.listenerAlias},
		{"callback functions", em.callbackFunctions},
		{"named constructors", em.namedConstructors},
		{"global scope", em.global},
	}
	for _, s := range sections {
		n, err := s.fn()
		if err != nil {
			return "", errors.Wrapf(err, "failed to emit %s for flavor %s", s.name, f)
		}
		e.log.Infow("section emitted", logger.FieldSection, s.name, logger.FieldFlavor, f.String(), logger.FieldCount, n)
	}

	e.log.Infow("document emitted",
		logger.FieldFlavor, f.String(),
		logger.FieldCount, len(em.included),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return em.String(), nil
}

func (em *emission) banner() (int, error) {
	em.Printl("/////////////////////////////")
	em.Printl("/// %s", banners[em.flavor])
	em.Printl("/////////////////////////////")
	em.Println()
	return 1, nil
}

func (em *emission) dictionaries() (int, error) {
	b := em.r.Mapper().With(typemap.OptionsFor(em.flavor))
	dicts := em.r.Dictionaries(em.flavor)
	for _, d := range dicts {
		header := "interface " + d.Name
		if d.Extends != "" && d.Extends != "Object" {
			header += " extends " + d.Extends
		}
		em.Block(header, func() {
			for _, m := range d.Members {
				if m.Required {
					em.Printl("%s: %s;", m.Name, b.RenderNullable(m.Type))
				} else {
					em.Printl("%s?: %s;", m.Name, b.RenderNullable(m.Type))
				}
			}
		})
	}
	return len(dicts), nil
}

func (em *emission) callbackInterface() (int, error) {
	em.Block("interface EventListener", func() {
		em.Printl("(evt: Event): void;")
	})
	return 1, nil
}

func (em *emission) interfaces() (int, error) {
	ifaces := em.r.Interfaces(em.flavor)
	for _, iface := range ifaces {
		if err := em.iface(iface); err != nil {
			return 0, errors.Wrapf(err, "interface %s", iface.Name)
		}
	}
	return len(ifaces), nil
}

func (em *emission) iface(iface *idl.Interface) error {
	if eventMap, ok := em.r.EventMap(iface); ok {
		em.eventMap(eventMap)
	}

	if iface.Static {
		return em.staticIface(iface)
	}

	instance, err := em.r.Members(iface, em.flavor, idl.InstanceOnly)
	if err != nil {
		return err
	}
	em.Block(em.header(iface), func() { em.members(instance) })

	if iface.NoInterfaceObject {
		return nil
	}
	static, err := em.r.Members(iface, em.flavor, idl.StaticOnly)
	if err != nil {
		return err
	}
	em.Block("declare var "+iface.Name+":", func() {
		em.Printl("prototype: %s;", iface.Name)
		for _, ctor := range em.r.Constructors(iface, em.flavor) {
			em.Printl("%s;", ctor)
		}
		em.staticMembers(static)
	})
	return nil
}

// staticIface declares an interface of static members. Without instance
// methods the interface itself holds the static members and one global
// variable carries it; otherwise the statics go to a separate object type.
func (em *emission) staticIface(iface *idl.Interface) error {
	static, err := em.r.Members(iface, em.flavor, idl.StaticOnly)
	if err != nil {
		return err
	}
	if !iface.HasInstanceMethods() {
		em.Block(em.header(iface), func() { em.staticMembers(static) })
		em.Printl("declare var %s: %s;", iface.Name, iface.Name)
		em.Println()
		return nil
	}

	instance, err := em.r.Members(iface, em.flavor, idl.InstanceOnly)
	if err != nil {
		return err
	}
	em.Block(em.header(iface), func() { em.members(instance) })
	em.Block("declare var "+iface.Name+":", func() { em.staticMembers(static) })
	return nil
}

// header renders "interface X extends A, B", keeping only parents declared in this document
func (em *emission) header(iface *idl.Interface) string {
	var parents []string
	for _, p := range iface.Parents() {
		if em.included[p] {
			parents = append(parents, p)
		}
	}
	header := "interface " + iface.Name
	if len(parents) > 0 {
		header += " extends " + strings.Join(parents, ", ")
	}
	return header
}

func (em *emission) eventMap(m visibility.EventMap) {
	header := "interface " + m.Name
	if len(m.Extends) > 0 {
		header += " extends " + strings.Join(m.Extends, ", ")
	}
	em.Block(header, func() {
		for _, h := range m.Events {
			em.Printl("%q: %s;", h.Event, h.EventType)
		}
	})
}

// members prints an interface body: properties, methods, constants, listeners, indexers
func (em *emission) members(m visibility.Members) {
	for _, p := range m.Properties {
		em.property(p)
	}
	for _, method := range m.Methods {
		for _, sig := range method.Signatures {
			em.Printl("%s;", sig)
		}
	}
	for _, c := range m.Constants {
		em.Printl("readonly %s: %s;", c.Name, c.Type)
	}
	for _, l := range m.Listeners {
		em.Printl("%s;", l)
	}
	for _, ix := range m.Indexers {
		em.Printl("[%s: %s]: %s;", ix.KeyName, ix.KeyType, ix.ValueType)
	}
}

// staticMembers prints a constructor object body: constants first, then static members
func (em *emission) staticMembers(m visibility.Members) {
	for _, c := range m.Constants {
		em.Printl("readonly %s: %s;", c.Name, c.Type)
	}
	for _, p := range m.Properties {
		em.property(p)
	}
	for _, method := range m.Methods {
		for _, sig := range method.Signatures {
			em.Printl("%s;", sig)
		}
	}
}

func (em *emission) property(p visibility.Property) {
	if p.ReadOnly {
		em.Printl("readonly %s: %s;", p.Name, p.Type)
		return
	}
	em.Printl("%s: %s;", p.Name, p.Type)
}

func (em *emission) addedInterfaces() (int, error) {
	added := em.r.Patches().AddedInterfaces(em.flavor)
	for _, ai := range added {
		header := "interface " + ai.Name
		if ai.Extends != "" {
			header += " extends " + ai.Extends
		}
		em.Block(header, func() {
			for _, p := range ai.Properties {
				em.property(visibility.Property{Name: p.Name, Type: p.Type, ReadOnly: p.ReadOnly})
			}
			for _, m := range ai.Methods {
				em.Printl("%s;", m)
			}
		})
		if len(ai.ConstructorSignatures) > 0 {
			name := baseName(ai.Name)
			em.Block("declare var "+name+":", func() {
				em.Printl("prototype: %s;", name)
				for _, sig := range ai.ConstructorSignatures {
					em.Printl("%s;", sig)
				}
			})
		}
	}
	return len(added), nil
}

// baseName strips type parameters: NodeListOf<TNode extends Node> is NodeListOf
func baseName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}

func (em *emission) listenerAlias() (int, error) {
	em.Printl("declare type EventListenerOrEventListenerObject = EventListener | EventListenerObject;")
	em.Println()
	return 1, nil
}

func (em *emission) callbackFunctions() (int, error) {
	n := 0
	for _, cb := range em.r.CallbackFunctions(em.flavor) {
		sigs, ok := em.r.CallbackSignatures(cb, em.flavor)
		if !ok {
			continue
		}
		em.callable(cb.Name, sigs)
		n++
	}
	for _, a := range em.r.Patches().Added(idl.KindCallback, "", em.flavor) {
		em.callable(a.Name, a.Signatures)
		n++
	}
	return n, nil
}

func (em *emission) callable(name string, sigs []string) {
	em.Block("interface "+name, func() {
		for _, sig := range sigs {
			em.Printl("%s;", sig)
		}
	})
}

func (em *emission) namedConstructors() (int, error) {
	if em.flavor == idl.FlavorWorker {
		return 0, nil
	}
	n := 0
	for _, iface := range em.r.Interfaces(em.flavor) {
		sigs := em.r.NamedConstructor(iface, em.flavor)
		if len(sigs) == 0 {
			continue
		}
		em.Printl("declare var %s: {%s; };", iface.NamedConstructor.Name, strings.Join(sigs, "; "))
		em.Println()
		n++
	}
	return n, nil
}

func (em *emission) global() (int, error) {
	gs, err := em.r.Global(em.flavor)
	if err != nil {
		return 0, err
	}
	for _, f := range gs.Interfaces {
		for _, p := range f.Members.Properties {
			if p.Const {
				em.Printl("declare const %s: %s;", p.Name, p.Type)
			} else {
				em.Printl("declare var %s: %s;", p.Name, p.Type)
			}
		}
		for _, m := range f.Members.Methods {
			for _, sig := range m.Signatures {
				em.Printl("declare function %s;", sig)
			}
		}
	}
	for _, l := range gs.Listeners {
		em.Printl("declare function %s;", l)
	}
	return len(gs.Interfaces), nil
}
