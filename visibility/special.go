package visibility

import (
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/overload"
)

// special selects how a method is rendered. Factory methods keyed by a
// string name are expanded into one literal-typed overload per known name.
type special int

const (
	specialNone special = iota
	specialCreateElement
	specialCreateEvent
	specialGetElementsByTagName
)

var specialMethods = map[string]special{
	"createElement":        specialCreateElement,
	"createEvent":          specialCreateEvent,
	"getElementsByTagName": specialGetElementsByTagName,
}

// shape is the declaration a special method must have: one string parameter
// and a fixed return type.
type shape struct {
	returns string
	param   string
}

var specialShapes = map[special]shape{
	specialCreateElement:        {returns: "Element", param: "DOMString"},
	specialCreateEvent:          {returns: "Event", param: "DOMString"},
	specialGetElementsByTagName: {returns: "NodeList", param: "DOMString"},
}

// pluralEvents are event interfaces also accepted by createEvent under a
// legacy plural name (MouseEvents for MouseEvent).
var pluralEvents = map[string]bool{
	"Event":         true,
	"MutationEvent": true,
	"MouseEvent":    true,
	"SVGZoomEvent":  true,
	"UIEvent":       true,
}

func specialFor(name string) special {
	return specialMethods[name]
}

// specialSignatures expands a special factory method. It returns nil for
// ordinary methods and an error when a special method has an unexpected shape.
func (r *Resolver) specialSignatures(iface *idl.Interface, decls []idl.Method, b overload.Renderer) ([]string, error) {
	kind := specialFor(decls[0].Name)
	if kind == specialNone {
		return nil, nil
	}
	for _, d := range decls {
		if err := checkShape(iface.Name, d, specialShapes[kind]); err != nil {
			return nil, err
		}
	}

	name := decls[0].Name
	param := decls[0].Params[0].Name
	literal := func(value, returns string) string {
		return name + "(" + param + ": " + strconv.Quote(value) + "): " + returns
	}
	fallback := func(returns string) string {
		return name + "(" + param + ": string): " + returns
	}

	var out []string
	switch kind {
	case specialCreateElement:
		for _, tn := range r.tables.TagNames {
			out = append(out, literal(tn.Tag, tn.Element))
		}
		out = append(out, fallback("HTMLElement"))
	case specialCreateEvent:
		for _, ev := range r.eventInterfaces {
			out = append(out, literal(ev, ev))
			if pluralEvents[ev] {
				out = append(out, literal(ev+"s", ev))
			}
		}
		out = append(out, fallback("Event"))
	case specialGetElementsByTagName:
		for _, tn := range r.tables.LowerTagNames() {
			out = append(out, literal(tn.Tag, "NodeListOf<"+tn.Element+">"))
		}
		out = append(out, fallback("NodeListOf<Element>"))
	}
	return out, nil
}

func checkShape(iface string, m idl.Method, want shape) error {
	if m.Type.Shape != idl.ShapeName || m.Type.Name != want.returns {
		return errors.NewPreconditionError(iface, m.Name, "expected return type %s, got %s", want.returns, m.Type.String())
	}
	if len(m.Params) != 1 {
		return errors.NewPreconditionError(iface, m.Name, "expected a single %s parameter, got %d parameters", want.param, len(m.Params))
	}
	p := m.Params[0]
	if p.Type.Shape != idl.ShapeName || p.Type.Name != want.param || p.Optional || p.Variadic {
		return errors.NewPreconditionError(iface, m.Name, "expected a single %s parameter, got %s", want.param, p.Type.String())
	}
	return nil
}

// EventInterfaces returns the event interface names createEvent is expanded over
func (r *Resolver) EventInterfaces() []string {
	return r.eventInterfaces
}

// collectEventInterfaces uses the table's explicit list when present.
// Otherwise it takes every event type of the event table plus every schema
// interface named *Event that derives from Event.
func (r *Resolver) collectEventInterfaces() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	if len(r.tables.EventInterfaces) > 0 {
		for _, name := range r.tables.EventInterfaces {
			add(name)
		}
	} else {
		for _, name := range r.tables.DistinctEventTypes() {
			add(name)
		}
		for i := range r.index.Schema().Interfaces {
			iface := &r.index.Schema().Interfaces[i]
			if strings.HasSuffix(iface.Name, "Event") && r.derivesFrom(iface, "Event") {
				add(iface.Name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// derivesFrom reports whether iface is base or extends it, directly or not
func (r *Resolver) derivesFrom(iface *idl.Interface, base string) bool {
	seen := make(map[string]bool)
	for cur := iface; cur != nil && !seen[cur.Name]; {
		if cur.Name == base {
			return true
		}
		seen[cur.Name] = true
		next, ok := r.index.Interface(cur.Extends)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}
