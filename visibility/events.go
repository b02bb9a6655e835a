package visibility

import (
	"sort"

	"github.com/teranos/domgen/idl"
)

// Handler is an event handler attribute tracked apart from ordinary properties
type Handler struct {
	Event     string
	EventType string
}

// genericEventTypes lists the (interface, event) pairs typed as a plain Event
// instead of the event table's type.
var genericEventTypes = map[[2]string]bool{
	{"IDBDatabase", "abort"}:               true,
	{"IDBTransaction", "abort"}:            true,
	{"MSBaseReader", "abort"}:              true,
	{"XMLHttpRequestEventTarget", "abort"}: true,
}

// EventType returns the event interface dispatched for event on iface
func (r *Resolver) EventType(iface, event string) string {
	if genericEventTypes[[2]string{iface, event}] {
		return "Event"
	}
	if iface == "XMLHttpRequest" {
		if event == "readystatechange" {
			return "Event"
		}
		return "ProgressEvent"
	}
	if t, ok := r.tables.EventType(event); ok {
		return t
	}
	return "Event"
}

// HandlerType renders the function type of an event handler attribute
func HandlerType(this, eventType string) string {
	return "(this: " + this + ", ev: " + eventType + ") => any"
}

func (r *Resolver) collectHandlers() map[string][]Handler {
	out := make(map[string][]Handler)
	for _, iface := range r.index.Schema().Interfaces {
		seen := make(map[string]bool)
		for _, p := range iface.Properties {
			if !p.IsEventHandler() || seen[p.EventHandler] {
				continue
			}
			seen[p.EventHandler] = true
			out[iface.Name] = append(out[iface.Name], Handler{
				Event:     p.EventHandler,
				EventType: r.EventType(iface.Name, p.EventHandler),
			})
		}
	}
	return out
}

// Handlers returns the event handlers declared on iface itself
func (r *Resolver) Handlers(iface string) []Handler {
	return r.handlers[iface]
}

// AncestorsWithHandlers returns the nearest ancestors of iface that declare
// event handlers, sorted by name. An ancestor without handlers is looked
// through to its own parents.
func (r *Resolver) AncestorsWithHandlers(iface *idl.Interface) []string {
	found := make(map[string]bool)
	visited := map[string]bool{iface.Name: true}

	var walk func(i *idl.Interface)
	walk = func(i *idl.Interface) {
		for _, name := range i.Parents() {
			if visited[name] {
				continue
			}
			visited[name] = true
			if len(r.handlers[name]) > 0 {
				found[name] = true
				continue
			}
			if parent, ok := r.index.Interface(name); ok {
				walk(parent)
			}
		}
	}
	walk(iface)

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Listeners returns the addEventListener overloads iface must re-declare.
//
// An interface with its own handlers gets a typed overload keyed on its event
// map. An interface with none but two or more handler-bearing ancestors gets
// one typed overload per ancestor, since structural inheritance keeps only
// one of them. Either way a string-typed fallback closes the list.
func (r *Resolver) Listeners(iface *idl.Interface) []string {
	var maps []string
	if len(r.handlers[iface.Name]) > 0 {
		maps = []string{iface.Name}
	} else if ancestors := r.AncestorsWithHandlers(iface); len(ancestors) >= 2 {
		maps = ancestors
	}
	if len(maps) == 0 {
		return nil
	}

	out := make([]string, 0, len(maps)+1)
	for _, name := range maps {
		out = append(out, typedListener(iface.Name, EventMapName(name)))
	}
	return append(out, fallbackListener)
}

const fallbackListener = "addEventListener(type: string, listener: EventListenerOrEventListenerObject, useCapture?: boolean): void"

func typedListener(this, eventMap string) string {
	return "addEventListener<K extends keyof " + eventMap + ">(type: K, listener: (this: " + this +
		", ev: " + eventMap + "[K]) => any, useCapture?: boolean): void"
}

// EventMapName returns the name of the event map interface of iface
func EventMapName(iface string) string {
	return iface + "EventMap"
}

// EventMap describes the <I>EventMap interface of an interface with handlers
type EventMap struct {
	Name    string
	Extends []string
	Events  []Handler
}

// EventMap returns the event map of iface, or false if it declares no handlers
func (r *Resolver) EventMap(iface *idl.Interface) (EventMap, bool) {
	handlers := r.handlers[iface.Name]
	if len(handlers) == 0 {
		return EventMap{}, false
	}
	em := EventMap{Name: EventMapName(iface.Name), Events: handlers}
	for _, a := range r.AncestorsWithHandlers(iface) {
		em.Extends = append(em.Extends, EventMapName(a))
	}
	return em, true
}
