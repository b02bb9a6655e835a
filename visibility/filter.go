package visibility

import (
	"github.com/teranos/domgen/idl"
)

// Includes reports whether a named entity with the given tags belongs to flavor f.
// The worker flavor keeps only names of the worker-known set; web drops
// entities tagged for other platforms; all keeps everything.
func (r *Resolver) Includes(name string, tags []string, f idl.Flavor) bool {
	switch f {
	case idl.FlavorAll:
		return true
	case idl.FlavorWorker:
		return r.tables.IsWorkerInterface(name)
	default:
		return f.KeepsTagged(tags)
	}
}

// Interfaces returns the non-callback interfaces of flavor f in schema order
func (r *Resolver) Interfaces(f idl.Flavor) []*idl.Interface {
	s := r.index.Schema()
	var out []*idl.Interface
	for i := range s.Interfaces {
		iface := &s.Interfaces[i]
		if r.Includes(iface.Name, iface.Tags, f) {
			out = append(out, iface)
		}
	}
	return out
}

// Dictionaries returns the dictionaries of flavor f in schema order
func (r *Resolver) Dictionaries(f idl.Flavor) []*idl.Dictionary {
	s := r.index.Schema()
	var out []*idl.Dictionary
	for i := range s.Dictionaries {
		d := &s.Dictionaries[i]
		if r.Includes(d.Name, d.Tags, f) {
			out = append(out, d)
		}
	}
	return out
}

// CallbackFunctions returns the callback functions of flavor f in schema order
func (r *Resolver) CallbackFunctions(f idl.Flavor) []*idl.CallbackFunction {
	s := r.index.Schema()
	var out []*idl.CallbackFunction
	for i := range s.CallbackFunctions {
		cb := &s.CallbackFunctions[i]
		if r.Includes(cb.Name, cb.Tags, f) {
			out = append(out, cb)
		}
	}
	return out
}
