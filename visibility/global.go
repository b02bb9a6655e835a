package visibility

import (
	"github.com/teranos/domgen/errors"
	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/logger"
)

// BuildDependencies derives the flattening graph from inheritance: each
// interface depends on its transitive extends chain, then on the interfaces
// it directly implements. An extends loop ends the chain where it closes, so
// two interfaces extending each other depend on each other.
func BuildDependencies(index *idl.Index) map[string][]string {
	s := index.Schema()
	deps := make(map[string][]string, len(s.Interfaces))
	for i := range s.Interfaces {
		iface := &s.Interfaces[i]
		seen := map[string]bool{iface.Name: true}
		var chain []string
		for cur := iface.Extends; cur != "" && cur != "Object" && !seen[cur]; {
			seen[cur] = true
			chain = append(chain, cur)
			parent, ok := index.Interface(cur)
			if !ok {
				break
			}
			cur = parent.Extends
		}
		deps[iface.Name] = append(chain, iface.Implements...)
	}
	return deps
}

// Flattened is one interface's contribution to the global scope
type Flattened struct {
	Interface string
	Members   Members
}

// GlobalScope is the flattened global declaration set of a flavor
type GlobalScope struct {
	Root       string
	Interfaces []Flattened
	// Listeners are the root's addEventListener overloads
	Listeners []string
}

// Global flattens the global polluter of flavor f: its own members and those
// of every interface reachable through the dependency graph, depth first in
// dependency order, each interface exactly once. A cycle in the graph is a
// fatal configuration error.
func (r *Resolver) Global(f idl.Flavor) (GlobalScope, error) {
	root := f.GlobalPolluter()
	gs := GlobalScope{Root: root}
	rootIface, ok := r.index.Interface(root)
	if !ok || !r.Includes(root, rootIface.Tags, f) {
		return gs, nil
	}

	done := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		if onStack[name] {
			cycle := append([]string(nil), path...)
			return errors.NewCycleError(append(cycle, name))
		}
		if done[name] {
			return nil
		}
		iface, ok := r.index.Interface(name)
		if !ok || !r.Includes(name, iface.Tags, f) {
			r.log.Debugw("skipping dependency", logger.FieldInterface, name, logger.FieldFlavor, f.String())
			done[name] = true
			return nil
		}

		onStack[name] = true
		path = append(path, name)

		m, err := r.Members(iface, f, idl.All)
		if err != nil {
			return err
		}
		if name == root {
			m = rootSpecials(m)
		}
		gs.Interfaces = append(gs.Interfaces, Flattened{Interface: name, Members: m})

		for _, dep := range r.deps[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		onStack[name] = false
		done[name] = true
		return nil
	}

	if err := visit(root); err != nil {
		return GlobalScope{}, err
	}
	gs.Listeners = r.Listeners(rootIface)
	return gs, nil
}

// rootSpecials adjusts the root's own members: a global "name" binding would
// clash with lib declarations so it becomes never, and toString is re-declared.
func rootSpecials(m Members) Members {
	for i, p := range m.Properties {
		if p.Name == "name" {
			m.Properties[i] = Property{Name: "name", Type: "never", Const: true}
		}
	}
	m.Methods = append(m.Methods, Method{Name: "toString", Signatures: []string{"toString(): string"}})
	return m
}
