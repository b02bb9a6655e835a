package visibility

import (
	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/typemap"
)

// Indexers returns the index signatures of iface.
//
// A getter with exactly one parameter qualifies. A number key always yields
// an indexer. A string key yields one only when the getter returns any or the
// same type as every other method and property of the interface, because a
// string index signature constrains every member; otherwise it is dropped.
func (r *Resolver) Indexers(iface *idl.Interface, f idl.Flavor, scope idl.Scope) []Indexer {
	b := r.render(f)

	var candidates []idl.Method
	for _, ms := range [][]idl.Method{iface.Methods, iface.AnonymousMethods} {
		for _, m := range ms {
			if m.Getter && len(m.Params) == 1 && scope.Matches(m.Static) && f.KeepsTagged(m.Tags) {
				candidates = append(candidates, m)
			}
		}
	}

	var out []Indexer
	seen := make(map[string]bool)
	for i, m := range candidates {
		key := b.Render(m.Params[0].Type)
		if seen[key] {
			continue
		}
		value := b.RenderNullable(m.Type)
		switch {
		case typemap.IsNumeric(key):
		case key == "string" && (value == typemap.Any || r.consistent(iface, b, &candidates[i], value)):
		default:
			continue
		}
		seen[key] = true
		out = append(out, Indexer{KeyName: m.Params[0].Name, KeyType: key, ValueType: value})
	}
	return out
}

// consistent reports whether every method, anonymous method and property of
// iface other than self has type value
func (r *Resolver) consistent(iface *idl.Interface, b typemap.Bound, self *idl.Method, value string) bool {
	for _, ms := range [][]idl.Method{iface.Methods, iface.AnonymousMethods} {
		for _, m := range ms {
			if sameMethod(&m, self) {
				continue
			}
			if b.RenderNullable(m.Type) != value {
				return false
			}
		}
	}
	for _, p := range iface.Properties {
		if b.RenderNullable(p.Type) != value {
			return false
		}
	}
	return true
}

func sameMethod(a, b *idl.Method) bool {
	if a.Name != b.Name || a.Getter != b.Getter || a.Static != b.Static || len(a.Params) != len(b.Params) {
		return false
	}
	if a.Type.String() != b.Type.String() {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Name != b.Params[i].Name || a.Params[i].Type.String() != b.Params[i].Type.String() {
			return false
		}
	}
	return true
}
