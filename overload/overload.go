// Package overload expands source parameter lists into concrete call signatures.
//
// TypeScript requires optional parameters to form a contiguous suffix while the
// source schema allows them anywhere, so a parameter list is expanded into one
// signature per valid call arity. Source entries that share a rendered
// parameter list are merged and their return types unioned.
package overload

import (
	"sort"
	"strings"

	"github.com/teranos/domgen/idl"
)

// anyType absorbs a union of return types
const anyType = "any"

// Renderer renders source type expressions. Implemented by typemap.
type Renderer interface {
	// Render renders a type, ignoring nullability
	Render(idl.TypeExpr) string
	// RenderNullable renders a type with " | null" when nullable
	RenderNullable(idl.TypeExpr) string
}

// Entry is one source declaration of a method, constructor or callback.
type Entry struct {
	Params []idl.Param
	Return idl.TypeExpr
}

// Param is a rendered parameter
type Param struct {
	Name     string
	Type     string
	Optional bool
	Rest     bool
}

// String renders "name: type", "name?: type" or "...name: type"
func (p Param) String() string {
	switch {
	case p.Rest:
		return "..." + p.Name + ": " + p.Type
	case p.Optional:
		return p.Name + "?: " + p.Type
	default:
		return p.Name + ": " + p.Type
	}
}

// Signature is one concrete call signature
type Signature struct {
	// TypeParams is the text between angle brackets, e.g. "K extends keyof WindowEventMap"
	TypeParams string
	Params     []Param
	// Returns lists distinct rendered return types in first-seen order
	Returns []string
}

// ParamList renders the parameter list without parentheses
func (s Signature) ParamList() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// ReturnType renders the union of return types. An any member absorbs the union.
func (s Signature) ReturnType() string {
	for _, r := range s.Returns {
		if r == anyType {
			return anyType
		}
	}
	return strings.Join(s.Returns, " | ")
}

// Render renders "name<T>(params): ret" with the given name (empty for call signatures)
func (s Signature) Render(name string) string {
	var sb strings.Builder
	sb.WriteString(name)
	if s.TypeParams != "" {
		sb.WriteString("<" + s.TypeParams + ">")
	}
	sb.WriteString("(" + s.ParamList() + ")")
	if len(s.Returns) > 0 {
		sb.WriteString(": " + s.ReturnType())
	}
	return sb.String()
}

// Key identifies a signature by its rendered parameter types and markers.
// Parameter names do not take part: (x: number) and (y: number) are the same overload.
func (s Signature) Key() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		switch {
		case p.Rest:
			parts[i] = "..." + p.Type
		case p.Optional:
			parts[i] = "?" + p.Type
		default:
			parts[i] = p.Type
		}
	}
	return s.TypeParams + "(" + strings.Join(parts, ", ") + ")"
}

// addReturn records a return type unless already present
func (s *Signature) addReturn(t string) {
	for _, r := range s.Returns {
		if r == t {
			return
		}
	}
	s.Returns = append(s.Returns, t)
}

// Expand produces the overload set for a list of source entries.
//
// Output is ordered by increasing arity, then by declaration order (entry
// order, then shorter expansion first), so identical input always yields
// identical output.
func Expand(entries []Entry, r Renderer) []Signature {
	type candidate struct {
		sig   Signature
		order int
	}

	var candidates []*candidate
	byKey := make(map[string]*candidate)
	order := 0

	for _, e := range entries {
		ret := r.RenderNullable(e.Return)
		for _, params := range shapes(e.Params, r) {
			sig := Signature{Params: params}
			key := sig.Key()
			if c, ok := byKey[key]; ok {
				c.sig.addReturn(ret)
				continue
			}
			sig.Returns = []string{ret}
			c := &candidate{sig: sig, order: order}
			order++
			byKey[key] = c
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ai, aj := len(candidates[i].sig.Params), len(candidates[j].sig.Params)
		if ai != aj {
			return ai < aj
		}
		return candidates[i].order < candidates[j].order
	})

	out := make([]Signature, len(candidates))
	for i, c := range candidates {
		out[i] = c.sig
	}
	return out
}

// ExpandParams expands a single parameter list without return types
// (constructors, where the caller supplies the constructed type).
func ExpandParams(params []idl.Param, r Renderer) [][]Param {
	return shapes(params, r)
}

// shapes expands one parameter list into its concrete parameter lists.
//
// Without a variadic parameter, every arity from the last required parameter up
// to the full list is a valid call, and each becomes a list of required
// parameters. With a trailing variadic parameter a single list is produced:
// the variadic parameter becomes a rest array and trailing optional
// parameters keep their optional marker. A nullable parameter accepts null;
// the rest element never does.
func shapes(params []idl.Param, r Renderer) [][]Param {
	n := len(params)
	if n > 0 && params[n-1].Variadic {
		return [][]Param{restShape(params, r)}
	}

	minArity := 0
	for i, p := range params {
		if !p.Optional {
			minArity = i + 1
		}
	}

	rendered := make([]Param, n)
	for i, p := range params {
		rendered[i] = Param{Name: p.Name, Type: r.RenderNullable(p.Type)}
	}

	out := make([][]Param, 0, n-minArity+1)
	for arity := minArity; arity <= n; arity++ {
		out = append(out, append([]Param(nil), rendered[:arity]...))
	}
	return out
}

func restShape(params []idl.Param, r Renderer) []Param {
	n := len(params)

	// Optional markers are kept only on the contiguous run before the rest
	// parameter; an optional parameter followed by a required one is required.
	optionalFrom := n - 1
	for optionalFrom > 0 && params[optionalFrom-1].Optional {
		optionalFrom--
	}

	out := make([]Param, n)
	for i, p := range params[:n-1] {
		out[i] = Param{Name: p.Name, Type: r.RenderNullable(p.Type), Optional: i >= optionalFrom}
	}
	last := params[n-1]
	out[n-1] = Param{Name: last.Name, Type: r.Render(idl.ArrayOf(last.Type)), Rest: true}
	return out
}
