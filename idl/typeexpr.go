package idl

import (
	"html"
	"regexp"
	"strings"
)

// TypeShape is the syntactic shape of a type expression.
type TypeShape int

const (
	// ShapeName is a primitive or a reference to a named entity
	ShapeName TypeShape = iota
	// ShapeUnion is "A or B or ..."
	ShapeUnion
	// ShapeGeneric is "Name<Elem>"
	ShapeGeneric
	// ShapeArray is "Elem[]"
	ShapeArray
)

// TypeExpr is a parsed source type expression. Values are immutable; the
// constructors below and ParseType are the only ways to build one.
type TypeExpr struct {
	Shape    TypeShape
	Name     string     // ShapeName: the name; ShapeGeneric: the container name
	Elem     *TypeExpr  // ShapeGeneric, ShapeArray
	Branches []TypeExpr // ShapeUnion
	Nullable bool
}

// Named returns a name type expression
func Named(name string) TypeExpr {
	return TypeExpr{Shape: ShapeName, Name: name}
}

// Union returns a union of the given branches
func Union(branches ...TypeExpr) TypeExpr {
	return TypeExpr{Shape: ShapeUnion, Branches: branches}
}

// Generic returns Name<Elem>
func Generic(name string, elem TypeExpr) TypeExpr {
	return TypeExpr{Shape: ShapeGeneric, Name: name, Elem: &elem}
}

// ArrayOf returns Elem[]
func ArrayOf(elem TypeExpr) TypeExpr {
	return TypeExpr{Shape: ShapeArray, Elem: &elem}
}

// OrNull returns a copy of t marked nullable
func (t TypeExpr) OrNull() TypeExpr {
	t.Nullable = true
	return t
}

// IsZero reports whether t is the zero value (no type given)
func (t TypeExpr) IsZero() bool {
	return t.Shape == ShapeName && t.Name == "" && !t.Nullable
}

var genericPattern = regexp.MustCompile(`^(\w+)\s*<(.+)>$`)

// ParseType parses the raw schema grammar: "A or B", "(A or B)", "name<elem>",
// "name[]" and a trailing "?" for nullable. HTML-escaped angle brackets are
// accepted. Parsing never fails: anything that is not a union, generic or array
// is kept as a name and left for the mapper to judge.
func ParseType(raw string) TypeExpr {
	return parseType(html.UnescapeString(raw))
}

func parseType(s string) TypeExpr {
	s = strings.TrimSpace(s)

	nullable := false
	for strings.HasSuffix(s, "?") {
		nullable = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "?"))
	}

	var t TypeExpr
	switch {
	case enclosedInParens(s):
		t = parseType(s[1 : len(s)-1])
	case len(splitUnion(s)) > 1:
		parts := splitUnion(s)
		branches := make([]TypeExpr, 0, len(parts))
		for _, p := range parts {
			branches = append(branches, parseType(p))
		}
		t = Union(branches...)
	case genericPattern.MatchString(s):
		m := genericPattern.FindStringSubmatch(s)
		t = Generic(m[1], parseType(m[2]))
	case strings.HasSuffix(s, "[]"):
		t = ArrayOf(parseType(strings.TrimSuffix(s, "[]")))
	default:
		t = Named(s)
	}

	t.Nullable = t.Nullable || nullable
	return t
}

// enclosedInParens reports whether s is "(...)" with the first paren closed by the last
func enclosedInParens(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// splitUnion splits on " or " at nesting depth zero
func splitUnion(s string) []string {
	const sep = " or "
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ' ':
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				parts = append(parts, s[start:i])
				start = i + len(sep)
				i += len(sep) - 1
			}
		}
	}
	return append(parts, s[start:])
}

// String renders t back into the schema grammar
func (t TypeExpr) String() string {
	var s string
	switch t.Shape {
	case ShapeUnion:
		parts := make([]string, len(t.Branches))
		for i, b := range t.Branches {
			parts[i] = b.String()
		}
		s = "(" + strings.Join(parts, " or ") + ")"
	case ShapeGeneric:
		s = t.Name + "<" + t.Elem.String() + ">"
	case ShapeArray:
		s = t.Elem.String() + "[]"
	default:
		s = t.Name
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// MarshalText renders the expression in the schema grammar
func (t TypeExpr) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the schema grammar
func (t *TypeExpr) UnmarshalText(text []byte) error {
	*t = ParseType(string(text))
	return nil
}
