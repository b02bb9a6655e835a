// Package idl holds the in-memory model of a web-platform API surface:
// interfaces, dictionaries, enums, callback functions and their members.
//
// All entities are read-only once loaded. Derived structures (indexes,
// dependency graphs, rendered signatures) are computed by other packages and
// never written back.
package idl

import (
	"strings"

	"github.com/teranos/domgen/errors"
)

// MemberKind identifies the kind of a member for patch lookup and resolution.
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindProperty
	KindConstant
	KindEventHandler
	KindConstructor
	KindCallback
)

var memberKindNames = map[MemberKind]string{
	KindMethod:       "method",
	KindProperty:     "property",
	KindConstant:     "constant",
	KindEventHandler: "eventhandler",
	KindConstructor:  "constructor",
	KindCallback:     "callback",
}

func (k MemberKind) String() string {
	if s, ok := memberKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the kind as its lower-case name
func (k MemberKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name, case-insensitively
func (k *MemberKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, s := range memberKindNames {
		if s == name {
			*k = kind
			return nil
		}
	}
	return errors.NewInvalidInputError("unknown member kind %q", string(text))
}

// Scope selects which members of an interface an emission pass considers.
type Scope int

const (
	// InstanceOnly: non-static members, declared on the interface type
	InstanceOnly Scope = iota
	// StaticOnly: static members plus constants, declared on the constructor object
	StaticOnly
	// All: every member regardless of static flag; used for the global object only
	All
)

func (s Scope) String() string {
	switch s {
	case InstanceOnly:
		return "instance"
	case StaticOnly:
		return "static"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// Matches reports whether a member with the given static flag belongs to the scope
func (s Scope) Matches(static bool) bool {
	switch s {
	case All:
		return true
	case StaticOnly:
		return static
	default:
		return !static
	}
}

// Tags that exclude an interface or member from the web flavor.
const (
	TagMSAppOnly    = "MSAppOnly"
	TagWinPhoneOnly = "WinPhoneOnly"
)

// Param is a single operation parameter.
// A variadic parameter's Type is its element type; at most one parameter is
// variadic and it is always last.
type Param struct {
	Name     string   `json:"name"`
	Type     TypeExpr `json:"type"`
	Optional bool     `json:"optional,omitempty"`
	Variadic bool     `json:"variadic,omitempty"`
}

// Method is an operation. An empty Name marks an anonymous method
// (a call signature or a getter/setter identified by shape).
type Method struct {
	Name   string   `json:"name,omitempty"`
	Type   TypeExpr `json:"type"`
	Params []Param  `json:"params,omitempty"`
	Static bool     `json:"static,omitempty"`
	Getter bool     `json:"getter,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Property is an attribute. EventHandler is set (to the event name) when the
// property is an "on<event>" handler attribute.
type Property struct {
	Name         string   `json:"name"`
	Type         TypeExpr `json:"type"`
	ReadOnly     bool     `json:"readonly,omitempty"`
	Static       bool     `json:"static,omitempty"`
	EventHandler string   `json:"eventHandler,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// IsEventHandler reports whether the property is an event handler attribute
func (p Property) IsEventHandler() bool {
	return p.EventHandler != ""
}

// Constant is a const member.
type Constant struct {
	Name  string   `json:"name"`
	Type  TypeExpr `json:"type"`
	Value string   `json:"value,omitempty"`
}

// Constructor is one constructor overload.
type Constructor struct {
	Params []Param `json:"params,omitempty"`
}

// NamedConstructor is a global factory such as `Image` for HTMLImageElement.
type NamedConstructor struct {
	Name   string  `json:"name"`
	Params []Param `json:"params,omitempty"`
}

// Interface is an interface declaration.
type Interface struct {
	Name              string            `json:"name"`
	Extends           string            `json:"extends,omitempty"`
	Implements        []string          `json:"implements,omitempty"`
	Properties        []Property        `json:"properties,omitempty"`
	Methods           []Method          `json:"methods,omitempty"`
	AnonymousMethods  []Method          `json:"anonymousMethods,omitempty"`
	Constants         []Constant        `json:"constants,omitempty"`
	Static            bool              `json:"static,omitempty"`
	NoInterfaceObject bool              `json:"noInterfaceObject,omitempty"`
	Constructors      []Constructor     `json:"constructors,omitempty"`
	NamedConstructor  *NamedConstructor `json:"namedConstructor,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
}

// Parents returns the extended interface (if any, and not Object) followed by
// the implemented interfaces, in declaration order.
func (i *Interface) Parents() []string {
	var parents []string
	if i.Extends != "" && i.Extends != "Object" {
		parents = append(parents, i.Extends)
	}
	return append(parents, i.Implements...)
}

// HasInstanceMethods reports whether any named method is non-static
func (i *Interface) HasInstanceMethods() bool {
	for _, m := range i.Methods {
		if !m.Static {
			return true
		}
	}
	return false
}

// DictionaryMember is a dictionary field.
type DictionaryMember struct {
	Name     string   `json:"name"`
	Type     TypeExpr `json:"type"`
	Required bool     `json:"required,omitempty"`
}

// Dictionary is a dictionary declaration.
type Dictionary struct {
	Name    string             `json:"name"`
	Extends string             `json:"extends,omitempty"`
	Members []DictionaryMember `json:"members,omitempty"`
	Tags    []string           `json:"tags,omitempty"`
}

// Enum is an enumeration. Enumerations are rendered as plain strings.
type Enum struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

// CallbackFunction is a callback type, rendered as a callable interface.
type CallbackFunction struct {
	Name   string   `json:"name"`
	Type   TypeExpr `json:"type"`
	Params []Param  `json:"params,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Schema is the complete loaded API surface.
type Schema struct {
	Interfaces        []Interface        `json:"interfaces,omitempty"`
	CallbackInterface *Interface         `json:"callbackInterface,omitempty"`
	Dictionaries      []Dictionary       `json:"dictionaries,omitempty"`
	Enums             []Enum             `json:"enums,omitempty"`
	CallbackFunctions []CallbackFunction `json:"callbackFunctions,omitempty"`

	// Dependencies optionally lists, per interface, the interfaces whose members
	// are flattened into the global object. Derived from inheritance when nil.
	Dependencies map[string][]string `json:"dependencies,omitempty"`
}

// HasTag reports whether tags contains tag
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
