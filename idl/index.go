package idl

// Index provides name lookups over a schema. It is built once per schema.
type Index struct {
	schema       *Schema
	interfaces   map[string]*Interface
	dictionaries map[string]*Dictionary
	enums        map[string]*Enum
	callbacks    map[string]*CallbackFunction
}

// NewIndex indexes every named entity of s
func NewIndex(s *Schema) *Index {
	x := &Index{
		schema:       s,
		interfaces:   make(map[string]*Interface, len(s.Interfaces)+1),
		dictionaries: make(map[string]*Dictionary, len(s.Dictionaries)),
		enums:        make(map[string]*Enum, len(s.Enums)),
		callbacks:    make(map[string]*CallbackFunction, len(s.CallbackFunctions)),
	}
	for i := range s.Interfaces {
		x.interfaces[s.Interfaces[i].Name] = &s.Interfaces[i]
	}
	if s.CallbackInterface != nil {
		x.interfaces[s.CallbackInterface.Name] = s.CallbackInterface
	}
	for i := range s.Dictionaries {
		x.dictionaries[s.Dictionaries[i].Name] = &s.Dictionaries[i]
	}
	for i := range s.Enums {
		x.enums[s.Enums[i].Name] = &s.Enums[i]
	}
	for i := range s.CallbackFunctions {
		x.callbacks[s.CallbackFunctions[i].Name] = &s.CallbackFunctions[i]
	}
	return x
}

// Schema returns the indexed schema
func (x *Index) Schema() *Schema { return x.schema }

// Interface looks up an interface (including the callback interface) by name
func (x *Index) Interface(name string) (*Interface, bool) {
	i, ok := x.interfaces[name]
	return i, ok
}

// Dictionary looks up a dictionary by name
func (x *Index) Dictionary(name string) (*Dictionary, bool) {
	d, ok := x.dictionaries[name]
	return d, ok
}

func (x *Index) IsInterface(name string) bool {
	_, ok := x.interfaces[name]
	return ok
}

func (x *Index) IsDictionary(name string) bool {
	_, ok := x.dictionaries[name]
	return ok
}

func (x *Index) IsEnum(name string) bool {
	_, ok := x.enums[name]
	return ok
}

func (x *Index) IsCallback(name string) bool {
	_, ok := x.callbacks[name]
	return ok
}
