package idl

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/teranos/domgen/errors"
)

// LoadSchema reads and validates a JSON schema file
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.WithHint(errors.Wrapf(errors.ErrNotFound, "schema %s", path),
			"set input.schema in domgen.toml or DOMGEN_INPUT_SCHEMA")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema %s", path)
	}
	s, err := DecodeSchema(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load schema %s", path)
	}
	return s, nil
}

// DecodeSchema decodes and validates a JSON schema document
func DecodeSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the structural invariants the compiler relies on:
// unique interface names and at most one variadic parameter, always last.
func Validate(s *Schema) error {
	seen := make(map[string]bool, len(s.Interfaces))
	for i := range s.Interfaces {
		iface := &s.Interfaces[i]
		if iface.Name == "" {
			return errors.NewInvalidInputError("interface #%d has no name", i)
		}
		if seen[iface.Name] {
			return errors.NewInvalidInputError("duplicate interface %s", iface.Name)
		}
		seen[iface.Name] = true

		for _, m := range iface.Methods {
			if err := validateParams(iface.Name, m.Name, m.Params); err != nil {
				return err
			}
		}
		for _, m := range iface.AnonymousMethods {
			if err := validateParams(iface.Name, "<anonymous>", m.Params); err != nil {
				return err
			}
		}
		for _, c := range iface.Constructors {
			if err := validateParams(iface.Name, "constructor", c.Params); err != nil {
				return err
			}
		}
		if nc := iface.NamedConstructor; nc != nil {
			if err := validateParams(iface.Name, nc.Name, nc.Params); err != nil {
				return err
			}
		}
	}
	for _, cb := range s.CallbackFunctions {
		if err := validateParams(cb.Name, "callback", cb.Params); err != nil {
			return err
		}
	}
	return nil
}

func validateParams(owner, member string, params []Param) error {
	for i, p := range params {
		if p.Variadic && i != len(params)-1 {
			return errors.NewInvalidInputError("%s.%s: variadic parameter %s is not last", owner, member, p.Name)
		}
	}
	return nil
}
