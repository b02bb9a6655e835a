package idl

import (
	"strings"

	"github.com/teranos/domgen/errors"
)

// Flavor selects the product variant being generated.
type Flavor int

const (
	// FlavorWeb is the browser platform without app-only extensions
	FlavorWeb Flavor = iota
	// FlavorWorker is the background-worker subset
	FlavorWorker
	// FlavorAll is the superset including app-only extensions
	FlavorAll
)

// Flavors lists every flavor in generation order
func Flavors() []Flavor {
	return []Flavor{FlavorWeb, FlavorWorker, FlavorAll}
}

// ParseFlavor accepts the flavor names used in config files and on the command line
func ParseFlavor(name string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "web", "dom":
		return FlavorWeb, nil
	case "worker", "webworker":
		return FlavorWorker, nil
	case "all":
		return FlavorAll, nil
	default:
		return 0, errors.Wrapf(errors.ErrUnknownFlavor, "%q (supported: web, worker, all)", name)
	}
}

func (f Flavor) String() string {
	switch f {
	case FlavorWeb:
		return "web"
	case FlavorWorker:
		return "worker"
	case FlavorAll:
		return "all"
	default:
		return "unknown"
	}
}

// MarshalText renders the flavor name
func (f Flavor) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a flavor name
func (f *Flavor) UnmarshalText(text []byte) error {
	parsed, err := ParseFlavor(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// IgnoresDOMTypes reports whether document/window/element types collapse to any
func (f Flavor) IgnoresDOMTypes() bool {
	return f == FlavorWorker
}

// IncludesWeb reports whether web-only override signatures are emitted
func (f Flavor) IncludesWeb() bool {
	return f == FlavorWeb || f == FlavorAll
}

// GlobalPolluter names the interface whose members are flattened to the top level
func (f Flavor) GlobalPolluter() string {
	if f == FlavorWorker {
		return "WorkerGlobalScope"
	}
	return "Window"
}

// KeepsTagged reports whether an entity carrying tags is part of this flavor.
// Only the web flavor drops app-only entities.
func (f Flavor) KeepsTagged(tags []string) bool {
	if f != FlavorWeb {
		return true
	}
	return !HasTag(tags, TagMSAppOnly) && !HasTag(tags, TagWinPhoneOnly)
}
