// Package lookup holds the static tables the compiler consumes as prebuilt
// data: tag names to element interfaces, event names to event interfaces, and
// the set of interfaces known to the worker flavor.
package lookup

import (
	"bytes"
	"io"
	"os"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/teranos/domgen/errors"
)

// TagName maps an element tag to its element interface
type TagName struct {
	Tag     string
	Element string
}

// Tables is the loaded set of lookup tables
type Tables struct {
	// TagNames is sorted by tag
	TagNames []TagName
	// EventTypes maps an event name (e.g. "click") to its event interface (e.g. "MouseEvent")
	EventTypes map[string]string
	// EventInterfaces optionally lists the event interface names for createEvent.
	// When empty it is derived from the schema.
	EventInterfaces []string
	// WorkerInterfaces is the set of interface, dictionary and callback names
	// available in the worker flavor
	WorkerInterfaces map[string]bool
}

// file is the on-disk YAML shape
type file struct {
	TagNames         map[string]string `yaml:"tagNames"`
	EventTypes       map[string]string `yaml:"eventTypes"`
	EventInterfaces  []string          `yaml:"eventInterfaces"`
	WorkerInterfaces []string          `yaml:"workerInterfaces"`
}

// New builds tables from plain maps. Tag names are sorted for deterministic output.
func New(tagNames map[string]string, eventTypes map[string]string, workerInterfaces []string) *Tables {
	t := &Tables{
		EventTypes:       make(map[string]string, len(eventTypes)),
		WorkerInterfaces: make(map[string]bool, len(workerInterfaces)),
	}
	for tag, element := range tagNames {
		t.TagNames = append(t.TagNames, TagName{Tag: tag, Element: element})
	}
	sort.Slice(t.TagNames, func(i, j int) bool { return t.TagNames[i].Tag < t.TagNames[j].Tag })
	for name, typ := range eventTypes {
		t.EventTypes[name] = typ
	}
	for _, name := range workerInterfaces {
		t.WorkerInterfaces[name] = true
	}
	return t
}

// Empty returns tables with no entries
func Empty() *Tables {
	return New(nil, nil, nil)
}

// Load reads lookup tables from a YAML file
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read lookup tables %s", path)
	}
	t, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load lookup tables %s", path)
	}
	return t, nil
}

// Decode parses lookup tables from YAML
func Decode(data []byte) (*Tables, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	t := New(f.TagNames, f.EventTypes, f.WorkerInterfaces)
	t.EventInterfaces = append(t.EventInterfaces, f.EventInterfaces...)
	return t, nil
}

// EventType returns the event interface for an event name
func (t *Tables) EventType(event string) (string, bool) {
	typ, ok := t.EventTypes[event]
	return typ, ok
}

// IsWorkerInterface reports whether name is available in the worker flavor
func (t *Tables) IsWorkerInterface(name string) bool {
	return t.WorkerInterfaces[name]
}

var lower = cases.Lower(language.Und)

// LowerTagNames returns the tag table with lower-cased tags, dropping tags
// that collide after lower-casing (first in sort order wins).
func (t *Tables) LowerTagNames() []TagName {
	seen := make(map[string]bool, len(t.TagNames))
	out := make([]TagName, 0, len(t.TagNames))
	for _, tn := range t.TagNames {
		tag := lower.String(tn.Tag)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, TagName{Tag: tag, Element: tn.Element})
	}
	return out
}

// DistinctEventTypes returns the sorted distinct event interfaces used by the event table
func (t *Tables) DistinctEventTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, typ := range t.EventTypes {
		if !seen[typ] {
			seen[typ] = true
			out = append(out, typ)
		}
	}
	sort.Strings(out)
	return out
}
