package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/domgen/idl"
)

func TestIndexers(t *testing.T) {
	r := newFixtureResolver(t)

	tests := []struct {
		iface string
		want  []Indexer
	}{
		{"NodeList", []Indexer{{KeyName: "index", KeyType: "number", ValueType: "Node"}}},
		// namedItem conflicts with length: number
		{"HTMLCollection", []Indexer{{KeyName: "index", KeyType: "number", ValueType: "Element"}}},
		{"DOMStringMap", []Indexer{{KeyName: "name", KeyType: "string", ValueType: "string"}}},
		{"Storage", []Indexer{{KeyName: "key", KeyType: "string", ValueType: "any"}}},
		{"Node", nil},
	}
	for _, tt := range tests {
		t.Run(tt.iface, func(t *testing.T) {
			got := r.Indexers(mustInterface(t, r, tt.iface), idl.FlavorWeb, idl.InstanceOnly)
			assert.Equal(t, tt.want, got)
		})
	}
}
