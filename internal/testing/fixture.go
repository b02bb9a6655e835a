// Package testing provides a small in-memory API surface shared by the
// package tests: a schema, patch directives and lookup tables that exercise
// every resolution path.
package testing

import (
	_ "embed"
	"testing"

	"github.com/teranos/domgen/idl"
	"github.com/teranos/domgen/lookup"
	"github.com/teranos/domgen/patch"
)

var (
	//go:embed testdata/schema.json
	schemaJSON []byte

	//go:embed testdata/patches.yaml
	patchesYAML []byte

	//go:embed testdata/tables.yaml
	tablesYAML []byte
)

// Schema decodes the fixture schema. Each call returns a fresh copy.
func Schema(t *testing.T) *idl.Schema {
	t.Helper()
	s, err := idl.DecodeSchema(schemaJSON)
	if err != nil {
		t.Fatalf("Failed to decode fixture schema: %v", err)
	}
	return s
}

// Patches decodes the fixture patch table
func Patches(t *testing.T) *patch.Table {
	t.Helper()
	doc, err := patch.Decode(patchesYAML, ".yaml")
	if err != nil {
		t.Fatalf("Failed to decode fixture patches: %v", err)
	}
	return patch.NewTable(doc)
}

// Tables decodes the fixture lookup tables
func Tables(t *testing.T) *lookup.Tables {
	t.Helper()
	tables, err := lookup.Decode(tablesYAML)
	if err != nil {
		t.Fatalf("Failed to decode fixture tables: %v", err)
	}
	return tables
}

// SchemaJSON returns the raw fixture schema
func SchemaJSON() []byte { return schemaJSON }

// PatchesYAML returns the raw fixture patches
func PatchesYAML() []byte { return patchesYAML }

// TablesYAML returns the raw fixture lookup tables
func TablesYAML() []byte { return tablesYAML }
