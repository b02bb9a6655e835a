package patch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/teranos/domgen/errors"
)

// LoadFiles reads every patch file and merges them into one table.
// Missing optional files are the caller's concern; every path given must exist.
func LoadFiles(paths ...string) (*Table, error) {
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		doc, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return NewTable(docs...), nil
}

// LoadFile reads a JSON or YAML patch document, chosen by file extension
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Wrapf(err, "failed to read patch file %s", path)
	}

	doc, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Document{}, errors.Wrapf(err, "failed to parse patch file %s", path)
	}
	return doc, nil
}

// Decode parses a patch document. ext selects the format: ".yaml" and ".yml"
// are YAML, anything else JSON.
func Decode(data []byte, ext string) (Document, error) {
	var doc Document
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&doc); err == io.EOF {
			err = nil
		}
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return doc, nil
}
