// Package version holds build information stamped into the domgen binary,
// together with the flavors and input formats the binary understands.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/teranos/domgen/idl"
)

// Build information. These variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/teranos/domgen/version.Version=v0.3.0"
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// InputFormats lists the file formats accepted for each generator input
type InputFormats struct {
	Schema  []string `json:"schema"`
	Patches []string `json:"patches"`
	Tables  []string `json:"tables"`
}

// Inputs are the formats idl.LoadSchema, patch.LoadFile and lookup.Load read
var Inputs = InputFormats{
	Schema:  []string{"json"},
	Patches: []string{"json", "yaml"},
	Tables:  []string{"yaml"},
}

// Info describes a domgen build
type Info struct {
	Version    string       `json:"version"`
	CommitHash string       `json:"commit_hash"`
	BuildTime  string       `json:"build_time"`
	GoVersion  string       `json:"go_version"`
	Platform   string       `json:"platform"`
	Flavors    []string     `json:"flavors"`
	Inputs     InputFormats `json:"inputs"`
}

// Get returns the information of the running binary
func Get() Info {
	flavors := idl.Flavors()
	names := make([]string, len(flavors))
	for i, f := range flavors {
		names[i] = f.String()
	}
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Flavors:    names,
		Inputs:     Inputs,
	}
}

// String returns the one-line version banner
func (i Info) String() string {
	return fmt.Sprintf("domgen %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the abbreviated commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Supports renders the flavors and input formats, e.g.
// "flavors web, worker, all; schema json; patches json, yaml; tables yaml"
func (i Info) Supports() string {
	return fmt.Sprintf("flavors %s; schema %s; patches %s; tables %s",
		strings.Join(i.Flavors, ", "),
		strings.Join(i.Inputs.Schema, ", "),
		strings.Join(i.Inputs.Patches, ", "),
		strings.Join(i.Inputs.Tables, ", "))
}
