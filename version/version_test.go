package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	dev := Info{CommitHash: "abc1234def", BuildTime: "2026-01-01", Version: "dev"}
	assert.Equal(t, "domgen dev (commit abc1234, built 2026-01-01)", dev.String())

	tagged := Info{CommitHash: "abc1234def", BuildTime: "2026-01-01", Version: "v0.3.0"}
	assert.Equal(t, "domgen v0.3.0 (commit abc1234, built 2026-01-01)", tagged.String())
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "abc1234", Info{CommitHash: "abc1234def"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Equal(t, []string{"web", "worker", "all"}, info.Flavors)
	assert.Equal(t, "flavors web, worker, all; schema json; patches json, yaml; tables yaml", info.Supports())
}
