package logger

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(str, "")
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{"JSON output mode", true, VerbosityInfo},
		{"Console output mode", false, VerbosityUser},
		{"Console debug mode", false, VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, VerbosityToLevel(tt.verbosity) == zapcore.DebugLevel,
				Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
		})
	}

	Logger = zap.NewNop().Sugar()
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, "Info (-v)", LevelName(1))
}

func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2024, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "emit",
		Message:    "interfaces written",
	}

	buf, err := encoder.EncodeEntry(entry, []zapcore.Field{
		zap.String(FieldFlavor, "web"),
		zap.Int(FieldCount, 412),
		zap.Bool("partial", false),
		zap.Strings("skipped", []string{"A", "B"}),
	})
	require.NoError(t, err)

	out := stripANSI(buf.String())
	assert.Contains(t, out, "13:04:35")
	assert.Contains(t, out, "emit")
	assert.Contains(t, out, "interfaces written")
	assert.Contains(t, out, "flavor=web")
	assert.Contains(t, out, "count=412")
	assert.Contains(t, out, "partial=false")
	assert.Contains(t, out, "skipped=")
	assert.NotContains(t, out, "WARN")
}

func TestMinimalEncoderShowsWarnLevel(t *testing.T) {
	SetTheme("gruvbox")
	defer SetTheme("everforest")

	buf, err := newMinimalEncoder().EncodeEntry(zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Now(),
		Message: "unknown type degraded to any",
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, stripANSI(buf.String()), "WARN  unknown type degraded to any")
}
