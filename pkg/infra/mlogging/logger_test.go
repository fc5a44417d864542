// 指示: miu200521358
package mlogging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(LogLevelDebug))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestSetDefaultLoggerSwapsAndRestores(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	previous := SetDefaultLogger(NewLogger(buf, LogLevelWarn))
	t.Cleanup(func() {
		RestoreDefaultLogger(previous)
	})

	DefaultLogger().Info().Msg("hidden")
	DefaultLogger().Warn().Str("track", "hips.scale").Msg("dropped")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "dropped")
	assert.Contains(t, out, "hips.scale")

	RestoreDefaultLogger(previous)
	require.Same(t, previous, DefaultLogger())
}
