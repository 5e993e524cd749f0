package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, parseLevel(" warning "))
	require.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestBuild_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Writer: &buf})

	l.Debug().Msg("hidden")
	l.Info().Int("sum", 7).Msg("rolled")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"sum":7`)
	require.Contains(t, out, `"message":"rolled"`)
}
