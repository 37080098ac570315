package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"Error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	setup(&buf, "cropupgrad-test", "info")

	log.Debug().Msg("hidden")
	log.Info().Str("crop", "Rice").Msg("predicted")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "cropupgrad-test")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "predicted")
	assert.Contains(t, out, "crop=Rice")
	assert.Contains(t, out, "logger_test.go:")
}
