package logutils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagHook struct{}

func (tagHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("tag", "hooked")
}

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "refract.log")

	logger, closer, err := New("info", file, tagHook{})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"message":"visible"`)
	assert.Contains(t, out, `"tag":"hooked"`)
	assert.NotContains(t, out, "hidden")
}

func TestNewAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "refract.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New("info", file)
		require.NoError(t, err)
		logger.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestHeldWriter(t *testing.T) {
	h := &heldWriter{}
	_, err := h.Write([]byte("one\n"))
	require.NoError(t, err)
	_, err = h.Write([]byte("two\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, h.Flush(&out))
	assert.Equal(t, "one\ntwo\n", out.String())

	out.Reset()
	require.NoError(t, h.Flush(&out))
	assert.Empty(t, out.String(), "flush empties the buffer")
}
