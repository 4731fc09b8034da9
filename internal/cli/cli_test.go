package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var out bytes.Buffer
		cfg, shouldExit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "manifests", cfg.ModulesPath)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("modules path from flag, shorthand, and positional", func(t *testing.T) {
		var out bytes.Buffer

		cfg, _, err := Parse([]string{"-modules-path", "a"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a", cfg.ModulesPath)

		cfg, _, err = Parse([]string{"-m", "b"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "b", cfg.ModulesPath)

		cfg, _, err = Parse([]string{"c"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "c", cfg.ModulesPath)
	})

	t.Run("routing flags", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-source", "file_path", "-target", "parts_list"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "file_path", cfg.Source)
		assert.Equal(t, "parts_list", cfg.Target)
	})

	t.Run("source without target is an exit error", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-source", "file_path"}, &out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-format", "xml"}, &out)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud"}, &out)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid log-level")
	})

	t.Run("help requests a clean exit", func(t *testing.T) {
		var out bytes.Buffer
		cfg, shouldExit, err := Parse([]string{"-h"}, &out)
		require.NoError(t, err)
		assert.Nil(t, cfg)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("unknown flag is an exit error", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-bogus"}, &out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})
}
