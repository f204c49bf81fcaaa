package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Eursukkul/shareit/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := config.AppConfig{Name: "shareit", Environment: "test"}

	t.Run("DefaultsToInfo", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{}, app)
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("InvalidLevelFallsBack", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "loud"}, app)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("ConsoleStderr", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{Level: "warn", Output: "stderr", Format: "console"}, app)
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("FileWritesJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shareit.log")
		logger, closer, err := New(config.LoggingConfig{Level: "debug", Output: "file", FilePath: path}, app)
		require.NoError(t, err)
		require.NotNil(t, closer)

		logger.Info().Uint("booking_id", 7).Msg("booking created")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		line := string(data)
		assert.True(t, strings.Contains(line, `"booking_id":7`))
		assert.True(t, strings.Contains(line, `"app":"shareit"`))
	})

	t.Run("FileMissingPath", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "file"}, app)
		assert.Error(t, err)
	})
}
