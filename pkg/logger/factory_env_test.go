package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	for _, env := range []environment.Environment{environment.Production, environment.Staging} {
		t.Run(string(env)+" logs json at info", func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(env, "tenantgate"), logger.WithOutput(buf))

			log.Debug("hidden")
			assert.Empty(t, buf.String())

			log.Info("routed")
			entry := decodeLine(t, buf)
			assert.Equal(t, string(env), entry["env"])
			assert.Equal(t, "tenantgate", entry["service"])
		})
	}

	t.Run("unset environment logs text at debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithEnvironment("", "tenantgate"), logger.WithOutput(buf)).Debug("routing decision")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "env=development")
		assert.Contains(t, out, "service=tenantgate")
	})

	t.Run("later options override the preset", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(
			logger.WithEnvironment(environment.Development, ""),
			logger.WithFormat(logger.FormatJSON),
			logger.WithOutput(buf),
		).Info("x")

		entry := decodeLine(t, buf)
		assert.Equal(t, "development", entry["env"])
		assert.NotContains(t, entry, "service")
	})
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	t.Run("empty keeps the preset", func(t *testing.T) {
		t.Parallel()
		opts, err := logger.Config{}.Options()
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("level and format", func(t *testing.T) {
		t.Parallel()
		opts, err := logger.Config{Level: "warn", Format: "JSON"}.Options()
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		log := logger.New(append([]logger.Option{
			logger.WithEnvironment(environment.Development, "tenantgate"),
			logger.WithOutput(buf),
		}, opts...)...)

		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decodeLine(t, buf)["msg"])
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		_, err := logger.Config{Level: "loud"}.Options()
		assert.ErrorIs(t, err, logger.ErrInvalidConfig)

		_, err = logger.Config{Format: "xml"}.Options()
		assert.ErrorIs(t, err, logger.ErrInvalidConfig)
	})

	t.Run("numeric offsets parse", func(t *testing.T) {
		t.Parallel()
		opts, err := logger.Config{Level: "debug-4"}.Options()
		require.NoError(t, err)
		buf := &bytes.Buffer{}
		logger.New(append([]logger.Option{logger.WithOutput(buf)}, opts...)...).Log(t.Context(), slog.LevelDebug-4, "trace")
		assert.Equal(t, "trace", decodeLine(t, buf)["msg"])
	})
}
