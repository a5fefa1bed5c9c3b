package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/ouruniverse/internal/journey"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, SourceEmbedded, cfg.ContentSource)
	assert.Equal(t, "rania", cfg.LoginUsername)
	assert.Equal(t, "25525", cfg.LoginPassword)
	assert.Equal(t, 2*time.Hour, cfg.SessionTimeout)
	assert.Equal(t, journey.DefaultPacing(), cfg.Pacing.Journey())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONTENT_SOURCE", "sqlite")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ROSE_TARGET", "3")
	t.Setenv("SPAWN_INTERVAL", "250ms")
	t.Setenv("POP_LIFETIME", "1s")
	t.Setenv("CONFETTI_LIFETIME", "5s")
	t.Setenv("ROSE_FALL_MIN", "2s")
	t.Setenv("ROSE_FALL_SPREAD", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceSQLite, cfg.ContentSource)
	assert.Equal(t, "DEBUG", cfg.LogLevel.String())

	p := cfg.Pacing.Journey()
	assert.Equal(t, 3, p.RoseTarget)
	assert.Equal(t, 250*time.Millisecond, p.SpawnInterval)
	assert.Equal(t, time.Second, p.PopLifetime)
	assert.Equal(t, 5*time.Second, p.ConfettiLifetime)
	assert.Equal(t, 2*time.Second, p.RoseFallMin)
	assert.Equal(t, 500*time.Millisecond, p.RoseFallSpread)
	assert.Equal(t, journey.DefaultPacing().AnswerDelay, p.AnswerDelay)
}

func TestLoadRejects(t *testing.T) {
	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("CONTENT_SOURCE", "redis")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("blank username", func(t *testing.T) {
		t.Setenv("LOGIN_USERNAME", "   ")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("zero session timeout", func(t *testing.T) {
		t.Setenv("SESSION_TIMEOUT", "0s")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("negative session timeout", func(t *testing.T) {
		t.Setenv("SESSION_TIMEOUT", "-5m")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SESSION_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}
