package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080/student", cfg.Client.Endpoint)
	assert.Equal(t, 10, cfg.Client.PageSize)
	assert.Equal(t, []int{5, 10, 20, 50}, cfg.Client.PageSizes)
	assert.Equal(t, time.Duration(0), cfg.Client.Timeout)
	assert.Equal(t, 100, cfg.Students.MaxPageSize)
	assert.False(t, cfg.JWT.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ROSTER_ENDPOINT", "http://roster.internal/student")
	t.Setenv("ROSTER_PAGE_SIZES", "10, x, 25,-3")
	t.Setenv("ROSTER_TIMEOUT", "15s")
	t.Setenv("ENABLE_AUTH", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://roster.internal/student", cfg.Client.Endpoint)
	assert.Equal(t, []int{10, 25}, cfg.Client.PageSizes)
	assert.Equal(t, 15*time.Second, cfg.Client.Timeout)
	assert.True(t, cfg.JWT.Enabled)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
