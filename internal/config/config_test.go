package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(10000), cfg.HttpServerPort)
	assert.Equal(t, "../client/dist", cfg.ClientDistDir)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "12345")
	t.Setenv("CLIENT_DIST_DIR", "/srv/client")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(12345), cfg.HttpServerPort)
	assert.Equal(t, "/srv/client", cfg.ClientDistDir)
}

func TestLoadConfig_RejectsLowPort(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "99")

	_, err := LoadConfig()
	assert.Error(t, err)
}
