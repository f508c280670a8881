package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppHasExpectedCommands(t *testing.T) {
	app := App()
	assert.Equal(t, "vesctl", app.Name)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "post-test-event")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("testdata/config.json")
	require.NoError(t, err)
	assert.Equal(t, "collector.example.com", cfg.PrimaryFQDN)
	assert.Equal(t, 8443, cfg.PrimaryPort)
	assert.Equal(t, "vHeartbeat", cfg.Role)
}
