package typesense

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
api_key: file-key
nodes:
  - host: ts-1.example.com
    port: 8108
    protocol: https
  - url: https://ts-2.example.com:8108
nearest_node:
  host: lb.example.com
  port: 443
  protocol: https
connection_timeout_seconds: 2.5
num_retries: 5
retry_interval_seconds: 0.5
healthcheck_interval_seconds: 30
additional_headers:
  X-Tenant: acme
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typesense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, configYAML))
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	require.Len(t, cfg.Nodes, 2)
	assert.Equal(t, "ts-1.example.com", cfg.Nodes[0].Host)
	assert.Equal(t, "ts-2.example.com", cfg.Nodes[1].Host)
	require.NotNil(t, cfg.NearestNode)
	assert.Equal(t, "lb.example.com", cfg.NearestNode.Host)
	assert.Equal(t, 2500*time.Millisecond, cfg.ConnectionTimeout)
	assert.Equal(t, 5, cfg.NumRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryInterval)
	assert.Equal(t, 30*time.Second, cfg.HealthcheckInterval)
	assert.Equal(t, map[string]string{"X-Tenant": "acme"}, cfg.AdditionalHeaders)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TYPESENSE_API_KEY", "env-key")

	cfg, err := LoadConfig(writeConfigFile(t, configYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadConfigRejectsMissingNodes(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "api_key: abc\n"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfig)
}
