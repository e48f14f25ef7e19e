// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/config"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRAPH_LOOKUP_CONFIG_FILE", "")
	t.Setenv("AZURE_TENANT_ID", "")
	t.Setenv("AZURE_CLIENT_ID", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAuthority, cfg.Authority)
	assert.Equal(t, config.DefaultGraphBaseURL, cfg.GraphBaseURL)
	assert.Equal(t, []string{config.DefaultScope}, cfg.Scopes)
	assert.Equal(t, config.DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.TenantID)
	assert.Empty(t, cfg.ClientID)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
tenantId: tenant-1
clientId: client-1
timeoutSeconds: 60
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", cfg.TenantID)
	assert.Equal(t, "client-1", cfg.ClientID)
	assert.Equal(t, 60, cfg.Timeout)
	assert.Equal(t, config.DefaultAuthority, cfg.Authority, "unset fields keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"tenantId": "tenant-2",
		"clientId": "client-2",
		"authority": "https://login.example.test",
		"scopes": ["https://graph.example.test/.default"]
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tenant-2", cfg.TenantID)
	assert.Equal(t, "https://login.example.test", cfg.Authority)
	assert.Equal(t, []string{"https://graph.example.test/.default"}, cfg.Scopes)
}

func TestLoadFromEnvFilePath(t *testing.T) {
	path := writeFile(t, "config.yml", "tenantId: tenant-3\nclientId: client-3\n")
	t.Setenv("GRAPH_LOOKUP_CONFIG_FILE", path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "tenant-3", cfg.TenantID)
}

func TestLoadIdentityFromEnv(t *testing.T) {
	t.Setenv("GRAPH_LOOKUP_CONFIG_FILE", "")
	t.Setenv("AZURE_TENANT_ID", "tenant-env")
	t.Setenv("AZURE_CLIENT_ID", "client-env")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "tenant-env", cfg.TenantID)
	assert.Equal(t, "client-env", cfg.ClientID)
	require.NoError(t, cfg.Validate())
}

func TestLoadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "tenantId: [unclosed")
		_, err := config.Load(path)
		require.Error(t, err)
	})
}

func TestValidateIncomplete(t *testing.T) {
	cfg := &config.Config{TenantID: "tenant-only"}
	assert.ErrorIs(t, cfg.Validate(), config.ErrIncomplete)
}
