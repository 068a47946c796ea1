package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ":9090"
	cfg.Storage.Backend = "postgres"
	cfg.Storage.DSN = "host=localhost user=finbook dbname=finbook"
	cfg.Assistant.Mode = "bridge"
	cfg.Assistant.Command = "finbook-assistant"
	cfg.Assistant.Args = []string{"--verbose"}

	path := filepath.Join(t.TempDir(), "finbook.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
	assert.Equal(t, cfg.Storage.Backend, got.Storage.Backend)
	assert.Equal(t, cfg.Storage.DSN, got.Storage.DSN)
	assert.Equal(t, cfg.Assistant.Mode, got.Assistant.Mode)
	assert.Equal(t, cfg.Assistant.Command, got.Assistant.Command)
	assert.Equal(t, cfg.Assistant.Args, got.Assistant.Args)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8086", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.DSN)
	assert.Equal(t, "local", cfg.Assistant.Mode)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Finbook", cfg.Git.AuthorName)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "postgres"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.dsn")

	cfg = Default()
	cfg.Storage.Backend = "sqlite"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")

	cfg = Default()
	cfg.Assistant.Mode = "bridge"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant.command")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "finbook.yaml")
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "server:")
	assert.Contains(t, text, "backend: memory")
	assert.Contains(t, text, "mode: local")
}
