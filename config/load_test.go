package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default().Ledger, cfg.Ledger)
	require.Equal(t, int64(42), cfg.Facade.FallbackPoints)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
Env = "staging"

[Database]
Driver = "postgres"
Host = "db"
Port = "5432"

[Facade]
Mode = "offline-admin"
BreakerOpenDelay = "45s"

[Ledger]
LikeReward = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ADMIN_EMAILS", "a@example.com, b@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Env)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "offline-admin", cfg.Facade.Mode)
	require.Equal(t, 45*time.Second, cfg.Facade.BreakerOpenDelay)
	require.Equal(t, int64(2), cfg.Ledger.LikeReward)
	// Keys missing from the file keep their default.
	require.Equal(t, int64(3), cfg.Ledger.CommentReward)
	require.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Auth.AdminEmails)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
