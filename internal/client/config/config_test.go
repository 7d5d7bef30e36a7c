package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "vault.db", c.DatabasePath)
	assert.Equal(t, StoreSQLite, c.SecureStore)
	assert.Equal(t, "argon2id", c.KDF)
	assert.Equal(t, "local", c.UserID)
	assert.Equal(t, 5*time.Minute, c.AutoLockAfter)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(flagx.ConfigEnvVar, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "vault.db", cfg.DatabasePath)
	assert.Equal(t, 5*time.Minute, cfg.AutoLockAfter)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"database_path": "json.db",
		"user_id":       "json-user",
	})
	os.Args = []string{"testbin", "-c", path, "-u", "flag-user"}

	cfg := LoadConfig()

	assert.Equal(t, "json.db", cfg.DatabasePath)
	assert.Equal(t, "flag-user", cfg.UserID)
}
