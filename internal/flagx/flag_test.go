package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-c", "vault.json", "-d", "vault.db"}, cfgFlags, []string{"-c", "vault.json"}},
		{"equals form", []string{"-config=alt.json", "-s", "keyring"}, cfgFlags, []string{"-config=alt.json"}},
		{"equals value starting with dash", []string{"-config=-odd.json"}, cfgFlags, []string{"-config=-odd.json"}},
		{"mixed forms keep order", []string{"-config=a.json", "-u", "bob", "-c", "b.json"}, cfgFlags, []string{"-config=a.json", "-c", "b.json"}},
		{"nothing allowed present", []string{"-u", "bob", "-l=60", "stray"}, cfgFlags, []string{}},
		{"trailing flag without value", []string{"-d", "x.db", "-c"}, cfgFlags, []string{"-c"}},
		{"next token is a flag", []string{"-c", "-v", "debug"}, cfgFlags, []string{"-c"}},
		{"several owners", []string{"-d", "x.db", "-k", "/tmp/ring", "-v", "warn"}, []string{"-d", "-k"}, []string{"-d", "x.db", "-k", "/tmp/ring"}},
		{"nil args", nil, cfgFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(ConfigEnvVar, "")

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigFilePath())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigFilePath())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, ConfigFilePath())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigFilePath())
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/path/env.json")
		os.Args = []string{"testbin"}
		assert.Equal(t, "/path/env.json", ConfigFilePath())
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/path/env.json")
		os.Args = []string{"testbin", "-c", "/path/flag.json"}
		assert.Equal(t, "/path/flag.json", ConfigFilePath())
	})
}
