package config

import "time"

const (
	StoreSQLite  = "sqlite"
	StoreKeyring = "keyring"
)

// Config holds runtime settings for the vault CLI.
//
// Fields:
//   - DatabasePath: SQLite file holding vault entries (and secure metadata
//     when SecureStore is "sqlite").
//   - SecureStore: where the salt and verification token live: "sqlite" or
//     "keyring".
//   - KeyringDir: directory for the encrypted-file keyring fallback.
//   - KDF: key derivation function name, "argon2id" or "pbkdf2". It must not
//     change once an installation has been initialized.
//   - UserID: profile the entries belong to.
//   - AutoLockAfter: idle time after which the key is cleared; 0 disables.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DatabasePath  string
	SecureStore   string
	KeyringDir    string
	KDF           string
	UserID        string
	AutoLockAfter time.Duration
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "vault.db"
	c.SecureStore = StoreSQLite
	c.KeyringDir = ""
	c.KDF = "argon2id"
	c.UserID = "local"
	c.AutoLockAfter = 5 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
