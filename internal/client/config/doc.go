// Package config loads runtime configuration for the vault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or $VAULTKEEPER_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database
//	-s string   secure store backend: sqlite | keyring
//	-k string   key derivation function: argon2id | pbkdf2
//	-u string   user id the entries belong to
//	-l int      auto-lock timeout (seconds, 0 disables)
//	-v string   log level
//
// # JSON schema
//
// Omitted keys keep their previous value. Durations accept "5m" or integer
// nanoseconds:
//
//	{
//	  "database_path": "vault.db",
//	  "secure_store": "keyring",
//	  "keyring_dir": "/home/alice/.vaultkeeper",
//	  "kdf": "argon2id",
//	  "user_id": "alice",
//	  "auto_lock_after": "5m",
//	  "log_level": "debug"
//	}
package config
