package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
	"github.com/dmitrijs2005/vaultkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "empty" so a partial file only overrides what it
// names.
type JsonConfig struct {
	DatabasePath  *string         `json:"database_path"`
	SecureStore   *string         `json:"secure_store"`
	KeyringDir    *string         `json:"keyring_dir"`
	KDF           *string         `json:"kdf"`
	UserID        *string         `json:"user_id"`
	AutoLockAfter *timex.Duration `json:"auto_lock_after"`
	LogLevel      *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// flagx.ConfigFilePath. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.SecureStore, jc.SecureStore)
	setString(&cfg.KeyringDir, jc.KeyringDir)
	setString(&cfg.KDF, jc.KDF)
	setString(&cfg.UserID, jc.UserID)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.AutoLockAfter != nil {
		cfg.AutoLockAfter = jc.AutoLockAfter.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
