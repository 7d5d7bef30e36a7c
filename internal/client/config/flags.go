package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in the package doc are considered; others are
// filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-k", "-u", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database")
	fs.StringVar(&cfg.SecureStore, "s", cfg.SecureStore, "secure store backend (sqlite|keyring)")
	fs.StringVar(&cfg.KDF, "k", cfg.KDF, "key derivation function (argon2id|pbkdf2)")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id")
	autoLock := fs.Int("l", int(cfg.AutoLockAfter.Seconds()), "auto-lock timeout (in seconds, 0 disables)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -l has whole-second resolution; leave a finer value from JSON alone
	// unless the flag was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "l" {
			cfg.AutoLockAfter = time.Duration(*autoLock) * time.Second
		}
	})
}
