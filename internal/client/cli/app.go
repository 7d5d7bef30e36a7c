package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/client"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/services"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/filex"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/securestore"
	"github.com/dmitrijs2005/vaultkeeper/internal/vault"
	"github.com/fatih/color"
)

// KeyringPasswordEnv supplies the password of the encrypted-file keyring.
const KeyringPasswordEnv = "VAULTKEEPER_KEYRING_PASSWORD"

var ErrUnknownSecureStore = errors.New("unknown secure store")

type App struct {
	config  *config.Config
	session *services.SessionService
	entries *services.EntryService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []func() error

	mu           sync.Mutex
	now          func() time.Time
	lastActivity time.Time
}

// NewApp opens the database and the secure store selected by c and builds
// the services on top of them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	dsn, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dsn, "error", err)
		return nil, err
	}

	store, err := openSecureStore(c, repos)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	kdf, err := cryptox.NewKeyDeriver(c.KDF)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	v := vault.NewService(store, vault.WithKeyDeriver(kdf), vault.WithLogger(log))

	a := newApp(c,
		services.NewSessionService(v, log),
		services.NewEntryService(repos.Entry, v, services.StaticIdentity(c.UserID), log),
		log, os.Stdin, os.Stdout)
	a.closers = append(a.closers, func() error { v.ClearKey(); return nil }, repos.Close)

	log.Debug(ctx, "app initialized", "db", dsn, "store", c.SecureStore, "kdf", c.KDF)
	return a, nil
}

func newApp(c *config.Config, session *services.SessionService, entries *services.EntryService,
	log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		session: session,
		entries: entries,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

func openSecureStore(c *config.Config, repos *client.Repositories) (vault.SecureStore, error) {
	switch c.SecureStore {
	case config.StoreSQLite, "":
		return repos.Metadata, nil
	case config.StoreKeyring:
		dir := ""
		if c.KeyringDir != "" {
			d, err := filex.EnsureDir(c.KeyringDir)
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return securestore.Open(securestore.Config{
			FileDir:      dir,
			FilePassword: os.Getenv(KeyringPasswordEnv),
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSecureStore, c.SecureStore)
	}
}

// Run starts the REPL on the app's input and blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.markActive()
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close locks the vault and releases storage handles.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isUnlocked() bool {
	return a.session.IsUnlocked()
}

func (a *App) status() string {
	if a.isUnlocked() {
		return "unlocked"
	}
	return "locked"
}

func (a *App) markActive() {
	a.mu.Lock()
	a.lastActivity = a.now()
	a.mu.Unlock()
}

// checkIdle locks the vault when it has been idle for longer than
// AutoLockAfter and records the current command as activity.
func (a *App) checkIdle(ctx context.Context) {
	a.mu.Lock()
	idle := a.now().Sub(a.lastActivity)
	a.lastActivity = a.now()
	a.mu.Unlock()

	limit := a.config.AutoLockAfter
	if limit <= 0 || !a.isUnlocked() || idle <= limit {
		return
	}

	a.session.Lock(ctx)
	a.log.Info(ctx, "vault auto-locked", "idle", idle.Round(time.Second).String())
	fmt.Fprintln(a.out, color.YellowString("Vault locked after inactivity."))
}
