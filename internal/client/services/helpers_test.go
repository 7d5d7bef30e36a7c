package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/client"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/vault"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupRepos(t *testing.T) *client.Repositories {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func newVault(repos *client.Repositories) *vault.Service {
	return vault.NewService(repos.Metadata,
		vault.WithKeyDeriver(&cryptox.Argon2idDeriver{Time: 1, Memory: 1024, Threads: 1}))
}

func nopLog() logging.Logger { return logging.NewNopLogger() }

// ---- fakes ----

// fakeKeys implements KeyManager with scripted results.
type fakeKeys struct {
	state     vault.State
	stateErr  error
	establish error
	verifyOK  bool
	verifyErr error
	ready     bool

	establishCalls int
	verifyCalls    int
	clearCalls     int
}

func (f *fakeKeys) State(context.Context) (vault.State, error) { return f.state, f.stateErr }

func (f *fakeKeys) EstablishKey(context.Context, string) error {
	f.establishCalls++
	if f.establish == nil {
		f.ready = true
	}
	return f.establish
}

func (f *fakeKeys) VerifySecret(context.Context, string) (bool, error) {
	f.verifyCalls++
	if f.verifyOK {
		f.ready = true
	}
	return f.verifyOK, f.verifyErr
}

func (f *fakeKeys) IsReady() bool { return f.ready }

func (f *fakeKeys) ClearKey() {
	f.clearCalls++
	f.ready = false
}

// flakyStore fails the first failSets writes of failKey.
type flakyStore struct {
	vault.SecureStore
	failKey  string
	failSets int
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey && f.failSets > 0 {
		f.failSets--
		return errors.New("keychain busy")
	}
	return f.SecureStore.Set(ctx, key, value)
}

// failingCipher fails every call with err.
type failingCipher struct{ err error }

func (f failingCipher) Encrypt(string) (string, error) { return "", f.err }
func (f failingCipher) Decrypt(string) (string, error) { return "", f.err }
func (f failingCipher) IsReady() bool                  { return true }

// exhaustingCipher delegates to Cipher for the first left encryptions and
// fails after that.
type exhaustingCipher struct {
	Cipher
	left int
}

func (c *exhaustingCipher) Encrypt(plaintext string) (string, error) {
	if c.left == 0 {
		return "", errors.New("key rotated")
	}
	c.left--
	return c.Cipher.Encrypt(plaintext)
}
