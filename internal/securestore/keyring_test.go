package securestore

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArrayStore() *KeyringStore {
	return NewKeyringStore(keyring.NewArrayKeyring(nil))
}

func TestKeyringStore_SetGet(t *testing.T) {
	s := newArrayStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
}

func TestKeyringStore_MissingIsNotFound(t *testing.T) {
	s := newArrayStore()

	v, err := s.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Nil(t, v)
}

func TestKeyringStore_DeleteIdempotent(t *testing.T) {
	s := newArrayStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestKeyringStore_CanceledContext(t *testing.T) {
	s := newArrayStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.Set(ctx, "k", nil), context.Canceled)
	require.ErrorIs(t, s.Delete(ctx, "k"), context.Canceled)
}

func TestOpen_FileBackend(t *testing.T) {
	s, err := Open(Config{
		ServiceName:  "vaultkeeper-test",
		FileDir:      t.TempDir(),
		FilePassword: "file-pass",
	})
	if err != nil {
		t.Skipf("no usable keyring backend: %v", err)
	}

	var _ vault.SecureStore = s
}

func TestKeyringStore_BacksVault(t *testing.T) {
	ctx := context.Background()
	store := newArrayStore()

	svc := vault.NewService(store)
	require.NoError(t, svc.EstablishKey(ctx, "Tr0ub4dor&3"))

	ct, err := svc.Encrypt("hunter2")
	require.NoError(t, err)

	next := vault.NewService(store)
	ok, err := next.VerifySecret(ctx, "Tr0ub4dor&3")
	require.NoError(t, err)
	require.True(t, ok)

	pt, err := next.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pt)
}
