package vault

import "context"

// Secure storage keys.
const (
	SaltKey              = "encryption_salt"
	VerificationTokenKey = "verification_token"
)

// SecureStore is durable on-device key/value storage. Get must return an
// error matching common.ErrorNotFound for a missing key rather than an empty
// value, and Set must be durable before it returns.
type SecureStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
