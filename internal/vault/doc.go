// Package vault implements the encryption service that guards every
// plaintext credential in the client.
//
// A Service derives a symmetric key from the user's master secret and a
// per-installation salt, keeps that key sealed in memory, and encrypts or
// decrypts individual credential strings with it. Two values are persisted in
// secure storage: the salt, written once and never changed, and a
// verification token used to check a candidate secret without storing it.
//
// Lifecycle
//
//	Uninitialized --EstablishKey--> Unlocked
//	Locked --EstablishKey | VerifySecret(ok)--> Unlocked
//	Unlocked --ClearKey--> Locked
//
// Callers own the policy of when to lock (logout, idle timeout, backgrounding)
// and how often to retry; the service never retries storage or decryption.
package vault
