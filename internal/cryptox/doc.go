// Package cryptox holds the cryptographic primitives of the vault: key
// stretching (Argon2id, PBKDF2) and AES-256-GCM sealing of credential
// strings. It keeps no state; key lifecycle belongs to package vault.
package cryptox
