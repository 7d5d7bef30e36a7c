// Package entries implements SQLite persistence for vault records.
//
// Rows hold the password only as an opaque ciphertext string plus an explicit
// format tag; this package never sees plaintext. All reads filter by user so
// one profile cannot list another's records.
package entries
