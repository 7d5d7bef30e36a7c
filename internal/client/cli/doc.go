// Package cli provides the interactive vault command-line client.
//
// It wires configuration, local storage, the key lifecycle and an
// interactive REPL. Typical flow: unlock with the master password, work
// with entries, lock (or let the idle timer lock) and exit.
//
// Commands:
//   - unlock / lock / status
//   - add, list, show <id>, copy <id>
//   - passwd <id>, fav <id>, delete <id>
//   - migrate (encrypt entries imported as plaintext)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
