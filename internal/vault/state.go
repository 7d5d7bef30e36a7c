package vault

// State is the position of a Service in its key lifecycle.
type State int

const (
	// StateUninitialized: no salt has ever been persisted.
	StateUninitialized State = iota
	// StateLocked: salt exists, no key is active in memory.
	StateLocked
	// StateUnlocked: a derived key is active.
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}
