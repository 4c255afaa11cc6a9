package store

// Backend persists the serialized record blob. Every save replaces the whole
// blob; partial writes must never be observable.
type Backend interface {
	// Load returns the persisted blob, or ErrNoRecord when nothing has been
	// written yet.
	Load() ([]byte, error)
	// Save replaces the persisted blob wholesale.
	Save(data []byte) error
	// Reset removes the persisted blob. Removing an absent blob is a no-op.
	Reset() error
}
