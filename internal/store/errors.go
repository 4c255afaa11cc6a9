package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/darzihq/darzi/internal/validation"
)

// ErrNoRecord is returned by a Backend when nothing has been persisted yet.
var ErrNoRecord = errors.New("no record persisted")

// ValidationError reports missing or invalid fields on an add/update.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Violations[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports an update/advance target that does not exist.
// Deletes of absent ids are no-ops, not errors.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// PersistenceError wraps a failed backend read or write. The in-memory
// mutation is lost; the caller must not assume it was applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CorruptStateError means the persisted bytes did not deserialize into a
// record. Repair only happens on an explicit Reset, never silently.
type CorruptStateError struct {
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("persisted record is corrupt: %v", e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
