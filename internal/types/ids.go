// Package types holds identifier helpers shared by the storage, service and
// transport layers.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// NewTaskID returns a fresh random task identifier
func NewTaskID() string {
	return uuid.NewString()
}

// ValidTaskID reports whether id looks like an identifier this board issued.
// Lookups still decide whether the task exists.
func ValidTaskID(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// NormalizeTaskID returns id in the canonical lowercase hyphenated form
// ids are stored in. Uppercase, braced, urn:uuid: and bare-hex spellings are
// accepted; ok is false when id is not a UUID at all.
func NormalizeTaskID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// ShortID returns the first block of a task id for compact display
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
