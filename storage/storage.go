package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the identity-scoped key-value persistence port. Values are opaque
// JSON blobs; only the session layer assigns them meaning.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// ProfileKey returns the storage partition key for an identity's profile.
func ProfileKey(identity string) string {
	return fmt.Sprintf("profile:%s", identity)
}

// LogKey returns the storage partition key for an identity's food log.
func LogKey(identity string) string {
	return fmt.Sprintf("log:%s", identity)
}
