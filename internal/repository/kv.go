// Package repository provides key-value persistence for the journal
// services. Every implementation stores one opaque blob per key and
// overwrites it whole on Set.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("key not found")

// KV is the persistence contract the services depend on.
type KV interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous blob.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the blob under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

const (
	// ProfilesKey holds the persisted profile list.
	ProfilesKey = "profiles"
	// ActiveProfileKey holds the id of the last activated profile.
	ActiveProfileKey = "activeProfile"
)

// EntriesKey returns the bucket key holding the full entry collection of
// one profile.
func EntriesKey(profileID string) string {
	return "journalEntries_" + profileID
}
