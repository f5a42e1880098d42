// Package kvstore abstracts the string-keyed persistent store that holds
// every collection as one serialized value under a fixed key. The contract
// mirrors the on-device store of the source application: get, set, bulk
// remove, last write wins, no multi-key transactions.
package kvstore

import "context"

// Store is the single external collaborator of the data model.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value, replacing any previous one.
	Set(ctx context.Context, key, value string) error
	// RemoveMany deletes the given keys; missing keys are not an error.
	RemoveMany(ctx context.Context, keys []string) error
	Close() error
}
