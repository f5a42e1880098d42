// Package kvjson implements the collection repositories over the abstract
// key-value store. Each collection is one JSON array under a fixed key;
// every write serializes the entire collection and every read defensively
// normalizes records, because the store holds raw semi-structured data with
// no schema enforcement.
package kvjson

import (
	"context"
	"encoding/json"

	"github.com/careslot/careslot/internal/repository/kvstore"
	apperrors "github.com/careslot/careslot/pkg/errors"
)

// Storage keys, one per collection.
const (
	UsersKey        = "users"
	DoctorsKey      = "doctors"
	AppointmentsKey = "appointments"
)

func load[T any](ctx context.Context, store kvstore.Store, key, resource string) ([]*T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, apperrors.Storage("failed to read "+resource, err)
	}
	if !ok || raw == "" {
		return []*T{}, nil
	}

	var items []*T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, apperrors.Storage("failed to decode "+resource, err)
	}
	return items, nil
}

func save[T any](ctx context.Context, store kvstore.Store, key, resource string, items []*T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return apperrors.Storage("failed to encode "+resource, err)
	}
	if err := store.Set(ctx, key, string(data)); err != nil {
		return apperrors.Storage("failed to write "+resource, err)
	}
	return nil
}
