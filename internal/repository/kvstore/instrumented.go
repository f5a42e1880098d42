package kvstore

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedStore struct {
	next Store
	ops  *prometheus.CounterVec
}

// Instrument wraps a store so every operation is counted by outcome. ops
// must carry "operation" and "status" labels.
func Instrument(next Store, ops *prometheus.CounterVec) Store {
	return &instrumentedStore{next: next, ops: ops}
}

func (s *instrumentedStore) count(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.ops.WithLabelValues(operation, status).Inc()
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.next.Get(ctx, key)
	s.count("get", err)
	return value, ok, err
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string) error {
	err := s.next.Set(ctx, key, value)
	s.count("set", err)
	return err
}

func (s *instrumentedStore) RemoveMany(ctx context.Context, keys []string) error {
	err := s.next.RemoveMany(ctx, keys)
	s.count("remove", err)
	return err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
