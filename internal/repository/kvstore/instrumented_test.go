package kvstore

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentCountsOperations(t *testing.T) {
	ctx := context.Background()
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operations_total",
	}, []string{"operation", "status"})

	store := Instrument(NewMemoryStore(), ops)

	require.NoError(t, store.Set(ctx, "k", "v"))
	_, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	_, _, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	require.NoError(t, store.RemoveMany(ctx, []string{"k"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("set", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(ops.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("remove", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(ops.WithLabelValues("set", "error")))
}
