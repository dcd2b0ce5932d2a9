package store

import (
	"context"
	"strconv"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/metrics"
	"github.com/oasislabs/oracle-bridge/store/core"
)

// InstrumentedStore records the count and latency of the operations
// issued to the wrapped store
type InstrumentedStore struct {
	store   core.Store
	metrics *metrics.StoreMetrics
}

func NewInstrumentedStore(store core.Store, metrics *metrics.StoreMetrics) *InstrumentedStore {
	return &InstrumentedStore{store: store, metrics: metrics}
}

func (s *InstrumentedStore) Name() string {
	return s.store.Name()
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, errors.Err) {
	timer := s.metrics.OperationTimer("get")
	v, ok, err := s.store.Get(ctx, key)
	timer.ObserveDuration()

	switch {
	case err != nil:
		s.metrics.OperationCounter("get", "error", strconv.Itoa(err.ErrorCode().Code())).Inc()
	case !ok:
		s.metrics.OperationCounter("get", "absent").Inc()
	default:
		s.metrics.OperationCounter("get", "ok").Inc()
	}

	return v, ok, err
}

func (s *InstrumentedStore) Put(ctx context.Context, key string, value []byte) errors.Err {
	timer := s.metrics.OperationTimer("put")
	err := s.store.Put(ctx, key, value)
	timer.ObserveDuration()

	if err != nil {
		s.metrics.OperationCounter("put", "error", strconv.Itoa(err.ErrorCode().Code())).Inc()
		return err
	}

	s.metrics.OperationCounter("put", "ok").Inc()
	return nil
}

// Close closes the wrapped store if it holds resources
func (s *InstrumentedStore) Close() error {
	if c, ok := s.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
