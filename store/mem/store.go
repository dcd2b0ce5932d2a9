package mem

import (
	"context"
	"sync"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
)

type Services struct {
	Logger log.Logger
}

// Store is an in-process implementation of core.Store. Its contents
// are lost when the process exits
type Store struct {
	logger log.Logger

	mu     sync.RWMutex
	values map[string][]byte
}

func NewStore(services Services) *Store {
	return &Store{
		logger: services.Logger.ForClass("store/mem", "Store"),
		values: make(map[string][]byte),
	}
}

func (s *Store) Name() string {
	return "store.mem.Store"
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, errors.Err) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}

	return clone(v), true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) errors.Err {
	s.mu.Lock()
	s.values[key] = clone(value)
	s.mu.Unlock()

	s.logger.Debug(ctx, "value stored", log.MapFields{
		"call_type": "PutSuccess",
		"key":       key,
		"size":      len(value),
	})
	return nil
}

// Len returns the number of keys held by the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func clone(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
