package core

import (
	"context"

	"github.com/oasislabs/oracle-bridge/errors"
)

// Store is the key-value store in which the bridge persists its
// initialization flag and the relayed packets
type Store interface {
	// Name identifies the backend in logs
	Name() string

	// Get returns the value stored under key. The boolean is false
	// when the key is absent, in which case the value is nil
	Get(ctx context.Context, key string) ([]byte, bool, errors.Err)

	// Put stores value under key, overwriting any previous value
	Put(ctx context.Context, key string, value []byte) errors.Err
}
