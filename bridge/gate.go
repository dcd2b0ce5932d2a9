// Package bridge verifies relayed oracle packets and persists them
// under a key derived from the packet's request
package bridge

import (
	"context"

	"github.com/oasislabs/oracle-bridge/address"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/obi"
	"github.com/oasislabs/oracle-bridge/store/core"
)

// Outcome describes what an invocation did
type Outcome string

const (
	// OutcomeInitialized is returned by the invocation that sets up the
	// bridge. The proof passed to that invocation is not processed
	OutcomeInitialized Outcome = "initialized"

	// OutcomeStored is returned when a proof was decoded and stored
	OutcomeStored Outcome = "stored"
)

// Result is the outcome of a successful invocation
type Result struct {
	Outcome Outcome
	Key     string
	Packet  *obi.Packet
}

// Log implementation of log.Loggable
func (r Result) Log(fields log.Fields) {
	fields.Add("outcome", string(r.Outcome))
	if len(r.Key) > 0 {
		fields.Add("key", r.Key)
	}
	if r.Packet != nil {
		r.Packet.Log(fields)
	}
}

// Gate runs a single invocation against the store. It does not
// serialize invocations, callers must make sure that only one
// invocation runs at a time
type Gate struct {
	store core.Store
}

func NewGate(store core.Store) *Gate {
	return &Gate{store: store}
}

// Invoke processes proof given the current state and returns the state
// the bridge is in after the invocation. When the bridge is not yet
// initialized the invocation only advances the state, and it is the
// caller's responsibility to persist it. Otherwise the proof is
// decoded and its raw bytes are stored under the key of its request,
// replacing any previous value. A proof that fails to decode leaves
// the store untouched
func (g *Gate) Invoke(
	ctx context.Context,
	state StoreState,
	proof []byte,
) (StoreState, Result, errors.Err) {
	if !state.Initialized {
		return StoreState{Initialized: true}, Result{Outcome: OutcomeInitialized}, nil
	}

	packet, err := obi.DecodePacket(proof)
	if err != nil {
		return state, Result{}, errors.New(errors.ErrFailToDecodeProof, err)
	}

	key := address.Key(&packet.Request)
	if err := g.store.Put(ctx, key, proof); err != nil {
		return state, Result{}, err
	}

	return state, Result{Outcome: OutcomeStored, Key: key, Packet: &packet}, nil
}
