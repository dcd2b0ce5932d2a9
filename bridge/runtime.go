package bridge

import (
	"context"
	"sync"

	"github.com/oasislabs/oracle-bridge/address"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/obi"
	"github.com/oasislabs/oracle-bridge/store/core"
)

type Services struct {
	Logger log.Logger
	Store  core.Store
}

// StoredPacket is a packet as it was relayed to the bridge
type StoredPacket struct {
	Key    string
	Proof  []byte
	Packet obi.Packet
}

// Runtime hosts the bridge on top of a store. Invocations are admitted
// one at a time and each one runs to completion before the next starts
type Runtime struct {
	mu     sync.Mutex
	gate   *Gate
	store  core.Store
	logger log.Logger
}

func NewRuntime(services Services) *Runtime {
	return &Runtime{
		gate:   NewGate(services.Store),
		store:  services.Store,
		logger: services.Logger.ForClass("bridge", "Runtime"),
	}
}

// Exec runs the entry point selected by command
func (r *Runtime) Exec(ctx context.Context, command Command, args Args) (Result, errors.Err) {
	switch command {
	case CommandCall:
		return r.Call(ctx, args)
	case CommandDeploy:
		if _, err := r.Deploy(ctx); err != nil {
			return Result{}, err
		}
		return Result{Outcome: OutcomeInitialized}, nil
	default:
		err := errors.New(errors.ErrUnknownBridgeCallCommand, nil)
		r.logger.Debug(ctx, "unknown command", log.MapFields{
			"call_type": "ExecFailure",
			"command":   string(command),
		}, err)
		return Result{}, err
	}
}

// Call dispatches the method named by the first argument
func (r *Runtime) Call(ctx context.Context, args Args) (Result, errors.Err) {
	call, err := ParseCall(args)
	if err != nil {
		r.logger.Debug(ctx, "failed to dispatch call", log.MapFields{
			"call_type": "CallFailure",
		}, err)
		return Result{}, err
	}

	return r.RelayAndVerify(ctx, call.Proof)
}

// RelayAndVerify verifies that proof is a well formed packet and
// stores it
func (r *Runtime) RelayAndVerify(ctx context.Context, proof []byte) (Result, errors.Err) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.state(ctx)
	if err != nil {
		return Result{}, err
	}

	next, res, err := r.gate.Invoke(ctx, state, proof)
	if err != nil {
		r.logger.Debug(ctx, "failed to relay proof", log.MapFields{
			"call_type": "RelayAndVerifyFailure",
			"size":      len(proof),
		}, state, err)
		return Result{}, err
	}

	if next.Initialized && !state.Initialized {
		if err := r.store.Put(ctx, InitializedKey, initializedFlag); err != nil {
			r.logger.Error(ctx, "failed to persist initialization flag", log.MapFields{
				"call_type": "RelayAndVerifyFailure",
			}, err)
			return Result{}, err
		}
	}

	r.logger.Debug(ctx, "proof relayed", log.MapFields{
		"call_type": "RelayAndVerifySuccess",
	}, res)
	return res, nil
}

// Deploy sets up the bridge if it is not set up already
func (r *Runtime) Deploy(ctx context.Context) (StoreState, errors.Err) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.state(ctx)
	if err != nil {
		return StoreState{}, err
	}

	if state.Initialized {
		return state, nil
	}

	if err := r.store.Put(ctx, InitializedKey, initializedFlag); err != nil {
		r.logger.Error(ctx, "failed to persist initialization flag", log.MapFields{
			"call_type": "DeployFailure",
		}, err)
		return StoreState{}, err
	}

	r.logger.Info(ctx, "bridge initialized", log.MapFields{
		"call_type": "DeploySuccess",
		"store":     r.store.Name(),
	})
	return StoreState{Initialized: true}, nil
}

// State returns the current state of the bridge
func (r *Runtime) State(ctx context.Context) (StoreState, errors.Err) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state(ctx)
}

func (r *Runtime) state(ctx context.Context) (StoreState, errors.Err) {
	_, ok, err := r.store.Get(ctx, InitializedKey)
	if err != nil {
		r.logger.Error(ctx, "failed to read initialization flag", log.MapFields{
			"call_type": "StateFailure",
		}, err)
		return StoreState{}, err
	}

	return StoreState{Initialized: ok}, nil
}

// GetPacket returns the packet stored under key
func (r *Runtime) GetPacket(ctx context.Context, key string) (StoredPacket, errors.Err) {
	if !address.ValidKey(key) {
		return StoredPacket{}, errors.New(errors.ErrInvalidKey, nil)
	}

	proof, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return StoredPacket{}, err
	}
	if !ok {
		return StoredPacket{}, errors.New(errors.ErrPacketNotFound, nil)
	}

	packet, derr := obi.DecodePacket(proof)
	if derr != nil {
		err := errors.New(errors.ErrInternalError, derr)
		r.logger.Error(ctx, "stored proof does not decode", log.MapFields{
			"call_type": "GetPacketFailure",
			"key":       key,
		}, err)
		return StoredPacket{}, err
	}

	return StoredPacket{Key: key, Proof: proof, Packet: packet}, nil
}
