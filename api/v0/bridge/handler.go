package bridge

import (
	"context"

	"github.com/oasislabs/oracle-bridge/bridge"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/rpc"
)

// Client is the bridge runtime as used by the handler
type Client interface {
	Exec(ctx context.Context, command bridge.Command, args bridge.Args) (bridge.Result, errors.Err)
	RelayAndVerify(ctx context.Context, proof []byte) (bridge.Result, errors.Err)
	Deploy(ctx context.Context) (bridge.StoreState, errors.Err)
	State(ctx context.Context) (bridge.StoreState, errors.Err)
	GetPacket(ctx context.Context, key string) (bridge.StoredPacket, errors.Err)
}

type Services struct {
	Logger log.Logger
	Client Client
}

// BridgeHandler implements the handlers for the bridge API
type BridgeHandler struct {
	logger log.Logger
	client Client
}

// NewBridgeHandler creates a new instance of a BridgeHandler
func NewBridgeHandler(services Services) BridgeHandler {
	if services.Logger == nil {
		panic("Logger must be provided as a service")
	}
	if services.Client == nil {
		panic("Client must be provided as a service")
	}

	return BridgeHandler{
		logger: services.Logger.ForClass("api/v0/bridge", "BridgeHandler"),
		client: services.Client,
	}
}

// Call runs a bridge entry point with positional arguments
func (h BridgeHandler) Call(ctx context.Context, v interface{}) (interface{}, error) {
	req := v.(*CallRequest)

	command := bridge.Command(req.Command)
	if len(command) == 0 {
		command = bridge.CommandCall
	}

	res, err := h.client.Exec(ctx, command, bridge.Args(req.Args))
	if err != nil {
		h.logger.Debug(ctx, "failed to execute call", log.MapFields{
			"call_type": "CallFailure",
			"command":   string(command),
		}, err)
		return nil, err
	}

	return &RelayResponse{Outcome: string(res.Outcome), Key: res.Key}, nil
}

// Relay relays a proof to the bridge
func (h BridgeHandler) Relay(ctx context.Context, v interface{}) (interface{}, error) {
	req := v.(*RelayRequest)

	if req.Proof == nil {
		err := errors.New(errors.MissingArgument(1), nil)
		h.logger.Debug(ctx, "proof field has not been set", log.MapFields{
			"call_type": "RelayFailure",
		}, err)
		return nil, err
	}

	res, err := h.client.RelayAndVerify(ctx, req.Proof)
	if err != nil {
		h.logger.Debug(ctx, "failed to relay proof", log.MapFields{
			"call_type": "RelayFailure",
		}, err)
		return nil, err
	}

	return &RelayResponse{Outcome: string(res.Outcome), Key: res.Key}, nil
}

// Deploy sets up the bridge
func (h BridgeHandler) Deploy(ctx context.Context, v interface{}) (interface{}, error) {
	_ = v.(*DeployRequest)

	state, err := h.client.Deploy(ctx)
	if err != nil {
		return nil, err
	}

	return &StateResponse{Initialized: state.Initialized}, nil
}

// GetState returns whether the bridge is set up
func (h BridgeHandler) GetState(ctx context.Context, v interface{}) (interface{}, error) {
	state, err := h.client.State(ctx)
	if err != nil {
		return nil, err
	}

	return &StateResponse{Initialized: state.Initialized}, nil
}

// GetPacket returns the proof stored under a key
func (h BridgeHandler) GetPacket(ctx context.Context, v interface{}) (interface{}, error) {
	req := v.(*GetPacketRequest)

	stored, err := h.client.GetPacket(ctx, req.Key)
	if err != nil {
		h.logger.Debug(ctx, "failed to get packet", log.MapFields{
			"call_type": "GetPacketFailure",
			"key":       req.Key,
		}, err)
		return nil, err
	}

	return &GetPacketResponse{
		Key:    stored.Key,
		Proof:  stored.Proof,
		Packet: NewPacket(&stored.Packet),
	}, nil
}

// BindHandler binds the bridge handler to the handler binder
func BindHandler(services Services, binder rpc.HandlerBinder) {
	handler := NewBridgeHandler(services)

	binder.Bind("POST", "/v0/api/bridge/call", rpc.HandlerFunc(handler.Call),
		rpc.EntityFactoryFunc(func() interface{} { return &CallRequest{} }))
	binder.Bind("POST", "/v0/api/bridge/relay", rpc.HandlerFunc(handler.Relay),
		rpc.EntityFactoryFunc(func() interface{} { return &RelayRequest{} }))
	binder.Bind("POST", "/v0/api/bridge/deploy", rpc.HandlerFunc(handler.Deploy),
		rpc.EntityFactoryFunc(func() interface{} { return &DeployRequest{} }))
	binder.Bind("GET", "/v0/api/bridge/state", rpc.HandlerFunc(handler.GetState),
		rpc.EntityFactoryFunc(func() interface{} { return nil }))
	binder.Bind("POST", "/v0/api/bridge/packet", rpc.HandlerFunc(handler.GetPacket),
		rpc.EntityFactoryFunc(func() interface{} { return &GetPacketRequest{} }))
}
