package health

import (
	"context"

	"github.com/oasislabs/oracle-bridge/bridge"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/rpc"
)

// StateReader reads the state of the bridge. A failure to read it
// means the backing store cannot be reached
type StateReader interface {
	State(ctx context.Context) (bridge.StoreState, errors.Err)
}

type Services struct {
	Logger log.Logger
	Client StateReader
}

type HealthHandler struct {
	logger log.Logger
	client StateReader
}

func NewHealthHandler(services Services) HealthHandler {
	if services.Logger == nil {
		panic("Logger must be provided as a service")
	}
	if services.Client == nil {
		panic("Client must be provided as a service")
	}

	return HealthHandler{
		logger: services.Logger.ForClass("api/v0/health", "HealthHandler"),
		client: services.Client,
	}
}

func (h HealthHandler) GetHealth(ctx context.Context, v interface{}) (interface{}, error) {
	_ = v.(*GetHealthRequest)

	state, err := h.client.State(ctx)
	if err != nil {
		h.logger.Warn(ctx, "failed to read bridge state", log.MapFields{
			"call_type": "GetHealthFailure",
		}, err)
		return &GetHealthResponse{Health: Unhealthy}, nil
	}

	return &GetHealthResponse{Health: Healthy, Initialized: state.Initialized}, nil
}

func BindHandler(services Services, binder rpc.HandlerBinder) {
	handler := NewHealthHandler(services)

	binder.Bind("GET", "/v0/api/health", rpc.HandlerFunc(handler.GetHealth),
		rpc.EntityFactoryFunc(func() interface{} { return &GetHealthRequest{} }))
}
