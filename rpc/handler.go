package rpc

import "context"

// Handler is the handler for RPC requests.
type Handler interface {
	// Handle handlers an rpc request and returns a response or error if needed.
	// Implementations should ensure that if a context is cancelled the request
	// handling should be halt gracefully and return an appropriate error.
	Handle(ctx context.Context, body interface{}) (interface{}, error)
}

// HandlerFunc is the type definition for a function to be able to act as a Handler
type HandlerFunc func(ctx context.Context, body interface{}) (interface{}, error)

// Handle is the implementation of the Handler interface for a HandlerFunc
func (h HandlerFunc) Handle(ctx context.Context, body interface{}) (interface{}, error) {
	return h(ctx, body)
}

// EntityFactory creates the instances into which request bodies are
// deserialized. A factory that returns nil declares that the handler
// does not expect a body
type EntityFactory interface {
	Create() interface{}
}

// EntityFactoryFunc allows functions to act as an EntityFactory
type EntityFactoryFunc func() interface{}

// Create is the implementation of EntityFactory for EntityFactoryFunc
func (f EntityFactoryFunc) Create() interface{} {
	return f()
}

// HandlerBinder binds handlers to the method and uri that
// they serve
type HandlerBinder interface {
	Bind(method string, uri string, handler Handler, factory EntityFactory)
}
