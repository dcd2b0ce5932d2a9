package rpc

import (
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/metrics"
)

// HttpHandlerFactory turns an rpc Handler into the HttpMiddleware
// bound to a route
type HttpHandlerFactory interface {
	Make(factory EntityFactory, handler Handler) HttpMiddleware
}

type HttpHandlerFactoryFunc func(factory EntityFactory, handler Handler) HttpMiddleware

func (f HttpHandlerFactoryFunc) Make(factory EntityFactory, handler Handler) HttpMiddleware {
	return f(factory, handler)
}

// NewHttpJsonHandlerFactory wraps every handler in an HttpJsonHandler
// that accepts bodies of up to limit bytes
func NewHttpJsonHandlerFactory(logger log.Logger, limit uint) HttpHandlerFactory {
	return HttpHandlerFactoryFunc(func(factory EntityFactory, handler Handler) HttpMiddleware {
		return NewHttpJsonHandler(HttpJsonHandlerProperties{
			Limit:   limit,
			Handler: handler,
			Logger:  logger,
			Factory: factory,
		})
	})
}

// HttpBinder collects the handlers bound to each path and builds the
// HttpRouter that serves them
type HttpBinder struct {
	handlers      map[string]MethodHandlers
	preProcessors []HttpPreProcessor
	encoder       Encoder
	logger        log.Logger
	factory       HttpHandlerFactory
	metrics       *metrics.ServiceMetrics
}

type HttpBinderProperties struct {
	Encoder        Encoder
	Logger         log.Logger
	HandlerFactory HttpHandlerFactory

	// Metrics is optional
	Metrics *metrics.ServiceMetrics
}

// NewHttpBinder panics if a required property is missing
func NewHttpBinder(properties HttpBinderProperties) *HttpBinder {
	if properties.Encoder == nil {
		panic("Encoder must be set")
	}
	if properties.Logger == nil {
		panic("Logger must be set")
	}
	if properties.HandlerFactory == nil {
		panic("HandlerFactory must be set")
	}

	return &HttpBinder{
		handlers: make(map[string]MethodHandlers),
		encoder:  properties.Encoder,
		logger:   properties.Logger.ForClass("rpc", "HttpRouter"),
		factory:  properties.HandlerFactory,
		metrics:  properties.Metrics,
	}
}

// Bind is the implementation of HandlerBinder for HttpBinder
func (b *HttpBinder) Bind(method string, uri string, handler Handler, factory EntityFactory) {
	route, ok := b.handlers[uri]
	if !ok {
		route = make(MethodHandlers)
		b.handlers[uri] = route
	}

	route.Add(method, b.factory.Make(factory, handler))
}

// AddPreProcessor adds a preprocessor to every route built afterwards
func (b *HttpBinder) AddPreProcessor(preProcessor HttpPreProcessor) {
	b.preProcessors = append(b.preProcessors, preProcessor)
}

// Build creates the router for the bound handlers and resets the
// binder, so handlers need to be bound again to build another router
func (b *HttpBinder) Build() *HttpRouter {
	mux := make(map[string]*HttpRoute, len(b.handlers))
	for path, handlers := range b.handlers {
		mux[path] = NewHttpRoute(HttpRouteProps{
			Path:          path,
			Logger:        b.logger,
			Encoder:       b.encoder,
			Handlers:      handlers,
			PreProcessors: b.preProcessors,
			Metrics:       b.metrics,
		})
	}

	b.handlers = make(map[string]MethodHandlers)

	return &HttpRouter{
		encoder: b.encoder,
		logger:  b.logger,
		mux:     mux,
	}
}
