package rpc

import (
	stderr "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/metrics"
)

// HttpHeaderTraceID carries the trace id of a request. Every response
// echoes it back
const HttpHeaderTraceID = "X-ORACLE-BRIDGE-TRACE-ID"

// HttpPreProcessor runs before the handler of a route. It returns false
// if it already wrote the response and the request must not be handled
// any further. The returned request replaces the original one
type HttpPreProcessor interface {
	ServeHTTP(w http.ResponseWriter, req *http.Request) (bool, *http.Request)
}

// HttpMiddleware handles a request and returns the value to be encoded
// as the response body. A nil value means there is no body
type HttpMiddleware interface {
	ServeHTTP(req *http.Request) (interface{}, error)
}

// HttpMiddlewareFunc allows functions to implement the HttpMiddleware interface
type HttpMiddlewareFunc func(req *http.Request) (interface{}, error)

func (f HttpMiddlewareFunc) ServeHTTP(req *http.Request) (interface{}, error) {
	return f(req)
}

// MethodHandlers maps each http method to the middleware serving it
type MethodHandlers map[string]HttpMiddleware

func (h MethodHandlers) Add(method string, middleware HttpMiddleware) {
	h[method] = middleware
}

// HttpRoute serves a single path
type HttpRoute struct {
	path          string
	logger        log.Logger
	handlers      MethodHandlers
	preProcessors []HttpPreProcessor
	encoder       Encoder
	metrics       *metrics.ServiceMetrics
}

type HttpRouteProps struct {
	Path          string
	Logger        log.Logger
	Encoder       Encoder
	Handlers      MethodHandlers
	PreProcessors []HttpPreProcessor

	// Metrics is optional. When set every request is counted and timed
	Metrics *metrics.ServiceMetrics
}

func NewHttpRoute(props HttpRouteProps) *HttpRoute {
	return &HttpRoute{
		path:          props.Path,
		logger:        props.Logger,
		handlers:      props.Handlers,
		preProcessors: props.PreProcessors,
		encoder:       props.Encoder,
		metrics:       props.Metrics,
	}
}

// HasHandler returns true if the route serves method
func (h *HttpRoute) HasHandler(method string) bool {
	_, ok := h.handlers[method]
	return ok
}

// ServeHTTP is the implementation of http.Handler for HttpRoute
func (h *HttpRoute) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	if h.metrics != nil {
		timer := h.metrics.RequestTimer(h.path)
		defer timer.ObserveDuration()
	}

	var ok bool
	for _, preProcessor := range h.preProcessors {
		if ok, req = preProcessor.ServeHTTP(res, req); !ok {
			h.count("preprocessor", "")
			return
		}
	}

	status, cause := h.dispatch(res, req)
	h.count(status, cause)
}

// dispatch runs the handler for the request method and writes its
// result. It returns the status and cause labels of the request
func (h *HttpRoute) dispatch(res http.ResponseWriter, req *http.Request) (string, string) {
	handler, ok := h.handlers[req.Method]
	if !ok {
		return h.fail(res, req, &HttpError{StatusCode: http.StatusMethodNotAllowed})
	}

	v, err := handler.ServeHTTP(req)
	if err != nil {
		return h.fail(res, req, toHttpError(req.Context(), err))
	}

	status := http.StatusOK
	if v == nil {
		status = http.StatusNoContent
	}

	if err := respond(h.logger, h.encoder, res, req, status, v); err != nil {
		return "error", ""
	}

	h.logger.Info(req.Context(), "", log.MapFields{
		"path":        req.URL.EscapedPath(),
		"method":      req.Method,
		"call_type":   "HttpRequestHandleSuccess",
		"status_code": status,
	})
	return strconv.Itoa(status), ""
}

func (h *HttpRoute) fail(res http.ResponseWriter, req *http.Request, err *HttpError) (string, string) {
	cause := ""
	if err.Cause != nil {
		cause = strconv.Itoa(err.Cause.ErrorCode().Code())
	}

	if reportError(h.logger, h.encoder, res, req, err) != nil {
		return "error", cause
	}
	return strconv.Itoa(err.StatusCode), cause
}

func (h *HttpRoute) count(status, cause string) {
	if h.metrics != nil {
		h.metrics.RequestCounter(h.path, status, cause).Inc()
	}
}

// respond writes the status and, if set, the encoded body
func respond(
	logger log.Logger,
	encoder Encoder,
	res http.ResponseWriter,
	req *http.Request,
	status int,
	body interface{},
) error {
	res.Header().Set(HttpHeaderTraceID, strconv.FormatInt(log.GetTraceID(req.Context()), 10))
	if body != nil {
		res.Header().Set("Content-Type", "application/json")
	}
	res.WriteHeader(status)

	if body == nil {
		return nil
	}

	if err := encoder.Encode(res, body); err != nil {
		logger.Warn(req.Context(), "failed to encode response", log.MapFields{
			"path":        req.URL.EscapedPath(),
			"method":      req.Method,
			"call_type":   "HttpResponseEncodeFailure",
			"status_code": status,
			"err":         err.Error(),
		})
		return err
	}

	return nil
}

// reportError writes err to the client. Only errors with a cause
// have a body
func reportError(
	logger log.Logger,
	encoder Encoder,
	res http.ResponseWriter,
	req *http.Request,
	err *HttpError,
) error {
	logger.Info(req.Context(), "", log.MapFields{
		"path":      req.URL.EscapedPath(),
		"method":    req.Method,
		"call_type": "HttpRequestHandleFailure",
	}, err)

	var body interface{}
	if err.Cause != nil {
		body = Error{
			ErrorCode:   err.Cause.ErrorCode().Code(),
			Description: err.Cause.ErrorCode().Desc(),
		}
	}

	return respond(logger, encoder, res, req, err.StatusCode, body)
}

// HttpRouter sends each request to the route bound to its path. Routers
// are built by an HttpBinder and cannot be modified afterwards
type HttpRouter struct {
	encoder Encoder
	mux     map[string]*HttpRoute
	logger  log.Logger
}

// HasRoute returns true if a route is bound to path
func (h *HttpRouter) HasRoute(path string) bool {
	_, ok := h.mux[path]
	return ok
}

// HasHandler returns true if a route is bound to path and it
// serves method
func (h *HttpRouter) HasHandler(path, method string) bool {
	route, ok := h.mux[path]
	return ok && route.HasHandler(method)
}

// ServeHTTP is the implementation of http.Handler for HttpRouter
func (h *HttpRouter) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	req = req.WithContext(log.PutTraceID(req.Context(), TraceIDFromRequest(req)))

	h.logger.Debug(req.Context(), "", log.MapFields{
		"path":      req.URL.EscapedPath(),
		"method":    req.Method,
		"call_type": "HttpRequestHandleAttempt",
	})

	defer h.recover(res, req)

	route, ok := h.mux[req.URL.EscapedPath()]
	if !ok {
		_ = reportError(h.logger, h.encoder, res, req, &HttpError{StatusCode: http.StatusNotFound})
		return
	}

	route.ServeHTTP(res, req)
}

// recover turns a panic in a handler into an internal error. The
// client does not get any detail of the panic
func (h *HttpRouter) recover(res http.ResponseWriter, req *http.Request) {
	r := recover()
	if r == nil {
		return
	}

	var err error
	switch x := r.(type) {
	case string:
		err = stderr.New(x)
	case error:
		err = x
	default:
		err = fmt.Errorf("unknown panic %+v", r)
	}

	h.logger.Warn(req.Context(), "unexpected panic caught", log.MapFields{
		"path":       req.URL.EscapedPath(),
		"method":     req.Method,
		"call_type":  "HttpRequestHandleFailure",
		"err":        err.Error(),
		"stacktrace": string(debug.Stack()),
	})

	_ = reportError(h.logger, h.encoder, res, req,
		toHttpError(req.Context(), stderr.New("unexpected error occurred")))
}
