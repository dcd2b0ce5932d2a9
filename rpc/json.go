package rpc

import (
	"mime"
	"net/http"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/rw"
)

const defaultJsonBodyLimit = 1 << 16

// HttpJsonHandler decodes the JSON body of a request into the entity
// created by its factory and passes it to the rpc handler
type HttpJsonHandler struct {
	limit   uint
	decoder JsonDecoder
	handler Handler
	logger  log.Logger
	factory EntityFactory
}

type HttpJsonHandlerProperties struct {
	// Limit is the maximum size in bytes of a body. It defaults
	// to 64KB
	Limit uint

	Handler Handler
	Logger  log.Logger

	// Factory creates the entity a body is decoded into
	Factory EntityFactory
}

func NewHttpJsonHandler(properties HttpJsonHandlerProperties) *HttpJsonHandler {
	if properties.Handler == nil {
		panic("handler must be set")
	}
	if properties.Logger == nil {
		panic("logger must be set")
	}
	if properties.Factory == nil {
		panic("factory must be set")
	}

	limit := properties.Limit
	if limit == 0 {
		limit = defaultJsonBodyLimit
	}

	return &HttpJsonHandler{
		limit:   limit,
		decoder: JsonDecoder{},
		handler: properties.Handler,
		logger:  properties.Logger.ForClass("rpc", "HttpJsonHandler"),
		factory: properties.Factory,
	}
}

// ServeHTTP is the implementation of HttpMiddleware for HttpJsonHandler
func (h *HttpJsonHandler) ServeHTTP(req *http.Request) (interface{}, error) {
	body, err := h.readBody(req)
	if err != nil {
		h.logger.Debug(req.Context(), "rejected request body", log.MapFields{
			"path":           req.URL.EscapedPath(),
			"method":         req.Method,
			"content_length": req.ContentLength,
			"call_type":      "HttpJsonRequestHandleFailure",
		}, err)
		return nil, err
	}

	return h.handler.Handle(req.Context(), body)
}

// readBody returns the entity decoded from the request body. Requests
// without a body get a fresh entity from the factory
func (h *HttpJsonHandler) readBody(req *http.Request) (interface{}, errors.Err) {
	if req.ContentLength < 0 {
		return nil, errors.New(errors.ErrHttpContentLengthMissing, nil)
	}
	if uint64(req.ContentLength) > uint64(h.limit) {
		return nil, errors.New(errors.ErrHttpContentLengthLimit, nil)
	}

	body := h.factory.Create()
	if req.ContentLength == 0 {
		return body, nil
	}

	if !isJson(req.Header.Get("Content-Type")) {
		return nil, errors.New(errors.ErrHttpContentTypeApplicationJson, nil)
	}
	if body == nil {
		// the handler does not take a body
		return nil, errors.New(errors.ErrDeserializeJSON, nil)
	}

	if err := h.decoder.DecodeWithLimit(req.Body, body, rw.ReadLimitProps{
		Limit:        req.ContentLength,
		FailOnExceed: true,
	}); err != nil {
		return nil, errors.New(errors.ErrDeserializeJSON, err)
	}

	return body, nil
}

func isJson(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
