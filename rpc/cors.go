package rpc

import (
	"net/http"

	"github.com/rs/cors"
)

// HttpCorsPreProcessorProps set which cross origin requests are allowed
type HttpCorsPreProcessorProps struct {
	// Enabled turns on the checks. A disabled preprocessor lets
	// every request through untouched
	Enabled bool

	// AllowedOrigins can contain "*" to allow any origin
	AllowedOrigins []string

	// AllowedMethods defaults to HEAD, GET and POST
	AllowedMethods []string

	AllowedHeaders []string
	ExposedHeaders []string

	// MaxAge is how long in seconds a preflight response can be cached
	MaxAge int
}

// HttpCorsPreProcessor answers preflight requests and sets the CORS
// headers of actual requests.
// See https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS
type HttpCorsPreProcessor struct {
	cors    *cors.Cors
	enabled bool
}

func NewHttpCorsPreProcessor(props HttpCorsPreProcessorProps) *HttpCorsPreProcessor {
	return &HttpCorsPreProcessor{
		cors: cors.New(cors.Options{
			AllowedOrigins: props.AllowedOrigins,
			AllowedMethods: props.AllowedMethods,
			AllowedHeaders: props.AllowedHeaders,
			ExposedHeaders: props.ExposedHeaders,
			MaxAge:         props.MaxAge,
		}),
		enabled: props.Enabled,
	}
}

// ServeHTTP is the implementation of HttpPreProcessor for HttpCorsPreProcessor
func (h *HttpCorsPreProcessor) ServeHTTP(w http.ResponseWriter, req *http.Request) (bool, *http.Request) {
	if !h.enabled {
		return true, req
	}

	var next *http.Request
	h.cors.ServeHTTP(w, req, func(w http.ResponseWriter, req *http.Request) {
		next = req
	})

	if next == nil {
		// preflight requests are answered by cors itself
		return false, nil
	}
	if next.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false, nil
	}

	return true, next
}
