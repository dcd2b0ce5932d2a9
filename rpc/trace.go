package rpc

import (
	"math/rand"
	"net/http"
	"strconv"
)

// TraceIDFromRequest returns the trace id the client set in the
// HttpHeaderTraceID header. Requests without a valid id get a random
// one so that their log entries can still be correlated
func TraceIDFromRequest(req *http.Request) int64 {
	id, err := strconv.ParseInt(req.Header.Get(HttpHeaderTraceID), 10, 64)
	if err != nil || id < 0 {
		return rand.Int63()
	}

	return id
}
