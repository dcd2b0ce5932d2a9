package rpc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
)

// Error is the response returned by the server when it fails
// to satisfy a request
type Error struct {
	// ErrorCode is a unique identifier for the error that can be used to identify
	// the particular type of error encountered
	ErrorCode int `json:"errorCode"`

	// Description is a human readable description of the error that occurred
	// to aid the client in debugging
	Description string `json:"description"`
}

// Error is the implementation of go's error interface for Error
func (e Error) Error() string {
	return e.Description
}

// HttpError holds the necessary information to return an error when
// using the http protocol
type HttpError struct {
	// Cause of the creation of this HttpError instance
	Cause errors.Err

	// StatusCode is the HTTP status code that defines the error cause
	StatusCode int
}

// Log implementation of log.Loggable
func (e HttpError) Log(fields log.Fields) {
	fields.Add("status_code", e.StatusCode)

	if e.Cause != nil {
		e.Cause.Log(fields)
	}
}

// Error is the implementation of go's error interface for HttpError
func (e HttpError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("http error with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("%s with status code %d", e.Cause.Error(), e.StatusCode)
}

// MakeHttpError makes a new http error
func MakeHttpError(ctx context.Context, err errors.Err, statusCode int) *HttpError {
	return &HttpError{
		Cause:      err,
		StatusCode: statusCode,
	}
}

// HttpBadRequest returns an HTTP bad request error
func HttpBadRequest(ctx context.Context, err errors.Err) *HttpError {
	return MakeHttpError(ctx, err, http.StatusBadRequest)
}

// HttpNotFound returns an HTTP not found error
func HttpNotFound(ctx context.Context, err errors.Err) *HttpError {
	return MakeHttpError(ctx, err, http.StatusNotFound)
}

// HttpInternalServerError returns an HTTP internal server error
func HttpInternalServerError(ctx context.Context, err errors.Err) *HttpError {
	return MakeHttpError(ctx, err, http.StatusInternalServerError)
}

// mapHttpError maps the category of an error to the status code
// returned to the client
func mapHttpError(err errors.Err) *HttpError {
	var statusCode int

	switch err.ErrorCode().Category() {
	case errors.InputError, errors.DispatchError:
		statusCode = http.StatusBadRequest
	case errors.DecodeError:
		statusCode = http.StatusUnprocessableEntity
	case errors.StateConflict:
		statusCode = http.StatusConflict
	case errors.NotFound:
		statusCode = http.StatusNotFound
	case errors.NotImplemented:
		statusCode = http.StatusNotImplemented
	default:
		statusCode = http.StatusInternalServerError
	}

	return &HttpError{Cause: err, StatusCode: statusCode}
}

// toHttpError converts any error returned by a handler into an HttpError.
// Errors that do not carry an error code are reported as internal errors
func toHttpError(ctx context.Context, err error) *HttpError {
	switch err := err.(type) {
	case HttpError:
		return &err
	case *HttpError:
		return err
	case errors.Err:
		return mapHttpError(err)
	default:
		return HttpInternalServerError(ctx, errors.New(errors.ErrInternalError, err))
	}
}
