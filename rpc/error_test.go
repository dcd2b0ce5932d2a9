package rpc

import (
	"context"
	stderr "errors"
	"net/http"
	"testing"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/stretchr/testify/assert"
)

func TestMapHttpError(t *testing.T) {
	cases := []struct {
		code       errors.ErrorCode
		statusCode int
	}{
		{errors.ErrStorePut, http.StatusInternalServerError},
		{errors.ErrDeserializeJSON, http.StatusBadRequest},
		{errors.ErrInvalidKey, http.StatusBadRequest},
		{errors.ErrUnknownApiCommand, http.StatusBadRequest},
		{errors.ErrMissingArgument1, http.StatusBadRequest},
		{errors.ErrFailToDecodeProof, http.StatusUnprocessableEntity},
		{errors.ErrPacketNotFound, http.StatusNotFound},
		{errors.ErrAPINotImplemented, http.StatusNotImplemented},
	}

	for _, c := range cases {
		err := mapHttpError(errors.New(c.code, nil))
		assert.Equal(t, c.statusCode, err.StatusCode, "code %d", c.code.Code())
	}
}

func TestToHttpErrorPlainError(t *testing.T) {
	err := toHttpError(context.Background(), stderr.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err.Cause, errors.ErrInternalError))
}

func TestToHttpErrorPassThrough(t *testing.T) {
	httpErr := HttpNotFound(context.Background(), errors.New(errors.ErrPacketNotFound, nil))

	assert.Equal(t, httpErr, toHttpError(context.Background(), httpErr))
	assert.Equal(t, httpErr, toHttpError(context.Background(), *httpErr))
}

func TestHttpErrorError(t *testing.T) {
	err := HttpBadRequest(context.Background(), errors.New(errors.ErrInvalidKey, nil))

	assert.Equal(t, "[2006] error code InputError with desc "+
		"Provided key is not a 64 character lowercase hex digest. with status code 400", err.Error())
	assert.Equal(t, "http error with status code 405", HttpError{StatusCode: 405}.Error())
}
