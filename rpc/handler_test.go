package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingBinder struct {
	routes map[string]EntityFactory
}

func (b *recordingBinder) Bind(method string, uri string, handler Handler, factory EntityFactory) {
	b.routes[method+" "+uri] = factory
}

func TestHandlerFuncPassesBody(t *testing.T) {
	handler := HandlerFunc(func(ctx context.Context, body interface{}) (interface{}, error) {
		return body, nil
	})

	v, err := handler.Handle(context.Background(), "proof")

	assert.Nil(t, err)
	assert.Equal(t, "proof", v)
}

func TestEntityFactoryFuncFreshInstances(t *testing.T) {
	factory := EntityFactoryFunc(func() interface{} {
		return &map[string]string{}
	})

	a := factory.Create().(*map[string]string)
	(*a)["key"] = "a71f"
	b := factory.Create().(*map[string]string)

	assert.Empty(t, *b)
}

func TestHandlerBinder(t *testing.T) {
	binder := &recordingBinder{routes: make(map[string]EntityFactory)}
	var _ HandlerBinder = binder
	var _ HandlerBinder = &HttpBinder{}

	binder.Bind("GET", "/v0/api/version", HandlerFunc(nil),
		EntityFactoryFunc(func() interface{} { return nil }))

	assert.Contains(t, binder.routes, "GET /v0/api/version")
}
