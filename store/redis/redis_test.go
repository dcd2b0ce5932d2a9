package redis

import (
	"context"
	stderr "errors"
	"io/ioutil"
	"testing"
	"time"

	"github.com/go-redis/redis"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ctx    = context.Background()
	logger = log.NewLogrus(log.LogrusLoggerProperties{
		Level:  logrus.DebugLevel,
		Output: ioutil.Discard,
	})
)

type MockClient struct {
	mock.Mock
}

func (c *MockClient) Get(key string) *redis.StringCmd {
	args := c.Called(key)
	return args.Get(0).(*redis.StringCmd)
}

func (c *MockClient) Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := c.Called(key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (c *MockClient) Ping() *redis.StatusCmd {
	args := c.Called()
	return args.Get(0).(*redis.StatusCmd)
}

func newStore(t *testing.T) (*Store, *MockClient) {
	client := &MockClient{}
	client.On("Ping").Return(redis.NewStatusResult("PONG", nil))

	s, err := NewStoreWithClient(Props{Context: ctx, Logger: logger}, client)
	require.NoError(t, err)
	return s, client
}

func TestNewStorePingFailure(t *testing.T) {
	client := &MockClient{}
	client.On("Ping").Return(redis.NewStatusResult("", stderr.New("connection refused")))

	_, err := NewStoreWithClient(Props{Context: ctx, Logger: logger}, client)
	assert.Equal(t, ErrRedisConnect{Cause: stderr.New("connection refused")}, err)
}

func TestStoreGet(t *testing.T) {
	s, client := newStore(t)
	client.On("Get", "key").Return(redis.NewStringResult("value", nil))

	v, ok, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), v)
}

func TestStoreGetAbsent(t *testing.T) {
	s, client := newStore(t)
	client.On("Get", "key").Return(redis.NewStringResult("", redis.Nil))

	v, ok, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestStoreGetFailure(t *testing.T) {
	s, client := newStore(t)
	client.On("Get", "key").Return(redis.NewStringResult("", stderr.New("timeout")))

	_, ok, err := s.Get(ctx, "key")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, errors.ErrStoreGet))
	assert.Equal(t, "failed to get key key: redis exec error on GET timeout", err.Cause().Error())
}

func TestStorePut(t *testing.T) {
	s, client := newStore(t)
	client.On("Set", "key", []byte("value"), time.Duration(0)).
		Return(redis.NewStatusResult("OK", nil))

	err := s.Put(ctx, "key", []byte("value"))
	assert.Nil(t, err)
	client.AssertExpectations(t)
}

func TestStorePutFailure(t *testing.T) {
	s, client := newStore(t)
	client.On("Set", "key", []byte("value"), time.Duration(0)).
		Return(redis.NewStatusResult("", stderr.New("readonly")))

	err := s.Put(ctx, "key", []byte("value"))
	assert.True(t, errors.Is(err, errors.ErrStorePut))
	assert.True(t, IsErrRedisExec(pkgerrors.Cause(err.Cause())))
}
