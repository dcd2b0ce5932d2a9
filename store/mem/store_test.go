package mem

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/oasislabs/oracle-bridge/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	ctx    = context.Background()
	logger = log.NewLogrus(log.LogrusLoggerProperties{
		Level:  logrus.DebugLevel,
		Output: ioutil.Discard,
	})
)

func TestStoreGetAbsent(t *testing.T) {
	s := NewStore(Services{Logger: logger})

	v, ok, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestStorePutGet(t *testing.T) {
	s := NewStore(Services{Logger: logger})

	err := s.Put(ctx, "key", []byte("value"))
	assert.Nil(t, err)

	v, ok, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), v)
	assert.Equal(t, 1, s.Len())
}

func TestStorePutOverwrites(t *testing.T) {
	s := NewStore(Services{Logger: logger})

	assert.Nil(t, s.Put(ctx, "key", []byte("first")))
	assert.Nil(t, s.Put(ctx, "key", []byte("second")))

	v, ok, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), v)
	assert.Equal(t, 1, s.Len())
}

func TestStorePutEmptyValue(t *testing.T) {
	s := NewStore(Services{Logger: logger})

	assert.Nil(t, s.Put(ctx, "key", nil))

	v, ok, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{}, v)
}

func TestStoreValuesAreCopied(t *testing.T) {
	s := NewStore(Services{Logger: logger})
	value := []byte("value")

	assert.Nil(t, s.Put(ctx, "key", value))
	value[0] = 'X'

	v, _, err := s.Get(ctx, "key")
	assert.Nil(t, err)
	assert.Equal(t, []byte("value"), v)

	v[0] = 'Y'
	v, _, _ = s.Get(ctx, "key")
	assert.Equal(t, []byte("value"), v)
}
