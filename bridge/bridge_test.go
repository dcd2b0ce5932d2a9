package bridge

import (
	"context"
	"encoding/hex"
	"io/ioutil"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/store/mem"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

const (
	samplePacketHex = "0000000966726f6e745f656e6400000000000000010000000f00000003425443000000003b9aca00" +
		"000000000000000400000000000000020000000966726f6e745f656e6400000000000034fd000000000000" +
		"0004000000005eec6083000000005eec608701000000080000000000000000"
	sampleKey = "a71fdcfad69ce993eddcf48a30bd8f2cea7fc2565341eab289dfdd5ffa90fda1"
)

var (
	ctx    = context.Background()
	logger = log.NewLogrus(log.LogrusLoggerProperties{
		Level:  logrus.DebugLevel,
		Output: ioutil.Discard,
	})
)

func sampleProof() []byte {
	p, err := hex.DecodeString(samplePacketHex)
	if err != nil {
		panic(err)
	}
	return p
}

func newMemStore() *mem.Store {
	return mem.NewStore(mem.Services{Logger: logger})
}

type MockStore struct {
	mock.Mock
}

func (s *MockStore) Name() string {
	return "MockStore"
}

func (s *MockStore) Get(ctx context.Context, key string) ([]byte, bool, errors.Err) {
	args := s.Called(ctx, key)
	var err errors.Err
	if e := args.Get(2); e != nil {
		err = e.(errors.Err)
	}
	var v []byte
	if p := args.Get(0); p != nil {
		v = p.([]byte)
	}
	return v, args.Bool(1), err
}

func (s *MockStore) Put(ctx context.Context, key string, value []byte) errors.Err {
	args := s.Called(ctx, key, value)
	if e := args.Get(0); e != nil {
		return e.(errors.Err)
	}
	return nil
}
