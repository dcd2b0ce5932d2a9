package bridge

import (
	"testing"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/stretchr/testify/assert"
)

func TestArgsString(t *testing.T) {
	args := Args{"relay_and_verify"}

	s, err := args.String(0)
	assert.Nil(t, err)
	assert.Equal(t, "relay_and_verify", s)
}

func TestArgsStringInvalid(t *testing.T) {
	args := Args{"relay_and_verify", 42}

	_, err := args.String(1)
	assert.Equal(t, 65559, err.ErrorCode().Code())
}

func TestArgsMissing(t *testing.T) {
	args := Args{}

	for i := 0; i < 6; i++ {
		_, err := args.String(i)
		assert.Equal(t, 65552+i, err.ErrorCode().Code())
	}

	_, err := args.Bytes(6)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedNumberOfArguments))
}

func TestArgsNilIsMissing(t *testing.T) {
	args := Args{"relay_and_verify", nil}

	_, err := args.Bytes(1)
	assert.True(t, errors.Is(err, errors.ErrMissingArgument1))
}

func TestArgsBytes(t *testing.T) {
	args := Args{"0x0102", []byte{3, 4}, "0x"}

	p, err := args.Bytes(0)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2}, p)

	p, err = args.Bytes(1)
	assert.Nil(t, err)
	assert.Equal(t, []byte{3, 4}, p)

	p, err = args.Bytes(2)
	assert.Nil(t, err)
	assert.Equal(t, []byte{}, p)
}

func TestArgsBytesInvalid(t *testing.T) {
	args := Args{"0102", "0xzz", 1.5}

	for i := range args {
		_, err := args.Bytes(i)
		assert.True(t, errors.Is(err, errors.InvalidArgument(i)), "position %d", i)
	}
}

func TestParseCall(t *testing.T) {
	call, err := ParseCall(Args{"relay_and_verify", "0x" + samplePacketHex})

	assert.Nil(t, err)
	assert.Equal(t, Call{Method: MethodRelayAndVerify, Proof: sampleProof()}, call)
}

func TestParseCallNoArgs(t *testing.T) {
	_, err := ParseCall(Args{})

	assert.True(t, errors.Is(err, errors.ErrMissingArgument0))
}

func TestParseCallMethodNotString(t *testing.T) {
	_, err := ParseCall(Args{[]byte("relay_and_verify")})

	assert.True(t, errors.Is(err, errors.ErrInvalidArgument0))
}

func TestParseCallUnknownMethod(t *testing.T) {
	_, err := ParseCall(Args{"verify_and_relay", "0x00"})

	assert.True(t, errors.Is(err, errors.ErrUnknownApiCommand))
	assert.Equal(t, 65538, err.ErrorCode().Code())
}

func TestParseCallMissingProof(t *testing.T) {
	_, err := ParseCall(Args{"relay_and_verify"})

	assert.True(t, errors.Is(err, errors.ErrMissingArgument1))
}

func TestParseCallInvalidProof(t *testing.T) {
	_, err := ParseCall(Args{"relay_and_verify", true})

	assert.True(t, errors.Is(err, errors.ErrInvalidArgument1))
	assert.Equal(t, 65559, err.ErrorCode().Code())
}
