package bridge

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oasislabs/oracle-bridge/errors"
)

// MethodRelayAndVerify is the only method exposed by the bridge
const MethodRelayAndVerify = "relay_and_verify"

// Command selects the entry point of the bridge that a caller runs
type Command string

const (
	// CommandCall dispatches a method on the bridge
	CommandCall Command = "call"

	// CommandDeploy sets up the bridge
	CommandDeploy Command = "deploy"
)

// Args are the positional arguments of a call. Strings are taken as
// they are, byte buffers are either []byte or 0x prefixed hex strings
type Args []interface{}

// String returns the argument at position i as a string
func (a Args) String(i int) (string, errors.Err) {
	v, err := a.get(i)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", errors.New(errors.InvalidArgument(i), nil)
	}

	return s, nil
}

// Bytes returns the argument at position i as a byte buffer
func (a Args) Bytes(i int) ([]byte, errors.Err) {
	v, err := a.get(i)
	if err != nil {
		return nil, err
	}

	switch v := v.(type) {
	case []byte:
		return v, nil
	case string:
		p, err := hexutil.Decode(v)
		if err != nil {
			return nil, errors.New(errors.InvalidArgument(i), err)
		}
		return p, nil
	default:
		return nil, errors.New(errors.InvalidArgument(i), nil)
	}
}

func (a Args) get(i int) (interface{}, errors.Err) {
	if i < 0 || i >= len(a) || a[i] == nil {
		return nil, errors.New(errors.MissingArgument(i), nil)
	}

	return a[i], nil
}

// Call is a dispatched method call
type Call struct {
	Method string
	Proof  []byte
}

// ParseCall resolves the method named by the first argument and
// extracts its arguments. It never touches the store
func ParseCall(args Args) (Call, errors.Err) {
	method, err := args.String(0)
	if err != nil {
		return Call{}, err
	}

	switch method {
	case MethodRelayAndVerify:
		proof, err := args.Bytes(1)
		if err != nil {
			return Call{}, err
		}
		return Call{Method: method, Proof: proof}, nil
	default:
		return Call{}, errors.New(errors.ErrUnknownApiCommand, nil)
	}
}
