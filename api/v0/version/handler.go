package version

import (
	"context"

	"github.com/oasislabs/oracle-bridge/rpc"
)

const (
	// Version of the HTTP API
	Version = 0

	// Module names the packet schema the bridge decodes
	Module = "obi"

	// KeyHash names the hash packet keys are derived with
	KeyHash = "keccak256"
)

var current = GetVersionResponse{
	Version: Version,
	Module:  Module,
	KeyHash: KeyHash,
}

// GetVersion returns the version of the bridge. The request body is ignored
func GetVersion(ctx context.Context, _ interface{}) (interface{}, error) {
	res := current
	return &res, nil
}

// BindHandler binds GET /v0/api/version
func BindHandler(binder rpc.HandlerBinder) {
	binder.Bind("GET", "/v0/api/version", rpc.HandlerFunc(GetVersion),
		rpc.EntityFactoryFunc(func() interface{} { return &GetVersionRequest{} }))
}
