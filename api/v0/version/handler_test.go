package version

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	res, err := GetVersion(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &GetVersionResponse{Version: 0, Module: "obi", KeyHash: "keccak256"}, res)
}

func TestGetVersionReturnsCopy(t *testing.T) {
	res, _ := GetVersion(context.Background(), &GetVersionRequest{})
	res.(*GetVersionResponse).Module = "changed"

	res, _ = GetVersion(context.Background(), &GetVersionRequest{})
	assert.Equal(t, "obi", res.(*GetVersionResponse).Module)
}
