package bridge

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"testing"

	"github.com/oasislabs/oracle-bridge/bridge"
	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/store/mem"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	samplePacketHex = "0000000966726f6e745f656e6400000000000000010000000f00000003425443000000003b9aca00" +
		"000000000000000400000000000000020000000966726f6e745f656e6400000000000034fd000000000000" +
		"0004000000005eec6083000000005eec608701000000080000000000000000"
	sampleKey = "a71fdcfad69ce993eddcf48a30bd8f2cea7fc2565341eab289dfdd5ffa90fda1"
)

var logger = log.NewLogrus(log.LogrusLoggerProperties{
	Level:  logrus.DebugLevel,
	Output: ioutil.Discard,
})

func sampleProof() []byte {
	p, err := hex.DecodeString(samplePacketHex)
	if err != nil {
		panic(err)
	}
	return p
}

func newHandler() (BridgeHandler, *mem.Store) {
	store := mem.NewStore(mem.Services{Logger: logger})
	runtime := bridge.NewRuntime(bridge.Services{Logger: logger, Store: store})
	return NewBridgeHandler(Services{Logger: logger, Client: runtime}), store
}

func TestRelayFirstCallInitializes(t *testing.T) {
	h, store := newHandler()

	res, err := h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()})

	assert.Nil(t, err)
	assert.Equal(t, &RelayResponse{Outcome: "initialized"}, res)
	assert.Equal(t, 1, store.Len())
}

func TestRelaySecondCallStores(t *testing.T) {
	h, _ := newHandler()
	_, err := h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()})
	require.Nil(t, err)

	res, err := h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()})

	assert.Nil(t, err)
	assert.Equal(t, &RelayResponse{Outcome: "stored", Key: sampleKey}, res)
}

func TestRelayMissingProof(t *testing.T) {
	h, store := newHandler()

	_, err := h.Relay(context.TODO(), &RelayRequest{})

	assert.True(t, errors.Is(err, errors.ErrMissingArgument1))
	assert.Equal(t, 0, store.Len())
}

func TestRelayTruncated(t *testing.T) {
	h, store := newHandler()
	_, err := h.Deploy(context.TODO(), &DeployRequest{})
	require.Nil(t, err)

	_, err = h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()[:50]})

	assert.True(t, errors.Is(err, errors.ErrFailToDecodeProof))
	assert.Equal(t, 1, store.Len())
}

func TestCall(t *testing.T) {
	h, _ := newHandler()
	args := []interface{}{"relay_and_verify", "0x" + samplePacketHex}
	_, err := h.Call(context.TODO(), &CallRequest{Args: args})
	require.Nil(t, err)

	res, err := h.Call(context.TODO(), &CallRequest{Args: args})

	assert.Nil(t, err)
	assert.Equal(t, &RelayResponse{Outcome: "stored", Key: sampleKey}, res)
}

func TestCallUnknownMethod(t *testing.T) {
	h, _ := newHandler()

	_, err := h.Call(context.TODO(), &CallRequest{Args: []interface{}{"relay"}})

	assert.True(t, errors.Is(err, errors.ErrUnknownApiCommand))
}

func TestCallUnknownCommand(t *testing.T) {
	h, _ := newHandler()

	_, err := h.Call(context.TODO(), &CallRequest{Command: "upgrade"})

	assert.True(t, errors.Is(err, errors.ErrUnknownBridgeCallCommand))
}

func TestCallDeployCommand(t *testing.T) {
	h, _ := newHandler()

	res, err := h.Call(context.TODO(), &CallRequest{Command: "deploy"})
	assert.Nil(t, err)
	assert.Equal(t, &RelayResponse{Outcome: "initialized"}, res)

	state, err := h.GetState(context.TODO(), nil)
	assert.Nil(t, err)
	assert.Equal(t, &StateResponse{Initialized: true}, state)
}

func TestGetState(t *testing.T) {
	h, _ := newHandler()

	res, err := h.GetState(context.TODO(), nil)

	assert.Nil(t, err)
	assert.Equal(t, &StateResponse{Initialized: false}, res)
}

func TestGetPacket(t *testing.T) {
	h, _ := newHandler()
	_, err := h.Deploy(context.TODO(), &DeployRequest{})
	require.Nil(t, err)
	_, err = h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()})
	require.Nil(t, err)

	v, err := h.GetPacket(context.TODO(), &GetPacketRequest{Key: sampleKey})
	require.Nil(t, err)

	res := v.(*GetPacketResponse)
	assert.Equal(t, sampleKey, res.Key)
	assert.Equal(t, sampleProof(), []byte(res.Proof))
	assert.Equal(t, "front_end", res.Packet.Request.ClientID)
	assert.Equal(t, uint64(13565), res.Packet.Response.RequestID)
	assert.Equal(t, uint8(1), res.Packet.Response.ResolveStatus)
}

func TestGetPacketNotFound(t *testing.T) {
	h, _ := newHandler()

	_, err := h.GetPacket(context.TODO(), &GetPacketRequest{Key: sampleKey})

	assert.True(t, errors.Is(err, errors.ErrPacketNotFound))
}

func TestGetPacketInvalidKey(t *testing.T) {
	h, _ := newHandler()

	_, err := h.GetPacket(context.TODO(), &GetPacketRequest{Key: "ABC"})

	assert.True(t, errors.Is(err, errors.ErrInvalidKey))
}

func TestPacketJSON(t *testing.T) {
	h, _ := newHandler()
	_, _ = h.Deploy(context.TODO(), &DeployRequest{})
	_, _ = h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()})
	v, err := h.GetPacket(context.TODO(), &GetPacketRequest{Key: sampleKey})
	require.Nil(t, err)

	p, jerr := json.Marshal(v.(*GetPacketResponse).Packet.Request)
	require.NoError(t, jerr)

	assert.JSONEq(t, `{
		"clientId": "front_end",
		"oracleScriptId": 1,
		"calldata": "0x00000003425443000000003b9aca00",
		"ansCount": 4,
		"minCount": 2
	}`, string(p))
}

func TestPacketObiRoundTrip(t *testing.T) {
	h, _ := newHandler()
	_, _ = h.Deploy(context.TODO(), &DeployRequest{})
	_, _ = h.Relay(context.TODO(), &RelayRequest{Proof: sampleProof()})
	v, err := h.GetPacket(context.TODO(), &GetPacketRequest{Key: sampleKey})
	require.Nil(t, err)

	packet := v.(*GetPacketResponse).Packet.Obi()
	assert.Equal(t, sampleProof(), packet.Encode())
}
