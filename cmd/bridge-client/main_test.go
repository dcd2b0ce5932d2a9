package main

import (
	"context"
	"io/ioutil"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oasislabs/oracle-bridge/config"
	"github.com/oasislabs/oracle-bridge/gateway"
	"github.com/oasislabs/oracle-bridge/log"
	"github.com/oasislabs/oracle-bridge/obi"
	"github.com/oasislabs/oracle-bridge/rpc"
	"github.com/prometheus/client_golang/prometheus"
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

func newServer(t *testing.T) *httptest.Server {
	logger := log.NewLogrus(log.LogrusLoggerProperties{
		Level:  logrus.DebugLevel,
		Output: ioutil.Discard,
	})

	c := &gateway.Config{}
	p, err := config.Generate(c)
	require.NoError(t, err)
	require.NoError(t, p.Parse([]string{}))

	services, err := gateway.NewServices(context.Background(), logger, prometheus.NewRegistry(), c)
	require.NoError(t, err)

	return httptest.NewServer(gateway.NewRouter(services, c))
}

func TestRunEncode(t *testing.T) {
	s, err := runEncode(EncodeProps{
		Packet: obi.Packet{
			Request: obi.Request{
				ClientID:       "front_end",
				OracleScriptID: 1,
				AnsCount:       4,
				MinCount:       2,
			},
			Response: obi.Response{
				ClientID:      "front_end",
				RequestID:     13565,
				AnsCount:      4,
				RequestTime:   1592549507,
				ResolveTime:   1592549511,
				ResolveStatus: 1,
			},
		},
		Calldata: "0x00000003425443000000003b9aca00",
		Result:   "0x0000000000000000",
	})

	assert.NoError(t, err)
	assert.Equal(t, "0x"+samplePacketHex, s)
}

func TestRunEncodeInvalidCalldata(t *testing.T) {
	_, err := runEncode(EncodeProps{Calldata: "zz", Result: "0x"})
	assert.Error(t, err)
}

func TestRunKeyFromArg(t *testing.T) {
	key, err := runKey([]string{samplePacketHex}, strings.NewReader(""))

	assert.NoError(t, err)
	assert.Equal(t, sampleKey, key)
}

func TestRunKeyFromReader(t *testing.T) {
	key, err := runKey(nil, strings.NewReader("0x"+samplePacketHex+"\n"))

	assert.NoError(t, err)
	assert.Equal(t, sampleKey, key)
}

func TestRunKeyTruncated(t *testing.T) {
	_, err := runKey([]string{samplePacketHex[:40]}, nil)
	assert.Error(t, err)
}

func TestRunKeyNotHex(t *testing.T) {
	_, err := runKey([]string{"hello"}, nil)
	assert.Error(t, err)
}

func TestRelayAndGet(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	props := ClientProps{URL: server.URL, Timeout: time.Second}
	ctx := context.Background()

	res, err := runRelay(ctx, RelayProps{ClientProps: props}, []string{samplePacketHex}, nil)
	require.NoError(t, err)
	assert.Equal(t, "initialized", res.Outcome)

	res, err = runRelay(ctx, RelayProps{ClientProps: props}, []string{samplePacketHex}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stored", res.Outcome)
	assert.Equal(t, sampleKey, res.Key)

	packet, err := runGet(ctx, GetProps{ClientProps: props}, sampleKey)
	require.NoError(t, err)
	assert.Equal(t, sampleKey, packet.Key)
	assert.Equal(t, uint64(13565), packet.Packet.Response.RequestID)
}

func TestGetNotFound(t *testing.T) {
	server := newServer(t)
	defer server.Close()

	_, err := runGet(context.Background(), GetProps{
		ClientProps: ClientProps{URL: server.URL + "/", Timeout: time.Second},
	}, sampleKey)

	assert.Equal(t, rpc.Error{
		ErrorCode:   4041,
		Description: "No packet is stored under the provided key.",
	}, err)
}
