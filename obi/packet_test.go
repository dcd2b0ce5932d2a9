package obi

import (
	"encoding/hex"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequestHex = "0000000966726f6e745f656e640000000000000001" +
	"0000000f00000003425443000000003b9aca00" +
	"00000000000000040000000000000002"

func samplePacket() Packet {
	return Packet{
		Request: Request{
			ClientID:       "front_end",
			OracleScriptID: 1,
			Calldata:       []byte{0, 0, 0, 3, 66, 84, 67, 0, 0, 0, 0, 59, 154, 202, 0},
			AnsCount:       4,
			MinCount:       2,
		},
		Response: Response{
			ClientID:      "front_end",
			RequestID:     13565,
			AnsCount:      4,
			RequestTime:   1592549507,
			ResolveTime:   1592549511,
			ResolveStatus: 1,
			Result:        []byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
	}
}

func TestEncodeSamplePacket(t *testing.T) {
	packet := samplePacket()
	p := packet.Encode()

	assert.Equal(t, 114, len(p))
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "sample_packet", []byte(hex.EncodeToString(p)))
}

func TestEncodeSampleRequest(t *testing.T) {
	packet := samplePacket()

	assert.Equal(t, sampleRequestHex, hex.EncodeToString(packet.Request.Encode()))
}

func TestEncodeEmptyRequest(t *testing.T) {
	r := Request{}

	assert.Equal(t, make([]byte, 32), r.Encode())
}

func TestEncodeEmptyResponse(t *testing.T) {
	r := Response{}

	assert.Equal(t, make([]byte, 41), r.Encode())
}

func TestDecodeEmptyPacket(t *testing.T) {
	decoded, err := DecodePacket((&Packet{}).Encode())
	require.NoError(t, err)
	assert.Equal(t, Packet{}, decoded)
}

func TestDecodeSamplePacket(t *testing.T) {
	packet := samplePacket()

	decoded, err := DecodePacket(packet.Encode())
	assert.NoError(t, err)
	assert.Equal(t, packet, decoded)
}

func TestDecodePacketRoundTrip(t *testing.T) {
	packets := []Packet{
		samplePacket(),
		{
			Request: Request{
				ClientID:       "Ω client",
				OracleScriptID: ^uint64(0),
				Calldata:       []byte{0xff},
				AnsCount:       1,
				MinCount:       1,
			},
			Response: Response{
				ClientID:      "",
				RequestID:     ^uint64(0),
				ResolveStatus: 0xff,
				Result:        []byte{1, 2, 3},
			},
		},
	}

	for _, packet := range packets {
		decoded, err := DecodePacket(packet.Encode())
		assert.NoError(t, err)
		assert.Equal(t, packet.Encode(), decoded.Encode())
		assert.Equal(t, packet.Request.ClientID, decoded.Request.ClientID)
		assert.Equal(t, packet.Response.Result, decoded.Response.Result)
	}
}

func TestDecodePacketEveryPrefixTruncated(t *testing.T) {
	packet := samplePacket()
	p := packet.Encode()

	for i := 0; i < len(p); i++ {
		_, err := DecodePacket(p[:i])
		assert.Equal(t, ErrTruncated, err, "prefix length %d", i)
	}
}

func TestDecodePacketTrailingBytes(t *testing.T) {
	packet := samplePacket()
	p := append(packet.Encode(), 0xde, 0xad, 0xbe, 0xef)

	decoded, err := DecodePacket(p)
	assert.NoError(t, err)
	assert.Equal(t, packet, decoded)
}

func TestDecodePacketLengthPrefixPastEnd(t *testing.T) {
	p := []byte{0xff, 0xff, 0xff, 0xff, 'a', 'b'}

	_, err := DecodePacket(p)
	assert.Equal(t, ErrTruncated, err)
}

func TestDecodePacketEmpty(t *testing.T) {
	_, err := DecodePacket(nil)
	assert.Equal(t, ErrTruncated, err)
}

func TestDecodeRequestIgnoresResponse(t *testing.T) {
	packet := samplePacket()

	r, err := DecodeRequest(packet.Encode())
	assert.NoError(t, err)
	assert.Equal(t, packet.Request, r)
}

func TestDecodeResponse(t *testing.T) {
	packet := samplePacket()

	r, err := DecodeResponse(packet.Response.Encode())
	assert.NoError(t, err)
	assert.Equal(t, packet.Response, r)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	packet := samplePacket()
	p := packet.Encode()

	decoded, err := DecodePacket(p)
	require.NoError(t, err)

	for i := range p {
		p[i] = 0
	}
	assert.Equal(t, samplePacket().Request.Calldata, decoded.Request.Calldata)
}

func TestPacketLog(t *testing.T) {
	packet := samplePacket()
	fields := testFields{}

	packet.Log(fields)

	assert.Equal(t, testFields{
		"clientId":       "front_end",
		"oracleScriptId": uint64(1),
		"calldata":       "00000003425443000000003b9aca00",
		"requestId":      uint64(13565),
		"resolveStatus":  uint8(1),
	}, fields)
}

type testFields map[string]interface{}

func (f testFields) Add(key string, value interface{}) {
	f[key] = value
}
