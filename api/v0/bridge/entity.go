package bridge

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oasislabs/oracle-bridge/obi"
)

// CallRequest runs a bridge entry point with positional arguments.
// Byte buffer arguments are passed as 0x prefixed hex strings
type CallRequest struct {
	// Command selects the entry point. It defaults to "call"
	Command string `json:"command"`

	// Args are the positional arguments. The first one is the
	// name of the method
	Args []interface{} `json:"args"`
}

// RelayRequest relays a proof to the bridge
type RelayRequest struct {
	Proof hexutil.Bytes `json:"proof"`
}

// RelayResponse is the response to a successful call or relay
type RelayResponse struct {
	// Outcome is either "initialized" when the call set up the bridge
	// or "stored" when the proof was stored
	Outcome string `json:"outcome"`

	// Key under which the proof was stored
	Key string `json:"key,omitempty"`
}

// DeployRequest sets up the bridge
type DeployRequest struct{}

// GetStateRequest retrieves whether the bridge is set up
type GetStateRequest struct{}

// StateResponse is the state of the bridge
type StateResponse struct {
	Initialized bool `json:"initialized"`
}

// GetPacketRequest retrieves the proof stored under a key
type GetPacketRequest struct {
	Key string `json:"key"`
}

// GetPacketResponse is the stored proof along with its decoded fields
type GetPacketResponse struct {
	Key    string        `json:"key"`
	Proof  hexutil.Bytes `json:"proof"`
	Packet Packet        `json:"packet"`
}

type Request struct {
	ClientID       string        `json:"clientId"`
	OracleScriptID uint64        `json:"oracleScriptId"`
	Calldata       hexutil.Bytes `json:"calldata"`
	AnsCount       uint64        `json:"ansCount"`
	MinCount       uint64        `json:"minCount"`
}

type Response struct {
	ClientID      string        `json:"clientId"`
	RequestID     uint64        `json:"requestId"`
	AnsCount      uint64        `json:"ansCount"`
	RequestTime   uint64        `json:"requestTime"`
	ResolveTime   uint64        `json:"resolveTime"`
	ResolveStatus uint8         `json:"resolveStatus"`
	Result        hexutil.Bytes `json:"result"`
}

// Packet is the JSON representation of a decoded proof
type Packet struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// NewPacket converts a decoded packet to its JSON representation
func NewPacket(p *obi.Packet) Packet {
	return Packet{
		Request: Request{
			ClientID:       p.Request.ClientID,
			OracleScriptID: p.Request.OracleScriptID,
			Calldata:       p.Request.Calldata,
			AnsCount:       p.Request.AnsCount,
			MinCount:       p.Request.MinCount,
		},
		Response: Response{
			ClientID:      p.Response.ClientID,
			RequestID:     p.Response.RequestID,
			AnsCount:      p.Response.AnsCount,
			RequestTime:   p.Response.RequestTime,
			ResolveTime:   p.Response.ResolveTime,
			ResolveStatus: p.Response.ResolveStatus,
			Result:        p.Response.Result,
		},
	}
}

// Obi converts the JSON representation back to a packet
func (p Packet) Obi() obi.Packet {
	return obi.Packet{
		Request: obi.Request{
			ClientID:       p.Request.ClientID,
			OracleScriptID: p.Request.OracleScriptID,
			Calldata:       p.Request.Calldata,
			AnsCount:       p.Request.AnsCount,
			MinCount:       p.Request.MinCount,
		},
		Response: obi.Response{
			ClientID:      p.Response.ClientID,
			RequestID:     p.Response.RequestID,
			AnsCount:      p.Response.AnsCount,
			RequestTime:   p.Response.RequestTime,
			ResolveTime:   p.Response.ResolveTime,
			ResolveStatus: p.Response.ResolveStatus,
			Result:        p.Response.Result,
		},
	}
}
