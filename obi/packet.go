package obi

import (
	"encoding/hex"

	"github.com/oasislabs/oracle-bridge/log"
)

// Request is the oracle request that a packet answers
type Request struct {
	ClientID       string `json:"clientId"`
	OracleScriptID uint64 `json:"oracleScriptId"`
	Calldata       []byte `json:"calldata"`
	AnsCount       uint64 `json:"ansCount"`
	MinCount       uint64 `json:"minCount"`
}

// Encode returns the canonical encoding of the request
func (r *Request) Encode() []byte {
	e := NewEncoder(r.size())
	r.encodeTo(e)
	return e.Bytes()
}

func (r *Request) size() int {
	return 4 + len(r.ClientID) + 8 + 4 + len(r.Calldata) + 8 + 8
}

func (r *Request) encodeTo(e *Encoder) {
	e.EncodeString(r.ClientID)
	e.EncodeU64(r.OracleScriptID)
	e.EncodeBytes(r.Calldata)
	e.EncodeU64(r.AnsCount)
	e.EncodeU64(r.MinCount)
}

func (r *Request) decodeFrom(d *Decoder) {
	r.ClientID = d.DecodeString()
	r.OracleScriptID = d.DecodeU64()
	r.Calldata = d.DecodeBytes()
	r.AnsCount = d.DecodeU64()
	r.MinCount = d.DecodeU64()
}

// Response is the oracle network's answer to a Request. The bridge
// carries it opaquely
type Response struct {
	ClientID      string `json:"clientId"`
	RequestID     uint64 `json:"requestId"`
	AnsCount      uint64 `json:"ansCount"`
	RequestTime   uint64 `json:"requestTime"`
	ResolveTime   uint64 `json:"resolveTime"`
	ResolveStatus uint8  `json:"resolveStatus"`
	Result        []byte `json:"result"`
}

// Encode returns the canonical encoding of the response
func (r *Response) Encode() []byte {
	e := NewEncoder(r.size())
	r.encodeTo(e)
	return e.Bytes()
}

func (r *Response) size() int {
	return 4 + len(r.ClientID) + 8*4 + 1 + 4 + len(r.Result)
}

func (r *Response) encodeTo(e *Encoder) {
	e.EncodeString(r.ClientID)
	e.EncodeU64(r.RequestID)
	e.EncodeU64(r.AnsCount)
	e.EncodeU64(r.RequestTime)
	e.EncodeU64(r.ResolveTime)
	e.EncodeU8(r.ResolveStatus)
	e.EncodeBytes(r.Result)
}

func (r *Response) decodeFrom(d *Decoder) {
	r.ClientID = d.DecodeString()
	r.RequestID = d.DecodeU64()
	r.AnsCount = d.DecodeU64()
	r.RequestTime = d.DecodeU64()
	r.ResolveTime = d.DecodeU64()
	r.ResolveStatus = d.DecodeU8()
	r.Result = d.DecodeBytes()
}

// Packet is the proof relayed to the bridge. It is the request fields
// followed by the response fields
type Packet struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// Encode returns the canonical encoding of the packet
func (p *Packet) Encode() []byte {
	e := NewEncoder(p.Request.size() + p.Response.size())
	p.Request.encodeTo(e)
	p.Response.encodeTo(e)
	return e.Bytes()
}

// Log implementation of log.Loggable
func (p *Packet) Log(fields log.Fields) {
	fields.Add("clientId", p.Request.ClientID)
	fields.Add("oracleScriptId", p.Request.OracleScriptID)
	fields.Add("calldata", hex.EncodeToString(p.Request.Calldata))
	fields.Add("requestId", p.Response.RequestID)
	fields.Add("resolveStatus", p.Response.ResolveStatus)
}

// DecodeRequest decodes a request from the start of p. Trailing
// bytes are ignored
func DecodeRequest(p []byte) (Request, error) {
	var r Request
	d := NewDecoder(p)
	r.decodeFrom(d)
	if err := d.Err(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// DecodeResponse decodes a response from the start of p. Trailing
// bytes are ignored
func DecodeResponse(p []byte) (Response, error) {
	var r Response
	d := NewDecoder(p)
	r.decodeFrom(d)
	if err := d.Err(); err != nil {
		return Response{}, err
	}
	return r, nil
}

// DecodePacket decodes a packet from the start of p. It returns
// ErrTruncated if p is too short for any of the fields. Trailing
// bytes are ignored
func DecodePacket(p []byte) (Packet, error) {
	var packet Packet
	d := NewDecoder(p)
	packet.Request.decodeFrom(d)
	packet.Response.decodeFrom(d)
	if err := d.Err(); err != nil {
		return Packet{}, err
	}
	return packet, nil
}
