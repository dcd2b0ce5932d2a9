package rpc

import (
	"encoding/json"
	"io"

	"github.com/oasislabs/oracle-bridge/rw"
	"github.com/pkg/errors"
)

// Encoder writes response payloads. A failed Encode may have
// written part of the payload
type Encoder interface {
	Encode(writer io.Writer, v interface{}) error
}

// Decoder reads request payloads
type Decoder interface {
	Decode(r io.Reader, v interface{}) error
}

// JsonEncoder writes payloads as JSON followed by a newline
type JsonEncoder struct{}

func (e JsonEncoder) Encode(writer io.Writer, v interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// JsonDecoder reads JSON payloads
type JsonDecoder struct{}

func (e JsonDecoder) Decode(reader io.Reader, v interface{}) error {
	return errors.Wrap(json.NewDecoder(reader).Decode(v), "failed to decode json")
}

// DecodeWithLimit is Decode over a reader limited as set by props
func (e JsonDecoder) DecodeWithLimit(reader io.Reader, v interface{}, props rw.ReadLimitProps) error {
	return e.Decode(rw.NewLimitReader(reader, props), v)
}
