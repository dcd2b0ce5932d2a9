package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oasislabs/oracle-bridge/rpc"
	"github.com/oasislabs/oracle-bridge/rw"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// maxInputBytes bounds the size of a proof read from a file or stdin
// and of a response read from the bridge
const maxInputBytes = 1 << 20

type ClientProps struct {
	URL     string
	Timeout time.Duration
}

func bindClientFlags(flags *pflag.FlagSet, props *ClientProps) {
	flags.StringVar(&props.URL, "url", "http://127.0.0.1:1234",
		"the http endpoint of the bridge")
	flags.DurationVar(&props.Timeout, "timeout", 10*time.Second,
		"timeout for requests issued to the bridge")
}

// Client issues requests to the bridge http API
type Client struct {
	url     string
	client  *http.Client
	encoder rpc.JsonEncoder
	decoder rpc.JsonDecoder
}

func NewClient(props ClientProps) *Client {
	return &Client{
		url:    strings.TrimRight(props.URL, "/"),
		client: &http.Client{Timeout: props.Timeout},
	}
}

// Post sends req to the API at path and decodes the response into res.
// Error responses are returned as rpc.Error
func (c *Client) Post(ctx context.Context, path string, req, res interface{}) error {
	var body bytes.Buffer
	if err := c.encoder.Encode(&body, req); err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	httpReq, err := http.NewRequest("POST", c.url+path, &body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	httpReq = httpReq.WithContext(ctx)
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer func() { _ = httpRes.Body.Close() }()

	limit := rw.ReadLimitProps{Limit: maxInputBytes, FailOnExceed: true}
	if httpRes.StatusCode != http.StatusOK {
		var rpcErr rpc.Error
		if err := c.decoder.DecodeWithLimit(httpRes.Body, &rpcErr, limit); err != nil {
			return errors.Errorf("request to %s failed with status %d", path, httpRes.StatusCode)
		}
		return rpcErr
	}

	return c.decoder.DecodeWithLimit(httpRes.Body, res, limit)
}

// readHexInput reads a hex encoded buffer from the first argument or,
// if there is none, from r. A leading 0x is optional
func readHexInput(args []string, r io.Reader) ([]byte, error) {
	var s string
	if len(args) > 0 {
		s = args[0]
	} else {
		p, err := rw.ReadAllWithLimit(r, maxInputBytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read input")
		}
		s = string(p)
	}

	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	p, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrap(err, "input is not hex encoded")
	}

	return p, nil
}

func printJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Println("failed to serialize response to json: ", err)
	}
}
