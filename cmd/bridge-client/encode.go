package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oasislabs/oracle-bridge/obi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type EncodeProps struct {
	Packet   obi.Packet
	Calldata string
	Result   string
}

func runEncode(props EncodeProps) (string, error) {
	packet := props.Packet

	calldata, err := hexutil.Decode(props.Calldata)
	if err != nil {
		return "", errors.Wrap(err, "calldata must be 0x prefixed hex")
	}
	result, err := hexutil.Decode(props.Result)
	if err != nil {
		return "", errors.Wrap(err, "result must be 0x prefixed hex")
	}

	packet.Request.Calldata = calldata
	packet.Response.Result = result
	return hexutil.Encode(packet.Encode()), nil
}

func bindEncode(cmd *cobra.Command) {
	var props EncodeProps

	var encodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "encode a packet",
		Long:  "Encodes the packet built from the provided fields and prints it as hex.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, err := runEncode(props)
			if err != nil {
				fmt.Println("ERROR: ", err)
				os.Exit(1)
			}
			fmt.Println(s)
		},
	}

	flags := encodeCmd.PersistentFlags()
	flags.StringVar(&props.Packet.Request.ClientID, "request.client_id", "", "client id of the request")
	flags.Uint64Var(&props.Packet.Request.OracleScriptID, "request.oracle_script_id", 0, "oracle script id")
	flags.StringVar(&props.Calldata, "request.calldata", "0x", "0x prefixed hex calldata")
	flags.Uint64Var(&props.Packet.Request.AnsCount, "request.ans_count", 0, "number of answers requested")
	flags.Uint64Var(&props.Packet.Request.MinCount, "request.min_count", 0, "minimum number of answers")
	flags.StringVar(&props.Packet.Response.ClientID, "response.client_id", "", "client id of the response")
	flags.Uint64Var(&props.Packet.Response.RequestID, "response.request_id", 0, "id of the resolved request")
	flags.Uint64Var(&props.Packet.Response.AnsCount, "response.ans_count", 0, "number of answers received")
	flags.Uint64Var(&props.Packet.Response.RequestTime, "response.request_time", 0, "unix time of the request")
	flags.Uint64Var(&props.Packet.Response.ResolveTime, "response.resolve_time", 0, "unix time of the resolution")
	flags.Uint8Var(&props.Packet.Response.ResolveStatus, "response.resolve_status", 0, "resolve status")
	flags.StringVar(&props.Result, "response.result", "0x", "0x prefixed hex result")

	cmd.AddCommand(encodeCmd)
}
