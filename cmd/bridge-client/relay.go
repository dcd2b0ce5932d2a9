package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oasislabs/oracle-bridge/api/v0/bridge"
	"github.com/spf13/cobra"
)

type RelayProps struct {
	ClientProps ClientProps
}

func runRelay(ctx context.Context, props RelayProps, args []string, r io.Reader) (*bridge.RelayResponse, error) {
	proof, err := readHexInput(args, r)
	if err != nil {
		return nil, err
	}

	var res bridge.RelayResponse
	if err := NewClient(props.ClientProps).Post(ctx, "/v0/api/bridge/relay",
		&bridge.RelayRequest{Proof: proof}, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func bindRelay(cmd *cobra.Command) {
	var props RelayProps

	var relayCmd = &cobra.Command{
		Use:   "relay [packet]",
		Short: "relay a packet to the bridge",
		Long: "Relays a hex encoded packet to the bridge. The first packet " +
			"relayed to a fresh bridge only sets it up. The packet is read " +
			"from stdin if not provided.",
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := runRelay(context.Background(), props, args, os.Stdin)
			if err != nil {
				fmt.Println("ERROR: ", err)
				os.Exit(1)
			}
			printJSON(res)
		},
	}

	bindClientFlags(relayCmd.PersistentFlags(), &props.ClientProps)
	cmd.AddCommand(relayCmd)
}
