package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oasislabs/oracle-bridge/api/v0/bridge"
	"github.com/spf13/cobra"
)

type GetProps struct {
	ClientProps ClientProps
}

func runGet(ctx context.Context, props GetProps, key string) (*bridge.GetPacketResponse, error) {
	var res bridge.GetPacketResponse
	if err := NewClient(props.ClientProps).Post(ctx, "/v0/api/bridge/packet",
		&bridge.GetPacketRequest{Key: key}, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func bindGet(cmd *cobra.Command) {
	var props GetProps

	var getCmd = &cobra.Command{
		Use:   "get <key>",
		Short: "fetch a stored packet",
		Long:  "Fetches the packet stored under key along with its decoded fields.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := runGet(context.Background(), props, args[0])
			if err != nil {
				fmt.Println("ERROR: ", err)
				os.Exit(1)
			}
			printJSON(res)
		},
	}

	bindClientFlags(getCmd.PersistentFlags(), &props.ClientProps)
	cmd.AddCommand(getCmd)
}
