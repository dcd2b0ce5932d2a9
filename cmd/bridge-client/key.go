package main

import (
	"fmt"
	"io"
	"os"

	"github.com/oasislabs/oracle-bridge/address"
	"github.com/oasislabs/oracle-bridge/obi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func runKey(args []string, r io.Reader) (string, error) {
	proof, err := readHexInput(args, r)
	if err != nil {
		return "", err
	}

	packet, err := obi.DecodePacket(proof)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode packet")
	}

	return address.Key(&packet.Request), nil
}

func bindKey(cmd *cobra.Command) {
	var keyCmd = &cobra.Command{
		Use:   "key [packet]",
		Short: "derive the storage key of a packet",
		Long: "Decodes a hex encoded packet and prints the key it would be " +
			"stored under. The packet is read from stdin if not provided.",
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			key, err := runKey(args, os.Stdin)
			if err != nil {
				fmt.Println("ERROR: ", err)
				os.Exit(1)
			}
			fmt.Println(key)
		},
	}

	cmd.AddCommand(keyCmd)
}
