package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{Use: "bridge-client"}

	bindEncode(rootCmd)
	bindKey(rootCmd)
	bindRelay(rootCmd)
	bindGet(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("failed to parse command line arguments ", err.Error())
		os.Exit(1)
	}
}
