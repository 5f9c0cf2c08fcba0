// Command portalctl performs operator tasks against the portal: full Discord
// resyncs, access token minting and proxy key hashing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "portalctl",
	Short:         "Operator tooling for the Força Tática portal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(resyncCmd, tokenCmd, hashKeyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
