package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MatiasXp0/forca-tatica/internal/auth"
)

var hashKeyCost int

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key [key]",
	Short: "Hash a proxy key for DISCORD_PROXY_KEY_HASH",
	Long: `Print the bcrypt hash of a Discord proxy client key. The key is read
from the first argument or, when absent, from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashKey,
}

func init() {
	hashKeyCmd.Flags().IntVar(&hashKeyCost, "cost", 0, "bcrypt cost (0 selects the default)")
}

func runHashKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.New("no key given")
		}
		key = line
	}
	key = strings.TrimSpace(key)

	hash, err := auth.HashProxyKey(key, hashKeyCost)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
