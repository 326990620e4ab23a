package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/otsproject/ots/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	rootCmd = &cobra.Command{
		Use:   "ots",
		Short: "offline seed and key custody for Monero wallets",
		Long: "This CLI lets you generate, import, encrypt and persist Monero " +
			"seeds and keys fully offline, without ever touching the network",
		Version: formatVersion(),
	}
)

func init() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	rootCmd.AddCommand(seedCmd, keyCmd, languageCmd)
}

func main() {
	defer closeCustody()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatVersion() string {
	return fmt.Sprintf(
		"\nVersion: %s\nCommit: %s\nDate: %s", version, commit, date,
	)
}
