package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtroode/passkeeper/cmd/keytool/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "keytool",
		Short: "Offline key and payload helper for the passkeeper server",
		Long: `keytool generates master keys and encrypts or decrypts secrets locally,
so that only nonces and ciphertexts ever reach the server.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		commands.NewGenerateKeyCommand(),
		commands.NewEncryptCommand(),
		commands.NewDecryptCommand(),
	)

	return rootCmd.Execute()
}
