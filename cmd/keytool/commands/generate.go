package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/passkeeper/internal/encryption"
)

func NewGenerateKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-key",
		Short: "Print a new random 256-bit master key, hex encoded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), encryption.GenerateKey())
			return err
		},
	}
}
