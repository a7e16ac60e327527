package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/passkeeper/internal/encryption"
)

type encryptOutput struct {
	Service string `json:"service,omitempty"`
	Nonce   string `json:"nonce"`
	Cipher  string `json:"cipher"`
}

func NewEncryptCommand() *cobra.Command {
	var (
		key       string
		plaintext string
		service   string
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a secret and print a create request body",
		Long: `Encrypt a secret under the master key and print JSON that can be posted
to /api/password/create as is.

Examples:
  keytool encrypt --key $(keytool generate-key) --plaintext hunter2 --service Gmail
  PASSKEEPER_MASTER_KEY=... keytool encrypt --plaintext hunter2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			masterKey, err := resolveKey(key)
			if err != nil {
				return err
			}

			nonce, cipherText, err := encryption.Encrypt(masterKey, plaintext)
			if errors.Is(err, encryption.ErrInvalidKeyEncoding) {
				return fmt.Errorf("master key must be %d hex encoded bytes", encryption.MasterKeySize)
			}
			if err != nil {
				return fmt.Errorf("failed to encrypt: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(encryptOutput{Service: service, Nonce: nonce, Cipher: cipherText})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Hex encoded master key (defaults to $"+MasterKeyEnv+")")
	cmd.Flags().StringVar(&plaintext, "plaintext", "", "Secret to encrypt")
	cmd.Flags().StringVar(&service, "service", "", "Service name to include in the output")

	return cmd
}
