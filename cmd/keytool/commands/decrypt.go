package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/passkeeper/internal/encryption"
)

func NewDecryptCommand() *cobra.Command {
	var (
		key    string
		nonce  string
		cipher string
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a nonce and cipher pair returned by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			masterKey, err := resolveKey(key)
			if err != nil {
				return err
			}

			plaintext, err := encryption.Decrypt(masterKey, nonce, cipher)
			switch {
			case errors.Is(err, encryption.ErrAuthenticationFailure):
				return errors.New("decryption failed: wrong key or tampered data")
			case err != nil:
				return fmt.Errorf("decryption failed: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), plaintext)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Hex encoded master key (defaults to $"+MasterKeyEnv+")")
	cmd.Flags().StringVar(&nonce, "nonce", "", "Hex encoded nonce")
	cmd.Flags().StringVar(&cipher, "cipher", "", "Hex encoded ciphertext")
	_ = cmd.MarkFlagRequired("nonce")
	_ = cmd.MarkFlagRequired("cipher")

	return cmd
}
