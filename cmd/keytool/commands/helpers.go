package commands

import (
	"errors"
	"os"
)

// MasterKeyEnv is read when --key is not given.
const MasterKeyEnv = "PASSKEEPER_MASTER_KEY"

var errMissingKey = errors.New("master key is required: pass --key or set " + MasterKeyEnv)

func resolveKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(MasterKeyEnv); v != "" {
		return v, nil
	}
	return "", errMissingKey
}
