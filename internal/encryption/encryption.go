// Package encryption implements authenticated encryption of secrets under a
// caller supplied master key, plus validation of hex encoded key material.
//
// Secrets are sealed with AES-256-GCM. Keys, nonces and ciphertexts travel
// hex encoded; the ciphertext carries the 16-byte GCM tag at its end.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
)

const (
	// MasterKeySize is the length of a decoded AES-256 key.
	MasterKeySize = 32
	// NonceSize is the length of a decoded GCM nonce.
	NonceSize = 12
	// TagSize is the length of the GCM authentication tag and therefore the
	// smallest possible ciphertext.
	TagSize = 16
)

var (
	// ErrInvalidKeyEncoding is returned by Encrypt when the master key is not
	// hex decoding to MasterKeySize bytes.
	ErrInvalidKeyEncoding = errors.New("invalid master key encoding")
	// ErrMalformedInput is returned by Decrypt when any input fails hex
	// decoding or length checks.
	ErrMalformedInput = errors.New("malformed encryption input")
	// ErrAuthenticationFailure is returned when the tag does not verify. It
	// does not tell a wrong key from a wrong nonce or a tampered ciphertext.
	ErrAuthenticationFailure = errors.New("message authentication failed")
)

// GenerateKey returns a random 32-byte key, hex encoded.
func GenerateKey() string {
	return hex.EncodeToString(randomBytes(MasterKeySize))
}

// NewNonce returns a random 12-byte nonce, hex encoded.
func NewNonce() string {
	return hex.EncodeToString(randomBytes(NonceSize))
}

// IsValidMasterKey reports whether input is hex decoding to exactly 32 bytes.
func IsValidMasterKey(input string) bool {
	return decodedLen(input) == MasterKeySize
}

// IsValidNonce reports whether input is hex decoding to exactly 12 bytes.
func IsValidNonce(input string) bool {
	return decodedLen(input) == NonceSize
}

// IsValidCipher reports whether input is hex decoding to at least 16 bytes.
func IsValidCipher(input string) bool {
	return decodedLen(input) >= TagSize
}

// Encrypt seals plaintext under the hex encoded master key with a fresh
// random nonce and returns the hex encoded nonce and ciphertext.
func Encrypt(masterKey string, plaintext string) (nonceHex string, cipherHex string, err error) {
	key, err := decodeExact(masterKey, MasterKeySize)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	defer memguard.WipeBytes(key)

	aead, err := newAEAD(key)
	if err != nil {
		return "", "", err
	}

	nonce := randomBytes(aead.NonceSize())
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)

	return hex.EncodeToString(nonce), hex.EncodeToString(sealed), nil
}

// Decrypt opens a hex encoded ciphertext produced by Encrypt.
func Decrypt(masterKey string, nonceHex string, cipherHex string) (string, error) {
	key, err := decodeExact(masterKey, MasterKeySize)
	if err != nil {
		return "", fmt.Errorf("%w: master key: %v", ErrMalformedInput, err)
	}
	defer memguard.WipeBytes(key)

	nonce, err := decodeExact(nonceHex, NonceSize)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrMalformedInput, err)
	}

	sealed, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("%w: cipher: %v", ErrMalformedInput, err)
	}
	if len(sealed) < TagSize {
		return "", fmt.Errorf("%w: cipher shorter than %d bytes", ErrMalformedInput, TagSize)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrAuthenticationFailure
	}

	return string(plaintext), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create block cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}
	return aead, nil
}

func decodeExact(input string, size int) ([]byte, error) {
	b, err := hex.DecodeString(input)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		memguard.WipeBytes(b)
		return nil, fmt.Errorf("expected %d bytes, got %d", size, len(b))
	}
	return b, nil
}

// decodedLen returns the decoded length of a hex string or -1 if it is not
// valid hex.
func decodedLen(input string) int {
	b, err := hex.DecodeString(input)
	if err != nil {
		return -1
	}
	return len(b)
}

// randomBytes reads from crypto/rand, which is safe for concurrent use and
// never returns an error on supported platforms.
func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("encryption: system randomness unavailable: %v", err))
	}
	return b
}
