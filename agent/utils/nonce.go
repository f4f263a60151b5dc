package utils

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NonceSize is the number of random bytes in a challenge nonce.
const NonceSize = 32

// NewNonce generates a base58 encoded random nonce with Go's crypto package.
func NewNonce() (string, error) {
	n := make([]byte, NonceSize)
	if _, err := rand.Read(n); err != nil {
		return "", err
	}
	return base58.Encode(n), nil
}

// UUID generates new random UUID and returns value as string.
func UUID() string {
	return uuid.New().String()
}

// URNUUID returns a new UUID in the urn:uuid: form used for credential ids.
func URNUUID() string {
	return "urn:uuid:" + UUID()
}
