package utils

import (
	"encoding/base64"

	"github.com/findy-network/credat/core"
)

// EncodeB64 encodes raw key material to unpadded base64url for JSON storage.
func EncodeB64(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeB64 accepts both unpadded and padded base64url.
func DecodeB64(str string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(str)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(str)
	}
	if err != nil {
		return nil, &core.DecodeError{Err: err}
	}
	return data, nil
}
