package utils

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/findy-network/credat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestB64_roundTrip(t *testing.T) {
	long := make([]byte, 300)
	_, err := rand.Read(long)
	require.NoError(t, err)

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"one", []byte{0xff}},
		{"two", []byte{0xfb, 0xff}},
		{"three", []byte{1, 2, 3}},
		{"all bytes", all},
		{"random 300", long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := EncodeB64(tt.data)
			assert.NotContains(t, s, "=")
			assert.NotContains(t, s, "+")
			assert.NotContains(t, s, "/")
			got, err := DecodeB64(s)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.data, got))
		})
	}
}

func TestDecodeB64_padded(t *testing.T) {
	got, err := DecodeB64("-_8=")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff}, got)
}

func TestDecodeB64_malformed(t *testing.T) {
	for _, s := range []string{"!!!", "a", "ab+/", "ab=c"} {
		_, err := DecodeB64(s)
		var de *core.DecodeError
		assert.True(t, errors.As(err, &de), s)
	}
}
