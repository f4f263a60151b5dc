package utils

import (
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNonce(t *testing.T) {
	n1, err := NewNonce()
	require.NoError(t, err)
	n2, err := NewNonce()
	require.NoError(t, err)
	assert.NotEqual(t, n1, n2)

	raw, err := base58.Decode(n1)
	require.NoError(t, err)
	assert.Len(t, raw, NonceSize)
}

func TestURNUUID(t *testing.T) {
	id := URNUUID()
	assert.True(t, strings.HasPrefix(id, "urn:uuid:"))
	assert.Len(t, id, len("urn:uuid:")+36)
	assert.NotEqual(t, UUID(), UUID())
}
