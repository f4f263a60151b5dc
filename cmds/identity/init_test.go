package identity

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/findy-network/credat/agent/sdk"
	"github.com/findy-network/credat/agent/storage/filedb"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newCmd(t *testing.T) InitCmd {
	t.Helper()
	return InitCmd{
		Cmd:    cmds.Cmd{Store: filedb.New(t.TempDir()), SDK: sdk.New(nil)},
		Domain: "acme.test",
	}
}

func TestInitCmd_Validate(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		alg     string
		wantErr bool
	}{
		{"default algorithm", "acme.test", "", false},
		{"eddsa", "acme.test", "EdDSA", false},
		{"es256k", "acme.test", "ES256K", false},
		{"no domain", "  ", "", true},
		{"bad algorithm", "acme.test", "RS256", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCmd(t)
			c.Domain = tt.domain
			c.Algorithm = tt.alg
			err := c.Validate()
			if tt.wantErr {
				var ve *core.ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitCmd_Exec(t *testing.T) {
	c := newCmd(t)
	c.Path = "agents/assistant"
	var out bytes.Buffer

	r, err := c.Exec(&out)
	require.NoError(t, err)
	res := r.(*InitResult)

	assert.Equal(t, "did:web:acme.test:agents:assistant", res.DID)
	assert.Equal(t, core.ES256, res.Algorithm)
	assert.Equal(t, "https://acme.test/agents/assistant/did.json", res.URL)
	assert.Equal(t, c.Store.Path("agent"), res.SavedTo)

	a, err := c.Store.LoadAgent()
	require.NoError(t, err)
	assert.Equal(t, res.DID, a.DID)
	assert.Equal(t, "acme.test", a.Domain)
	assert.Equal(t, "agents/assistant", a.Path)
	assert.JSONEq(t, string(res.DIDDocument), string(a.DIDDocument))

	assert.Contains(t, out.String(), "Agent Created")
	assert.Contains(t, out.String(), res.URL)

	data, err := r.JSON()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, res.DID, m["did"])
	assert.Equal(t, res.URL, m["url"])
	assert.NotNil(t, m["didDocument"])
}

func TestInitCmd_wellKnownURL(t *testing.T) {
	c := newCmd(t)
	r, err := c.Exec(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test/.well-known/did.json", r.(*InitResult).URL)
}

func TestInitCmd_conflict(t *testing.T) {
	c := newCmd(t)
	first, err := c.Exec(nil)
	require.NoError(t, err)

	_, err = c.Exec(nil)
	var ce *core.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "agent", ce.Record)

	a, err := c.Store.LoadAgent()
	require.NoError(t, err)
	assert.Equal(t, first.(*InitResult).DID, a.DID)

	c.Force = true
	c.Domain = "other.test"
	second, err := c.Exec(nil)
	require.NoError(t, err)
	a, err = c.Store.LoadAgent()
	require.NoError(t, err)
	assert.Equal(t, second.(*InitResult).DID, a.DID)
	assert.Equal(t, "did:web:other.test", a.DID)
}

func TestInitCmd_unsupportedAlgorithm(t *testing.T) {
	c := newCmd(t)
	c.Algorithm = "ES256K"
	_, err := c.Exec(nil)
	assert.ErrorIs(t, err, core.ErrUnsupportedAlgorithm)
	assert.False(t, c.Store.AgentExists())
}
