package status

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/findy-network/credat/agent/storage/filedb"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newCmd(t *testing.T) Cmd {
	t.Helper()
	return Cmd{
		Cmd: cmds.Cmd{Store: filedb.New(t.TempDir())},
		Now: func() time.Time { return now },
	}
}

func saveAll(t *testing.T, c Cmd, until string) {
	t.Helper()
	kp := core.KeyPair{Algorithm: core.EdDSA, PublicKey: []byte{1}, PrivateKey: []byte{2}}
	require.NoError(t, c.Store.SaveAgent(core.Agent{
		DID: "did:web:acme.test:agents:a", Domain: "acme.test", Path: "agents/a",
		KeyPair: kp, DIDDocument: json.RawMessage(`{"id":"did:web:acme.test:agents:a"}`),
	}))
	require.NoError(t, c.Store.SaveOwner(core.Owner{DID: "did:web:owner.local", KeyPair: kp}))
	max := 500.0
	require.NoError(t, c.Store.SaveDelegation(core.Delegation{
		Token: "a.b.c",
		Claims: core.Claims{
			Agent:       "did:web:acme.test:agents:a",
			Owner:       "did:web:owner.local",
			Scopes:      []string{"payments:read", "invoices:create"},
			Constraints: &core.Constraints{MaxTransactionValue: &max},
			ValidFrom:   "2026-10-01T00:00:00.000Z",
			ValidUntil:  until,
		},
	}))
}

func decode(t *testing.T, r cmds.Result) map[string]any {
	t.Helper()
	data, err := r.JSON()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestOptional(t *testing.T) {
	o := Some(1)
	v, ok := o.Get()
	assert.True(t, o.Present())
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, None[int]().Present())

	data, err := json.Marshal(None[OwnerInfo]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestCmd_empty(t *testing.T) {
	c := newCmd(t)
	c.Store = filedb.New(filepath.Join(t.TempDir(), ".credat"))
	var out bytes.Buffer
	r, err := c.Exec(&out)
	require.NoError(t, err)

	m := decode(t, r)
	assert.Nil(t, m["agent"])
	assert.Nil(t, m["owner"])
	assert.Nil(t, m["delegation"])
	assert.Contains(t, m, "agent")

	s := out.String()
	assert.Contains(t, s, "No agent, run credat init")
	assert.Contains(t, s, "No owner, run credat delegate")
	assert.Contains(t, s, "No delegation, run credat delegate")
	_, err = os.Stat(c.Store.Dir())
	assert.True(t, os.IsNotExist(err))
}

func TestCmd_expiry(t *testing.T) {
	tests := []struct {
		name    string
		until   string
		expired any
		human   string
	}{
		{"past", "2026-10-18T00:00:00Z", true, "Expires: 2026-10-18T00:00:00.000Z (expired)"},
		{"future", "2030-01-01", false, "Expires: 2030-01-01T00:00:00.000Z\n"},
		{"absent", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCmd(t)
			saveAll(t, c, tt.until)

			var out bytes.Buffer
			r, err := c.Exec(&out)
			require.NoError(t, err)

			d := decode(t, r)["delegation"].(map[string]any)
			assert.Equal(t, tt.expired, d["expired"])
			assert.Equal(t, []any{"payments:read", "invoices:create"}, d["scopes"])
			assert.Equal(t, 500.0, d["constraints"].(map[string]any)["maxTransactionValue"])

			s := out.String()
			assert.Contains(t, s, "Scopes: payments:read, invoices:create")
			assert.Contains(t, s, "Max Value: 500")
			if tt.human != "" {
				assert.Contains(t, s, tt.human)
			} else {
				assert.NotContains(t, s, "Expires")
				assert.NotContains(t, d, "expires")
			}
			if tt.expired == false {
				assert.NotContains(t, s, "(expired)")
			}
		})
	}
}

func TestCmd_records(t *testing.T) {
	c := newCmd(t)
	saveAll(t, c, "")

	var out bytes.Buffer
	r, err := c.Exec(&out)
	require.NoError(t, err)

	m := decode(t, r)
	a := m["agent"].(map[string]any)
	assert.Equal(t, "did:web:acme.test:agents:a", a["did"])
	assert.Equal(t, "EdDSA", a["algorithm"])
	assert.Equal(t, "acme.test", a["domain"])
	assert.Equal(t, "agents/a", a["path"])
	assert.Equal(t, "did:web:owner.local", m["owner"].(map[string]any)["did"])

	s := out.String()
	assert.Contains(t, s, "Path: agents/a")
	assert.Contains(t, s, "Agent identity loaded")
	assert.Contains(t, s, "Owner identity loaded")
	assert.Contains(t, s, "Valid From: 2026-10-01T00:00:00.000Z")
}

func TestCmd_corruptRecord(t *testing.T) {
	c := newCmd(t)
	require.NoError(t, c.Store.EnsureRootDirectory())
	require.NoError(t, os.WriteFile(filepath.Join(c.Store.Dir(), "owner.json"), []byte("{"), 0o600))

	_, err := c.Exec(nil)
	assert.Error(t, err)
}

func TestCmd_Validate(t *testing.T) {
	assert.ErrorIs(t, Cmd{}.Validate(), cmds.ErrNoStore)
}
