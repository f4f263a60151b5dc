package demo

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/findy-network/credat/agent/sdk"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestCmd_Exec(t *testing.T) {
	s := sdk.New(nil)
	c := Cmd{Cmd: cmds.Cmd{SDK: s}, Handshake: s}
	require.NoError(t, c.Validate())

	var out bytes.Buffer
	r, err := c.Exec(&out)
	require.NoError(t, err)
	res := r.(*Result)

	assert.Equal(t, "did:web:acme.corp", res.Owner)
	assert.Equal(t, "did:web:acme.corp:agents:assistant", res.Agent)
	assert.True(t, res.Delegation)
	assert.True(t, res.Handshake)
	assert.Equal(t, Scopes, res.Scopes)
	assert.Equal(t, []ScopeCheck{
		{"payments:create", true},
		{"payments:read", true},
		{"admin:delete", false},
	}, res.ScopeChecks)

	s2 := out.String()
	assert.Contains(t, s2, "[8] Check Scopes")
	assert.Contains(t, s2, "Handshake verified!")
	assert.Contains(t, s2, "✗ admin:delete (not granted)")
	assert.Contains(t, s2, "The full trust flow completed successfully.")
}

func TestCmd_silent(t *testing.T) {
	s := sdk.New(nil)
	r, err := Cmd{Cmd: cmds.Cmd{SDK: s}, Handshake: s}.Exec(nil)
	require.NoError(t, err)
	data, err := r.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"handshakeValid":true`)
}

type failingHandshake struct {
	*sdk.SDK
}

func (f failingHandshake) VerifyPresentation(
	ctx context.Context,
	p *core.Presentation,
	check core.PresentationCheck,
) (*core.VerifyResult, error) {
	check.Challenge = &core.Challenge{Nonce: "other"}
	return f.SDK.VerifyPresentation(ctx, p, check)
}

func TestCmd_handshakeFails(t *testing.T) {
	s := sdk.New(nil)
	var out bytes.Buffer
	_, err := Cmd{Cmd: cmds.Cmd{SDK: s}, Handshake: failingHandshake{s}}.Exec(&out)
	assert.ErrorIs(t, err, ErrHandshakeFailed)
	assert.Contains(t, out.String(), "Handshake failed")
	assert.Contains(t, out.String(), "nonce does not match the challenge")
}

func TestCmd_Validate(t *testing.T) {
	assert.ErrorIs(t, Cmd{}.Validate(), cmds.ErrNoSDK)
	assert.ErrorIs(t, Cmd{Cmd: cmds.Cmd{SDK: sdk.New(nil)}}.Validate(), ErrNoHandshake)
}
