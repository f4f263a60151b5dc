// Package demo runs the whole trust flow in memory: owner and agent
// identities, a delegation, and a challenge handshake between a service and
// the agent. Nothing is written to the trust store.
package demo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	Domain     = "acme.corp"
	AgentPath  = "agents/assistant"
	ServiceDID = "did:web:api.stripe.com"

	validFor = 24 * time.Hour
	preview  = 40
)

var (
	Scopes         = []string{"payments:read", "payments:create", "invoices:read"}
	AllowedDomains = []string{"api.stripe.com", "api.acme.corp"}
	MaxValue       = 1000.0

	// ScopeChecks are asked from the verified result, the last one is
	// not granted.
	ScopeChecks = []string{"payments:create", "payments:read", "admin:delete"}
)

var (
	ErrNoHandshake     = errors.New("handshake capability is not set")
	ErrHandshakeFailed = errors.New("handshake failed")
)

type Cmd struct {
	cmds.Cmd
	Handshake core.Handshake
	// Pause between the steps, zero runs straight through.
	Pause time.Duration
	Now   func() time.Time
}

func (c Cmd) Validate() error {
	if c.SDK == nil {
		return cmds.ErrNoSDK
	}
	if c.Handshake == nil {
		return ErrNoHandshake
	}
	return nil
}

type ScopeCheck struct {
	Scope   string `json:"scope"`
	Granted bool   `json:"granted"`
}

type Result struct {
	Owner       string       `json:"owner"`
	Agent       string       `json:"agent"`
	Token       string       `json:"token"`
	ValidUntil  string       `json:"validUntil"`
	Nonce       string       `json:"nonce"`
	Delegation  bool         `json:"delegationValid"`
	Handshake   bool         `json:"handshakeValid"`
	Scopes      []string     `json:"grantedScopes"`
	ScopeChecks []ScopeCheck `json:"scopeChecks"`
}

func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c Cmd) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Cmd) pause() {
	if c.Pause > 0 {
		time.Sleep(c.Pause)
	}
}

func (c Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "demo")

	try.To(c.Validate())
	ctx := c.Context()
	res := &Result{}

	banner(w)

	cmds.Step(w, 1, "Create Owner Identity")
	c.pause()
	owner := try.To1(c.SDK.CreateIdentity(ctx, Domain, "", core.ES256))
	res.Owner = owner.DID
	cmds.Label(w, "Owner DID", owner.DID)
	cmds.Label(w, "Algorithm", "ES256 (P-256)")
	cmds.Success(w, "Owner created")

	cmds.Step(w, 2, "Create Agent Identity")
	c.pause()
	agent := try.To1(c.SDK.CreateIdentity(ctx, Domain, AgentPath, core.ES256))
	res.Agent = agent.DID
	cmds.Label(w, "Agent DID", agent.DID)
	cmds.Label(w, "Path", AgentPath)
	cmds.Success(w, "Agent created")

	cmds.Step(w, 3, "Owner Delegates to Agent")
	c.pause()
	max := MaxValue
	res.ValidUntil = utils.FormatISO8601(c.now().Add(validFor))
	d := try.To1(c.SDK.IssueDelegation(ctx, core.DelegationRequest{
		Agent:        agent.DID,
		Owner:        owner.DID,
		OwnerKeyPair: owner.KeyPair,
		Scopes:       Scopes,
		Constraints: &core.Constraints{
			MaxTransactionValue: &max,
			AllowedDomains:      AllowedDomains,
		},
		ValidUntil: res.ValidUntil,
	}))
	res.Token = d.Token
	cmds.Label(w, "Scopes", strings.Join(Scopes, ", "))
	cmds.Label(w, "Max Value", "$"+cmds.FormatNumber(MaxValue))
	cmds.Label(w, "Domains", strings.Join(AllowedDomains, ", "))
	cmds.Label(w, "Expires", res.ValidUntil)
	cmds.Label(w, "Token", cmds.Dim(cmds.Truncate(d.Token, 60)))
	cmds.Success(w, "Delegation VC issued")

	cmds.Step(w, 4, "Verify Delegation (standalone)")
	c.pause()
	vr := try.To1(c.SDK.VerifyDelegation(ctx, d.Token, owner.KeyPair.PublicKey, owner.KeyPair.Algorithm))
	res.Delegation = vr.Valid
	if vr.Valid {
		cmds.Success(w, "Valid: true")
	} else {
		cmds.Fail(w, "Valid: false")
	}
	cmds.Label(w, "Agent (from VC)", vr.Agent)
	cmds.Label(w, "Scopes (from VC)", strings.Join(vr.Scopes, ", "))

	cmds.Step(w, 5, "Service Challenges Agent (Handshake)")
	c.pause()
	ch := try.To1(c.Handshake.CreateChallenge(ServiceDID))
	res.Nonce = ch.Nonce
	cmds.Label(w, "Challenge from", ServiceDID)
	cmds.Label(w, "Nonce", cmds.Dim(cmds.Truncate(ch.Nonce, preview)))
	cmds.Success(w, "Challenge created")

	cmds.Step(w, 6, "Agent Presents Credentials")
	c.pause()
	p := try.To1(c.Handshake.PresentCredentials(ctx, core.PresentRequest{
		Challenge:  ch,
		Delegation: d.Token,
		AgentDID:   agent.DID,
		AgentKey:   agent.KeyPair,
	}))
	cmds.Label(w, "Presentation type", p.Type)
	cmds.Label(w, "Proof", cmds.Dim(cmds.Truncate(p.Proof, preview)))
	cmds.Success(w, "Credentials presented")

	cmds.Step(w, 7, "Service Verifies Presentation")
	c.pause()
	hr := try.To1(c.Handshake.VerifyPresentation(ctx, p, core.PresentationCheck{
		Challenge:      ch,
		OwnerPublicKey: owner.KeyPair.PublicKey,
		OwnerAlgorithm: owner.KeyPair.Algorithm,
		AgentPublicKey: agent.KeyPair.PublicKey,
		AgentAlgorithm: agent.KeyPair.Algorithm,
	}))
	res.Handshake = hr.Valid
	if !hr.Valid {
		cmds.Fail(w, "Handshake failed")
		msgs := make([]string, len(hr.Errors))
		for i, e := range hr.Errors {
			cmds.Fprintf(w, "    • %s\n", e.Message)
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrHandshakeFailed, strings.Join(msgs, "; "))
	}
	res.Scopes = hr.Scopes
	cmds.Success(w, "Handshake verified!")
	cmds.Label(w, "Verified agent", hr.Agent)
	cmds.Label(w, "Verified owner", hr.Owner)
	cmds.Label(w, "Granted scopes", strings.Join(hr.Scopes, ", "))

	cmds.Step(w, 8, "Check Scopes")
	c.pause()
	for _, scope := range ScopeChecks {
		granted := core.HasScope(hr, scope)
		res.ScopeChecks = append(res.ScopeChecks, ScopeCheck{Scope: scope, Granted: granted})
		if granted {
			cmds.Success(w, scope)
		} else {
			cmds.Fail(w, scope+" "+cmds.Dim("(not granted)"))
		}
	}

	summary(w)
	return res, nil
}

func banner(w io.Writer) {
	cmds.Fprintln(w)
	cmds.Fprintln(w, "  ╔══════════════════════════════════════════╗")
	cmds.Fprintln(w, "  ║        Credat Trust Flow Demo            ║")
	cmds.Fprintln(w, "  ║  Agent Identity + Delegation + Handshake ║")
	cmds.Fprintln(w, "  ╚══════════════════════════════════════════╝")
}

func summary(w io.Writer) {
	cmds.Fprintln(w)
	cmds.Fprintln(w, "  ══════════════════════════════════════════")
	cmds.Fprintln(w)
	cmds.Fprintln(w, "  The full trust flow completed successfully.")
	cmds.Fprintln(w)
	cmds.Fprintln(w, "  Owner → delegated scopes to → Agent")
	cmds.Fprintln(w, "  Service → challenged → Agent proved identity")
	cmds.Fprintln(w, "  Service → verified delegation + proof → Trusted")
	cmds.Fprintln(w)
	cmds.Fprintln(w, cmds.Dim("  No passwords. No API keys. Just cryptographic trust."))
	cmds.Fprintln(w)
}
