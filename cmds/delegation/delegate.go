// Package delegation implements the delegate and verify flows.
package delegation

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/findy-network/credat/agent/storage/api"
	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/findy-network/credat/method"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	// OwnerDomain is the placeholder domain of the lazily created owner.
	OwnerDomain    = "owner.local"
	OwnerAlgorithm = core.ES256

	tokenPreview = 80
)

// DelegateCmd issues a delegation from the local owner to an agent. The
// owner is created on first use and reused after that.
type DelegateCmd struct {
	cmds.Cmd
	Agent          string
	Scopes         string
	MaxValue       string
	Until          string
	AllowedDomains string
	RateLimit      string
}

// Validate checks the flag values before the owner is resolved, so a bad
// input never creates an owner. A missing agent is reported first.
func (c DelegateCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Agent == "" && !c.Store.AgentExists() {
		return core.ErrMissingAgent
	}
	if _, err := c.constraints(); err != nil {
		return err
	}
	if c.Until != "" {
		if _, err := utils.ParseISO8601(c.Until); err != nil {
			return &core.ValidationError{Msg: "--until must be a valid ISO 8601 date"}
		}
	}
	return nil
}

func positive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func (c DelegateCmd) constraints() (*core.Constraints, error) {
	var cs core.Constraints
	if c.MaxValue != "" {
		v, ok := positive(c.MaxValue)
		if !ok {
			return nil, &core.ValidationError{Msg: "--max-value must be a positive number"}
		}
		cs.MaxTransactionValue = &v
	}
	if c.AllowedDomains != "" {
		for _, d := range strings.Split(c.AllowedDomains, ",") {
			if d = strings.TrimSpace(d); d != "" {
				cs.AllowedDomains = append(cs.AllowedDomains, d)
			}
		}
	}
	if c.RateLimit != "" {
		v, ok := positive(c.RateLimit)
		if !ok {
			return nil, &core.ValidationError{Msg: "--rate-limit must be a positive number"}
		}
		cs.RateLimit = &v
	}
	return cs.Normalized(), nil
}

// SplitScopes splits on commas and trims. Order, duplicates and empty
// entries are kept.
func SplitScopes(s string) []string {
	scopes := strings.Split(s, ",")
	for i := range scopes {
		scopes[i] = strings.TrimSpace(scopes[i])
	}
	return scopes
}

type DelegateResult struct {
	Agent        string            `json:"agent"`
	Owner        string            `json:"owner"`
	OwnerCreated bool              `json:"ownerCreated"`
	Scopes       []string          `json:"scopes"`
	Constraints  *core.Constraints `json:"constraints"`
	ValidUntil   *string           `json:"validUntil"`
	Token        string            `json:"token"`
	SavedTo      string            `json:"savedTo"`
}

func (r *DelegateResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c DelegateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "delegate")

	try.To(c.Validate())
	constraints := try.To1(c.constraints())

	agentDID := try.To1(c.agentDID())
	owner, created := try.To2(c.owner())
	if created {
		cmds.Fprintln(w, cmds.Dim("  Created new owner identity → "+c.Store.Path(api.OwnerRecord)))
	} else {
		cmds.Fprintln(w, cmds.Dim("  Loaded owner from "+c.Store.Path(api.OwnerRecord)))
	}

	scopes := SplitScopes(c.Scopes)
	d := try.To1(c.SDK.IssueDelegation(c.Context(), core.DelegationRequest{
		Agent:        agentDID,
		Owner:        owner.DID,
		OwnerKeyPair: owner.KeyPair,
		Scopes:       scopes,
		Constraints:  constraints,
		ValidUntil:   c.Until,
	}))
	try.To(c.Store.SaveDelegation(*d))
	glog.V(3).Infof("delegation %s -> %s saved", owner.DID, agentDID)

	res := &DelegateResult{
		Agent:        agentDID,
		Owner:        owner.DID,
		OwnerCreated: created,
		Scopes:       scopes,
		Constraints:  constraints,
		Token:        d.Token,
		SavedTo:      c.Store.Path(api.DelegationRecord),
	}
	if c.Until != "" {
		until := c.Until
		res.ValidUntil = &until
	}
	res.render(w)
	return res, nil
}

func (c DelegateCmd) agentDID() (string, error) {
	if c.Agent != "" {
		if !method.IsDID(c.Agent) {
			glog.Warningf("agent %q is not a DID, using it as is", c.Agent)
		}
		return c.Agent, nil
	}
	if !c.Store.AgentExists() {
		return "", core.ErrMissingAgent
	}
	a, err := c.Store.LoadAgent()
	if err != nil {
		return "", err
	}
	return a.DID, nil
}

// owner loads the stored owner or creates and saves it exactly once.
func (c DelegateCmd) owner() (o *core.Owner, created bool, err error) {
	defer err2.Handle(&err, "owner")

	if c.Store.OwnerExists() {
		return try.To1(c.Store.LoadOwner()), false, nil
	}
	id := try.To1(c.SDK.CreateIdentity(c.Context(), OwnerDomain, "", OwnerAlgorithm))
	o = &core.Owner{DID: id.DID, KeyPair: id.KeyPair}
	try.To(c.Store.SaveOwner(*o))
	glog.V(3).Infoln("owner created:", o.DID)
	return o, true, nil
}

func (r *DelegateResult) render(w io.Writer) {
	if w == nil {
		return
	}
	cmds.Header(w, "Delegation Issued")
	cmds.Label(w, "Agent", r.Agent)
	cmds.Label(w, "Owner", r.Owner)
	cmds.Label(w, "Scopes", strings.Join(r.Scopes, ", "))
	cmds.Constraints(w, r.Constraints)
	if r.ValidUntil != nil {
		cmds.Label(w, "Valid Until", *r.ValidUntil)
	}
	cmds.Fprintln(w)
	cmds.Label(w, "Token", cmds.Dim(cmds.Truncate(r.Token, tokenPreview)))
	cmds.Label(w, "Saved to", cmds.Dim(r.SavedTo))
	cmds.Fprintln(w)
	cmds.Success(w, "Delegation credential created")
}
