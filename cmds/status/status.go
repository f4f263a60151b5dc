// Package status reports the local trust state. Every record is loaded once
// into a Report and both the JSON and the human view are projected from it.
package status

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Optional is a value which may be absent. A record that doesn't exist in
// the store is None, never a zero value.
type Optional[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{v: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Present() bool {
	return o.ok
}

func (o Optional[T]) Get() (T, bool) {
	return o.v, o.ok
}

// MarshalJSON encodes None as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

type AgentInfo struct {
	DID       string `json:"did"`
	Algorithm string `json:"algorithm"`
	Domain    string `json:"domain"`
	Path      string `json:"path,omitempty"`
}

type OwnerInfo struct {
	DID string `json:"did"`
}

type DelegationInfo struct {
	Scopes      []string          `json:"scopes"`
	Constraints *core.Constraints `json:"constraints,omitempty"`
	Expires     string            `json:"expires,omitempty"`
	// Expired is nil when the delegation has no expiry.
	Expired   *bool  `json:"expired,omitempty"`
	ValidFrom string `json:"validFrom,omitempty"`
}

type Report struct {
	Agent      Optional[AgentInfo]      `json:"agent"`
	Owner      Optional[OwnerInfo]      `json:"owner"`
	Delegation Optional[DelegationInfo] `json:"delegation"`
}

func (r *Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Render writes the human view of the report.
func (r *Report) Render(w io.Writer) {
	if w == nil {
		return
	}
	cmds.Header(w, "Agent")
	if a, ok := r.Agent.Get(); ok {
		cmds.Label(w, "DID", a.DID)
		cmds.Label(w, "Algorithm", a.Algorithm)
		cmds.Label(w, "Domain", a.Domain)
		if a.Path != "" {
			cmds.Label(w, "Path", a.Path)
		}
		cmds.Success(w, "Agent identity loaded")
	} else {
		cmds.Fail(w, "No agent, run credat init")
	}

	cmds.Header(w, "Owner")
	if o, ok := r.Owner.Get(); ok {
		cmds.Label(w, "DID", o.DID)
		cmds.Success(w, "Owner identity loaded")
	} else {
		cmds.Fail(w, "No owner, run credat delegate to create one")
	}

	cmds.Header(w, "Delegation")
	if d, ok := r.Delegation.Get(); ok {
		if len(d.Scopes) > 0 {
			cmds.Label(w, "Scopes", strings.Join(d.Scopes, ", "))
		}
		cmds.Constraints(w, d.Constraints)
		if d.Expires != "" {
			expires := d.Expires
			if d.Expired != nil && *d.Expired {
				expires += " (expired)"
			}
			cmds.Label(w, "Expires", expires)
		}
		if d.ValidFrom != "" {
			cmds.Label(w, "Valid From", d.ValidFrom)
		}
		cmds.Success(w, "Delegation loaded")
	} else {
		cmds.Fail(w, "No delegation, run credat delegate")
	}
	cmds.Fprintln(w)
}

// Cmd builds the status report. It needs only the store.
type Cmd struct {
	cmds.Cmd
	// Now is the clock for the expiry check, nil means time.Now.
	Now func() time.Time
}

func (c Cmd) Validate() error {
	if c.Store == nil {
		return cmds.ErrNoStore
	}
	return nil
}

func (c Cmd) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "status")

	try.To(c.Validate())
	rep := try.To1(c.Report())
	rep.Render(w)
	return rep, nil
}

// Report loads every record independently. A missing record is absent from
// the report, a record which cannot be read is an error.
func (c Cmd) Report() (rep *Report, err error) {
	defer err2.Handle(&err)

	rep = &Report{
		Agent:      None[AgentInfo](),
		Owner:      None[OwnerInfo](),
		Delegation: None[DelegationInfo](),
	}
	if c.Store.AgentExists() {
		a := try.To1(c.Store.LoadAgent())
		rep.Agent = Some(AgentInfo{
			DID:       a.DID,
			Algorithm: a.KeyPair.Algorithm.String(),
			Domain:    a.Domain,
			Path:      a.Path,
		})
	}
	if c.Store.OwnerExists() {
		o := try.To1(c.Store.LoadOwner())
		rep.Owner = Some(OwnerInfo{DID: o.DID})
	}
	if c.Store.DelegationExists() {
		d := try.To1(c.Store.LoadDelegation())
		rep.Delegation = Some(c.delegationInfo(d.Claims))
	}
	glog.V(3).Infof("status of %s: agent %v, owner %v, delegation %v",
		c.Store.Dir(), rep.Agent.Present(),
		rep.Owner.Present(), rep.Delegation.Present())
	return rep, nil
}

func (c Cmd) delegationInfo(claims core.Claims) DelegationInfo {
	info := DelegationInfo{
		Scopes:      claims.Scopes,
		Constraints: claims.Constraints.Normalized(),
		Expires:     claims.ValidUntil,
		ValidFrom:   claims.ValidFrom,
	}
	if info.Scopes == nil {
		info.Scopes = []string{}
	}
	if claims.ValidUntil == "" {
		return info
	}
	until, err := utils.ParseISO8601(claims.ValidUntil)
	if err != nil {
		glog.Warningf("delegation expiry %q is not a date", claims.ValidUntil)
		return info
	}
	expired := until.Before(c.now())
	info.Expires = utils.FormatISO8601(until)
	info.Expired = &expired
	return info
}
