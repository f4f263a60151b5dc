package delegation

import (
	"io"
	"strings"

	"github.com/findy-network/credat/agent/storage/api"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// VerifyCmd verifies a delegation token against the stored owner key. An
// empty Token means the stored delegation.
type VerifyCmd struct {
	cmds.Cmd
	Token string
}

func (c VerifyCmd) Validate() error {
	return c.Cmd.Validate()
}

// Exec returns the verification result as is. An invalid delegation is a
// successful call with Valid false.
func (c VerifyCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "verify")

	try.To(c.Validate())

	token := c.Token
	if token == "" {
		if !c.Store.DelegationExists() {
			return nil, core.ErrMissingToken
		}
		d := try.To1(c.Store.LoadDelegation())
		token = d.Token
		cmds.Fprintln(w, cmds.Dim("  Loaded token from "+c.Store.Path(api.DelegationRecord)))
	}
	if !c.Store.OwnerExists() {
		return nil, core.ErrMissingOwner
	}
	owner := try.To1(c.Store.LoadOwner())

	res := try.To1(c.SDK.VerifyDelegation(c.Context(), token,
		owner.KeyPair.PublicKey, owner.KeyPair.Algorithm))
	renderVerify(w, res)
	return res, nil
}

func renderVerify(w io.Writer, r *core.VerifyResult) {
	if w == nil {
		return
	}
	cmds.Header(w, "Verification Result")
	if r.Valid {
		cmds.Success(w, "Valid delegation")
	} else {
		cmds.Fail(w, "Invalid delegation")
	}
	cmds.Fprintln(w)
	cmds.Label(w, "Agent", orUnknown(r.Agent))
	cmds.Label(w, "Owner", orUnknown(r.Owner))
	if len(r.Scopes) > 0 {
		cmds.Label(w, "Scopes", strings.Join(r.Scopes, ", "))
	}
	cmds.Constraints(w, r.Constraints)
	if r.ValidFrom != "" {
		cmds.Label(w, "Valid From", r.ValidFrom)
	}
	if r.ValidUntil != "" {
		cmds.Label(w, "Valid Until", r.ValidUntil)
	}
	if len(r.Errors) > 0 {
		cmds.Fprintln(w)
		cmds.Fprintln(w, "  Errors:")
		for _, e := range r.Errors {
			cmds.Fprintf(w, "    • %s\n", e.Message)
		}
	}
	cmds.Fprintln(w)
}

func orUnknown(s string) string {
	if s == "" {
		return cmds.Dim("(unknown)")
	}
	return s
}
