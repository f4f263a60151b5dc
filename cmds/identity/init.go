// Package identity implements the init flow which creates the local agent
// identity.
package identity

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/findy-network/credat/agent/storage/api"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/core"
	"github.com/findy-network/credat/method"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type InitCmd struct {
	cmds.Cmd
	Domain    string
	Path      string
	Algorithm string
	Force     bool
}

func (c InitCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Domain) == "" {
		return &core.ValidationError{Msg: "--domain is required"}
	}
	if _, err := c.algorithm(); err != nil {
		return err
	}
	return nil
}

func (c InitCmd) algorithm() (core.Algorithm, error) {
	if c.Algorithm == "" {
		return core.DefaultAlgorithm, nil
	}
	return core.ParseAlgorithm(c.Algorithm)
}

type InitResult struct {
	DID         string          `json:"did"`
	Algorithm   core.Algorithm  `json:"algorithm"`
	URL         string          `json:"url"`
	DIDDocument json.RawMessage `json:"didDocument"`
	SavedTo     string          `json:"savedTo"`
}

func (r *InitResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Exec creates the agent identity and stores it. An existing agent is
// replaced only when Force is set.
func (c InitCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "init")

	try.To(c.Validate())
	alg := try.To1(c.algorithm())
	if c.Store.AgentExists() && !c.Force {
		return nil, &core.ConflictError{Record: api.AgentRecord}
	}

	id := try.To1(c.SDK.CreateIdentity(c.Context(), c.Domain, c.Path, alg))
	try.To(c.Store.SaveAgent(core.Agent{
		DID:         id.DID,
		Domain:      c.Domain,
		Path:        c.Path,
		KeyPair:     id.KeyPair,
		DIDDocument: id.DIDDocument,
	}))
	glog.V(3).Infoln("agent created:", id.DID)

	res := &InitResult{
		DID:         id.DID,
		Algorithm:   alg,
		URL:         method.WebDocURL(c.Domain, c.Path),
		DIDDocument: id.DIDDocument,
		SavedTo:     c.Store.Path(api.AgentRecord),
	}
	res.render(w)
	return res, nil
}

func (r *InitResult) render(w io.Writer) {
	if w == nil {
		return
	}
	cmds.Header(w, "Agent Created")
	cmds.Label(w, "DID", r.DID)
	cmds.Label(w, "Algorithm", r.Algorithm.String())
	cmds.Label(w, "Saved to", cmds.Dim(r.SavedTo))

	cmds.Fprintln(w)
	cmds.Fprintln(w, "  Host this DID Document at:")
	cmds.Fprintf(w, "  %s\n", r.URL)
	cmds.Fprintln(w)
	cmds.Fprintln(w, cmds.Dim("  Document contents:"))
	var doc bytes.Buffer
	if err := json.Indent(&doc, r.DIDDocument, "  ", "  "); err == nil {
		cmds.Fprintf(w, "  %s\n", cmds.Dim(doc.String()))
	}
	cmds.Fprintln(w)
	cmds.Success(w, "Agent identity ready")
}
