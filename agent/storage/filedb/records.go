package filedb

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/core"
)

// on-disk shapes, key material is base64url encoded

type keyPairJSON struct {
	Algorithm  string `json:"algorithm"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

type agentJSON struct {
	DID         string          `json:"did"`
	Algorithm   string          `json:"algorithm"`
	Domain      string          `json:"domain"`
	Path        string          `json:"path,omitempty"`
	KeyPair     keyPairJSON     `json:"keyPair"`
	DIDDocument json.RawMessage `json:"didDocument"`
}

type ownerJSON struct {
	DID     string      `json:"did"`
	KeyPair keyPairJSON `json:"keyPair"`
}

func toKeyPairJSON(kp core.KeyPair) keyPairJSON {
	return keyPairJSON{
		Algorithm:  kp.Algorithm.String(),
		PublicKey:  utils.EncodeB64(kp.PublicKey),
		PrivateKey: utils.EncodeB64(kp.PrivateKey),
	}
}

func (kp keyPairJSON) keyPair() (core.KeyPair, error) {
	pub, err := utils.DecodeB64(kp.PublicKey)
	if err != nil {
		return core.KeyPair{}, fieldErr("keyPair.publicKey", err)
	}
	priv, err := utils.DecodeB64(kp.PrivateKey)
	if err != nil {
		return core.KeyPair{}, fieldErr("keyPair.privateKey", err)
	}
	return core.KeyPair{
		Algorithm:  core.Algorithm(kp.Algorithm),
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

func fieldErr(field string, err error) error {
	var de *core.DecodeError
	if errors.As(err, &de) {
		err = de.Err
	}
	return &core.DecodeError{Field: field, Err: err}
}

func toAgentJSON(a core.Agent) agentJSON {
	doc := a.DIDDocument
	if len(doc) == 0 {
		doc = json.RawMessage("null")
	}
	return agentJSON{
		DID:         a.DID,
		Algorithm:   a.KeyPair.Algorithm.String(),
		Domain:      a.Domain,
		Path:        a.Path,
		KeyPair:     toKeyPairJSON(a.KeyPair),
		DIDDocument: doc,
	}
}

func (a agentJSON) agent() (*core.Agent, error) {
	kp, err := a.KeyPair.keyPair()
	if err != nil {
		return nil, err
	}
	return &core.Agent{
		DID:         a.DID,
		Domain:      a.Domain,
		Path:        a.Path,
		KeyPair:     kp,
		DIDDocument: compact(a.DIDDocument),
	}, nil
}

func toOwnerJSON(o core.Owner) ownerJSON {
	return ownerJSON{
		DID:     o.DID,
		KeyPair: toKeyPairJSON(o.KeyPair),
	}
}

func (o ownerJSON) owner() (*core.Owner, error) {
	kp, err := o.KeyPair.keyPair()
	if err != nil {
		return nil, err
	}
	return &core.Owner{DID: o.DID, KeyPair: kp}, nil
}

// compact gives back the document in the same form the SDK produced it,
// the file itself is indented.
func compact(doc json.RawMessage) json.RawMessage {
	if len(doc) == 0 || bytes.Equal(doc, []byte("null")) {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err != nil {
		return doc
	}
	return buf.Bytes()
}
