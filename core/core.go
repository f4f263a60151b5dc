package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Algorithm is a JOSE signing algorithm name of a key pair.
type Algorithm string

const (
	ES256  Algorithm = "ES256"
	EdDSA  Algorithm = "EdDSA"
	ES256K Algorithm = "ES256K"

	DefaultAlgorithm = ES256
)

var algorithms = []Algorithm{ES256, EdDSA, ES256K}

// ParseAlgorithm accepts exactly the JOSE spellings. Empty string gives the
// default algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", &ValidationError{Msg: fmt.Sprintf(
		"--algorithm must be one of %s", AlgorithmNames())}
}

// AlgorithmNames returns the supported algorithms as a comma separated list.
func AlgorithmNames() string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func (a Algorithm) String() string {
	return string(a)
}

// KeyPair is immutable once created. PrivateKey must only be handed to the
// SDK for signing.
type KeyPair struct {
	Algorithm  Algorithm
	PublicKey  []byte
	PrivateKey []byte
}

// Identity is what the SDK returns when it mints a new DID.
type Identity struct {
	DID         string
	KeyPair     KeyPair
	DIDDocument json.RawMessage
}

// Agent is the identity which receives delegated authority.
type Agent struct {
	DID         string
	Domain      string
	Path        string
	KeyPair     KeyPair
	DIDDocument json.RawMessage
}

// Owner is the delegating principal. There is at most one per store.
type Owner struct {
	DID     string
	KeyPair KeyPair
}

// Constraints narrow a delegation. Zero valued fields are absent.
type Constraints struct {
	MaxTransactionValue *float64 `json:"maxTransactionValue,omitempty"`
	AllowedDomains      []string `json:"allowedDomains,omitempty"`
	RateLimit           *float64 `json:"rateLimit,omitempty"`
}

// IsEmpty tells if no constraint field is set. Empty constraints are never
// persisted or sent to the SDK.
func (c *Constraints) IsEmpty() bool {
	return c == nil ||
		(c.MaxTransactionValue == nil && len(c.AllowedDomains) == 0 &&
			c.RateLimit == nil)
}

// Normalized returns nil for empty constraints.
func (c *Constraints) Normalized() *Constraints {
	if c.IsEmpty() {
		return nil
	}
	return c
}

// Claims are the verifiable contents of a delegation token.
type Claims struct {
	Agent       string       `json:"agent"`
	Owner       string       `json:"owner"`
	Scopes      []string     `json:"scopes"`
	Constraints *Constraints `json:"constraints,omitempty"`
	ValidFrom   string       `json:"validFrom,omitempty"`
	ValidUntil  string       `json:"validUntil,omitempty"`
}

// Delegation is a signed grant from an owner to an agent.
type Delegation struct {
	Token  string `json:"token"`
	Claims Claims `json:"claims"`
}

// DelegationRequest carries everything the SDK needs to issue a delegation.
type DelegationRequest struct {
	Agent        string
	Owner        string
	OwnerKeyPair KeyPair
	Scopes       []string
	Constraints  *Constraints
	ValidUntil   string
}

// VerifyError is a single reason why a credential did not verify.
type VerifyError struct {
	Message string `json:"message"`
}

// VerifyResult is the outcome of a verification. Valid false is a normal
// result, not an error.
type VerifyResult struct {
	Valid       bool
	Agent       string
	Owner       string
	Scopes      []string
	Constraints *Constraints
	ValidFrom   string
	ValidUntil  string
	Errors      []VerifyError
}

// AddError marks the result invalid and appends the message.
func (r *VerifyResult) AddError(format string, a ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, VerifyError{Message: fmt.Sprintf(format, a...)})
}

type verifyJSON struct {
	Valid       bool         `json:"valid"`
	Agent       *string      `json:"agent"`
	Owner       *string      `json:"owner"`
	Scopes      []string     `json:"scopes"`
	Constraints *Constraints `json:"constraints"`
	ValidFrom   *string      `json:"validFrom"`
	ValidUntil  *string      `json:"validUntil"`
	Errors      []string     `json:"errors"`
}

// JSON projects the result the way verify prints it: absent values are
// null, scopes and errors are always arrays.
func (r *VerifyResult) JSON() ([]byte, error) {
	out := verifyJSON{
		Valid:       r.Valid,
		Agent:       strOrNil(r.Agent),
		Owner:       strOrNil(r.Owner),
		Scopes:      r.Scopes,
		Constraints: r.Constraints.Normalized(),
		ValidFrom:   strOrNil(r.ValidFrom),
		ValidUntil:  strOrNil(r.ValidUntil),
		Errors:      make([]string, len(r.Errors)),
	}
	if out.Scopes == nil {
		out.Scopes = []string{}
	}
	for i, e := range r.Errors {
		out.Errors[i] = e.Message
	}
	return json.Marshal(out)
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
