package core

import "context"

//go:generate mockgen -package mocks -destination mocks/sdk.go -source sdk.go SDK

// SDK is the identity capability the lifecycle flows are built on. The
// flows never call two SDK methods concurrently.
type SDK interface {
	CreateIdentity(ctx context.Context, domain, path string, alg Algorithm) (*Identity, error)
	IssueDelegation(ctx context.Context, req DelegationRequest) (*Delegation, error)
	VerifyDelegation(ctx context.Context, token string, ownerPublicKey []byte, alg Algorithm) (*VerifyResult, error)
}

// Challenge is issued by a service to an agent which must prove control of
// its key and present a delegation.
type Challenge struct {
	Type      string `json:"type"`
	Nonce     string `json:"nonce"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
}

// PresentRequest is the agent side input of the handshake.
type PresentRequest struct {
	Challenge  *Challenge
	Delegation string
	AgentDID   string
	AgentKey   KeyPair
}

// Presentation answers a challenge.
type Presentation struct {
	Type       string `json:"type"`
	Delegation string `json:"delegation"`
	Nonce      string `json:"nonce"`
	Proof      string `json:"proof"`
	From       string `json:"from"`
}

// PresentationCheck carries the keys the service verifies against.
type PresentationCheck struct {
	Challenge      *Challenge
	OwnerPublicKey []byte
	OwnerAlgorithm Algorithm
	AgentPublicKey []byte
	AgentAlgorithm Algorithm
}

// Handshake is the challenge/presentation capability used by the demo.
type Handshake interface {
	CreateChallenge(from string) (*Challenge, error)
	PresentCredentials(ctx context.Context, req PresentRequest) (*Presentation, error)
	VerifyPresentation(ctx context.Context, p *Presentation, check PresentationCheck) (*VerifyResult, error)
}

// HasScope tells if a verified result grants the scope.
func HasScope(r *VerifyResult, scope string) bool {
	if r == nil || !r.Valid {
		return false
	}
	for _, s := range r.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
