package vc

import (
	"context"
	"time"

	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/core"
	"github.com/findy-network/credat/method"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	ChallengeType    = "CredatChallenge"
	PresentationType = "CredatPresentation"

	// MaxChallengeAge is how long a service accepts answers to a challenge.
	MaxChallengeAge = 5 * time.Minute
)

type proofClaims struct {
	jwt.RegisteredClaims
	Nonce      string `json:"nonce"`
	Delegation string `json:"delegation"`
}

// CreateChallenge is called by a service which wants an agent to prove
// control of its key and present a delegation.
func (s *Service) CreateChallenge(from string) (c *core.Challenge, err error) {
	defer err2.Handle(&err, "create challenge")

	return &core.Challenge{
		Type:      ChallengeType,
		Nonce:     try.To1(utils.NewNonce()),
		From:      from,
		Timestamp: utils.FormatISO8601(s.now()),
	}, nil
}

// PresentCredentials answers the challenge by signing the nonce and the
// delegation token with the agent key.
func (s *Service) PresentCredentials(_ context.Context, req core.PresentRequest) (p *core.Presentation, err error) {
	defer err2.Handle(&err, "present credentials")

	sm := try.To1(signingMethod(req.AgentKey.Algorithm))
	key := try.To1(method.Signer(req.AgentKey))

	now := s.now()
	claims := proofClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   req.AgentDID,
			Audience: jwt.ClaimStrings{req.Challenge.From},
			ID:       utils.UUID(),
			IssuedAt: jwt.NewNumericDate(now),
		},
		Nonce:      req.Challenge.Nonce,
		Delegation: req.Delegation,
	}
	token := jwt.NewWithClaims(sm, claims)
	token.Header["kid"] = req.AgentDID + method.KeyFragment

	return &core.Presentation{
		Type:       PresentationType,
		Delegation: req.Delegation,
		Nonce:      req.Challenge.Nonce,
		Proof:      try.To1(token.SignedString(key)),
		From:       req.AgentDID,
	}, nil
}

// VerifyPresentation is the service side of the handshake. The result is
// the delegation verification result extended with the proof checks.
func (s *Service) VerifyPresentation(
	ctx context.Context,
	p *core.Presentation,
	check core.PresentationCheck,
) (
	r *core.VerifyResult,
	err error,
) {
	defer err2.Handle(&err, "verify presentation")

	r = try.To1(s.VerifyDelegation(ctx, p.Delegation, check.OwnerPublicKey, check.OwnerAlgorithm))

	if p.Type != PresentationType {
		r.AddError("unknown presentation type %q", p.Type)
	}
	ch := check.Challenge
	if ch == nil {
		r.AddError("no challenge to verify against")
		return r, nil
	}
	if p.Nonce != ch.Nonce {
		r.AddError("nonce does not match the challenge")
	}
	if issued, err := utils.ParseISO8601(ch.Timestamp); err != nil {
		r.AddError("bad challenge timestamp")
	} else if s.now().Sub(issued) > MaxChallengeAge {
		r.AddError("challenge has expired")
	}

	agentAlg := check.AgentAlgorithm
	if agentAlg == "" {
		agentAlg = core.DefaultAlgorithm
	}
	sm, err := signingMethod(agentAlg)
	if err != nil {
		r.AddError("%v", err)
		return r, nil
	}
	pub, err := method.PublicKey(agentAlg, check.AgentPublicKey)
	if err != nil {
		r.AddError("invalid agent public key: %v", err)
		return r, nil
	}
	var claims proofClaims
	_, err = jwt.ParseWithClaims(p.Proof, &claims,
		func(*jwt.Token) (any, error) { return pub, nil },
		jwt.WithValidMethods([]string{sm.Alg()}),
		jwt.WithAudience(ch.From),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err != nil:
		r.AddError("invalid presentation proof: %s", tokenError(err))
	case claims.Nonce != ch.Nonce:
		r.AddError("proof is not bound to the challenge")
	case claims.Delegation != p.Delegation:
		r.AddError("proof is not bound to the delegation")
	case claims.Issuer != r.Agent:
		r.AddError("presenter is not the delegated agent")
	}
	return r, nil
}
