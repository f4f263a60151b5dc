package vc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/core"
	"github.com/findy-network/credat/method"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	ContextV2      = "https://www.w3.org/ns/credentials/v2"
	CredentialType = "VerifiableCredential"
	DelegationType = "AgentDelegationCredential"
)

// Service issues and verifies delegation credentials. Credentials are JWTs
// carrying a W3C VC payload in the vc claim.
type Service struct {
	// Now is the clock, nil means time.Now.
	Now func() time.Time
}

type subject struct {
	ID          string            `json:"id"`
	Scopes      []string          `json:"scopes"`
	Constraints *core.Constraints `json:"constraints,omitempty"`
}

type credential struct {
	Context           []string `json:"@context"`
	Type              []string `json:"type"`
	Issuer            string   `json:"issuer"`
	ValidFrom         string   `json:"validFrom"`
	ValidUntil        string   `json:"validUntil,omitempty"`
	CredentialSubject subject  `json:"credentialSubject"`
}

type delegationClaims struct {
	jwt.RegisteredClaims
	VC credential `json:"vc"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func signingMethod(alg core.Algorithm) (jwt.SigningMethod, error) {
	switch alg {
	case core.ES256:
		return jwt.SigningMethodES256, nil
	case core.EdDSA:
		return jwt.SigningMethodEdDSA, nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAlgorithm, alg)
	}
}

// IssueDelegation signs a delegation credential with the owner key.
func (s *Service) IssueDelegation(_ context.Context, req core.DelegationRequest) (d *core.Delegation, err error) {
	defer err2.Handle(&err, "issue delegation")

	sm := try.To1(signingMethod(req.OwnerKeyPair.Algorithm))
	key := try.To1(method.Signer(req.OwnerKeyPair))

	now := s.now()
	constraints := req.Constraints.Normalized()
	claims := delegationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    req.Owner,
			Subject:   req.Agent,
			ID:        utils.URNUUID(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		VC: credential{
			Context:    []string{ContextV2},
			Type:       []string{CredentialType, DelegationType},
			Issuer:     req.Owner,
			ValidFrom:  utils.FormatISO8601(now),
			ValidUntil: req.ValidUntil,
			CredentialSubject: subject{
				ID:          req.Agent,
				Scopes:      req.Scopes,
				Constraints: constraints,
			},
		},
	}
	if req.ValidUntil != "" {
		until := try.To1(utils.ParseISO8601(req.ValidUntil))
		claims.ExpiresAt = jwt.NewNumericDate(until)
	}

	token := jwt.NewWithClaims(sm, claims)
	token.Header["kid"] = req.Owner + method.KeyFragment
	raw := try.To1(token.SignedString(key))

	glog.V(3).Infof("issued delegation %s: %s -> %s", claims.ID, req.Owner, req.Agent)
	return &core.Delegation{
		Token: raw,
		Claims: core.Claims{
			Agent:       req.Agent,
			Owner:       req.Owner,
			Scopes:      req.Scopes,
			Constraints: constraints,
			ValidFrom:   claims.VC.ValidFrom,
			ValidUntil:  req.ValidUntil,
		},
	}, nil
}

// VerifyDelegation checks the signature and validity window of the token
// against the owner public key. Every verification failure is reported in
// the result, the error return is reserved for failures to run at all.
func (s *Service) VerifyDelegation(
	_ context.Context,
	token string,
	ownerPublicKey []byte,
	alg core.Algorithm,
) (
	r *core.VerifyResult,
	err error,
) {
	r = &core.VerifyResult{Valid: true}
	if alg == "" {
		alg = core.DefaultAlgorithm
	}
	sm, err := signingMethod(alg)
	if err != nil {
		r.AddError("%v", err)
		return r, nil
	}
	pub, err := method.PublicKey(alg, ownerPublicKey)
	if err != nil {
		r.AddError("invalid owner public key: %v", err)
		return r, nil
	}

	var claims delegationClaims
	_, err = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return pub, nil },
		jwt.WithValidMethods([]string{sm.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		r.AddError("%s", tokenError(err))
	}
	if errors.Is(err, jwt.ErrTokenMalformed) {
		return r, nil
	}
	fill(r, &claims)
	checkClaims(r, &claims)
	return r, nil
}

func fill(r *core.VerifyResult, c *delegationClaims) {
	subj := c.VC.CredentialSubject
	r.Agent = subj.ID
	r.Owner = c.VC.Issuer
	r.Scopes = subj.Scopes
	r.Constraints = subj.Constraints.Normalized()
	r.ValidFrom = c.VC.ValidFrom
	r.ValidUntil = c.VC.ValidUntil
}

func checkClaims(r *core.VerifyResult, c *delegationClaims) {
	if !hasType(c.VC.Type, DelegationType) {
		r.AddError("credential is not a %s", DelegationType)
	}
	if c.VC.Issuer == "" || c.VC.Issuer != c.Issuer {
		r.AddError("issuer mismatch")
	}
	if subj := c.VC.CredentialSubject.ID; subj == "" || subj != c.Subject {
		r.AddError("subject mismatch")
	}
}

func hasType(types []string, t string) bool {
	for _, s := range types {
		if s == t {
			return true
		}
	}
	return false
}

func tokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed delegation token"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return "invalid delegation signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "delegation has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "delegation is not yet valid"
	default:
		return err.Error()
	}
}
