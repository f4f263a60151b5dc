package sdk

import (
	"context"
	"testing"

	"github.com/findy-network/credat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSDK_trustFlow(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	owner, err := s.CreateIdentity(ctx, "owner.test", "", core.ES256)
	require.NoError(t, err)
	agent, err := s.CreateIdentity(ctx, "owner.test", "agents/bot", core.EdDSA)
	require.NoError(t, err)
	assert.Equal(t, "did:web:owner.test:agents:bot", agent.DID)

	d, err := s.IssueDelegation(ctx, core.DelegationRequest{
		Agent:        agent.DID,
		Owner:        owner.DID,
		OwnerKeyPair: owner.KeyPair,
		Scopes:       []string{"read"},
	})
	require.NoError(t, err)

	ch, err := s.CreateChallenge("did:web:service.test")
	require.NoError(t, err)
	p, err := s.PresentCredentials(ctx, core.PresentRequest{
		Challenge:  ch,
		Delegation: d.Token,
		AgentDID:   agent.DID,
		AgentKey:   agent.KeyPair,
	})
	require.NoError(t, err)

	r, err := s.VerifyPresentation(ctx, p, core.PresentationCheck{
		Challenge:      ch,
		OwnerPublicKey: owner.KeyPair.PublicKey,
		OwnerAlgorithm: core.ES256,
		AgentPublicKey: agent.KeyPair.PublicKey,
		AgentAlgorithm: core.EdDSA,
	})
	require.NoError(t, err)
	assert.True(t, r.Valid, r.Errors)
	assert.True(t, core.HasScope(r, "read"))
}

func TestSDK_emptyDomain(t *testing.T) {
	_, err := New(nil).CreateIdentity(context.Background(), "", "", core.ES256)
	var verr *core.ValidationError
	assert.ErrorAs(t, err, &verr)
}
