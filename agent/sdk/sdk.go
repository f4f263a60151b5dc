// Package sdk bundles the identity capabilities the CLI runs on: did:web
// identities from package method and delegation credentials and the
// handshake from package vc.
package sdk

import (
	"context"
	"time"

	"github.com/findy-network/credat/agent/vc"
	"github.com/findy-network/credat/core"
	"github.com/findy-network/credat/method"
)

type SDK struct {
	*vc.Service
}

var (
	_ core.SDK       = (*SDK)(nil)
	_ core.Handshake = (*SDK)(nil)
)

// New returns the SDK. A nil clock means time.Now.
func New(now func() time.Time) *SDK {
	return &SDK{Service: &vc.Service{Now: now}}
}

func (s *SDK) CreateIdentity(ctx context.Context, domain, path string, alg core.Algorithm) (*core.Identity, error) {
	return method.NewWeb(ctx, domain, path, alg)
}
