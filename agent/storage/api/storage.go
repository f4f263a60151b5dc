package api

import "github.com/findy-network/credat/core"

const (
	AgentRecord      = "agent"
	OwnerRecord      = "owner"
	DelegationRecord = "delegation"
)

// TrustStore persists the three record kinds of the local trust state. Each
// kind holds at most one record; Save overwrites.
type TrustStore interface {
	Dir() string
	Path(record string) string

	EnsureRootDirectory() error

	AgentExists() bool
	SaveAgent(a core.Agent) error
	LoadAgent() (*core.Agent, error)

	OwnerExists() bool
	SaveOwner(o core.Owner) error
	LoadOwner() (*core.Owner, error)

	DelegationExists() bool
	SaveDelegation(d core.Delegation) error
	LoadDelegation() (*core.Delegation, error)
}
