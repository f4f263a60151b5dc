/*
Package main is the credat command line tool for agent identity and
delegation. An owner delegates scoped authority to an AI agent with a
verifiable credential, and services verify the agent with a challenge
handshake before they trust it.

The tool keeps the local trust state in the hidden .credat directory of the
working directory: agent.json, owner.json and delegation.json. The directory
is readable by the user only because the files hold private keys.

# Commands

	init      creates the agent's did:web identity and DID document
	delegate  issues a delegation credential from the owner to the agent
	verify    verifies a delegation token against the owner key
	status    reports the local agent, owner and delegation
	demo      runs the whole trust flow in memory

Every command prints a JSON document instead of the human output when the
--json flag is given.

# Sub-packages

	agent    includes the identity SDK (vc, sdk), trust store and utils
	cmd      the cobra commands
	cmds     the command flows themselves, usable without cobra
	core     the domain model, the SDK interfaces and the error types
	method   did:web identities and the key handling
*/
package main
