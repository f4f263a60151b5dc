package cmd

import (
	"fmt"

	"github.com/findy-network/credat/cmds/delegation"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var delegateEnvs = map[string]string{
	"agent":           "AGENT",
	"scopes":          "SCOPES",
	"max-value":       "MAX_VALUE",
	"until":           "UNTIL",
	"allowed-domains": "ALLOWED_DOMAINS",
	"rate-limit":      "RATE_LIMIT",
}

var delegateDoc = `Issues a delegation credential from the owner to an agent. The owner
identity is created on the first run and saved to owner.json, later runs
reuse it. The agent defaults to the one created by init. The credential is
saved to delegation.json.

Example
	credat delegate \
		--scopes payments:read,invoices:create \
		--max-value 500 \
		--until 2030-01-01`

var delegateCmd = &cobra.Command{
	Use:   "delegate",
	Short: "Issue a delegation credential to an agent",
	Long:  delegateDoc,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(delegateEnvs, cmd.Name())
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		dCmd.Cmd = try.To1(baseCmd())
		return run(cmd, dCmd)
	},
}

var dCmd = delegation.DelegateCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	flags := delegateCmd.Flags()
	flags.StringVarP(&dCmd.Agent, "agent", "a", "", flagInfo("agent DID, default is the local agent", delegateCmd.Name(), delegateEnvs["agent"]))
	flags.StringVarP(&dCmd.Scopes, "scopes", "s", "", flagInfo("comma separated scopes, e.g. payments:read,invoices:create", delegateCmd.Name(), delegateEnvs["scopes"]))
	flags.StringVarP(&dCmd.MaxValue, "max-value", "m", "", flagInfo("maximum transaction value constraint", delegateCmd.Name(), delegateEnvs["max-value"]))
	flags.StringVarP(&dCmd.Until, "until", "u", "", flagInfo("expiration date (ISO 8601)", delegateCmd.Name(), delegateEnvs["until"]))
	flags.StringVar(&dCmd.AllowedDomains, "allowed-domains", "", flagInfo("comma separated domains the agent may act on", delegateCmd.Name(), delegateEnvs["allowed-domains"]))
	flags.StringVar(&dCmd.RateLimit, "rate-limit", "", flagInfo("rate limit constraint", delegateCmd.Name(), delegateEnvs["rate-limit"]))
	try.To(delegateCmd.MarkFlagRequired("scopes"))

	rootCmd.AddCommand(delegateCmd)
}
