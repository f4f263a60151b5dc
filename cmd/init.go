package cmd

import (
	"fmt"

	"github.com/findy-network/credat/cmds/identity"
	"github.com/findy-network/credat/core"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var initEnvs = map[string]string{
	"domain":    "DOMAIN",
	"path":      "PATH",
	"algorithm": "ALGORITHM",
}

var initDoc = `Creates the agent identity: a did:web DID with a fresh key pair and the
DID document which must be hosted at the printed URL. The identity is saved
to agent.json of the trust store. An existing agent is kept unless --force
is given.

Example
	credat init --domain acme.corp --path agents/assistant --algorithm EdDSA`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an agent identity with did:web",
	Long:  initDoc,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(initEnvs, cmd.Name())
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		iCmd.Cmd = try.To1(baseCmd())
		return run(cmd, iCmd)
	},
}

var iCmd = identity.InitCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	flags := initCmd.Flags()
	flags.StringVarP(&iCmd.Domain, "domain", "d", "", flagInfo("domain for did:web, e.g. acme.corp", initCmd.Name(), initEnvs["domain"]))
	flags.StringVarP(&iCmd.Path, "path", "p", "", flagInfo("optional sub path, e.g. agents/my-agent", initCmd.Name(), initEnvs["path"]))
	flags.StringVarP(&iCmd.Algorithm, "algorithm", "a", string(core.DefaultAlgorithm), flagInfo("signing algorithm: "+core.AlgorithmNames(), initCmd.Name(), initEnvs["algorithm"]))
	flags.BoolVarP(&iCmd.Force, "force", "f", false, "overwrite an existing agent identity")
	try.To(initCmd.MarkFlagRequired("domain"))

	rootCmd.AddCommand(initCmd)
}
