package cmd

import (
	"fmt"

	"github.com/findy-network/credat/cmds/delegation"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var verifyDoc = `Verifies a delegation token against the stored owner key. Without the
token argument the stored delegation is verified. An invalid delegation is
reported in the result, it's not an error of the command.`

var verifyCmd = &cobra.Command{
	Use:   "verify [token]",
	Short: "Verify a delegation token",
	Long:  verifyDoc,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		vCmd := delegation.VerifyCmd{Cmd: try.To1(baseCmd())}
		if len(args) > 0 {
			vCmd.Token = args[0]
		}
		return run(cmd, vCmd)
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	rootCmd.AddCommand(verifyCmd)
}
