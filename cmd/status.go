package cmd

import (
	"fmt"

	"github.com/findy-network/credat/cmds/status"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local agent, owner and delegation",
	Long:  `Reports the records of the trust store and whether the delegation has expired.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		return run(cmd, status.Cmd{Cmd: try.To1(baseCmd())})
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	rootCmd.AddCommand(statusCmd)
}
