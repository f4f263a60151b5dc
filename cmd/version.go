package cmd

import (
	"fmt"

	"github.com/findy-network/credat/agent/utils"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var versionDoc = ``

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of the CLI tool",
	Long:  versionDoc,
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		if rootFlags.json {
			try.To1(fmt.Fprintf(cmd.OutOrStdout(), "{\"version\":%q}\n", utils.Version))
			return nil
		}
		try.To1(fmt.Fprintln(cmd.OutOrStdout(), utils.Version))
		return nil
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	rootCmd.AddCommand(versionCmd)
}
