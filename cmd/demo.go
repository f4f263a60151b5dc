package cmd

import (
	"fmt"
	"time"

	"github.com/findy-network/credat/agent/sdk"
	"github.com/findy-network/credat/cmds"
	"github.com/findy-network/credat/cmds/demo"
	"github.com/lainio/err2"
	"github.com/spf13/cobra"
)

var demoDoc = `Runs the full trust flow in memory: owner and agent identities, a
delegation, and a challenge handshake where a service verifies the agent.
The trust store is not touched.`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a full trust flow demo",
	Long:  demoDoc,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s := sdk.New(nil)
		c := demo.Cmd{
			Cmd:       cmds.Cmd{SDK: s},
			Handshake: s,
			Pause:     demoPause,
		}
		if rootFlags.json {
			c.Pause = 0
		}
		return run(cmd, c)
	},
}

var demoPause time.Duration

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	demoCmd.Flags().DurationVar(&demoPause, "pause", 300*time.Millisecond, "pause between the steps")
	rootCmd.AddCommand(demoCmd)
}
