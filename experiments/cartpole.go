package experiments

import (
	"fmt"

	"github.com/spf13/cobra"

	"svplan/tasks"
)

func CartPoleCommand() *cobra.Command {
	var statesPerDim int
	var numActions int
	var horizon int

	cmd := &cobra.Command{
		Use: "cart-pole",
		Run: func(cmd *cobra.Command, args []string) {
			cp := tasks.NewCartPole(statesPerDim, numActions)
			t := &task{
				name:     "cart_pole",
				model:    cp,
				states:   cp.States,
				actions:  cp.Actions,
				dynamics: cp,
				starts: [][]float64{
					{0, 0, 0.05, 0},
					{0.5, 0, -0.08, 0},
				},
				horizon: horizon,
			}
			if err := runTask(signalContext(), t); err != nil {
				fmt.Println(err)
			}
		},
	}
	cmd.PersistentFlags().IntVar(&statesPerDim, "grid", 11, "States per state dimension")
	cmd.PersistentFlags().IntVar(&numActions, "actions", 5, "Number of discretized actions")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", 500, "Rollout step budget")
	return cmd
}
