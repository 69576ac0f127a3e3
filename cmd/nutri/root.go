package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nutri",
		Short:         "nutri computes calorie and macro goals offline",
		Long:          "nutri runs the same goal and progress calculations as the API from flags, for checking numbers without a server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGoalsCmd(), newScoreCmd())
	return root
}
