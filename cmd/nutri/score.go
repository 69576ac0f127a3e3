package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lg/nutritrack-go-api/internal/nutrition"
)

type scoreOptions struct {
	deficit float64
	target  float64
	hitDays int
	days    int
}

func newScoreCmd() *cobra.Command {
	var opts scoreOptions
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score a window from its calorie deficit and protein hit days",
		Example: "  nutri score --deficit 2500 --target 14000 --hit-days 5 --days 7",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Float64Var(&opts.deficit, "deficit", 0, "Calories under target across the window (negative for over)")
	cmd.Flags().Float64Var(&opts.target, "target", 0, "Calorie target summed over tracked days")
	cmd.Flags().IntVar(&opts.hitDays, "hit-days", 0, "Tracked days that met the protein goal")
	cmd.Flags().IntVar(&opts.days, "days", 0, "Tracked days in the window")
	return cmd
}

func runScore(w io.Writer, opts scoreOptions) error {
	if opts.days < 0 || opts.hitDays < 0 {
		return fmt.Errorf("--days and --hit-days must not be negative")
	}
	if opts.hitDays > opts.days {
		return fmt.Errorf("--hit-days (%d) cannot exceed --days (%d)", opts.hitDays, opts.days)
	}

	s := nutrition.ScoreProgress(nutrition.Stats{
		Deficit:        opts.deficit,
		TargetCalories: int(opts.target),
		ProteinHitDays: opts.hitDays,
		DaysTracked:    opts.days,
	})
	fmt.Fprintf(w, "Score: %d\nDeficit score: %.1f\nProtein score: %.1f\nProtein hit rate: %d%%\nProjected fat loss: %.1f lbs\n",
		s.Total, s.DeficitScore, s.ProteinScore, s.ProteinHitRate, nutrition.ProjectedFatLoss(opts.deficit))
	return nil
}
