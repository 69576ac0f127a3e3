package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"lg/nutritrack-go-api/internal/nutrition"
)

type goalsOptions struct {
	weightLb int
	heightIn int
	age      int
	sex      string
	activity string
	goal     string
	protein  string
	period   string
}

func newGoalsCmd() *cobra.Command {
	var opts goalsOptions
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show daily, weekly or monthly calorie and macro goals",
		Example: "  nutri goals --weight 180 --height 70 --age 30 --sex male\n" +
			"  nutri goals --weight 150 --height 64 --age 41 --sex female --goal maintain --period week",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoals(cmd.OutOrStdout(), opts)
		},
	}
	def := nutrition.NewProfile()
	cmd.Flags().IntVar(&opts.weightLb, "weight", 0, "Body weight in pounds")
	cmd.Flags().IntVar(&opts.heightIn, "height", 0, "Height in inches")
	cmd.Flags().IntVar(&opts.age, "age", 0, "Age in years")
	cmd.Flags().StringVar(&opts.sex, "sex", "", "male or female")
	cmd.Flags().StringVar(&opts.activity, "activity", string(def.ActivityLevel), "sedentary|light|moderate|active|athlete")
	cmd.Flags().StringVar(&opts.goal, "goal", string(def.Goal), "lose_fast|lose|lose_slow|maintain|gain_slow|gain")
	cmd.Flags().StringVar(&opts.protein, "protein", string(def.ProteinTarget), "low|moderate|high")
	cmd.Flags().StringVar(&opts.period, "period", "day", "day|week|month")
	return cmd
}

func runGoals(w io.Writer, opts goalsOptions) error {
	p := nutrition.Profile{
		ActivityLevel: nutrition.ActivityLevel(opts.activity),
		Goal:          nutrition.Goal(opts.goal),
		ProteinTarget: nutrition.ProteinTarget(opts.protein),
	}
	if opts.weightLb != 0 {
		p.WeightLb = &opts.weightLb
	}
	if opts.heightIn != 0 {
		p.HeightIn = &opts.heightIn
	}
	if opts.age != 0 {
		p.Age = &opts.age
	}
	if opts.sex != "" {
		sex := nutrition.Sex(opts.sex)
		if !sex.Valid() {
			return fmt.Errorf("invalid --sex %q (expected male or female)", opts.sex)
		}
		p.Sex = &sex
	}

	daily, defaults := nutrition.ResolveDailyGoals(p)
	goals := daily
	switch opts.period {
	case "day":
	case "week":
		goals = nutrition.WeeklyGoals(daily)
	case "month":
		goals = nutrition.MonthlyGoals(daily)
	default:
		return fmt.Errorf("invalid --period %q (expected day, week or month)", opts.period)
	}

	if p.HasBodyMetrics() {
		bmr := nutrition.BMR(float64(*p.WeightLb), float64(*p.HeightIn), float64(*p.Age), *p.Sex)
		fmt.Fprintf(w, "BMR: %d\nTDEE: %d\n", int(math.Round(bmr)), nutrition.TDEE(bmr, p.ActivityLevel))
	}
	fmt.Fprintf(w, "Period: %s\nCalories: %d\nProtein: %dg\nCarbs: %dg\nFat: %dg\n",
		opts.period, goals.Calories, goals.Protein, goals.Carbs, goals.Fat)

	switch {
	case defaults.FallbackGoals:
		fmt.Fprintln(w, "Note: weight, height, age and sex are all required; showing default goals")
	case defaults.Any():
		if defaults.ActivityDefaulted {
			fmt.Fprintf(w, "Note: unknown activity %q, using %s\n", opts.activity, nutrition.DefaultActivityLevel)
		}
		if defaults.GoalDefaulted {
			fmt.Fprintf(w, "Note: unknown goal %q, using %s\n", opts.goal, nutrition.DefaultGoal)
		}
		if defaults.ProteinDefaulted {
			fmt.Fprintf(w, "Note: unknown protein target %q, using %s\n", opts.protein, nutrition.DefaultProteinTarget)
		}
	}
	return nil
}
