package nutrition

// Goals is a calorie and macro budget for some period.
type Goals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

const (
	DaysPerWeek = 7
	// A month is always 30 days, not the length of the current month.
	DaysPerMonth = 30
)

// ProjectGoals multiplies every field of daily by periodDays.
func ProjectGoals(daily Goals, periodDays int) Goals {
	return Goals{
		Calories: daily.Calories * periodDays,
		Protein:  daily.Protein * periodDays,
		Carbs:    daily.Carbs * periodDays,
		Fat:      daily.Fat * periodDays,
	}
}

func WeeklyGoals(daily Goals) Goals { return ProjectGoals(daily, DaysPerWeek) }

func MonthlyGoals(daily Goals) Goals { return ProjectGoals(daily, DaysPerMonth) }
