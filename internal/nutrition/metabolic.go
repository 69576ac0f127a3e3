package nutrition

// BMR computes basal metabolic rate via Mifflin-St Jeor from imperial
// inputs. It does not validate; callers guard missing fields (DailyGoals
// does). Any sex other than male takes the female constant.
func BMR(weightLb, heightIn, ageYears float64, sex Sex) float64 {
	kg := PoundsToKilograms(weightLb)
	cm := InchesToCentimeters(heightIn)
	bmr := 10*kg + 6.25*cm - 5*ageYears
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales bmr by the activity multiplier and rounds. Unknown levels use
// the moderate multiplier.
func TDEE(bmr float64, level ActivityLevel) int {
	tier, _ := level.Lookup()
	return roundInt(bmr * tier.Value)
}

// CalorieTarget subtracts the goal's deficit from tdee. Unknown goals use a
// zero deficit.
func CalorieTarget(tdee int, goal Goal) int {
	tier, _ := goal.Lookup()
	return roundInt(float64(tdee) - tier.Value)
}

// DefaultGoals is used whenever the profile lacks body metrics.
var DefaultGoals = Goals{Calories: 2000, Protein: 150, Carbs: 200, Fat: 67}

// Defaults records which fallbacks ResolveDailyGoals substituted.
type Defaults struct {
	FallbackGoals     bool `json:"fallback_goals"`
	ActivityDefaulted bool `json:"activity_defaulted"`
	GoalDefaulted     bool `json:"goal_defaulted"`
	ProteinDefaulted  bool `json:"protein_defaulted"`
}

// Any reports whether at least one default was applied.
func (d Defaults) Any() bool {
	return d.FallbackGoals || d.ActivityDefaulted || d.GoalDefaulted || d.ProteinDefaulted
}

// DailyGoals runs profile -> BMR -> TDEE -> calorie target -> macros.
func DailyGoals(p Profile) Goals {
	g, _ := ResolveDailyGoals(p)
	return g
}

// ResolveDailyGoals is DailyGoals that also reports the substituted
// defaults. When body metrics are missing the whole computation
// short-circuits to DefaultGoals and only FallbackGoals is set.
func ResolveDailyGoals(p Profile) (Goals, Defaults) {
	var d Defaults
	if !p.HasBodyMetrics() {
		d.FallbackGoals = true
		return DefaultGoals, d
	}
	_, activityOK := p.ActivityLevel.Lookup()
	_, goalOK := p.Goal.Lookup()
	_, proteinOK := p.ProteinTarget.Lookup()
	d.ActivityDefaulted = !activityOK
	d.GoalDefaulted = !goalOK
	d.ProteinDefaulted = !proteinOK

	weight := *p.WeightLb
	bmr := BMR(float64(weight), float64(*p.HeightIn), float64(*p.Age), *p.Sex)
	calories := CalorieTarget(TDEE(bmr, p.ActivityLevel), p.Goal)
	m := AllocateMacros(calories, weight, p.ProteinTarget)
	return Goals{
		Calories: calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
	}, d
}
