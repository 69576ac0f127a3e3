package nutrition

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityAthlete   ActivityLevel = "athlete"
)

// Goal selects the daily calorie deficit (positive) or surplus (negative).
type Goal string

const (
	GoalLoseFast Goal = "lose_fast"
	GoalLose     Goal = "lose"
	GoalLoseSlow Goal = "lose_slow"
	GoalMaintain Goal = "maintain"
	GoalGainSlow Goal = "gain_slow"
	GoalGain     Goal = "gain"
)

// ProteinTarget selects grams of protein per pound of bodyweight.
type ProteinTarget string

const (
	ProteinLow      ProteinTarget = "low"
	ProteinModerate ProteinTarget = "moderate"
	ProteinHigh     ProteinTarget = "high"
)

// Sex picks the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Tier is the display label and arithmetic value behind one enum key.
type Tier struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

var activityTiers = map[ActivityLevel]Tier{
	ActivitySedentary: {"Sedentary", "Little to no exercise", 1.2},
	ActivityLight:     {"Lightly Active", "Light exercise 1-3 days/week", 1.375},
	ActivityModerate:  {"Moderately Active", "Moderate exercise 3-5 days/week", 1.55},
	ActivityActive:    {"Very Active", "Hard exercise 6-7 days/week", 1.725},
	ActivityAthlete:   {"Athlete", "Very hard exercise, physical job", 1.9},
}

// Deficit in kcal/day. Negative values are a surplus.
var goalTiers = map[Goal]Tier{
	GoalLoseFast: {"Lose weight faster", "~1.5 lbs/week", 750},
	GoalLose:     {"Lose weight", "~1 lb/week", 500},
	GoalLoseSlow: {"Lose weight slowly", "~0.5 lbs/week", 250},
	GoalMaintain: {"Maintain weight", "Stay where you are", 0},
	GoalGainSlow: {"Gain muscle slowly", "~0.5 lbs/week", -250},
	GoalGain:     {"Build muscle", "~1 lb/week", -500},
}

var proteinTiers = map[ProteinTarget]Tier{
	ProteinLow:      {"Standard", "0.8g per lb bodyweight", 0.8},
	ProteinModerate: {"Active", "1g per lb bodyweight", 1.0},
	ProteinHigh:     {"Building muscle", "1.2g per lb bodyweight", 1.2},
}

// Fallbacks applied when a key is not in its table.
const (
	DefaultActivityLevel = ActivityModerate
	DefaultGoal          = GoalMaintain
	DefaultProteinTarget = ProteinModerate
)

// Lookup returns the tier for l, or the moderate tier with ok=false.
func (l ActivityLevel) Lookup() (Tier, bool) {
	t, ok := activityTiers[l]
	if !ok {
		return activityTiers[DefaultActivityLevel], false
	}
	return t, true
}

func (l ActivityLevel) Valid() bool {
	_, ok := activityTiers[l]
	return ok
}

// Lookup returns the tier for g, or the zero-deficit tier with ok=false.
func (g Goal) Lookup() (Tier, bool) {
	t, ok := goalTiers[g]
	if !ok {
		return goalTiers[DefaultGoal], false
	}
	return t, true
}

func (g Goal) Valid() bool {
	_, ok := goalTiers[g]
	return ok
}

// Lookup returns the tier for p, or the 1.0 g/lb tier with ok=false.
func (p ProteinTarget) Lookup() (Tier, bool) {
	t, ok := proteinTiers[p]
	if !ok {
		return proteinTiers[DefaultProteinTarget], false
	}
	return t, true
}

func (p ProteinTarget) Valid() bool {
	_, ok := proteinTiers[p]
	return ok
}

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}
