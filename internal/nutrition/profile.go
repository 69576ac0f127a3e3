package nutrition

// Profile is the user's body metrics and goal choices. Age, Sex, HeightIn
// and WeightLb are pointers because onboarding can leave them unset; a nil
// or non-positive value is treated as missing.
type Profile struct {
	Name               string        `json:"name"`
	Age                *int          `json:"age"`
	Sex                *Sex          `json:"sex"`
	HeightIn           *int          `json:"height_in"`
	WeightLb           *int          `json:"weight_lb"`
	GoalWeightLb       *int          `json:"goal_weight_lb,omitempty"`
	BodyFatPct         *float64      `json:"body_fat_pct,omitempty"`
	ActivityLevel      ActivityLevel `json:"activity_level"`
	Goal               Goal          `json:"goal"`
	ProteinTarget      ProteinTarget `json:"protein_target"`
	OnboardingComplete bool          `json:"onboarding_complete"`
}

// NewProfile returns the profile a fresh onboarding starts from.
func NewProfile() Profile {
	return Profile{
		ActivityLevel: ActivityModerate,
		Goal:          GoalLose,
		ProteinTarget: ProteinModerate,
	}
}

// HasBodyMetrics reports whether every field the BMR formula needs is set.
func (p Profile) HasBodyMetrics() bool {
	return positive(p.Age) && positive(p.HeightIn) && positive(p.WeightLb) &&
		p.Sex != nil && *p.Sex != ""
}

func positive(v *int) bool {
	return v != nil && *v > 0
}
