package nutrition

import "math"

const (
	fatShareOfCalories = 0.27
	kcalPerGramFat     = 9
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
)

// MacroGrams is a protein/carbs/fat split in whole grams.
type MacroGrams struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// AllocateMacros splits calories into grams. Order matters: protein comes
// from bodyweight, fat is a fixed 27% of calories, and carbs take whatever
// is left (never below zero), absorbing the rounding slack.
func AllocateMacros(calories, weightLb int, tier ProteinTarget) MacroGrams {
	perLb, _ := tier.Lookup()
	protein := roundInt(float64(weightLb) * perLb.Value)

	fatCalories := float64(calories) * fatShareOfCalories
	fat := roundInt(fatCalories / kcalPerGramFat)

	carbCalories := float64(calories) - float64(protein*kcalPerGramProtein) - fatCalories
	carbs := roundInt(math.Max(0, carbCalories) / kcalPerGramCarb)

	return MacroGrams{Protein: protein, Carbs: carbs, Fat: fat}
}
