package nutrition

import "math"

const (
	// A window earns the full calorie half once the deficit reaches 15% of
	// the tracked days' target.
	targetDeficitShare = 0.15
	halfScore          = 50
)

// Score is the progress score and the two halves it is built from.
type Score struct {
	DeficitScore   float64 `json:"deficit_score"`
	ProteinScore   float64 `json:"protein_score"`
	ProteinHitRate int     `json:"protein_hit_rate"`
	Total          int     `json:"total"`
}

// ProgressScore blends deficit attainment and protein consistency into
// 0-100. Each half is worth 50; an overage scores 0 on the calorie half
// rather than subtracting, and zero targets or zero tracked days score 0
// instead of dividing by zero.
func ProgressScore(deficit, targetCalories float64, proteinHitDays, daysTracked int) int {
	return scoreParts(deficit, targetCalories, proteinHitDays, daysTracked).Total
}

// ScoreProgress scores a window computed by WindowStats.
func ScoreProgress(s Stats) Score {
	return scoreParts(s.Deficit, float64(s.TargetCalories), s.ProteinHitDays, s.DaysTracked)
}

func scoreParts(deficit, targetCalories float64, proteinHitDays, daysTracked int) Score {
	var sc Score
	if denom := targetCalories * targetDeficitShare; denom > 0 {
		sc.DeficitScore = clamp(deficit/denom*halfScore, 0, halfScore)
	}
	if daysTracked > 0 {
		rate := float64(proteinHitDays) / float64(daysTracked)
		sc.ProteinScore = rate * halfScore
		sc.ProteinHitRate = roundInt(rate * 100)
	}
	sc.Total = roundInt(math.Max(0, sc.DeficitScore+sc.ProteinScore))
	return sc
}

// ProjectedFatLoss converts a calorie deficit to pounds of fat at 3500
// kcal/lb, to one decimal. A surplus gives a negative number mirroring the
// equal deficit, so ties round away from zero rather than half up.
func ProjectedFatLoss(deficit float64) float64 {
	return math.Round(deficit/caloriesPerPoundFat*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
