package nutrition

import "slices"

// History maps each day to its entries in logging order. A day with no key
// and a day with an empty slice are the same thing: untracked. Nothing in
// this package can tell "opened but left empty" from "never opened".
type History map[Date][]FoodEntry

// Tracked reports whether day has at least one entry.
func (h History) Tracked(day Date) bool {
	return len(h[day]) > 0
}

// SortedDates returns the keys in ascending order, empty days included.
func (h History) SortedDates() []Date {
	dates := make([]Date, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, Date.Compare)
	return dates
}

// MaxStreakDays bounds how far Streak looks back.
const MaxStreakDays = 365

// Streak counts consecutive tracked days ending at today. An untracked
// today does not break the run (the day may still be in progress) but is
// not counted; the first untracked day before today ends it.
func Streak(h History, today Date) int {
	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		day := today.AddDays(-i)
		if h.Tracked(day) {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

// DidHitProtein reports whether confirmed protein reached target grams.
func DidHitProtein(entries []FoodEntry, target float64) bool {
	return Eaten(entries).Protein >= target
}

// DidStayUnderBudget reports whether confirmed calories stayed at or under budget.
func DidStayUnderBudget(entries []FoodEntry, budget float64) bool {
	return Eaten(entries).Calories <= budget
}

// Stats summarises a date window. Only tracked days contribute, including
// to TargetCalories and ProteinTarget.
type Stats struct {
	Start          Date    `json:"start"`
	End            Date    `json:"end"`
	TotalCalories  float64 `json:"total_calories"`
	TotalProtein   float64 `json:"total_protein"`
	ProteinHitDays int     `json:"protein_hit_days"`
	DaysTracked    int     `json:"days_tracked"`
	TargetCalories int     `json:"target_calories"`
	// Deficit is TargetCalories - TotalCalories; positive is under budget.
	Deficit       float64 `json:"deficit"`
	ProteinTarget int     `json:"protein_target"`
}

// WindowStats replays every day in [start, end] against the current daily
// goals. Goals that applied historically are not considered. A reversed
// range yields zero totals.
func WindowStats(h History, start, end Date, daily Goals) Stats {
	s := Stats{Start: start, End: end}
	for day := start; !day.After(end); day = day.AddDays(1) {
		entries := h[day]
		if len(entries) == 0 {
			continue
		}
		eaten := Eaten(entries)
		s.TotalCalories += eaten.Calories
		s.TotalProtein += eaten.Protein
		s.DaysTracked++
		if eaten.Protein >= float64(daily.Protein) {
			s.ProteinHitDays++
		}
	}
	s.TargetCalories = daily.Calories * s.DaysTracked
	s.Deficit = float64(s.TargetCalories) - s.TotalCalories
	s.ProteinTarget = daily.Protein * s.DaysTracked
	return s
}
