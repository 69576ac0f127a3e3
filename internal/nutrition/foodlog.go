package nutrition

import "time"

// Macros is a calorie and macro total. Unlike Goals it keeps fractional
// grams, since logged entries are not rounded.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// FoodItem is one constituent of an entry, kept for breakdown display only.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// FoodEntry is one logged (Confirmed) or planned food. The ID is unique
// within its day's log. Confirmed flips false -> true at most once.
type FoodEntry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Calories    float64    `json:"calories"`
	Protein     float64    `json:"protein"`
	Carbs       float64    `json:"carbs"`
	Fat         float64    `json:"fat"`
	Confirmed   bool       `json:"confirmed"`
	LoggedAt    time.Time  `json:"logged_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	Items       []FoodItem `json:"items,omitempty"`
}

func (e FoodEntry) Macros() Macros {
	return Macros{Calories: e.Calories, Protein: e.Protein, Carbs: e.Carbs, Fat: e.Fat}
}

// SumMacros totals entries, skipping unconfirmed ones when confirmedOnly is
// set. There is no unconfirmed-only switch; see Planned.
func SumMacros(entries []FoodEntry, confirmedOnly bool) Macros {
	var total Macros
	for _, e := range entries {
		if confirmedOnly && !e.Confirmed {
			continue
		}
		total = total.Add(e.Macros())
	}
	return total
}

// Eaten totals confirmed entries.
func Eaten(entries []FoodEntry) Macros {
	return SumMacros(entries, true)
}

// Planned totals entries not yet confirmed.
func Planned(entries []FoodEntry) Macros {
	planned := make([]FoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Confirmed {
			planned = append(planned, e)
		}
	}
	return SumMacros(planned, false)
}

// Projected totals every entry regardless of state.
func Projected(entries []FoodEntry) Macros {
	return SumMacros(entries, false)
}

// Remaining is goals minus eaten minus planned. Fields go negative once the
// budget is exceeded.
func Remaining(goals Goals, eaten, planned Macros) Macros {
	return Macros{
		Calories: float64(goals.Calories) - eaten.Calories - planned.Calories,
		Protein:  float64(goals.Protein) - eaten.Protein - planned.Protein,
		Carbs:    float64(goals.Carbs) - eaten.Carbs - planned.Carbs,
		Fat:      float64(goals.Fat) - eaten.Fat - planned.Fat,
	}
}
