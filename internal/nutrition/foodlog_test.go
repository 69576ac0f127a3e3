package nutrition

import "testing"

func sampleDay() []FoodEntry {
	return []FoodEntry{
		{ID: "1", Name: "Eggs", Calories: 210, Protein: 18, Carbs: 2, Fat: 15, Confirmed: true},
		{ID: "2", Name: "Chicken Bowl", Calories: 610, Protein: 52, Carbs: 55, Fat: 23, Confirmed: true},
		{ID: "3", Name: "Protein Shake", Calories: 160, Protein: 30, Carbs: 5, Fat: 2},
	}
}

func TestSumMacros_Empty(t *testing.T) {
	if got := SumMacros(nil, false); got != (Macros{}) {
		t.Errorf("SumMacros(nil, false) = %+v", got)
	}
	if got := SumMacros([]FoodEntry{}, true); got != (Macros{}) {
		t.Errorf("SumMacros(empty, true) = %+v", got)
	}
}

func TestSumMacros_AllUnconfirmedConfirmedOnly(t *testing.T) {
	entries := []FoodEntry{
		{Name: "plan a", Calories: 300, Protein: 20},
		{Name: "plan b", Calories: 400, Fat: 10},
	}
	if got := SumMacros(entries, true); got != (Macros{}) {
		t.Errorf("confirmed-only over planned entries = %+v, want zero", got)
	}
}

func TestEatenPlannedProjected(t *testing.T) {
	day := sampleDay()
	eaten := Eaten(day)
	if eaten != (Macros{Calories: 820, Protein: 70, Carbs: 57, Fat: 38}) {
		t.Errorf("Eaten = %+v", eaten)
	}
	planned := Planned(day)
	if planned != (Macros{Calories: 160, Protein: 30, Carbs: 5, Fat: 2}) {
		t.Errorf("Planned = %+v", planned)
	}
	projected := Projected(day)
	if projected != eaten.Add(planned) {
		t.Errorf("Projected = %+v, want eaten+planned %+v", projected, eaten.Add(planned))
	}
}

func TestRemaining(t *testing.T) {
	goals := Goals{Calories: 1000, Protein: 100, Carbs: 50, Fat: 40}
	day := sampleDay()
	got := Remaining(goals, Eaten(day), Planned(day))
	want := Macros{Calories: 20, Protein: 0, Carbs: -12, Fat: 0}
	if got != want {
		t.Errorf("Remaining = %+v, want %+v", got, want)
	}
}
