package nutrition

import "testing"

func TestAllocateMacros_Moderate(t *testing.T) {
	got := AllocateMacros(2000, 180, ProteinModerate)
	want := MacroGrams{Protein: 180, Carbs: 185, Fat: 60}
	if got != want {
		t.Errorf("AllocateMacros(2000, 180, moderate) = %+v, want %+v", got, want)
	}
}

func TestAllocateMacros_Tiers(t *testing.T) {
	cases := []struct {
		tier        ProteinTarget
		wantProtein int
	}{
		{ProteinLow, 144},
		{ProteinModerate, 180},
		{ProteinHigh, 216},
		{"unknown", 180},
	}
	for _, tc := range cases {
		t.Run(string(tc.tier), func(t *testing.T) {
			if got := AllocateMacros(2000, 180, tc.tier).Protein; got != tc.wantProtein {
				t.Errorf("protein = %d, want %d", got, tc.wantProtein)
			}
		})
	}
}

// TestAllocateMacros_CarbsNeverNegative uses a calorie budget smaller than
// the protein and fat calories alone.
func TestAllocateMacros_CarbsNeverNegative(t *testing.T) {
	cases := []struct {
		name     string
		calories int
		weight   int
	}{
		{"tiny budget", 500, 250},
		{"zero calories", 0, 180},
		{"exact protein", 720, 180},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AllocateMacros(tc.calories, tc.weight, ProteinHigh)
			if got.Carbs != 0 {
				t.Errorf("carbs = %d, want 0", got.Carbs)
			}
		})
	}
}

// TestAllocateMacros_CarbsAbsorbSlack checks carbs are computed from the
// unrounded fat calories, not from the rounded fat grams.
func TestAllocateMacros_CarbsAbsorbSlack(t *testing.T) {
	// fat calories 2263*0.27 = 611.01 -> 68g; carbs (2263-720-611.01)/4 = 232.99 -> 233
	got := AllocateMacros(2263, 180, ProteinModerate)
	if got.Fat != 68 || got.Carbs != 233 {
		t.Errorf("got %+v, want fat 68 carbs 233", got)
	}
}
