package character

import (
	"testing"

	"pgregory.net/rapid"
)

func TestProficiencyBonusForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 2}, {4, 2},
		{5, 3}, {8, 3},
		{9, 4}, {12, 4},
		{13, 5}, {16, 5},
		{17, 6}, {20, 6},
	}
	for _, tc := range cases {
		if got := ProficiencyBonusForLevel(tc.level); got != tc.want {
			t.Fatalf("ProficiencyBonusForLevel(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestProficiencyBonusForLevel_BelowOne(t *testing.T) {
	if got := ProficiencyBonusForLevel(0); got != 2 {
		t.Fatalf("ProficiencyBonusForLevel(0) = %d, want 2", got)
	}
}

func TestProficiencyBonusForLevel_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(1, 19).Draw(t, "level")
		lo := ProficiencyBonusForLevel(level)
		hi := ProficiencyBonusForLevel(level + 1)
		if hi < lo {
			t.Fatalf("bonus decreased from %d to %d between levels %d and %d", lo, hi, level, level+1)
		}
	})
}

func TestSuggestedMaxHitPoints(t *testing.T) {
	// Level 1 with CON modifier +1: 10 + 0 + 1
	if got := SuggestedMaxHitPoints(1, 1); got != 11 {
		t.Fatalf("SuggestedMaxHitPoints(1, 1) = %d, want 11", got)
	}
	// Level 5 with CON modifier +2: 10 + 24 + 10
	if got := SuggestedMaxHitPoints(5, 2); got != 44 {
		t.Fatalf("SuggestedMaxHitPoints(5, 2) = %d, want 44", got)
	}
}
