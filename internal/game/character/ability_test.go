package character

import (
	"testing"

	"pgregory.net/rapid"
)

func TestAbilityScores_Modifier_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{1, -4}, // truncating division: (1-10)/2
		{8, -1},
		{9, 0}, // -0.5 truncates toward zero
		{10, 0},
		{11, 0},
		{12, 1},
		{15, 2},
		{20, 5},
		{30, 10},
	}
	for _, tc := range cases {
		a := AbilityScores{Strength: tc.score}
		if got := a.Modifier(Strength); got != tc.want {
			t.Fatalf("Modifier(score=%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestAbilityScores_Modifier_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		score := rapid.IntRange(MinAbilityScore, MaxAbilityScore).Draw(t, "score")
		a := AbilityScores{Wisdom: score}
		if got, want := a.Modifier(Wisdom), (score-10)/2; got != want {
			t.Fatalf("Modifier(%d) = %d, want %d", score, got, want)
		}
	})
}

func TestAbilityScores_Score_DispatchesPerAbility(t *testing.T) {
	a := AbilityScores{
		Strength: 15, Dexterity: 14, Constitution: 13,
		Intelligence: 12, Wisdom: 10, Charisma: 8,
	}
	want := map[AbilityType]int{
		Strength: 15, Dexterity: 14, Constitution: 13,
		Intelligence: 12, Wisdom: 10, Charisma: 8,
	}
	for _, ability := range AbilityTypes {
		if got := a.Score(ability); got != want[ability] {
			t.Fatalf("Score(%s) = %d, want %d", ability, got, want[ability])
		}
	}
}

func TestAbilityScores_Score_UnknownAbilityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown ability type")
		}
	}()
	AbilityScores{}.Score(AbilityType("LUCK"))
}

func TestAbilityScores_Validate(t *testing.T) {
	valid := AbilityScores{
		Strength: 1, Dexterity: 30, Constitution: 10,
		Intelligence: 10, Wisdom: 10, Charisma: 10,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outOfRange := valid
	outOfRange.Charisma = 31
	if err := outOfRange.Validate(); err == nil {
		t.Fatal("expected error for score 31")
	}

	outOfRange.Charisma = 0
	if err := outOfRange.Validate(); err == nil {
		t.Fatal("expected error for score 0")
	}
}
