// Package character defines the character aggregate, its owned
// sub-collections, and the pure derived-stat rules.
package character

import "fmt"

// AbilityType identifies one of the six base abilities.
type AbilityType string

// The six abilities. Scores range 1-30 at input time.
const (
	Strength     AbilityType = "STRENGTH"
	Dexterity    AbilityType = "DEXTERITY"
	Constitution AbilityType = "CONSTITUTION"
	Intelligence AbilityType = "INTELLIGENCE"
	Wisdom       AbilityType = "WISDOM"
	Charisma     AbilityType = "CHARISMA"
)

// AbilityTypes lists the six abilities in canonical order.
var AbilityTypes = []AbilityType{
	Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma,
}

// ValidAbilityType reports whether t is one of the six known abilities.
func ValidAbilityType(t AbilityType) bool {
	switch t {
	case Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma:
		return true
	}
	return false
}

// AbilityScores holds the six raw ability score values for a character.
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Score returns the raw score for the given ability.
//
// Precondition: t must be one of the six known abilities; an unknown
// value is a programming error and panics.
func (a AbilityScores) Score(t AbilityType) int {
	switch t {
	case Strength:
		return a.Strength
	case Dexterity:
		return a.Dexterity
	case Constitution:
		return a.Constitution
	case Intelligence:
		return a.Intelligence
	case Wisdom:
		return a.Wisdom
	case Charisma:
		return a.Charisma
	}
	panic(fmt.Sprintf("unknown ability type %q", t))
}

// Modifier returns the ability modifier for the given ability: (score - 10) / 2.
// Division truncates toward zero, so a score of 9 yields 0 and a score of 1
// yields -4.
//
// Precondition: t must be one of the six known abilities.
func (a AbilityScores) Modifier(t AbilityType) int {
	return (a.Score(t) - 10) / 2
}

// MinAbilityScore and MaxAbilityScore bound ability scores at input time.
const (
	MinAbilityScore = 1
	MaxAbilityScore = 30
)

// Validate checks that every score is within [MinAbilityScore, MaxAbilityScore].
//
// Postcondition: Returns nil if all six scores are in range.
func (a AbilityScores) Validate() error {
	for _, t := range AbilityTypes {
		s := a.Score(t)
		if s < MinAbilityScore || s > MaxAbilityScore {
			return fmt.Errorf("%s score must be %d-%d, got %d",
				t, MinAbilityScore, MaxAbilityScore, s)
		}
	}
	return nil
}
