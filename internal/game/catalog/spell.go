// Package catalog defines the shared spell and equipment catalog entities.
// Catalog records are globally addressable and not owned by any character.
package catalog

import "fmt"

// SpellSchool identifies one of the eight schools of magic.
type SpellSchool string

// The eight spell schools.
const (
	Abjuration    SpellSchool = "ABJURATION"
	Conjuration   SpellSchool = "CONJURATION"
	Divination    SpellSchool = "DIVINATION"
	Enchantment   SpellSchool = "ENCHANTMENT"
	Evocation     SpellSchool = "EVOCATION"
	Illusion      SpellSchool = "ILLUSION"
	Necromancy    SpellSchool = "NECROMANCY"
	Transmutation SpellSchool = "TRANSMUTATION"
)

// ValidSpellSchool reports whether s is a known school.
func ValidSpellSchool(s SpellSchool) bool {
	switch s {
	case Abjuration, Conjuration, Divination, Enchantment,
		Evocation, Illusion, Necromancy, Transmutation:
		return true
	}
	return false
}

// Spell levels range 0 (cantrip) through 9.
const (
	MinSpellLevel = 0
	MaxSpellLevel = 9
)

// Spell is a catalog spell. Names are globally unique. Characters hold
// references to catalog spells; deleting a character never deletes a spell.
type Spell struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Level         int         `json:"level"`
	School        SpellSchool `json:"school"`
	CastingTime   string      `json:"castingTime,omitempty"`
	Range         string      `json:"range,omitempty"`
	Components    string      `json:"components,omitempty"`
	Duration      string      `json:"duration,omitempty"`
	Concentration bool        `json:"concentration"`
	Ritual        bool        `json:"ritual"`
	Description   string      `json:"description,omitempty"`
	HigherLevels  string      `json:"higherLevels,omitempty"`
}

// Validate checks the spell's input constraints.
//
// Postcondition: Returns nil if the spell has a name, a valid school,
// and a level within [MinSpellLevel, MaxSpellLevel].
func (s Spell) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("spell name must not be empty")
	}
	if s.Level < MinSpellLevel || s.Level > MaxSpellLevel {
		return fmt.Errorf("spell level must be %d-%d, got %d", MinSpellLevel, MaxSpellLevel, s.Level)
	}
	if !ValidSpellSchool(s.School) {
		return fmt.Errorf("unknown spell school %q", s.School)
	}
	return nil
}
