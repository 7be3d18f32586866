package character

import (
	"time"

	"github.com/ushki/dndsheet/internal/game/catalog"
)

// Race identifies a character race.
type Race string

// Playable races.
const (
	Dragonborn Race = "DRAGONBORN"
	Dwarf      Race = "DWARF"
	Elf        Race = "ELF"
	Gnome      Race = "GNOME"
	HalfElf    Race = "HALF_ELF"
	HalfOrc    Race = "HALF_ORC"
	Halfling   Race = "HALFLING"
	Human      Race = "HUMAN"
	Tiefling   Race = "TIEFLING"
)

// ValidRace reports whether r is a known race.
func ValidRace(r Race) bool {
	switch r {
	case Dragonborn, Dwarf, Elf, Gnome, HalfElf, HalfOrc, Halfling, Human, Tiefling:
		return true
	}
	return false
}

// Alignment identifies a character alignment.
type Alignment string

// The nine alignments.
const (
	LawfulGood     Alignment = "LAWFUL_GOOD"
	NeutralGood    Alignment = "NEUTRAL_GOOD"
	ChaoticGood    Alignment = "CHAOTIC_GOOD"
	LawfulNeutral  Alignment = "LAWFUL_NEUTRAL"
	TrueNeutral    Alignment = "TRUE_NEUTRAL"
	ChaoticNeutral Alignment = "CHAOTIC_NEUTRAL"
	LawfulEvil     Alignment = "LAWFUL_EVIL"
	NeutralEvil    Alignment = "NEUTRAL_EVIL"
	ChaoticEvil    Alignment = "CHAOTIC_EVIL"
)

// ValidAlignment reports whether a is a known alignment.
func ValidAlignment(a Alignment) bool {
	switch a {
	case LawfulGood, NeutralGood, ChaoticGood,
		LawfulNeutral, TrueNeutral, ChaoticNeutral,
		LawfulEvil, NeutralEvil, ChaoticEvil:
		return true
	}
	return false
}

// Class is one class entry in a character's ordered class list.
// Multiclass characters carry several entries; total level is always the
// sum over the list, never stored.
type Class struct {
	ID       int64
	Name     string
	Subclass string
	Level    int
}

// Character is the aggregate root for a single character sheet. It owns its
// classes, skills, equipment, saving throws, and currency outright; spells
// are references into the shared catalog. A character always has exactly one
// owner.
type Character struct {
	ID            int64
	OwnerID       int64
	OwnerUsername string

	Name             string
	Race             Race
	Subrace          string
	Alignment        Alignment
	Background       string
	ExperiencePoints int
	PortraitURL      string

	Classes []Class
	Scores  AbilityScores

	// Combat block
	MaxHitPoints       int
	CurrentHitPoints   int
	TemporaryHitPoints int
	ArmorClass         int
	Initiative         int
	Speed              int
	ProficiencyBonus   int
	HitDice            string
	DeathSaveSuccesses int
	DeathSaveFailures  int

	Skills                   []Skill
	SavingThrowProficiencies []AbilityType

	Equipment []catalog.Equipment
	Coins     Currency
	Spells    []catalog.Spell

	SpellcastingAbility AbilityType

	// Narrative fields
	FeaturesAndTraits string
	Backstory         string
	PersonalityTraits string
	Ideals            string
	Bonds             string
	Flaws             string
	Notes             string

	Public    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalLevel returns the sum of all class levels. It is 0 for an empty
// class list; a created character always has at least one class.
func (c *Character) TotalLevel() int {
	total := 0
	for _, cl := range c.Classes {
		total += cl.Level
	}
	return total
}

// SetClasses replaces the class list and recomputes the proficiency bonus
// from the new total level.
func (c *Character) SetClasses(classes []Class) {
	c.Classes = classes
	c.ProficiencyBonus = ProficiencyBonusForLevel(c.TotalLevel())
}

// AddClass appends a class entry and recomputes the proficiency bonus.
func (c *Character) AddClass(cl Class) {
	c.Classes = append(c.Classes, cl)
	c.ProficiencyBonus = ProficiencyBonusForLevel(c.TotalLevel())
}

// SkillByType returns a pointer to the character's skill entry for the
// given type, or nil if the character has no entry for it.
func (c *Character) SkillByType(t SkillType) *Skill {
	for i := range c.Skills {
		if c.Skills[i].Type == t {
			return &c.Skills[i]
		}
	}
	return nil
}

// AddEquipment appends an owned equipment item to the character's list.
func (c *Character) AddEquipment(item catalog.Equipment) {
	c.Equipment = append(c.Equipment, item)
}

// RemoveEquipment removes the owned equipment item with the given local ID.
//
// Postcondition: Returns true if an item was removed, false if no item with
// that ID exists in this character's list.
func (c *Character) RemoveEquipment(equipmentID int64) bool {
	for i := range c.Equipment {
		if c.Equipment[i].ID == equipmentID {
			c.Equipment = append(c.Equipment[:i], c.Equipment[i+1:]...)
			return true
		}
	}
	return false
}

// HasSpell reports whether the character already knows the given catalog spell.
func (c *Character) HasSpell(spellID int64) bool {
	for _, s := range c.Spells {
		if s.ID == spellID {
			return true
		}
	}
	return false
}

// AddSpell adds a catalog spell reference to the character's spell set.
// Adding an already-known spell is a no-op.
func (c *Character) AddSpell(spell catalog.Spell) {
	if c.HasSpell(spell.ID) {
		return
	}
	c.Spells = append(c.Spells, spell)
}

// RemoveSpell removes a catalog spell reference from the spell set.
// Removing an unknown spell is a no-op.
func (c *Character) RemoveSpell(spellID int64) {
	for i := range c.Spells {
		if c.Spells[i].ID == spellID {
			c.Spells = append(c.Spells[:i], c.Spells[i+1:]...)
			return
		}
	}
}

// HasSavingThrowProficiency reports whether the character is proficient in
// saving throws for the given ability.
func (c *Character) HasSavingThrowProficiency(t AbilityType) bool {
	for _, p := range c.SavingThrowProficiencies {
		if p == t {
			return true
		}
	}
	return false
}
