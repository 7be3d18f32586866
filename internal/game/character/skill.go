package character

// SkillType identifies one of the 18 fixed skills.
type SkillType string

// The 18 skills, grouped by governing ability.
const (
	// Strength
	Athletics SkillType = "ATHLETICS"
	// Dexterity
	Acrobatics    SkillType = "ACROBATICS"
	SleightOfHand SkillType = "SLEIGHT_OF_HAND"
	Stealth       SkillType = "STEALTH"
	// Intelligence
	Arcana        SkillType = "ARCANA"
	History       SkillType = "HISTORY"
	Investigation SkillType = "INVESTIGATION"
	Nature        SkillType = "NATURE"
	Religion      SkillType = "RELIGION"
	// Wisdom
	AnimalHandling SkillType = "ANIMAL_HANDLING"
	Insight        SkillType = "INSIGHT"
	Medicine       SkillType = "MEDICINE"
	Perception     SkillType = "PERCEPTION"
	Survival       SkillType = "SURVIVAL"
	// Charisma
	Deception    SkillType = "DECEPTION"
	Intimidation SkillType = "INTIMIDATION"
	Performance  SkillType = "PERFORMANCE"
	Persuasion   SkillType = "PERSUASION"
)

// SkillTypes lists all 18 skills in canonical order. A freshly created
// character receives exactly one Skill entry per element of this slice.
var SkillTypes = []SkillType{
	Athletics,
	Acrobatics, SleightOfHand, Stealth,
	Arcana, History, Investigation, Nature, Religion,
	AnimalHandling, Insight, Medicine, Perception, Survival,
	Deception, Intimidation, Performance, Persuasion,
}

// skillBaseAbility is the closed mapping from skill to governing ability.
var skillBaseAbility = map[SkillType]AbilityType{
	Athletics:      Strength,
	Acrobatics:     Dexterity,
	SleightOfHand:  Dexterity,
	Stealth:        Dexterity,
	Arcana:         Intelligence,
	History:        Intelligence,
	Investigation:  Intelligence,
	Nature:         Intelligence,
	Religion:       Intelligence,
	AnimalHandling: Wisdom,
	Insight:        Wisdom,
	Medicine:       Wisdom,
	Perception:     Wisdom,
	Survival:       Wisdom,
	Deception:      Charisma,
	Intimidation:   Charisma,
	Performance:    Charisma,
	Persuasion:     Charisma,
}

// BaseAbility returns the ability that governs the given skill.
func (s SkillType) BaseAbility() AbilityType {
	return skillBaseAbility[s]
}

// ValidSkillType reports whether s is one of the 18 known skills.
func ValidSkillType(s SkillType) bool {
	_, ok := skillBaseAbility[s]
	return ok
}

// Skill is a character's proficiency state for a single skill. The full
// 18-entry set is created once with the character and persists for its
// lifetime; proficiency and expertise are toggled via update.
type Skill struct {
	ID          int64
	Type        SkillType
	Proficiency bool
	Expertise   bool
	// Bonus is a flat manual adjustment. It is stored and persisted but
	// deliberately not folded into TotalBonus.
	Bonus int
}

// TotalBonus computes the skill's total bonus from the given ability scores
// and proficiency bonus: ability modifier, plus the proficiency bonus if
// proficient, plus twice the proficiency bonus if expertise is set.
// Expertise takes precedence regardless of the proficiency flag.
func (s Skill) TotalBonus(scores AbilityScores, proficiencyBonus int) int {
	base := scores.Modifier(s.Type.BaseAbility())
	switch {
	case s.Expertise:
		return base + 2*proficiencyBonus
	case s.Proficiency:
		return base + proficiencyBonus
	}
	return base
}

// NewSkillSet returns the full 18-skill set, one entry per SkillType,
// each non-proficient and without expertise.
func NewSkillSet() []Skill {
	skills := make([]Skill, 0, len(SkillTypes))
	for _, t := range SkillTypes {
		skills = append(skills, Skill{Type: t})
	}
	return skills
}
