package character

import "fmt"

// SkillPatch toggles the proficiency state of a single skill. Nil fields
// are left untouched.
type SkillPatch struct {
	Type        SkillType `json:"skillType"`
	Proficiency *bool     `json:"proficient,omitempty"`
	Expertise   *bool     `json:"expertise,omitempty"`
	Bonus       *int      `json:"bonus,omitempty"`
}

// UpdatePatch is a partial update of a character. Every field is optional;
// only non-nil fields overwrite the corresponding aggregate field. Absent
// fields are never touched, so a patch carrying a single field updates
// exactly that field.
type UpdatePatch struct {
	Name             *string    `json:"name,omitempty"`
	Race             *Race      `json:"race,omitempty"`
	Subrace          *string    `json:"subrace,omitempty"`
	Alignment        *Alignment `json:"alignment,omitempty"`
	Background       *string    `json:"background,omitempty"`
	ExperiencePoints *int       `json:"experiencePoints,omitempty"`
	PortraitURL      *string    `json:"portraitUrl,omitempty"`

	Scores *AbilityScores `json:"abilityScores,omitempty"`

	MaxHitPoints       *int    `json:"maxHitPoints,omitempty"`
	CurrentHitPoints   *int    `json:"currentHitPoints,omitempty"`
	TemporaryHitPoints *int    `json:"temporaryHitPoints,omitempty"`
	ArmorClass         *int    `json:"armorClass,omitempty"`
	Initiative         *int    `json:"initiative,omitempty"`
	Speed              *int    `json:"speed,omitempty"`
	HitDice            *string `json:"hitDice,omitempty"`
	DeathSaveSuccesses *int    `json:"deathSaveSuccesses,omitempty"`
	DeathSaveFailures  *int    `json:"deathSaveFailures,omitempty"`

	Skills                   []SkillPatch   `json:"skills,omitempty"`
	SavingThrowProficiencies *[]AbilityType `json:"savingThrowProficiencies,omitempty"`
	SpellcastingAbility      *AbilityType   `json:"spellcastingAbility,omitempty"`

	Coins *Currency `json:"currency,omitempty"`

	FeaturesAndTraits *string `json:"featuresAndTraits,omitempty"`
	Backstory         *string `json:"backstory,omitempty"`
	PersonalityTraits *string `json:"personalityTraits,omitempty"`
	Ideals            *string `json:"ideals,omitempty"`
	Bonds             *string `json:"bonds,omitempty"`
	Flaws             *string `json:"flaws,omitempty"`
	Notes             *string `json:"notes,omitempty"`

	Public *bool `json:"isPublic,omitempty"`
}

// Validate checks every present field against its input constraints.
func (p UpdatePatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("character name must not be empty")
	}
	if p.Race != nil && !ValidRace(*p.Race) {
		return fmt.Errorf("unknown race %q", *p.Race)
	}
	if p.Alignment != nil && !ValidAlignment(*p.Alignment) {
		return fmt.Errorf("unknown alignment %q", *p.Alignment)
	}
	if p.Scores != nil {
		if err := p.Scores.Validate(); err != nil {
			return err
		}
	}
	if p.ExperiencePoints != nil && *p.ExperiencePoints < 0 {
		return fmt.Errorf("experience points must not be negative, got %d", *p.ExperiencePoints)
	}
	if p.TemporaryHitPoints != nil && *p.TemporaryHitPoints < 0 {
		return fmt.Errorf("temporary hit points must not be negative, got %d", *p.TemporaryHitPoints)
	}
	for _, sp := range p.Skills {
		if !ValidSkillType(sp.Type) {
			return fmt.Errorf("unknown skill type %q", sp.Type)
		}
	}
	if p.SavingThrowProficiencies != nil {
		for _, t := range *p.SavingThrowProficiencies {
			if !ValidAbilityType(t) {
				return fmt.Errorf("unknown ability type %q", t)
			}
		}
	}
	if p.SpellcastingAbility != nil && *p.SpellcastingAbility != "" && !ValidAbilityType(*p.SpellcastingAbility) {
		return fmt.Errorf("unknown spellcasting ability %q", *p.SpellcastingAbility)
	}
	return nil
}

// Apply merges the patch into the character, overwriting exactly the
// present fields. Skill patches address the character's existing 18-entry
// skill set by type; unknown types were already rejected by Validate.
// Current hit points are deliberately not clamped to max hit points.
func (p UpdatePatch) Apply(c *Character) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Race != nil {
		c.Race = *p.Race
	}
	if p.Subrace != nil {
		c.Subrace = *p.Subrace
	}
	if p.Alignment != nil {
		c.Alignment = *p.Alignment
	}
	if p.Background != nil {
		c.Background = *p.Background
	}
	if p.ExperiencePoints != nil {
		c.ExperiencePoints = *p.ExperiencePoints
	}
	if p.PortraitURL != nil {
		c.PortraitURL = *p.PortraitURL
	}
	if p.Scores != nil {
		c.Scores = *p.Scores
	}
	if p.MaxHitPoints != nil {
		c.MaxHitPoints = *p.MaxHitPoints
	}
	if p.CurrentHitPoints != nil {
		c.CurrentHitPoints = *p.CurrentHitPoints
	}
	if p.TemporaryHitPoints != nil {
		c.TemporaryHitPoints = *p.TemporaryHitPoints
	}
	if p.ArmorClass != nil {
		c.ArmorClass = *p.ArmorClass
	}
	if p.Initiative != nil {
		c.Initiative = *p.Initiative
	}
	if p.Speed != nil {
		c.Speed = *p.Speed
	}
	if p.HitDice != nil {
		c.HitDice = *p.HitDice
	}
	if p.DeathSaveSuccesses != nil {
		c.DeathSaveSuccesses = *p.DeathSaveSuccesses
	}
	if p.DeathSaveFailures != nil {
		c.DeathSaveFailures = *p.DeathSaveFailures
	}
	for _, sp := range p.Skills {
		skill := c.SkillByType(sp.Type)
		if skill == nil {
			continue
		}
		if sp.Proficiency != nil {
			skill.Proficiency = *sp.Proficiency
		}
		if sp.Expertise != nil {
			skill.Expertise = *sp.Expertise
		}
		if sp.Bonus != nil {
			skill.Bonus = *sp.Bonus
		}
	}
	if p.SavingThrowProficiencies != nil {
		c.SavingThrowProficiencies = append([]AbilityType(nil), (*p.SavingThrowProficiencies)...)
	}
	if p.SpellcastingAbility != nil {
		c.SpellcastingAbility = *p.SpellcastingAbility
	}
	if p.Coins != nil {
		c.Coins = *p.Coins
	}
	if p.FeaturesAndTraits != nil {
		c.FeaturesAndTraits = *p.FeaturesAndTraits
	}
	if p.Backstory != nil {
		c.Backstory = *p.Backstory
	}
	if p.PersonalityTraits != nil {
		c.PersonalityTraits = *p.PersonalityTraits
	}
	if p.Ideals != nil {
		c.Ideals = *p.Ideals
	}
	if p.Bonds != nil {
		c.Bonds = *p.Bonds
	}
	if p.Flaws != nil {
		c.Flaws = *p.Flaws
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Public != nil {
		c.Public = *p.Public
	}
}
