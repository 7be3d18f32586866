package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/game/character"
)

// CharacterSummary is the list-view projection of a character.
type CharacterSummary struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Race             character.Race `json:"race"`
	ClassDisplay     string         `json:"classDisplay"`
	TotalLevel       int            `json:"totalLevel"`
	CurrentHitPoints int            `json:"currentHitPoints"`
	MaxHitPoints     int            `json:"maxHitPoints"`
	PortraitURL      string         `json:"portraitUrl,omitempty"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// AbilityScoreView pairs a raw score with its derived modifier.
type AbilityScoreView struct {
	Score    int `json:"score"`
	Modifier int `json:"modifier"`
}

// AbilityScoresView is the projection of all six ability scores.
type AbilityScoresView struct {
	Strength     AbilityScoreView `json:"strength"`
	Dexterity    AbilityScoreView `json:"dexterity"`
	Constitution AbilityScoreView `json:"constitution"`
	Intelligence AbilityScoreView `json:"intelligence"`
	Wisdom       AbilityScoreView `json:"wisdom"`
	Charisma     AbilityScoreView `json:"charisma"`
}

// ClassView is the projection of one class entry.
type ClassView struct {
	ID       int64  `json:"id"`
	Name     string `json:"className"`
	Subclass string `json:"subclass,omitempty"`
	Level    int    `json:"level"`
}

// SkillView is the projection of one skill with its computed total bonus.
type SkillView struct {
	ID         int64               `json:"id"`
	Type       character.SkillType `json:"skillType"`
	Proficient bool                `json:"proficient"`
	Expertise  bool                `json:"expertise"`
	TotalBonus int                 `json:"totalBonus"`
}

// CurrencyView is the projection of the character's coins.
type CurrencyView struct {
	Copper        int `json:"copper"`
	Silver        int `json:"silver"`
	Electrum      int `json:"electrum"`
	Gold          int `json:"gold"`
	Platinum      int `json:"platinum"`
	TotalInCopper int `json:"totalInCopper"`
}

// CharacterDetail is the full read-only projection of a character. Derived
// values (modifiers, skill bonuses, total level) are computed fresh at
// projection time, never stored.
type CharacterDetail struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	Race             character.Race      `json:"race"`
	Subrace          string              `json:"subrace,omitempty"`
	Alignment        character.Alignment `json:"alignment,omitempty"`
	Background       string              `json:"background,omitempty"`
	ExperiencePoints int                 `json:"experiencePoints"`
	PortraitURL      string              `json:"portraitUrl,omitempty"`

	Classes    []ClassView       `json:"classes"`
	TotalLevel int               `json:"totalLevel"`
	Scores     AbilityScoresView `json:"abilityScores"`

	MaxHitPoints       int    `json:"maxHitPoints"`
	CurrentHitPoints   int    `json:"currentHitPoints"`
	TemporaryHitPoints int    `json:"temporaryHitPoints"`
	ArmorClass         int    `json:"armorClass"`
	Initiative         int    `json:"initiative"`
	Speed              int    `json:"speed"`
	ProficiencyBonus   int    `json:"proficiencyBonus"`
	HitDice            string `json:"hitDice,omitempty"`
	DeathSaveSuccesses int    `json:"deathSaveSuccesses"`
	DeathSaveFailures  int    `json:"deathSaveFailures"`

	Skills                   []SkillView               `json:"skills"`
	SavingThrowProficiencies []character.AbilityType   `json:"savingThrowProficiencies"`
	Equipment                []catalog.Equipment       `json:"equipment"`
	Currency                 CurrencyView              `json:"currency"`
	Spells                   []catalog.Spell           `json:"spells"`
	SpellcastingAbility      character.AbilityType     `json:"spellcastingAbility,omitempty"`

	FeaturesAndTraits string `json:"featuresAndTraits,omitempty"`
	Backstory         string `json:"backstory,omitempty"`
	PersonalityTraits string `json:"personalityTraits,omitempty"`
	Ideals            string `json:"ideals,omitempty"`
	Bonds             string `json:"bonds,omitempty"`
	Flaws             string `json:"flaws,omitempty"`
	Notes             string `json:"notes,omitempty"`

	Public    bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClassDisplay joins a class list into the human-readable
// "Fighter 3 / Rogue 2" form used by the summary view.
func ClassDisplay(classes []character.Class) string {
	parts := make([]string, 0, len(classes))
	for _, cl := range classes {
		parts = append(parts, fmt.Sprintf("%s %d", cl.Name, cl.Level))
	}
	return strings.Join(parts, " / ")
}

// NewCharacterSummary projects a character into its list view.
func NewCharacterSummary(c *character.Character) CharacterSummary {
	return CharacterSummary{
		ID:               c.ID,
		Name:             c.Name,
		Race:             c.Race,
		ClassDisplay:     ClassDisplay(c.Classes),
		TotalLevel:       c.TotalLevel(),
		CurrentHitPoints: c.CurrentHitPoints,
		MaxHitPoints:     c.MaxHitPoints,
		PortraitURL:      c.PortraitURL,
		UpdatedAt:        c.UpdatedAt,
	}
}

func newAbilityScoreView(scores character.AbilityScores, t character.AbilityType) AbilityScoreView {
	return AbilityScoreView{Score: scores.Score(t), Modifier: scores.Modifier(t)}
}

// NewCharacterDetail projects a character into its full detail view,
// computing every derived value from the aggregate's current state.
func NewCharacterDetail(c *character.Character) CharacterDetail {
	classes := make([]ClassView, 0, len(c.Classes))
	for _, cl := range c.Classes {
		classes = append(classes, ClassView{
			ID: cl.ID, Name: cl.Name, Subclass: cl.Subclass, Level: cl.Level,
		})
	}

	skills := make([]SkillView, 0, len(c.Skills))
	for _, s := range c.Skills {
		skills = append(skills, SkillView{
			ID:         s.ID,
			Type:       s.Type,
			Proficient: s.Proficiency,
			Expertise:  s.Expertise,
			TotalBonus: s.TotalBonus(c.Scores, c.ProficiencyBonus),
		})
	}

	savingThrows := c.SavingThrowProficiencies
	if savingThrows == nil {
		savingThrows = []character.AbilityType{}
	}
	equipment := c.Equipment
	if equipment == nil {
		equipment = []catalog.Equipment{}
	}
	spells := c.Spells
	if spells == nil {
		spells = []catalog.Spell{}
	}

	return CharacterDetail{
		ID:               c.ID,
		Name:             c.Name,
		Race:             c.Race,
		Subrace:          c.Subrace,
		Alignment:        c.Alignment,
		Background:       c.Background,
		ExperiencePoints: c.ExperiencePoints,
		PortraitURL:      c.PortraitURL,

		Classes:    classes,
		TotalLevel: c.TotalLevel(),
		Scores: AbilityScoresView{
			Strength:     newAbilityScoreView(c.Scores, character.Strength),
			Dexterity:    newAbilityScoreView(c.Scores, character.Dexterity),
			Constitution: newAbilityScoreView(c.Scores, character.Constitution),
			Intelligence: newAbilityScoreView(c.Scores, character.Intelligence),
			Wisdom:       newAbilityScoreView(c.Scores, character.Wisdom),
			Charisma:     newAbilityScoreView(c.Scores, character.Charisma),
		},

		MaxHitPoints:       c.MaxHitPoints,
		CurrentHitPoints:   c.CurrentHitPoints,
		TemporaryHitPoints: c.TemporaryHitPoints,
		ArmorClass:         c.ArmorClass,
		Initiative:         c.Initiative,
		Speed:              c.Speed,
		ProficiencyBonus:   c.ProficiencyBonus,
		HitDice:            c.HitDice,
		DeathSaveSuccesses: c.DeathSaveSuccesses,
		DeathSaveFailures:  c.DeathSaveFailures,

		Skills:                   skills,
		SavingThrowProficiencies: savingThrows,
		Equipment:                equipment,
		Currency: CurrencyView{
			Copper:        c.Coins.Copper,
			Silver:        c.Coins.Silver,
			Electrum:      c.Coins.Electrum,
			Gold:          c.Coins.Gold,
			Platinum:      c.Coins.Platinum,
			TotalInCopper: c.Coins.TotalInCopper(),
		},
		Spells:              spells,
		SpellcastingAbility: c.SpellcastingAbility,

		FeaturesAndTraits: c.FeaturesAndTraits,
		Backstory:         c.Backstory,
		PersonalityTraits: c.PersonalityTraits,
		Ideals:            c.Ideals,
		Bonds:             c.Bonds,
		Flaws:             c.Flaws,
		Notes:             c.Notes,

		Public:    c.Public,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
