package character

import (
	"errors"
	"fmt"
)

// CreateInput carries the fields needed to build a new character.
// AbilityScores and MaxHitPoints are optional; all other fields are
// required unless noted.
type CreateInput struct {
	Name        string    `json:"name"`
	Race        Race      `json:"race"`
	Subrace     string    `json:"subrace"`
	Alignment   Alignment `json:"alignment"`
	Background  string    `json:"background"`
	PortraitURL string    `json:"portraitUrl"`

	// ClassName and Subclass seed the single initial class at level 1.
	ClassName string `json:"className"`
	Subclass  string `json:"subclass"`

	Scores       *AbilityScores `json:"abilityScores"`
	MaxHitPoints *int           `json:"maxHitPoints"`
}

// Validate checks the creation input constraints.
//
// Postcondition: Returns nil if the input can build a valid character.
func (in CreateInput) Validate() error {
	if in.Name == "" {
		return errors.New("character name must not be empty")
	}
	if !ValidRace(in.Race) {
		return fmt.Errorf("unknown race %q", in.Race)
	}
	if in.Alignment != "" && !ValidAlignment(in.Alignment) {
		return fmt.Errorf("unknown alignment %q", in.Alignment)
	}
	if in.ClassName == "" {
		return errors.New("class name must not be empty")
	}
	if in.Scores != nil {
		if err := in.Scores.Validate(); err != nil {
			return err
		}
	}
	if in.MaxHitPoints != nil && *in.MaxHitPoints < 1 {
		return fmt.Errorf("max hit points must be positive, got %d", *in.MaxHitPoints)
	}
	return nil
}

// Default combat-block values for a freshly created character.
const (
	defaultMaxHitPoints = 10
	defaultArmorClass   = 10
	defaultSpeed        = 30
)

// Build constructs a new unsaved character from the input: one initial
// class at level 1, the full 18-skill set with no proficiencies, empty
// equipment and spell collections, and a proficiency bonus derived from
// the initial level. When MaxHitPoints is present, current hit points
// start at the same value.
//
// Precondition: in must pass Validate.
// Postcondition: Returns a character with exactly 18 skills and TotalLevel() == 1.
func Build(in CreateInput) (*Character, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := &Character{
		Name:             in.Name,
		Race:             in.Race,
		Subrace:          in.Subrace,
		Alignment:        in.Alignment,
		Background:       in.Background,
		PortraitURL:      in.PortraitURL,
		MaxHitPoints:     defaultMaxHitPoints,
		CurrentHitPoints: defaultMaxHitPoints,
		ArmorClass:       defaultArmorClass,
		Speed:            defaultSpeed,
		Skills:           NewSkillSet(),
	}

	c.SetClasses([]Class{{
		Name:     in.ClassName,
		Subclass: in.Subclass,
		Level:    1,
	}})

	if in.Scores != nil {
		c.Scores = *in.Scores
	}
	if in.MaxHitPoints != nil {
		c.MaxHitPoints = *in.MaxHitPoints
		c.CurrentHitPoints = *in.MaxHitPoints
	}

	return c, nil
}
