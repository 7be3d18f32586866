package fixtures

import (
	"context"
	"fmt"

	"github.com/ushki/dndsheet/internal/game/character"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

// Demo account credentials. Intended for local development only.
const (
	DemoUsername = "demo"
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo-password"
)

// UserWriter is the user surface required to seed the demo account.
type UserWriter interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (postgres.User, error)
	Create(ctx context.Context, username, email, password string) (postgres.User, error)
}

// CharacterWriter is the character surface required to seed the demo sheet.
type CharacterWriter interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*character.Character, error)
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
}

// SeedDemo ensures the demo account exists and owns at least one character.
// Like Seed it is idempotent: an existing demo user is reused and no second
// character is created for it.
//
// Postcondition: Returns true only when a new demo character was created.
func SeedDemo(ctx context.Context, users UserWriter, characters CharacterWriter) (bool, error) {
	exists, err := users.ExistsByUsername(ctx, DemoUsername)
	if err != nil {
		return false, fmt.Errorf("checking demo user: %w", err)
	}

	var user postgres.User
	if exists {
		user, err = users.GetByUsername(ctx, DemoUsername)
	} else {
		user, err = users.Create(ctx, DemoUsername, DemoEmail, DemoPassword)
	}
	if err != nil {
		return false, fmt.Errorf("seeding demo user: %w", err)
	}

	owned, err := characters.ListByOwner(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("listing demo characters: %w", err)
	}
	if len(owned) > 0 {
		return false, nil
	}

	c, err := demoCharacter()
	if err != nil {
		return false, err
	}
	c.OwnerID = user.ID
	c.OwnerUsername = user.Username

	if _, err := characters.Create(ctx, c); err != nil {
		return false, fmt.Errorf("creating demo character: %w", err)
	}
	return true, nil
}

func demoCharacter() (*character.Character, error) {
	scores := character.AbilityScores{
		Strength:     12,
		Dexterity:    16,
		Constitution: 14,
		Intelligence: 10,
		Wisdom:       14,
		Charisma:     8,
	}

	c, err := character.Build(character.CreateInput{
		Name:       "Theren Swiftwind",
		Race:       character.Elf,
		Subrace:    "Wood Elf",
		Alignment:  character.NeutralGood,
		Background: "Outlander",
		ClassName:  "Ranger",
		Scores:     &scores,
	})
	if err != nil {
		return nil, fmt.Errorf("building demo character: %w", err)
	}

	level := 3
	c.SetClasses([]character.Class{{Name: "Ranger", Subclass: "Hunter", Level: level}})
	conMod := scores.Modifier(character.Constitution)
	c.MaxHitPoints = character.SuggestedMaxHitPoints(level, conMod)
	c.CurrentHitPoints = c.MaxHitPoints
	c.ArmorClass = 14
	c.HitDice = fmt.Sprintf("%dd10", level)
	c.SpellcastingAbility = character.Wisdom
	c.SavingThrowProficiencies = []character.AbilityType{
		character.Strength, character.Dexterity,
	}
	c.Coins = character.Currency{Gold: 25, Silver: 30}

	for _, t := range []character.SkillType{
		character.Stealth, character.Survival, character.Perception,
	} {
		c.SkillByType(t).Proficiency = true
	}
	return c, nil
}
