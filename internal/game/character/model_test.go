package character

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ushki/dndsheet/internal/game/catalog"
)

func TestCharacter_TotalLevel(t *testing.T) {
	c := &Character{}
	assert.Equal(t, 0, c.TotalLevel(), "empty class list must not fail")

	c.Classes = []Class{
		{Name: "Fighter", Level: 3},
		{Name: "Rogue", Level: 2},
	}
	assert.Equal(t, 5, c.TotalLevel())
}

func TestCharacter_SetClasses_RecomputesProficiencyBonus(t *testing.T) {
	c := &Character{}
	c.SetClasses([]Class{{Name: "Fighter", Level: 1}})
	assert.Equal(t, 2, c.ProficiencyBonus)

	c.AddClass(Class{Name: "Rogue", Level: 4})
	assert.Equal(t, 5, c.TotalLevel())
	assert.Equal(t, 3, c.ProficiencyBonus)

	c.SetClasses([]Class{{Name: "Wizard", Level: 17}})
	assert.Equal(t, 6, c.ProficiencyBonus)
}

func TestCharacter_AddRemoveEquipment(t *testing.T) {
	c := &Character{}
	c.AddEquipment(catalog.Equipment{ID: 1, Name: "Longsword", Type: catalog.Weapon, Quantity: 1})
	c.AddEquipment(catalog.Equipment{ID: 2, Name: "Rope", Type: catalog.Gear, Quantity: 1})
	assert.Len(t, c.Equipment, 2)

	assert.True(t, c.RemoveEquipment(1))
	assert.Len(t, c.Equipment, 1)
	assert.Equal(t, "Rope", c.Equipment[0].Name)

	assert.False(t, c.RemoveEquipment(99), "removing an unknown item reports false")
	assert.Len(t, c.Equipment, 1)
}

func TestCharacter_AddSpell_SetSemantics(t *testing.T) {
	fireball := catalog.Spell{ID: 5, Name: "Fireball", Level: 3, School: catalog.Evocation}
	c := &Character{}

	c.AddSpell(fireball)
	c.AddSpell(fireball)
	assert.Len(t, c.Spells, 1, "adding the same spell twice keeps exactly one entry")
	assert.True(t, c.HasSpell(5))
}

func TestCharacter_RemoveSpell_AbsentIsNoOp(t *testing.T) {
	c := &Character{}
	c.AddSpell(catalog.Spell{ID: 5, Name: "Fireball", Level: 3, School: catalog.Evocation})

	c.RemoveSpell(99)
	assert.Len(t, c.Spells, 1)

	c.RemoveSpell(5)
	assert.Empty(t, c.Spells)

	c.RemoveSpell(5)
	assert.Empty(t, c.Spells)
}

func TestCharacter_SkillByType(t *testing.T) {
	c := &Character{Skills: NewSkillSet()}

	s := c.SkillByType(Stealth)
	assert.NotNil(t, s)
	s.Proficiency = true
	assert.True(t, c.SkillByType(Stealth).Proficiency, "SkillByType returns a live pointer")

	assert.Nil(t, (&Character{}).SkillByType(Stealth))
}

func TestCharacter_HasSavingThrowProficiency(t *testing.T) {
	c := &Character{SavingThrowProficiencies: []AbilityType{Strength, Constitution}}
	assert.True(t, c.HasSavingThrowProficiency(Strength))
	assert.False(t, c.HasSavingThrowProficiency(Wisdom))
}
