package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdatePatch_Apply_SingleField(t *testing.T) {
	c, err := Build(CreateInput{Name: "Gandalf", Race: Human, ClassName: "Wizard"})
	require.NoError(t, err)
	c.CurrentHitPoints = 10

	p := UpdatePatch{CurrentHitPoints: ptr(30)}
	require.NoError(t, p.Validate())
	p.Apply(c)

	assert.Equal(t, "Gandalf", c.Name, "absent fields stay untouched")
	assert.Equal(t, 30, c.CurrentHitPoints)
}

func TestUpdatePatch_Apply_MergesAllPresentFields(t *testing.T) {
	c, err := Build(CreateInput{Name: "Gandalf", Race: Human, ClassName: "Wizard"})
	require.NoError(t, err)

	p := UpdatePatch{
		Name:                ptr("Gandalf the White"),
		Alignment:           ptr(NeutralGood),
		Background:          ptr("Wanderer"),
		ArmorClass:          ptr(15),
		Speed:               ptr(35),
		SpellcastingAbility: ptr(Intelligence),
		Coins:               &Currency{Gold: 50},
		Notes:               ptr("returned from Moria"),
		Public:              ptr(true),
	}
	require.NoError(t, p.Validate())
	p.Apply(c)

	assert.Equal(t, "Gandalf the White", c.Name)
	assert.Equal(t, NeutralGood, c.Alignment)
	assert.Equal(t, "Wanderer", c.Background)
	assert.Equal(t, 15, c.ArmorClass)
	assert.Equal(t, 35, c.Speed)
	assert.Equal(t, Intelligence, c.SpellcastingAbility)
	assert.Equal(t, 50, c.Coins.Gold)
	assert.Equal(t, "returned from Moria", c.Notes)
	assert.True(t, c.Public)
	assert.Equal(t, Human, c.Race, "absent race stays untouched")
}

func TestUpdatePatch_Apply_CurrentHPNotClampedToMax(t *testing.T) {
	c, err := Build(CreateInput{Name: "Boromir", Race: Human, ClassName: "Fighter"})
	require.NoError(t, err)
	c.MaxHitPoints = 20

	p := UpdatePatch{CurrentHitPoints: ptr(50)}
	p.Apply(c)
	assert.Equal(t, 50, c.CurrentHitPoints)
}

func TestUpdatePatch_Apply_SkillToggles(t *testing.T) {
	c, err := Build(CreateInput{Name: "Bilbo", Race: Halfling, ClassName: "Rogue"})
	require.NoError(t, err)

	p := UpdatePatch{Skills: []SkillPatch{
		{Type: Stealth, Proficiency: ptr(true), Expertise: ptr(true)},
		{Type: Persuasion, Proficiency: ptr(true)},
	}}
	require.NoError(t, p.Validate())
	p.Apply(c)

	assert.True(t, c.SkillByType(Stealth).Proficiency)
	assert.True(t, c.SkillByType(Stealth).Expertise)
	assert.True(t, c.SkillByType(Persuasion).Proficiency)
	assert.False(t, c.SkillByType(Persuasion).Expertise)
	assert.False(t, c.SkillByType(Athletics).Proficiency)
	assert.Len(t, c.Skills, 18, "skill entries are toggled in place, never added or removed")
}

func TestUpdatePatch_Apply_SavingThrowsReplaced(t *testing.T) {
	c, err := Build(CreateInput{Name: "Gimli", Race: Dwarf, ClassName: "Fighter"})
	require.NoError(t, err)
	c.SavingThrowProficiencies = []AbilityType{Strength}

	p := UpdatePatch{SavingThrowProficiencies: ptr([]AbilityType{Constitution, Wisdom})}
	require.NoError(t, p.Validate())
	p.Apply(c)

	assert.Equal(t, []AbilityType{Constitution, Wisdom}, c.SavingThrowProficiencies)
}

func TestUpdatePatch_Validate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		p    UpdatePatch
	}{
		{"empty name", UpdatePatch{Name: ptr("")}},
		{"unknown race", UpdatePatch{Race: ptr(Race("ROBOT"))}},
		{"unknown alignment", UpdatePatch{Alignment: ptr(Alignment("SLEEPY"))}},
		{"score out of range", UpdatePatch{Scores: &AbilityScores{Strength: 0, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10}}},
		{"negative experience", UpdatePatch{ExperiencePoints: ptr(-1)}},
		{"negative temp hp", UpdatePatch{TemporaryHitPoints: ptr(-1)}},
		{"unknown skill", UpdatePatch{Skills: []SkillPatch{{Type: "JUGGLING"}}}},
		{"unknown saving throw", UpdatePatch{SavingThrowProficiencies: ptr([]AbilityType{"LUCK"})}},
		{"unknown spellcasting ability", UpdatePatch{SpellcastingAbility: ptr(AbilityType("LUCK"))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.p.Validate())
		})
	}
}

func TestUpdatePatch_Validate_EmptyPatchIsValid(t *testing.T) {
	assert.NoError(t, UpdatePatch{}.Validate())
}
