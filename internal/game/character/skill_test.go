package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillTypes_CoverAllEighteen(t *testing.T) {
	assert.Len(t, SkillTypes, 18)
	seen := make(map[SkillType]bool)
	for _, st := range SkillTypes {
		assert.False(t, seen[st], "duplicate skill type %s", st)
		seen[st] = true
		assert.True(t, ValidSkillType(st))
		assert.True(t, ValidAbilityType(st.BaseAbility()), "skill %s has no base ability", st)
	}
}

func TestSkillType_BaseAbility(t *testing.T) {
	cases := map[SkillType]AbilityType{
		Athletics:      Strength,
		Stealth:        Dexterity,
		SleightOfHand:  Dexterity,
		Arcana:         Intelligence,
		Investigation:  Intelligence,
		Perception:     Wisdom,
		AnimalHandling: Wisdom,
		Persuasion:     Charisma,
		Intimidation:   Charisma,
	}
	for skill, want := range cases {
		assert.Equal(t, want, skill.BaseAbility(), "base ability for %s", skill)
	}
}

func TestSkill_TotalBonus(t *testing.T) {
	// DEX 14 -> modifier +2
	scores := AbilityScores{Dexterity: 14}
	const profBonus = 3

	plain := Skill{Type: Stealth}
	assert.Equal(t, 2, plain.TotalBonus(scores, profBonus))

	proficient := Skill{Type: Stealth, Proficiency: true}
	assert.Equal(t, 5, proficient.TotalBonus(scores, profBonus))

	expertise := Skill{Type: Stealth, Expertise: true}
	assert.Equal(t, 8, expertise.TotalBonus(scores, profBonus))

	// Expertise wins regardless of the proficiency flag.
	both := Skill{Type: Stealth, Proficiency: true, Expertise: true}
	assert.Equal(t, 8, both.TotalBonus(scores, profBonus))
}

func TestSkill_TotalBonus_FlatBonusFieldIgnored(t *testing.T) {
	scores := AbilityScores{Dexterity: 14}
	s := Skill{Type: Stealth, Bonus: 99}
	assert.Equal(t, 2, s.TotalBonus(scores, 2), "flat bonus field must not affect the computation")
}

func TestNewSkillSet(t *testing.T) {
	skills := NewSkillSet()
	assert.Len(t, skills, 18)
	for i, s := range skills {
		assert.Equal(t, SkillTypes[i], s.Type)
		assert.False(t, s.Proficiency)
		assert.False(t, s.Expertise)
		assert.Zero(t, s.Bonus)
	}
}
