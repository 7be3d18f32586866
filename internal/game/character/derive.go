package character

// ProficiencyBonusForLevel returns the proficiency bonus for a total
// character level: 2 + (level - 1) / 4 with truncating division. Levels
// 1-4 yield 2, 5-8 yield 3, up to 6 at levels 17-20.
func ProficiencyBonusForLevel(level int) int {
	if level < 1 {
		return 2
	}
	return 2 + (level-1)/4
}

// SuggestedMaxHitPoints returns the reference hit-point total used when
// populating sample data: 10 at level 1, +6 per level after the first,
// plus the constitution modifier once per level. It is a seeding default,
// not an invariant; MaxHitPoints remains a plain settable field.
func SuggestedMaxHitPoints(level, constitutionModifier int) int {
	return 10 + (level-1)*6 + constitutionModifier*level
}
