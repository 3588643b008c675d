package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greyweave/charsheet/internal/engine"
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
)

func TestAbilityModifier(t *testing.T) {
	// Spot-check the well-known values.
	cases := map[int32]int32{
		1:  -5,
		3:  -4,
		8:  -1,
		9:  -1,
		10: 0,
		11: 0,
		12: 1,
		16: 3,
		20: 5,
		30: 10,
	}
	for score, want := range cases {
		got, err := engine.AbilityModifier(score)
		require.NoError(t, err)
		assert.Equal(t, want, got, "score %d", score)
	}

	// Full domain matches floor((score-10)/2).
	for score := int32(1); score <= 30; score++ {
		got, err := engine.AbilityModifier(score)
		require.NoError(t, err)

		want := (score - 10) / 2
		if score < 10 && (score-10)%2 != 0 {
			want--
		}
		assert.Equal(t, want, got, "score %d", score)
	}
}

func TestAbilityModifier_OutOfRange(t *testing.T) {
	for _, score := range []int32{-5, 0, 31, 100} {
		_, err := engine.AbilityModifier(score)
		require.Error(t, err, "score %d", score)
		assert.True(t, errors.IsOutOfRange(err))
	}
}

func TestProficiencyBonus(t *testing.T) {
	// Exact values at every tier boundary.
	boundaries := map[int32]int32{
		1: 2, 4: 2,
		5: 3, 8: 3,
		9: 4, 12: 4,
		13: 5, 16: 5,
		17: 6, 20: 6,
	}
	for level, want := range boundaries {
		got, err := engine.ProficiencyBonus(level)
		require.NoError(t, err)
		assert.Equal(t, want, got, "level %d", level)
	}

	// Monotonically non-decreasing across the whole domain.
	prev := int32(0)
	for level := int32(1); level <= 20; level++ {
		got, err := engine.ProficiencyBonus(level)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "level %d", level)
		prev = got
	}
}

func TestProficiencyBonus_InvalidLevel(t *testing.T) {
	for _, level := range []int32{0, 21, -1} {
		_, err := engine.ProficiencyBonus(level)
		require.Error(t, err, "level %d", level)
		assert.True(t, errors.IsOutOfRange(err))
		assert.Contains(t, err.Error(), "level")
	}
}

func TestSavingThrow(t *testing.T) {
	// Without proficiency the save is exactly the modifier.
	for score := int32(1); score <= 30; score++ {
		mod, err := engine.AbilityModifier(score)
		require.NoError(t, err)

		save, err := engine.SavingThrow(score, false, 3)
		require.NoError(t, err)
		assert.Equal(t, mod, save, "score %d", score)
	}

	save, err := engine.SavingThrow(16, true, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(6), save)
}

func TestSkillBonus(t *testing.T) {
	got, err := engine.SkillBonus(14, false, false, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got)

	got, err = engine.SkillBonus(14, true, false, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(5), got)

	got, err = engine.SkillBonus(14, true, true, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(8), got)

	// Expertise without proficiency adds nothing.
	got, err = engine.SkillBonus(14, false, true, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got)
}

func TestPassivePerception(t *testing.T) {
	assert.Equal(t, int32(12), engine.PassivePerception(2, 3, false, false))
	assert.Equal(t, int32(15), engine.PassivePerception(2, 3, true, false))
	assert.Equal(t, int32(18), engine.PassivePerception(2, 3, true, true))
}

func TestBaselineArmorClass(t *testing.T) {
	assert.Equal(t, int32(10), engine.BaselineArmorClass(0))
	assert.Equal(t, int32(13), engine.BaselineArmorClass(3))
	assert.Equal(t, int32(9), engine.BaselineArmorClass(-1))
}

func TestBaselineHitPoints(t *testing.T) {
	// Level 1 wizard (d6) with CON 14: 6 + 2.
	hp, err := engine.BaselineHitPoints(6, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(8), hp)

	// Level 5 fighter (d10) with CON 16 (+3): 13 + 4*(6+3).
	hp, err = engine.BaselineHitPoints(10, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(49), hp)

	// Heavy CON penalty never drops below one point per level.
	hp, err = engine.BaselineHitPoints(6, 3, -5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hp)

	// The floor applies per level, not to the total: a d8 at level 20
	// with CON -5 keeps the 3 points from level 1 plus 1 per level after.
	hp, err = engine.BaselineHitPoints(8, 20, -5)
	require.NoError(t, err)
	assert.Equal(t, int32(22), hp)
}

func TestBaselineHitPoints_Invalid(t *testing.T) {
	_, err := engine.BaselineHitPoints(8, 0, 0)
	assert.True(t, errors.IsOutOfRange(err))

	_, err = engine.BaselineHitPoints(8, 21, 0)
	assert.True(t, errors.IsOutOfRange(err))

	_, err = engine.BaselineHitPoints(0, 1, 0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestBaselineSpeed(t *testing.T) {
	assert.Equal(t, int32(25), engine.BaselineSpeed(25))
	assert.Equal(t, int32(30), engine.BaselineSpeed(0))
	assert.Equal(t, int32(30), engine.BaselineSpeed(-10))
}

func standardSheet() *dnd5e.CharacterSheet {
	return &dnd5e.CharacterSheet{
		ID:    "sheet_1",
		Name:  "Brottor",
		Level: 5,
		AbilityScores: &dnd5e.AbilityScores{
			Strength:     15,
			Dexterity:    14,
			Constitution: 13,
			Intelligence: 12,
			Wisdom:       10,
			Charisma:     8,
		},
		SavingThrowProfs: []string{dnd5e.AbilityStrength, dnd5e.AbilityConstitution},
		Skills:           []string{dnd5e.SkillAthletics, dnd5e.SkillPerception},
		Expertise:        []string{dnd5e.SkillAthletics},
	}
}

func TestDerive(t *testing.T) {
	stats, err := engine.Derive(&engine.DeriveInput{
		Sheet:     standardSheet(),
		HitDie:    12,
		RaceSpeed: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), stats.ProficiencyBonus)
	assert.Equal(t, int32(2), stats.Modifiers[dnd5e.AbilityStrength])
	assert.Equal(t, int32(-1), stats.Modifiers[dnd5e.AbilityCharisma])

	// Proficient saves gain the bonus, others are bare modifiers.
	assert.Equal(t, int32(5), stats.SavingThrows[dnd5e.AbilityStrength])
	assert.Equal(t, int32(4), stats.SavingThrows[dnd5e.AbilityConstitution])
	assert.Equal(t, int32(2), stats.SavingThrows[dnd5e.AbilityDexterity])

	// Athletics has expertise (2+3*2), Perception plain proficiency (0+3),
	// Stealth untrained (2).
	assert.Equal(t, int32(8), stats.Skills[dnd5e.SkillAthletics])
	assert.Equal(t, int32(3), stats.Skills[dnd5e.SkillPerception])
	assert.Equal(t, int32(2), stats.Skills[dnd5e.SkillStealth])

	assert.Equal(t, int32(13), stats.PassivePerception)
	assert.Equal(t, int32(2), stats.Initiative)
	assert.Equal(t, int32(12), stats.ArmorClass)
	// d12 barbarian, CON +1: 13 + 4*(7+1).
	assert.Equal(t, int32(45), stats.HitPoints)
	assert.Equal(t, int32(25), stats.Speed)
}

func TestDerive_Idempotent(t *testing.T) {
	input := &engine.DeriveInput{Sheet: standardSheet(), HitDie: 12, RaceSpeed: 25}

	first, err := engine.Derive(input)
	require.NoError(t, err)
	second, err := engine.Derive(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDerive_UnknownCatalogDataDefaults(t *testing.T) {
	stats, err := engine.Derive(&engine.DeriveInput{Sheet: standardSheet()})
	require.NoError(t, err)

	// Unknown hit die falls back to d8, unknown race speed to 30.
	assert.Equal(t, int32(30), stats.Speed)
	assert.Equal(t, int32(33), stats.HitPoints) // 9 + 4*(5+1)
}

func TestDerive_Invalid(t *testing.T) {
	_, err := engine.Derive(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	sheet := standardSheet()
	sheet.AbilityScores = nil
	_, err = engine.Derive(&engine.DeriveInput{Sheet: sheet})
	assert.True(t, errors.IsFailedPrecondition(err))

	sheet = standardSheet()
	sheet.Level = 21
	_, err = engine.Derive(&engine.DeriveInput{Sheet: sheet})
	assert.True(t, errors.IsOutOfRange(err))

	sheet = standardSheet()
	sheet.AbilityScores.Wisdom = 0
	_, err = engine.Derive(&engine.DeriveInput{Sheet: sheet})
	assert.True(t, errors.IsOutOfRange(err))
}
