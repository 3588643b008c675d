package engine

import (
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
)

// DeriveInput carries a sheet plus the catalog-sourced values the formulas
// need. A zero HitDie or RaceSpeed means "unknown"; callers decide how to
// degrade (the orchestrator substitutes a d8 and 30 feet with a warning).
type DeriveInput struct {
	Sheet     *dnd5e.CharacterSheet
	HitDie    int32
	RaceSpeed int32
}

// Derive computes the full DerivedStats for a sheet. It is deterministic
// and has no hidden state: calling it twice on an unchanged input yields
// deep-equal outputs.
func Derive(input *DeriveInput) (*dnd5e.DerivedStats, error) {
	if input == nil || input.Sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	sheet := input.Sheet
	if sheet.AbilityScores == nil {
		return nil, errors.FailedPrecondition("ability scores are not set")
	}

	profBonus, err := ProficiencyBonus(sheet.Level)
	if err != nil {
		return nil, err
	}

	modifiers := make(map[string]int32, len(dnd5e.Abilities))
	savingThrows := make(map[string]int32, len(dnd5e.Abilities))
	for _, ability := range dnd5e.Abilities {
		score := sheet.AbilityScores.Get(ability)
		mod, err := AbilityModifier(score)
		if err != nil {
			return nil, errors.Wrapf(err, "ability %s", ability)
		}
		modifiers[ability] = mod

		savingThrows[ability] = mod
		if sheet.HasSavingThrowProf(ability) {
			savingThrows[ability] += profBonus
		}
	}

	skills := make(map[string]int32, len(dnd5e.SkillAbilities))
	for skill, ability := range dnd5e.SkillAbilities {
		bonus, err := SkillBonus(
			sheet.AbilityScores.Get(ability),
			sheet.HasSkill(skill),
			sheet.HasExpertise(skill),
			profBonus,
		)
		if err != nil {
			return nil, errors.Wrapf(err, "skill %s", skill)
		}
		skills[skill] = bonus
	}

	hitDie := input.HitDie
	if hitDie <= 0 {
		hitDie = 8
	}
	hp, err := BaselineHitPoints(hitDie, sheet.Level, modifiers[dnd5e.AbilityConstitution])
	if err != nil {
		return nil, err
	}

	return &dnd5e.DerivedStats{
		Modifiers:        modifiers,
		ProficiencyBonus: profBonus,
		SavingThrows:     savingThrows,
		Skills:           skills,
		PassivePerception: PassivePerception(
			modifiers[dnd5e.AbilityWisdom],
			profBonus,
			sheet.HasSkill(dnd5e.SkillPerception),
			sheet.HasExpertise(dnd5e.SkillPerception),
		),
		Initiative: modifiers[dnd5e.AbilityDexterity],
		ArmorClass: BaselineArmorClass(modifiers[dnd5e.AbilityDexterity]),
		HitPoints:  hp,
		Speed:      BaselineSpeed(input.RaceSpeed),
	}, nil
}
