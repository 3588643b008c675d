// Package engine implements the derivation rules for D&D 5e character
// sheets. Every function here is pure: the same inputs always produce the
// same outputs, and out-of-domain inputs fail with a coded error instead
// of being clamped.
package engine

import (
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
)

// proficiencyBonusTable holds the bonus for each level, indexed by
// level-1. Kept as an explicit table rather than a formula so the tier
// boundaries are visible and testable at a glance.
var proficiencyBonusTable = [dnd5e.MaxLevel]int32{
	2, 2, 2, 2, // 1-4
	3, 3, 3, 3, // 5-8
	4, 4, 4, 4, // 9-12
	5, 5, 5, 5, // 13-16
	6, 6, 6, 6, // 17-20
}

// AbilityModifier returns floor((score-10)/2) for a score in 1..30.
func AbilityModifier(score int32) (int32, error) {
	if score < dnd5e.MinAbilityScore || score > dnd5e.MaxAbilityScore {
		return 0, errors.OutOfRangef("ability score %d is invalid: must be between %d and %d",
			score, dnd5e.MinAbilityScore, dnd5e.MaxAbilityScore)
	}

	// Integer division truncates toward zero; adjust odd scores below 10
	// so the result is a true floor.
	modifier := (score - 10) / 2
	if score < 10 && (score-10)%2 != 0 {
		modifier--
	}
	return modifier, nil
}

// ProficiencyBonus returns the level-dependent proficiency bonus for a
// level in 1..20.
func ProficiencyBonus(level int32) (int32, error) {
	if level < dnd5e.MinLevel || level > dnd5e.MaxLevel {
		return 0, errors.OutOfRangef("level %d is invalid: must be between %d and %d",
			level, dnd5e.MinLevel, dnd5e.MaxLevel)
	}
	return proficiencyBonusTable[level-1], nil
}

// SavingThrow returns the saving throw bonus for an ability score.
// Non-proficient saves are exactly the ability modifier.
func SavingThrow(score int32, proficient bool, profBonus int32) (int32, error) {
	mod, err := AbilityModifier(score)
	if err != nil {
		return 0, err
	}
	if proficient {
		mod += profBonus
	}
	return mod, nil
}

// SkillBonus returns the skill check bonus for an ability score.
// Expertise doubles the proficiency bonus and only applies to proficient
// skills.
func SkillBonus(score int32, proficient, expertise bool, profBonus int32) (int32, error) {
	mod, err := AbilityModifier(score)
	if err != nil {
		return 0, err
	}
	if proficient {
		multiplier := int32(1)
		if expertise {
			multiplier = 2
		}
		mod += profBonus * multiplier
	}
	return mod, nil
}

// PassivePerception returns 10 + the Wisdom modifier plus any proficiency
// (doubled for expertise).
func PassivePerception(wisMod, profBonus int32, proficient, expertise bool) int32 {
	pp := 10 + wisMod
	if proficient {
		multiplier := int32(1)
		if expertise {
			multiplier = 2
		}
		pp += profBonus * multiplier
	}
	return pp
}

// Initiative is the Dexterity modifier.
func Initiative(dexScore int32) (int32, error) {
	return AbilityModifier(dexScore)
}

// BaselineArmorClass is the unarmored, shieldless AC: 10 + DEX modifier.
// Equipment and feats are out of scope.
func BaselineArmorClass(dexMod int32) int32 {
	return 10 + dexMod
}

// BaselineHitPoints computes hit points using the fixed-average policy:
// level 1 grants the hit die maximum plus the CON modifier, every later
// level grants the die average rounded up (die/2 + 1) plus the CON
// modifier. Each level contributes at least one point.
func BaselineHitPoints(hitDie, level, conMod int32) (int32, error) {
	if level < dnd5e.MinLevel || level > dnd5e.MaxLevel {
		return 0, errors.OutOfRangef("level %d is invalid: must be between %d and %d",
			level, dnd5e.MinLevel, dnd5e.MaxLevel)
	}
	if hitDie <= 0 {
		return 0, errors.InvalidArgumentf("hit die %d is invalid: must be positive", hitDie)
	}

	levelOne := hitDie + conMod
	if levelOne < 1 {
		levelOne = 1
	}
	perLevel := hitDie/2 + 1 + conMod
	if perLevel < 1 {
		perLevel = 1
	}
	return levelOne + (level-1)*perLevel, nil
}

// BaselineSpeed returns the race base walking speed, defaulting to 30 feet
// when the race is unknown or the catalog had no data.
func BaselineSpeed(raceSpeed int32) int32 {
	if raceSpeed <= 0 {
		return 30
	}
	return raceSpeed
}
