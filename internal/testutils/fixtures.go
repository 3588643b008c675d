package testutils

import (
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
)

// TestSheetName is the default character name for test fixtures.
const TestSheetName = "Thorin Oakenshield"

// CreateTestAbilityScores creates standard array ability scores.
func CreateTestAbilityScores() *dnd5e.AbilityScores {
	return &dnd5e.AbilityScores{
		Strength:     15,
		Dexterity:    14,
		Constitution: 13,
		Intelligence: 12,
		Wisdom:       10,
		Charisma:     8,
	}
}

// CreateTestSheet creates a test character sheet with sensible defaults.
func CreateTestSheet(id string) *dnd5e.CharacterSheet {
	return &dnd5e.CharacterSheet{
		ID:               id,
		Name:             TestSheetName,
		Alignment:        "Lawful Good",
		Level:            5,
		RaceID:           "dwarf",
		ClassID:          "fighter",
		AbilityScores:    CreateTestAbilityScores(),
		SavingThrowProfs: []string{dnd5e.AbilityStrength, dnd5e.AbilityConstitution},
		Skills:           []string{dnd5e.SkillAthletics, dnd5e.SkillPerception},
		CreatedAt:        1700000000,
		UpdatedAt:        1700000000,
	}
}
