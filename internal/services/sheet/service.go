// Package sheet defines the interface for character sheet operations.
package sheet

import (
	"context"

	"github.com/greyweave/charsheet/internal/clients/catalog"
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
)

// Service defines the interface for character sheet operations. Every
// mutation returns the updated sheet with derived stats recomputed, plus
// warnings for anything that degraded (e.g. reference data unavailable).
type Service interface {
	// Sheet lifecycle
	CreateSheet(ctx context.Context, input *CreateSheetInput) (*CreateSheetOutput, error)
	GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error)
	ListSheets(ctx context.Context, input *ListSheetsInput) (*ListSheetsOutput, error)
	DeleteSheet(ctx context.Context, input *DeleteSheetInput) (*DeleteSheetOutput, error)

	// Section-based updates
	SetName(ctx context.Context, input *SetNameInput) (*SetNameOutput, error)
	SetAlignment(ctx context.Context, input *SetAlignmentInput) (*SetAlignmentOutput, error)
	SetLevel(ctx context.Context, input *SetLevelInput) (*SetLevelOutput, error)
	SetRace(ctx context.Context, input *SetRaceInput) (*SetRaceOutput, error)
	SetClass(ctx context.Context, input *SetClassInput) (*SetClassOutput, error)
	SetSubclass(ctx context.Context, input *SetSubclassInput) (*SetSubclassOutput, error)
	SetAbilityScores(ctx context.Context, input *SetAbilityScoresInput) (*SetAbilityScoresOutput, error)
	SetSkills(ctx context.Context, input *SetSkillsInput) (*SetSkillsOutput, error)
	SetSpells(ctx context.Context, input *SetSpellsInput) (*SetSpellsOutput, error)

	// Catalog pass-throughs for presenting choices
	ListRaces(ctx context.Context, input *ListRacesInput) (*ListRacesOutput, error)
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)
	ListSubclasses(ctx context.Context, input *ListSubclassesInput) (*ListSubclassesOutput, error)
	ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error)
	GetSpell(ctx context.Context, input *GetSpellInput) (*GetSpellOutput, error)

	// Export
	ExportSheet(ctx context.Context, input *ExportSheetInput) (*ExportSheetOutput, error)
}

// Sheet lifecycle types

// CreateSheetInput defines the request for creating a sheet.
type CreateSheetInput struct {
	Name string // Optional
}

// CreateSheetOutput defines the response for creating a sheet.
type CreateSheetOutput struct {
	Sheet *dnd5e.CharacterSheet
}

// GetSheetInput defines the request for getting a sheet.
type GetSheetInput struct {
	SheetID string
}

// GetSheetOutput defines the response for getting a sheet.
type GetSheetOutput struct {
	Sheet *dnd5e.CharacterSheet
}

// ListSheetsInput defines the request for listing sheets.
type ListSheetsInput struct{}

// ListSheetsOutput defines the response for listing sheets.
type ListSheetsOutput struct {
	Sheets []*dnd5e.CharacterSheet
}

// DeleteSheetInput defines the request for deleting a sheet.
type DeleteSheetInput struct {
	SheetID string
}

// DeleteSheetOutput defines the response for deleting a sheet.
type DeleteSheetOutput struct{}

// Section update types

// SetNameInput defines the request for setting a sheet's name.
type SetNameInput struct {
	SheetID string
	Name    string
}

// SetNameOutput defines the response for setting a sheet's name.
type SetNameOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Warnings []string
}

// SetAlignmentInput defines the request for setting alignment.
type SetAlignmentInput struct {
	SheetID   string
	Alignment string
}

// SetAlignmentOutput defines the response for setting alignment.
type SetAlignmentOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Warnings []string
}

// SetLevelInput defines the request for setting level.
type SetLevelInput struct {
	SheetID string
	Level   int32
}

// SetLevelOutput defines the response for setting level.
type SetLevelOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Warnings []string
}

// SetRaceInput defines the request for setting the race.
type SetRaceInput struct {
	SheetID string
	RaceID  string
}

// SetRaceOutput defines the response for setting the race.
type SetRaceOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Race     *catalog.RaceData // nil when the catalog was unavailable
	Warnings []string
}

// SetClassInput defines the request for setting the class. Changing
// class clears the subclass and chosen spells and re-defaults saving
// throw proficiencies.
type SetClassInput struct {
	SheetID string
	ClassID string
}

// SetClassOutput defines the response for setting the class.
type SetClassOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Class    *catalog.ClassData // nil when the catalog was unavailable
	Warnings []string
}

// SetSubclassInput defines the request for setting the subclass.
type SetSubclassInput struct {
	SheetID    string
	SubclassID string
}

// SetSubclassOutput defines the response for setting the subclass.
// GrantedSpells lists the subclass's spells; a subclass without a spell
// list yields an empty slice.
type SetSubclassOutput struct {
	Sheet         *dnd5e.CharacterSheet
	GrantedSpells []*catalog.SpellRef
	Warnings      []string
}

// SetAbilityScoresInput defines the request for setting ability scores.
type SetAbilityScoresInput struct {
	SheetID       string
	AbilityScores *dnd5e.AbilityScores
}

// SetAbilityScoresOutput defines the response for setting ability scores.
type SetAbilityScoresOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Warnings []string
}

// SetSkillsInput defines the request for setting skill proficiencies.
// Expertise must be a subset of Skills.
type SetSkillsInput struct {
	SheetID   string
	Skills    []string
	Expertise []string
}

// SetSkillsOutput defines the response for setting skill proficiencies.
type SetSkillsOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Warnings []string
}

// SetSpellsInput defines the request for setting chosen spells.
type SetSpellsInput struct {
	SheetID  string
	SpellIDs []string
}

// SetSpellsOutput defines the response for setting chosen spells.
type SetSpellsOutput struct {
	Sheet    *dnd5e.CharacterSheet
	Warnings []string
}

// Catalog pass-through types

// ListRacesInput defines the request for listing races.
type ListRacesInput struct{}

// ListRacesOutput defines the response for listing races.
type ListRacesOutput struct {
	Races []*catalog.RaceData
}

// ListClassesInput defines the request for listing classes.
type ListClassesInput struct{}

// ListClassesOutput defines the response for listing classes.
type ListClassesOutput struct {
	Classes []*catalog.ClassData
}

// ListSubclassesInput defines the request for listing a class's subclasses.
type ListSubclassesInput struct {
	ClassID string
}

// ListSubclassesOutput defines the response for listing subclasses.
type ListSubclassesOutput struct {
	Subclasses []*catalog.SubclassData
}

// ListSpellsInput defines the request for listing a class's spells.
type ListSpellsInput struct {
	ClassID string
}

// ListSpellsOutput defines the response for listing spells.
type ListSpellsOutput struct {
	Spells []*catalog.SpellRef
}

// GetSpellInput defines the request for previewing one spell.
type GetSpellInput struct {
	SpellID string
}

// GetSpellOutput defines the response for previewing one spell.
type GetSpellOutput struct {
	Spell *catalog.SpellData
}

// Export types

// ExportSheetInput defines the request for exporting a sheet.
type ExportSheetInput struct {
	SheetID string
	// Indent pretty-prints the JSON output.
	Indent bool
}

// ExportSheetOutput defines the response for exporting a sheet.
type ExportSheetOutput struct {
	// JSON is the full sheet document: selections plus derived stats.
	JSON []byte
}
