// Package sheet implements the character sheet orchestrator.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/greyweave/charsheet/internal/clients/catalog"
	"github.com/greyweave/charsheet/internal/engine"
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
	"github.com/greyweave/charsheet/internal/pkg/clock"
	"github.com/greyweave/charsheet/internal/pkg/idgen"
	sheetrepo "github.com/greyweave/charsheet/internal/repositories/sheet"
	"github.com/greyweave/charsheet/internal/services/sheet"
)

// Config holds the dependencies for the sheet orchestrator.
type Config struct {
	Repository    sheetrepo.Repository
	CatalogClient catalog.Client
	IDGenerator   idgen.Generator
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.CatalogClient == nil {
		vb.RequiredField("CatalogClient")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements the sheet.Service interface.
type Orchestrator struct {
	repo    sheetrepo.Repository
	catalog catalog.Client
	idGen   idgen.Generator
	clock   clock.Clock
}

// New creates a new sheet orchestrator.
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		repo:    cfg.Repository,
		catalog: cfg.CatalogClient,
		idGen:   cfg.IDGenerator,
		clock:   cfg.Clock,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ sheet.Service = (*Orchestrator)(nil)

// Sheet lifecycle methods

// CreateSheet creates a new, mostly empty sheet at level 1.
func (o *Orchestrator) CreateSheet(ctx context.Context, input *sheet.CreateSheetInput) (*sheet.CreateSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	now := o.clock.Now().Unix()
	s := &dnd5e.CharacterSheet{
		ID:        o.idGen.Generate(),
		Name:      input.Name,
		Level:     dnd5e.MinLevel,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := o.repo.Create(ctx, sheetrepo.CreateInput{Sheet: s}); err != nil {
		return nil, errors.Wrap(err, "failed to store sheet")
	}

	return &sheet.CreateSheetOutput{Sheet: s}, nil
}

// GetSheet retrieves a sheet by ID.
func (o *Orchestrator) GetSheet(ctx context.Context, input *sheet.GetSheetInput) (*sheet.GetSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.repo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID})
	if err != nil {
		return nil, err
	}

	return &sheet.GetSheetOutput{Sheet: out.Sheet}, nil
}

// ListSheets returns all stored sheets.
func (o *Orchestrator) ListSheets(ctx context.Context, _ *sheet.ListSheetsInput) (*sheet.ListSheetsOutput, error) {
	out, err := o.repo.List(ctx, sheetrepo.ListInput{})
	if err != nil {
		return nil, err
	}

	return &sheet.ListSheetsOutput{Sheets: out.Sheets}, nil
}

// DeleteSheet removes a sheet by ID.
func (o *Orchestrator) DeleteSheet(ctx context.Context, input *sheet.DeleteSheetInput) (*sheet.DeleteSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	if _, err := o.repo.Delete(ctx, sheetrepo.DeleteInput{ID: input.SheetID}); err != nil {
		return nil, err
	}

	return &sheet.DeleteSheetOutput{}, nil
}

// Section update methods

// SetName sets the character's name.
func (o *Orchestrator) SetName(ctx context.Context, input *sheet.SetNameInput) (*sheet.SetNameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	s.Name = input.Name
	warnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetNameOutput{Sheet: s, Warnings: warnings}, nil
}

// SetAlignment sets the character's alignment. It must be one of the nine
// standard alignments; an empty string clears it.
func (o *Orchestrator) SetAlignment(ctx context.Context, input *sheet.SetAlignmentInput) (*sheet.SetAlignmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.Alignment != "" && !isValidAlignment(input.Alignment) {
		return nil, errors.InvalidArgumentf("unknown alignment %q", input.Alignment).
			WithMeta("valid_alignments", dnd5e.Alignments)
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	s.Alignment = input.Alignment
	warnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetAlignmentOutput{Sheet: s, Warnings: warnings}, nil
}

// SetLevel sets the character's level (1-20).
func (o *Orchestrator) SetLevel(ctx context.Context, input *sheet.SetLevelInput) (*sheet.SetLevelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.Level < dnd5e.MinLevel || input.Level > dnd5e.MaxLevel {
		return nil, errors.OutOfRangef("level %d is out of range [%d, %d]",
			input.Level, dnd5e.MinLevel, dnd5e.MaxLevel)
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	s.Level = input.Level
	warnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetLevelOutput{Sheet: s, Warnings: warnings}, nil
}

// SetRace sets the character's race. The race is validated against the
// catalog; when the catalog is unreachable the selection is accepted as-is
// with a warning, and derived speed falls back to the default.
func (o *Orchestrator) SetRace(ctx context.Context, input *sheet.SetRaceInput) (*sheet.SetRaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("raceID", input.RaceID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	race, err := o.catalog.GetRace(ctx, input.RaceID)
	switch {
	case err == nil:
	case errors.IsNotFound(err):
		return nil, errors.InvalidArgumentf("unknown race %q", input.RaceID)
	case errors.IsDataUnavailable(err):
		warnings = append(warnings, fmt.Sprintf("race data unavailable; %q accepted unverified", input.RaceID))
	default:
		return nil, err
	}

	s.RaceID = input.RaceID
	moreWarnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetRaceOutput{
		Sheet:    s,
		Race:     race,
		Warnings: append(warnings, moreWarnings...),
	}, nil
}

// SetClass sets the character's class. Changing class clears the subclass
// and chosen spells, and re-defaults saving throw proficiencies from the
// class (with a static fallback table when the catalog is unreachable).
func (o *Orchestrator) SetClass(ctx context.Context, input *sheet.SetClassInput) (*sheet.SetClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("classID", input.ClassID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	class, err := o.catalog.GetClass(ctx, input.ClassID)
	switch {
	case err == nil:
	case errors.IsNotFound(err):
		return nil, errors.InvalidArgumentf("unknown class %q", input.ClassID)
	case errors.IsDataUnavailable(err):
		warnings = append(warnings, fmt.Sprintf("class data unavailable; %q accepted unverified", input.ClassID))
	default:
		return nil, err
	}

	s.ClassID = input.ClassID
	s.SubclassID = ""
	s.Spells = nil
	s.SavingThrowProfs = defaultSavingThrows(input.ClassID, class)

	moreWarnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetClassOutput{
		Sheet:    s,
		Class:    class,
		Warnings: append(warnings, moreWarnings...),
	}, nil
}

// SetSubclass sets the character's subclass and replaces the chosen spells
// with the subclass's spell list. A subclass the catalog doesn't know, or
// an unreachable catalog, yields an empty spell list with a warning rather
// than an error.
func (o *Orchestrator) SetSubclass(ctx context.Context, input *sheet.SetSubclassInput) (*sheet.SetSubclassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("subclassID", input.SubclassID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}
	if s.ClassID == "" {
		return nil, errors.FailedPrecondition("class must be set before a subclass")
	}

	var warnings []string
	granted, err := o.catalog.ListSubclassSpells(ctx, input.SubclassID)
	if err != nil {
		if !errors.IsDataUnavailable(err) {
			return nil, err
		}
		slog.Warn("subclass spell list unavailable",
			"sheet_id", s.ID, "subclass_id", input.SubclassID, "error", err)
		warnings = append(warnings,
			fmt.Sprintf("spell data unavailable for subclass %q; no spells granted", input.SubclassID))
		granted = nil
	}

	s.SubclassID = input.SubclassID
	s.Spells = make([]string, 0, len(granted))
	for _, ref := range granted {
		s.Spells = append(s.Spells, ref.ID)
	}

	moreWarnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetSubclassOutput{
		Sheet:         s,
		GrantedSpells: granted,
		Warnings:      append(warnings, moreWarnings...),
	}, nil
}

// SetAbilityScores sets all six ability scores.
func (o *Orchestrator) SetAbilityScores(ctx context.Context, input *sheet.SetAbilityScoresInput) (*sheet.SetAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AbilityScores == nil {
		return nil, errors.InvalidArgument("ability scores are required")
	}

	for _, ability := range dnd5e.Abilities {
		score := input.AbilityScores.Get(ability)
		if score < dnd5e.MinAbilityScore || score > dnd5e.MaxAbilityScore {
			return nil, errors.OutOfRangef("%s score %d is out of range [%d, %d]",
				ability, score, dnd5e.MinAbilityScore, dnd5e.MaxAbilityScore)
		}
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	s.AbilityScores = input.AbilityScores
	warnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetAbilityScoresOutput{Sheet: s, Warnings: warnings}, nil
}

// SetSkills sets skill proficiencies and expertise. Expertise must be a
// subset of the proficient skills.
func (o *Orchestrator) SetSkills(ctx context.Context, input *sheet.SetSkillsInput) (*sheet.SetSkillsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	for _, skill := range input.Skills {
		if _, ok := dnd5e.SkillAbilities[skill]; !ok {
			vb.Fieldf("skills", "unknown skill %q", skill)
		}
	}
	for _, skill := range input.Expertise {
		if !containsString(input.Skills, skill) {
			vb.Fieldf("expertise", "expertise in %q requires proficiency in it", skill)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	s.Skills = input.Skills
	s.Expertise = input.Expertise
	warnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetSkillsOutput{Sheet: s, Warnings: warnings}, nil
}

// SetSpells replaces the chosen spell list. Spell IDs are validated
// against the catalog; when the catalog is unreachable the list is
// accepted as-is with a warning.
func (o *Orchestrator) SetSpells(ctx context.Context, input *sheet.SetSpellsInput) (*sheet.SetSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, spellID := range input.SpellIDs {
		_, err := o.catalog.GetSpell(ctx, spellID)
		switch {
		case err == nil:
		case errors.IsNotFound(err):
			return nil, errors.InvalidArgumentf("unknown spell %q", spellID)
		case errors.IsDataUnavailable(err):
			warnings = append(warnings, fmt.Sprintf("spell data unavailable; %q accepted unverified", spellID))
		default:
			return nil, err
		}
	}

	s.Spells = input.SpellIDs
	moreWarnings, err := o.saveWithDerived(ctx, s)
	if err != nil {
		return nil, err
	}

	return &sheet.SetSpellsOutput{Sheet: s, Warnings: append(warnings, moreWarnings...)}, nil
}

// Catalog pass-through methods

// ListRaces returns all races from the catalog.
func (o *Orchestrator) ListRaces(ctx context.Context, _ *sheet.ListRacesInput) (*sheet.ListRacesOutput, error) {
	races, err := o.catalog.ListRaces(ctx)
	if err != nil {
		return nil, err
	}
	return &sheet.ListRacesOutput{Races: races}, nil
}

// ListClasses returns all classes from the catalog.
func (o *Orchestrator) ListClasses(ctx context.Context, _ *sheet.ListClassesInput) (*sheet.ListClassesOutput, error) {
	classes, err := o.catalog.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	return &sheet.ListClassesOutput{Classes: classes}, nil
}

// ListSubclasses returns the subclasses for a class.
func (o *Orchestrator) ListSubclasses(ctx context.Context, input *sheet.ListSubclassesInput) (*sheet.ListSubclassesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("classID", input.ClassID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	subclasses, err := o.catalog.ListSubclasses(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}
	return &sheet.ListSubclassesOutput{Subclasses: subclasses}, nil
}

// ListSpells returns the spells castable by a class.
func (o *Orchestrator) ListSpells(ctx context.Context, input *sheet.ListSpellsInput) (*sheet.ListSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("classID", input.ClassID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	spells, err := o.catalog.ListClassSpells(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}
	return &sheet.ListSpellsOutput{Spells: spells}, nil
}

// GetSpell fetches one spell's full details for preview.
func (o *Orchestrator) GetSpell(ctx context.Context, input *sheet.GetSpellInput) (*sheet.GetSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("spellID", input.SpellID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	spell, err := o.catalog.GetSpell(ctx, input.SpellID)
	if err != nil {
		return nil, err
	}
	return &sheet.GetSpellOutput{Spell: spell}, nil
}

// Export

// ExportSheet renders the full sheet document as JSON: the selections plus
// the derived stats, recomputed immediately before serialization.
func (o *Orchestrator) ExportSheet(ctx context.Context, input *sheet.ExportSheetInput) (*sheet.ExportSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	if _, err := o.deriveFor(ctx, s); err != nil {
		return nil, err
	}

	var data []byte
	var jsonErr error
	if input.Indent {
		data, jsonErr = json.MarshalIndent(s, "", "  ")
	} else {
		data, jsonErr = json.Marshal(s)
	}
	if jsonErr != nil {
		return nil, errors.Wrap(jsonErr, "failed to marshal sheet")
	}

	return &sheet.ExportSheetOutput{JSON: data}, nil
}

// Internals

func (o *Orchestrator) getSheet(ctx context.Context, sheetID string) (*dnd5e.CharacterSheet, error) {
	if sheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.repo.Get(ctx, sheetrepo.GetInput{ID: sheetID})
	if err != nil {
		return nil, err
	}
	return out.Sheet, nil
}

// saveWithDerived recomputes derived stats, stamps UpdatedAt and persists
// the sheet. Catalog failures during derivation degrade to warnings.
func (o *Orchestrator) saveWithDerived(ctx context.Context, s *dnd5e.CharacterSheet) ([]string, error) {
	warnings, err := o.deriveFor(ctx, s)
	if err != nil {
		return nil, err
	}

	s.UpdatedAt = o.clock.Now().Unix()
	if _, err := o.repo.Update(ctx, sheetrepo.UpdateInput{Sheet: s}); err != nil {
		return nil, errors.Wrap(err, "failed to store sheet")
	}

	return warnings, nil
}

// deriveFor recomputes s.Derived in place. Missing ability scores leave
// Derived nil (nothing to compute yet); unreachable catalog data degrades
// to the engine's defaults with a warning.
func (o *Orchestrator) deriveFor(ctx context.Context, s *dnd5e.CharacterSheet) ([]string, error) {
	if s.AbilityScores == nil {
		s.Derived = nil
		return nil, nil
	}

	var warnings []string

	var hitDie int32
	if s.ClassID != "" {
		class, err := o.catalog.GetClass(ctx, s.ClassID)
		switch {
		case err == nil:
			hitDie = class.HitDie
		case errors.IsDataUnavailable(err):
			slog.Warn("class data unavailable, degrading hit die",
				"sheet_id", s.ID, "class_id", s.ClassID, "error", err)
			warnings = append(warnings,
				fmt.Sprintf("class data unavailable for %q; assuming a d8 hit die", s.ClassID))
		default:
			return nil, err
		}
	}

	var raceSpeed int32
	if s.RaceID != "" {
		race, err := o.catalog.GetRace(ctx, s.RaceID)
		switch {
		case err == nil:
			raceSpeed = race.Speed
		case errors.IsDataUnavailable(err):
			slog.Warn("race data unavailable, degrading speed",
				"sheet_id", s.ID, "race_id", s.RaceID, "error", err)
			warnings = append(warnings,
				fmt.Sprintf("race data unavailable for %q; assuming a speed of 30", s.RaceID))
		default:
			return nil, err
		}
	}

	derived, err := engine.Derive(&engine.DeriveInput{
		Sheet:     s,
		HitDie:    hitDie,
		RaceSpeed: raceSpeed,
	})
	if err != nil {
		return nil, err
	}
	s.Derived = derived

	return warnings, nil
}

// defaultSavingThrows picks saving throw proficiencies for a class. The
// catalog record wins; the static table covers the core classes when the
// catalog is unreachable.
func defaultSavingThrows(classID string, class *catalog.ClassData) []string {
	if class != nil && len(class.SavingThrows) > 0 {
		return append([]string(nil), class.SavingThrows...)
	}
	if pair, ok := dnd5e.ClassSavingThrows[classID]; ok {
		return []string{pair[0], pair[1]}
	}
	return nil
}

func isValidAlignment(alignment string) bool {
	return containsString(dnd5e.Alignments, alignment)
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
