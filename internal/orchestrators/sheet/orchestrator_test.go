package sheet_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/greyweave/charsheet/internal/clients/catalog"
	catalogmock "github.com/greyweave/charsheet/internal/clients/catalog/mock"
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
	sheetorch "github.com/greyweave/charsheet/internal/orchestrators/sheet"
	"github.com/greyweave/charsheet/internal/pkg/clock"
	"github.com/greyweave/charsheet/internal/pkg/idgen"
	sheetrepo "github.com/greyweave/charsheet/internal/repositories/sheet"
	sheetrepomock "github.com/greyweave/charsheet/internal/repositories/sheet/mock"
	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

const testNow = int64(1700000000)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockCatalog *catalogmock.MockClient
	repo        sheetrepo.Repository
	orc         sheetsvc.Service
	ctx         context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCatalog = catalogmock.NewMockClient(s.ctrl)
	s.repo = sheetrepo.NewInMemory()
	s.ctx = context.Background()

	orc, err := sheetorch.New(&sheetorch.Config{
		Repository:    s.repo,
		CatalogClient: s.mockCatalog,
		IDGenerator:   idgen.NewSequential("sheet"),
		Clock:         &clock.Fixed{T: time.Unix(testNow, 0)},
	})
	s.Require().NoError(err)
	s.orc = orc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// createSheet is a helper that creates a blank sheet and returns its ID.
func (s *OrchestratorTestSuite) createSheet() string {
	out, err := s.orc.CreateSheet(s.ctx, &sheetsvc.CreateSheetInput{Name: "Tordek"})
	s.Require().NoError(err)
	return out.Sheet.ID
}

// setStandardScores applies the standard array to the sheet.
func (s *OrchestratorTestSuite) setStandardScores(sheetID string) {
	_, err := s.orc.SetAbilityScores(s.ctx, &sheetsvc.SetAbilityScoresInput{
		SheetID: sheetID,
		AbilityScores: &dnd5e.AbilityScores{
			Strength:     15,
			Dexterity:    14,
			Constitution: 13,
			Intelligence: 12,
			Wisdom:       10,
			Charisma:     8,
		},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestCreateSheet() {
	out, err := s.orc.CreateSheet(s.ctx, &sheetsvc.CreateSheetInput{Name: "Tordek"})
	s.Require().NoError(err)

	s.Equal("sheet_1", out.Sheet.ID)
	s.Equal("Tordek", out.Sheet.Name)
	s.Equal(int32(1), out.Sheet.Level)
	s.Equal(testNow, out.Sheet.CreatedAt)
	s.Nil(out.Sheet.Derived, "no derived stats before ability scores are set")
}

func (s *OrchestratorTestSuite) TestCreateSheet_RepoError() {
	mockRepo := sheetrepomock.NewMockRepository(s.ctrl)
	mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("boom"))

	orc, err := sheetorch.New(&sheetorch.Config{
		Repository:    mockRepo,
		CatalogClient: s.mockCatalog,
		IDGenerator:   idgen.NewSequential("sheet"),
		Clock:         &clock.Fixed{T: time.Unix(testNow, 0)},
	})
	s.Require().NoError(err)

	_, err = orc.CreateSheet(s.ctx, &sheetsvc.CreateSheetInput{})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestNew_ValidatesConfig() {
	_, err := sheetorch.New(&sheetorch.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSetName() {
	id := s.createSheet()

	out, err := s.orc.SetName(s.ctx, &sheetsvc.SetNameInput{SheetID: id, Name: "Mialee"})
	s.Require().NoError(err)
	s.Equal("Mialee", out.Sheet.Name)
	s.Empty(out.Warnings)

	_, err = s.orc.SetName(s.ctx, &sheetsvc.SetNameInput{SheetID: id})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSetAlignment() {
	id := s.createSheet()

	out, err := s.orc.SetAlignment(s.ctx, &sheetsvc.SetAlignmentInput{SheetID: id, Alignment: "Chaotic Good"})
	s.Require().NoError(err)
	s.Equal("Chaotic Good", out.Sheet.Alignment)

	_, err = s.orc.SetAlignment(s.ctx, &sheetsvc.SetAlignmentInput{SheetID: id, Alignment: "Mostly Harmless"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSetLevel_OutOfRange() {
	id := s.createSheet()

	for _, level := range []int32{0, 21, -3} {
		_, err := s.orc.SetLevel(s.ctx, &sheetsvc.SetLevelInput{SheetID: id, Level: level})
		s.Require().Error(err, "level %d", level)
		s.True(errors.IsOutOfRange(err), "level %d", level)
	}
}

func (s *OrchestratorTestSuite) TestSetAbilityScores() {
	id := s.createSheet()
	s.setStandardScores(id)

	out, err := s.orc.GetSheet(s.ctx, &sheetsvc.GetSheetInput{SheetID: id})
	s.Require().NoError(err)
	derived := out.Sheet.Derived
	s.Require().NotNil(derived)

	s.Equal(int32(2), derived.ProficiencyBonus)
	s.Equal(int32(2), derived.Modifiers[dnd5e.AbilityStrength])
	s.Equal(int32(-1), derived.Modifiers[dnd5e.AbilityCharisma])
	s.Equal(int32(9), derived.HitPoints, "d8 fallback: 8 + CON mod at level 1")
	s.Equal(int32(12), derived.ArmorClass)
	s.Equal(int32(30), derived.Speed)
	s.Equal(int32(10), derived.PassivePerception)
	s.Equal(int32(2), derived.Initiative)
}

func (s *OrchestratorTestSuite) TestSetAbilityScores_OutOfRange() {
	id := s.createSheet()

	_, err := s.orc.SetAbilityScores(s.ctx, &sheetsvc.SetAbilityScoresInput{
		SheetID:       id,
		AbilityScores: &dnd5e.AbilityScores{Strength: 31, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10},
	})
	s.True(errors.IsOutOfRange(err))

	_, err = s.orc.SetAbilityScores(s.ctx, &sheetsvc.SetAbilityScoresInput{
		SheetID:       id,
		AbilityScores: &dnd5e.AbilityScores{Strength: 10, Dexterity: 0, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10},
	})
	s.True(errors.IsOutOfRange(err))
}

func (s *OrchestratorTestSuite) TestSetClass() {
	id := s.createSheet()
	s.setStandardScores(id)

	s.mockCatalog.EXPECT().
		GetClass(s.ctx, "fighter").
		Return(&catalog.ClassData{
			ID:           "fighter",
			Name:         "Fighter",
			HitDie:       10,
			SavingThrows: []string{dnd5e.AbilityStrength, dnd5e.AbilityConstitution},
		}, nil).
		Times(2) // selection check, then derivation

	out, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "fighter"})
	s.Require().NoError(err)
	s.Empty(out.Warnings)
	s.Equal("fighter", out.Sheet.ClassID)
	s.Equal([]string{dnd5e.AbilityStrength, dnd5e.AbilityConstitution}, out.Sheet.SavingThrowProfs)

	derived := out.Sheet.Derived
	s.Require().NotNil(derived)
	s.Equal(int32(11), derived.HitPoints, "d10: 10 + CON mod at level 1")
	s.Equal(int32(4), derived.SavingThrows[dnd5e.AbilityStrength], "+2 STR, +2 proficiency")
	s.Equal(int32(2), derived.SavingThrows[dnd5e.AbilityDexterity], "no proficiency")
}

func (s *OrchestratorTestSuite) TestSetClass_Unknown() {
	id := s.createSheet()

	s.mockCatalog.EXPECT().
		GetClass(s.ctx, "artificer").
		Return(nil, errors.NotFoundf("class artificer not found"))

	_, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "artificer"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSetClass_CatalogUnavailable() {
	id := s.createSheet()
	s.setStandardScores(id)

	s.mockCatalog.EXPECT().
		GetClass(s.ctx, "fighter").
		Return(nil, errors.Unavailable("api down")).
		Times(2)

	out, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "fighter"})
	s.Require().NoError(err)
	s.NotEmpty(out.Warnings)
	s.Equal("fighter", out.Sheet.ClassID)
	// Static table covers the core classes when the catalog is down.
	s.Equal([]string{dnd5e.AbilityStrength, dnd5e.AbilityConstitution}, out.Sheet.SavingThrowProfs)
	// Unknown hit die degrades to a d8.
	s.Equal(int32(9), out.Sheet.Derived.HitPoints)
}

func (s *OrchestratorTestSuite) TestSetClass_ClearsSubclassAndSpells() {
	id := s.createSheet()

	s.mockCatalog.EXPECT().
		GetClass(s.ctx, gomock.Any()).
		Return(&catalog.ClassData{ID: "cleric", HitDie: 8, SavingThrows: []string{dnd5e.AbilityWisdom, dnd5e.AbilityCharisma}}, nil).
		AnyTimes()
	s.mockCatalog.EXPECT().
		ListSubclassSpells(s.ctx, "life").
		Return([]*catalog.SpellRef{{ID: "bless", Name: "Bless"}}, nil)

	_, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "cleric"})
	s.Require().NoError(err)
	_, err = s.orc.SetSubclass(s.ctx, &sheetsvc.SetSubclassInput{SheetID: id, SubclassID: "life"})
	s.Require().NoError(err)

	out, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "cleric"})
	s.Require().NoError(err)
	s.Empty(out.Sheet.SubclassID)
	s.Empty(out.Sheet.Spells)
}

func (s *OrchestratorTestSuite) TestSetRace() {
	id := s.createSheet()
	s.setStandardScores(id)

	s.mockCatalog.EXPECT().
		GetRace(s.ctx, "dwarf").
		Return(&catalog.RaceData{ID: "dwarf", Name: "Dwarf", Speed: 25}, nil).
		Times(2)

	out, err := s.orc.SetRace(s.ctx, &sheetsvc.SetRaceInput{SheetID: id, RaceID: "dwarf"})
	s.Require().NoError(err)
	s.Equal("dwarf", out.Sheet.RaceID)
	s.Equal("Dwarf", out.Race.Name)
	s.Equal(int32(25), out.Sheet.Derived.Speed)
}

func (s *OrchestratorTestSuite) TestSetRace_CatalogUnavailable() {
	id := s.createSheet()
	s.setStandardScores(id)

	s.mockCatalog.EXPECT().
		GetRace(s.ctx, "dwarf").
		Return(nil, errors.Unavailable("api down")).
		Times(2)

	out, err := s.orc.SetRace(s.ctx, &sheetsvc.SetRaceInput{SheetID: id, RaceID: "dwarf"})
	s.Require().NoError(err)
	s.NotEmpty(out.Warnings)
	s.Equal("dwarf", out.Sheet.RaceID)
	s.Nil(out.Race)
	s.Equal(int32(30), out.Sheet.Derived.Speed, "default speed when race data is unavailable")
}

func (s *OrchestratorTestSuite) TestSetSubclass() {
	id := s.createSheet()

	s.mockCatalog.EXPECT().
		GetClass(s.ctx, "cleric").
		Return(&catalog.ClassData{ID: "cleric", HitDie: 8}, nil)
	s.mockCatalog.EXPECT().
		ListSubclassSpells(s.ctx, "life").
		Return([]*catalog.SpellRef{
			{ID: "bless", Name: "Bless"},
			{ID: "cure-wounds", Name: "Cure Wounds"},
		}, nil)

	_, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "cleric"})
	s.Require().NoError(err)

	out, err := s.orc.SetSubclass(s.ctx, &sheetsvc.SetSubclassInput{SheetID: id, SubclassID: "life"})
	s.Require().NoError(err)
	s.Equal("life", out.Sheet.SubclassID)
	s.Equal([]string{"bless", "cure-wounds"}, out.Sheet.Spells)
	s.Len(out.GrantedSpells, 2)
	s.Empty(out.Warnings)
}

func (s *OrchestratorTestSuite) TestSetSubclass_UnknownSpellList() {
	id := s.createSheet()

	s.mockCatalog.EXPECT().
		GetClass(s.ctx, "barbarian").
		Return(&catalog.ClassData{ID: "barbarian", HitDie: 12}, nil)
	s.mockCatalog.EXPECT().
		ListSubclassSpells(s.ctx, "berserker").
		Return(nil, errors.NotFoundf("subclass berserker not found"))

	_, err := s.orc.SetClass(s.ctx, &sheetsvc.SetClassInput{SheetID: id, ClassID: "barbarian"})
	s.Require().NoError(err)

	// Missing spell data is not an error: the subclass sticks with no spells.
	out, err := s.orc.SetSubclass(s.ctx, &sheetsvc.SetSubclassInput{SheetID: id, SubclassID: "berserker"})
	s.Require().NoError(err)
	s.Equal("berserker", out.Sheet.SubclassID)
	s.Empty(out.Sheet.Spells)
	s.NotEmpty(out.Warnings)
}

func (s *OrchestratorTestSuite) TestSetSubclass_RequiresClass() {
	id := s.createSheet()

	_, err := s.orc.SetSubclass(s.ctx, &sheetsvc.SetSubclassInput{SheetID: id, SubclassID: "life"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestSetSkills() {
	id := s.createSheet()
	s.setStandardScores(id)

	out, err := s.orc.SetSkills(s.ctx, &sheetsvc.SetSkillsInput{
		SheetID:   id,
		Skills:    []string{dnd5e.SkillAthletics, dnd5e.SkillPerception},
		Expertise: []string{dnd5e.SkillAthletics},
	})
	s.Require().NoError(err)

	derived := out.Sheet.Derived
	s.Require().NotNil(derived)
	s.Equal(int32(6), derived.Skills[dnd5e.SkillAthletics], "+2 STR, doubled proficiency")
	s.Equal(int32(2), derived.Skills[dnd5e.SkillPerception], "+0 WIS, +2 proficiency")
	s.Equal(int32(12), derived.PassivePerception)
}

func (s *OrchestratorTestSuite) TestSetSkills_Validation() {
	id := s.createSheet()

	_, err := s.orc.SetSkills(s.ctx, &sheetsvc.SetSkillsInput{
		SheetID: id,
		Skills:  []string{"Underwater Basket Weaving"},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orc.SetSkills(s.ctx, &sheetsvc.SetSkillsInput{
		SheetID:   id,
		Skills:    []string{dnd5e.SkillAthletics},
		Expertise: []string{dnd5e.SkillPerception},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSetSpells() {
	id := s.createSheet()

	s.mockCatalog.EXPECT().
		GetSpell(s.ctx, "fireball").
		Return(&catalog.SpellData{ID: "fireball", Name: "Fireball", Level: 3}, nil)

	out, err := s.orc.SetSpells(s.ctx, &sheetsvc.SetSpellsInput{SheetID: id, SpellIDs: []string{"fireball"}})
	s.Require().NoError(err)
	s.Equal([]string{"fireball"}, out.Sheet.Spells)
}

func (s *OrchestratorTestSuite) TestSetSpells_Unknown() {
	id := s.createSheet()

	s.mockCatalog.EXPECT().
		GetSpell(s.ctx, "summon-bigger-fish").
		Return(nil, errors.NotFoundf("spell not found"))

	_, err := s.orc.SetSpells(s.ctx, &sheetsvc.SetSpellsInput{SheetID: id, SpellIDs: []string{"summon-bigger-fish"}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestExportSheet() {
	id := s.createSheet()
	s.setStandardScores(id)

	_, err := s.orc.SetLevel(s.ctx, &sheetsvc.SetLevelInput{SheetID: id, Level: 5})
	s.Require().NoError(err)

	out, err := s.orc.ExportSheet(s.ctx, &sheetsvc.ExportSheetInput{SheetID: id, Indent: true})
	s.Require().NoError(err)

	var doc map[string]any
	s.Require().NoError(json.Unmarshal(out.JSON, &doc))
	s.Equal("sheet_1", doc["id"])
	s.Equal("Tordek", doc["name"])

	derived, ok := doc["derived"].(map[string]any)
	s.Require().True(ok, "export includes derived stats")
	s.Equal(float64(3), derived["proficiency_bonus"])
	s.Equal(float64(12), derived["armor_class"])
}

func (s *OrchestratorTestSuite) TestDeleteSheet() {
	id := s.createSheet()

	_, err := s.orc.DeleteSheet(s.ctx, &sheetsvc.DeleteSheetInput{SheetID: id})
	s.Require().NoError(err)

	_, err = s.orc.GetSheet(s.ctx, &sheetsvc.GetSheetInput{SheetID: id})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListSheets() {
	s.createSheet()
	s.createSheet()

	out, err := s.orc.ListSheets(s.ctx, &sheetsvc.ListSheetsInput{})
	s.Require().NoError(err)
	s.Len(out.Sheets, 2)
}

func (s *OrchestratorTestSuite) TestCatalogPassThroughs() {
	s.mockCatalog.EXPECT().
		ListRaces(s.ctx).
		Return([]*catalog.RaceData{{ID: "dwarf"}, {ID: "elf"}}, nil)
	s.mockCatalog.EXPECT().
		ListClasses(s.ctx).
		Return([]*catalog.ClassData{{ID: "wizard"}}, nil)
	s.mockCatalog.EXPECT().
		ListSubclasses(s.ctx, "wizard").
		Return([]*catalog.SubclassData{{ID: "evocation", Name: "School of Evocation"}}, nil)
	s.mockCatalog.EXPECT().
		ListClassSpells(s.ctx, "wizard").
		Return([]*catalog.SpellRef{{ID: "fireball", Name: "Fireball"}}, nil)

	races, err := s.orc.ListRaces(s.ctx, &sheetsvc.ListRacesInput{})
	s.Require().NoError(err)
	s.Len(races.Races, 2)

	classes, err := s.orc.ListClasses(s.ctx, &sheetsvc.ListClassesInput{})
	s.Require().NoError(err)
	s.Len(classes.Classes, 1)

	subclasses, err := s.orc.ListSubclasses(s.ctx, &sheetsvc.ListSubclassesInput{ClassID: "wizard"})
	s.Require().NoError(err)
	s.Len(subclasses.Subclasses, 1)

	spells, err := s.orc.ListSpells(s.ctx, &sheetsvc.ListSpellsInput{ClassID: "wizard"})
	s.Require().NoError(err)
	s.Len(spells.Spells, 1)
}

func (s *OrchestratorTestSuite) TestGetSpell() {
	s.mockCatalog.EXPECT().
		GetSpell(s.ctx, "fireball").
		Return(&catalog.SpellData{
			ID:     "fireball",
			Name:   "Fireball",
			Level:  3,
			School: "Evocation",
			Range:  "150 feet",
		}, nil)

	out, err := s.orc.GetSpell(s.ctx, &sheetsvc.GetSpellInput{SpellID: "fireball"})
	s.Require().NoError(err)
	s.Equal("Fireball", out.Spell.Name)
	s.Equal(int32(3), out.Spell.Level)

	_, err = s.orc.GetSpell(s.ctx, &sheetsvc.GetSpellInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
