package catalog

import (
	"strings"

	apientities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/greyweave/charsheet/internal/entities/dnd5e"
)

// abilityNamesByKey maps the API's short ability keys to sheet ability
// names.
var abilityNamesByKey = map[string]string{
	"str": dnd5e.AbilityStrength,
	"dex": dnd5e.AbilityDexterity,
	"con": dnd5e.AbilityConstitution,
	"int": dnd5e.AbilityIntelligence,
	"wis": dnd5e.AbilityWisdom,
	"cha": dnd5e.AbilityCharisma,
}

func convertRace(race *apientities.Race) *RaceData {
	if race == nil {
		return nil
	}

	bonuses := make(map[string]int32)
	for _, bonus := range race.AbilityBonuses {
		if bonus.AbilityScore == nil {
			continue
		}
		if name, ok := abilityNamesByKey[bonus.AbilityScore.Key]; ok {
			bonuses[name] = int32(bonus.Bonus) // nolint:gosec // racial bonuses are single digits
		}
	}

	traits := make([]string, len(race.Traits))
	for i, trait := range race.Traits {
		traits[i] = trait.Name
	}

	return &RaceData{
		ID:             race.Key,
		Name:           race.Name,
		Size:           race.Size,
		Speed:          int32(race.Speed), // nolint:gosec // speeds are small
		AbilityBonuses: bonuses,
		Traits:         traits,
	}
}

func convertClass(class *apientities.Class) *ClassData {
	if class == nil {
		return nil
	}

	saves := make([]string, 0, len(class.SavingThrows))
	for _, st := range class.SavingThrows {
		if st == nil {
			continue
		}
		if name, ok := abilityNamesByKey[st.Key]; ok {
			saves = append(saves, name)
		}
	}

	// Skill options live inside the class's proficiency choices, with
	// "Skill: " prefixed to each option name.
	var skillCount int32
	var skills []string
	for _, choice := range class.ProficiencyChoices {
		if choice == nil || choice.ChoiceType != "skills" {
			continue
		}
		skillCount = int32(choice.ChoiceCount) // nolint:gosec // skill counts are single digits
		if choice.OptionList != nil {
			for _, option := range choice.OptionList.Options {
				if refOpt, ok := option.(*apientities.ReferenceOption); ok && refOpt.Reference != nil {
					skills = append(skills, strings.TrimPrefix(refOpt.Reference.Name, "Skill: "))
				}
			}
		}
		break
	}

	return &ClassData{
		ID:               class.Key,
		Name:             class.Name,
		HitDie:           int32(class.HitDie), // nolint:gosec // hit dice are 6-12
		SavingThrows:     saves,
		SkillChoiceCount: skillCount,
		AvailableSkills:  skills,
	}
}

func convertSpell(spell *apientities.Spell) *SpellData {
	if spell == nil {
		return nil
	}

	school := ""
	if spell.SpellSchool != nil {
		school = spell.SpellSchool.Name
	}

	classes := make([]string, 0, len(spell.SpellClasses))
	for _, class := range spell.SpellClasses {
		if class != nil {
			classes = append(classes, class.Name)
		}
	}

	return &SpellData{
		ID:            spell.Key,
		Name:          spell.Name,
		Level:         int32(spell.SpellLevel), // nolint:gosec // spell levels are 0-9
		School:        school,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
		Classes:       classes,
	}
}
