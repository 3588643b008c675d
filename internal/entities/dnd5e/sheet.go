// Package dnd5e implements the D&D 5e entities.
package dnd5e

// AbilityScores holds the six raw ability scores.
type AbilityScores struct {
	Strength     int32 `json:"strength"`
	Dexterity    int32 `json:"dexterity"`
	Constitution int32 `json:"constitution"`
	Intelligence int32 `json:"intelligence"`
	Wisdom       int32 `json:"wisdom"`
	Charisma     int32 `json:"charisma"`
}

// Get returns the score for an ability key.
func (a AbilityScores) Get(ability string) int32 {
	switch ability {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// CharacterSheet holds the user's selections for a single character.
// NOTE: This is a data-only struct. All calculations (modifiers, saves,
// baseline AC/HP/speed) are done by the engine, not here, and land in
// Derived.
type CharacterSheet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Alignment  string `json:"alignment,omitempty"`
	Level      int32  `json:"level"`
	RaceID     string `json:"race_id,omitempty"`
	ClassID    string `json:"class_id,omitempty"`
	SubclassID string `json:"subclass_id,omitempty"`

	AbilityScores *AbilityScores `json:"ability_scores,omitempty"`

	// SavingThrowProfs holds ability keys the character is proficient in,
	// defaulted from the class and overridable by the user.
	SavingThrowProfs []string `json:"saving_throw_profs,omitempty"`
	// Skills holds proficient skill names; Expertise is a subset of Skills.
	Skills    []string `json:"skills,omitempty"`
	Expertise []string `json:"expertise,omitempty"`
	// Spells holds chosen spell catalog IDs in selection order.
	Spells []string `json:"spells,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`

	// Derived is recomputed wholesale from the fields above on every
	// change. It carries no state of its own.
	Derived *DerivedStats `json:"derived,omitempty"`
}

// HasSkill reports whether the sheet lists the skill as proficient.
func (s *CharacterSheet) HasSkill(skill string) bool {
	return contains(s.Skills, skill)
}

// HasExpertise reports whether the sheet lists the skill as expertise.
func (s *CharacterSheet) HasExpertise(skill string) bool {
	return contains(s.Expertise, skill)
}

// HasSavingThrowProf reports whether the sheet is proficient in the
// ability's saving throw.
func (s *CharacterSheet) HasSavingThrowProf(ability string) bool {
	return contains(s.SavingThrowProfs, ability)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// DerivedStats holds every number computed from a CharacterSheet plus the
// static rule tables. It has no identity beyond the sheet it derives from
// and is safe to discard and recompute.
type DerivedStats struct {
	Modifiers         map[string]int32 `json:"modifiers"`
	ProficiencyBonus  int32            `json:"proficiency_bonus"`
	SavingThrows      map[string]int32 `json:"saving_throws"`
	Skills            map[string]int32 `json:"skills"`
	PassivePerception int32            `json:"passive_perception"`
	Initiative        int32            `json:"initiative"`
	ArmorClass        int32            `json:"armor_class"`
	HitPoints         int32            `json:"hit_points"`
	Speed             int32            `json:"speed"`
}
