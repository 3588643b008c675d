package dnd5e

// Ability score keys. Full names are the canonical form because they are
// what the JSON export and the catalog's ability bonus records use.
const (
	AbilityStrength     = "Strength"
	AbilityDexterity    = "Dexterity"
	AbilityConstitution = "Constitution"
	AbilityIntelligence = "Intelligence"
	AbilityWisdom       = "Wisdom"
	AbilityCharisma     = "Charisma"
)

// Abilities lists the six ability keys in standard sheet order.
var Abilities = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Skill names as they appear on the sheet.
const (
	SkillAcrobatics     = "Acrobatics"
	SkillAnimalHandling = "Animal Handling"
	SkillArcana         = "Arcana"
	SkillAthletics      = "Athletics"
	SkillDeception      = "Deception"
	SkillHistory        = "History"
	SkillInsight        = "Insight"
	SkillIntimidation   = "Intimidation"
	SkillInvestigation  = "Investigation"
	SkillMedicine       = "Medicine"
	SkillNature         = "Nature"
	SkillPerception     = "Perception"
	SkillPerformance    = "Performance"
	SkillPersuasion     = "Persuasion"
	SkillReligion       = "Religion"
	SkillSleightOfHand  = "Sleight of Hand"
	SkillStealth        = "Stealth"
	SkillSurvival       = "Survival"
)

// SkillAbilities maps each skill to its governing ability.
var SkillAbilities = map[string]string{
	SkillAcrobatics:     AbilityDexterity,
	SkillAnimalHandling: AbilityWisdom,
	SkillArcana:         AbilityIntelligence,
	SkillAthletics:      AbilityStrength,
	SkillDeception:      AbilityCharisma,
	SkillHistory:        AbilityIntelligence,
	SkillInsight:        AbilityWisdom,
	SkillIntimidation:   AbilityCharisma,
	SkillInvestigation:  AbilityIntelligence,
	SkillMedicine:       AbilityWisdom,
	SkillNature:         AbilityIntelligence,
	SkillPerception:     AbilityWisdom,
	SkillPerformance:    AbilityCharisma,
	SkillPersuasion:     AbilityCharisma,
	SkillReligion:       AbilityIntelligence,
	SkillSleightOfHand:  AbilityDexterity,
	SkillStealth:        AbilityDexterity,
	SkillSurvival:       AbilityWisdom,
}

// ClassSavingThrows maps class catalog IDs to their default saving throw
// proficiencies. Used as a fallback when the catalog is unavailable; the
// catalog record wins when present.
var ClassSavingThrows = map[string][2]string{
	"barbarian": {AbilityStrength, AbilityConstitution},
	"bard":      {AbilityDexterity, AbilityCharisma},
	"cleric":    {AbilityWisdom, AbilityCharisma},
	"druid":     {AbilityIntelligence, AbilityWisdom},
	"fighter":   {AbilityStrength, AbilityConstitution},
	"monk":      {AbilityStrength, AbilityDexterity},
	"paladin":   {AbilityWisdom, AbilityCharisma},
	"ranger":    {AbilityStrength, AbilityDexterity},
	"rogue":     {AbilityDexterity, AbilityIntelligence},
	"sorcerer":  {AbilityConstitution, AbilityCharisma},
	"warlock":   {AbilityWisdom, AbilityCharisma},
	"wizard":    {AbilityIntelligence, AbilityWisdom},
}

// Alignments lists the nine alignments in grid order.
var Alignments = []string{
	"Lawful Good", "Neutral Good", "Chaotic Good",
	"Lawful Neutral", "True Neutral", "Chaotic Neutral",
	"Lawful Evil", "Neutral Evil", "Chaotic Evil",
}

// Input domain bounds.
const (
	MinAbilityScore = 1
	MaxAbilityScore = 30
	MinLevel        = 1
	MaxLevel        = 20
)
