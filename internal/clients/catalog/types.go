package catalog

// RaceData is a race reference record from the catalog.
type RaceData struct {
	ID             string
	Name           string
	Size           string
	Speed          int32
	AbilityBonuses map[string]int32
	Traits         []string
}

// ClassData is a class reference record from the catalog.
type ClassData struct {
	ID               string
	Name             string
	HitDie           int32
	SavingThrows     []string
	SkillChoiceCount int32
	AvailableSkills  []string
}

// SubclassData is a subclass reference record from the catalog.
type SubclassData struct {
	ID   string
	Name string
}

// SpellRef is a lightweight spell reference (ID and name only), enough to
// populate a picker without fetching every spell's details.
type SpellRef struct {
	ID   string
	Name string
}

// SpellData is a full spell record from the catalog.
type SpellData struct {
	ID            string
	Name          string
	Level         int32
	School        string
	CastingTime   string
	Range         string
	Duration      string
	Ritual        bool
	Concentration bool
	Classes       []string
}
