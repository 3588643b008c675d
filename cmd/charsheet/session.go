package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greyweave/charsheet/internal/clients/catalog"
	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Build a character sheet interactively",
	Long: `Start an interactive session that builds a single character sheet.
Type "help" inside the session for the available commands.`,
	RunE: runSession,
}

const sessionHelp = `Commands:
  races                      list races
  classes                    list classes
  subclasses                 list subclasses for the chosen class
  spells                     list spells for the chosen class
  spell <id>                 show one spell's details (e.g. spell fireball)
  name <text>                set the character's name
  align <alignment>          set alignment (e.g. "Chaotic Good")
  level <1-20>               set level
  race <id>                  set race (e.g. dwarf)
  class <id>                 set class (e.g. wizard)
  subclass <id>              set subclass (e.g. evocation)
  scores <str> <dex> <con> <int> <wis> <cha>
                             set ability scores
  skills <skill, skill, ...> set proficient skills
  expertise <skill, ...>     mark proficient skills as expertise
  pick-spells <id, id, ...>  set chosen spells
  show                       print the sheet with derived stats
  export [file]              print (or write) the sheet as JSON
  quit                       end the session`

func runSession(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	created, err := svc.CreateSheet(ctx, &sheetsvc.CreateSheetInput{})
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	sheetID := created.Sheet.ID

	fmt.Printf("Started sheet %s. Type \"help\" for commands.\n", sheetID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest := splitCommand(line)
		if verb == "quit" || verb == "exit" {
			break
		}

		if err := runSessionCommand(ctx, svc, sheetID, verb, rest); err != nil {
			fmt.Printf("✗ %v\n", err)
		}
	}

	return scanner.Err()
}

func splitCommand(line string) (verb, rest string) {
	parts := strings.SplitN(line, " ", 2)
	verb = strings.ToLower(parts[0])
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}
	return verb, rest
}

func runSessionCommand(ctx context.Context, svc sheetsvc.Service, sheetID, verb, rest string) error {
	switch verb {
	case "help":
		fmt.Println(sessionHelp)
		return nil

	case "races":
		resp, err := svc.ListRaces(ctx, &sheetsvc.ListRacesInput{})
		if err != nil {
			return err
		}
		for _, race := range resp.Races {
			fmt.Printf("  %-20s %s (speed %d)\n", race.ID, race.Name, race.Speed)
		}
		return nil

	case "classes":
		resp, err := svc.ListClasses(ctx, &sheetsvc.ListClassesInput{})
		if err != nil {
			return err
		}
		for _, class := range resp.Classes {
			fmt.Printf("  %-20s %s (d%d)\n", class.ID, class.Name, class.HitDie)
		}
		return nil

	case "subclasses":
		classID, err := currentClassID(ctx, svc, sheetID)
		if err != nil {
			return err
		}
		resp, err := svc.ListSubclasses(ctx, &sheetsvc.ListSubclassesInput{ClassID: classID})
		if err != nil {
			return err
		}
		for _, sub := range resp.Subclasses {
			fmt.Printf("  %-20s %s\n", sub.ID, sub.Name)
		}
		return nil

	case "spells":
		classID, err := currentClassID(ctx, svc, sheetID)
		if err != nil {
			return err
		}
		resp, err := svc.ListSpells(ctx, &sheetsvc.ListSpellsInput{ClassID: classID})
		if err != nil {
			return err
		}
		for _, spell := range resp.Spells {
			fmt.Printf("  %-25s %s\n", spell.ID, spell.Name)
		}
		return nil

	case "spell":
		if rest == "" {
			return fmt.Errorf("usage: spell <id>")
		}
		resp, err := svc.GetSpell(ctx, &sheetsvc.GetSpellInput{SpellID: rest})
		if err != nil {
			return err
		}
		printSpell(resp.Spell)
		return nil

	case "name":
		out, err := svc.SetName(ctx, &sheetsvc.SetNameInput{SheetID: sheetID, Name: rest})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Name set to %s.\n", out.Sheet.Name)
		return nil

	case "align":
		out, err := svc.SetAlignment(ctx, &sheetsvc.SetAlignmentInput{SheetID: sheetID, Alignment: rest})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Alignment set to %s.\n", out.Sheet.Alignment)
		return nil

	case "level":
		level, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("level must be a number: %w", err)
		}
		out, err := svc.SetLevel(ctx, &sheetsvc.SetLevelInput{SheetID: sheetID, Level: int32(level)})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Level set to %d.\n", out.Sheet.Level)
		return nil

	case "race":
		out, err := svc.SetRace(ctx, &sheetsvc.SetRaceInput{SheetID: sheetID, RaceID: rest})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		if out.Race != nil {
			fmt.Printf("Race set to %s (speed %d).\n", out.Race.Name, out.Race.Speed)
		} else {
			fmt.Printf("Race set to %s.\n", out.Sheet.RaceID)
		}
		return nil

	case "class":
		out, err := svc.SetClass(ctx, &sheetsvc.SetClassInput{SheetID: sheetID, ClassID: rest})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		if out.Class != nil {
			fmt.Printf("Class set to %s (d%d). Saving throws: %s.\n",
				out.Class.Name, out.Class.HitDie, strings.Join(out.Sheet.SavingThrowProfs, ", "))
		} else {
			fmt.Printf("Class set to %s.\n", out.Sheet.ClassID)
		}
		return nil

	case "subclass":
		out, err := svc.SetSubclass(ctx, &sheetsvc.SetSubclassInput{SheetID: sheetID, SubclassID: rest})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Subclass set to %s with %d spells.\n", out.Sheet.SubclassID, len(out.GrantedSpells))
		return nil

	case "scores":
		scores, err := parseScores(rest)
		if err != nil {
			return err
		}
		out, err := svc.SetAbilityScores(ctx, &sheetsvc.SetAbilityScoresInput{SheetID: sheetID, AbilityScores: scores})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Println("Ability scores set.")
		return nil

	case "skills":
		out, err := svc.SetSkills(ctx, &sheetsvc.SetSkillsInput{SheetID: sheetID, Skills: splitList(rest)})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Skills set: %s.\n", strings.Join(out.Sheet.Skills, ", "))
		return nil

	case "expertise":
		current, err := svc.GetSheet(ctx, &sheetsvc.GetSheetInput{SheetID: sheetID})
		if err != nil {
			return err
		}
		out, err := svc.SetSkills(ctx, &sheetsvc.SetSkillsInput{
			SheetID:   sheetID,
			Skills:    current.Sheet.Skills,
			Expertise: splitList(rest),
		})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Expertise set: %s.\n", strings.Join(out.Sheet.Expertise, ", "))
		return nil

	case "pick-spells":
		out, err := svc.SetSpells(ctx, &sheetsvc.SetSpellsInput{SheetID: sheetID, SpellIDs: splitList(rest)})
		if err != nil {
			return err
		}
		printWarnings(out.Warnings)
		fmt.Printf("Spells set: %s.\n", strings.Join(out.Sheet.Spells, ", "))
		return nil

	case "show":
		resp, err := svc.GetSheet(ctx, &sheetsvc.GetSheetInput{SheetID: sheetID})
		if err != nil {
			return err
		}
		printSheet(resp.Sheet)
		return nil

	case "export":
		resp, err := svc.ExportSheet(ctx, &sheetsvc.ExportSheetInput{SheetID: sheetID, Indent: true})
		if err != nil {
			return err
		}
		if rest == "" {
			fmt.Println(string(resp.JSON))
			return nil
		}
		if err := os.WriteFile(rest, resp.JSON, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rest, err)
		}
		fmt.Printf("Wrote %s\n", rest)
		return nil

	default:
		return fmt.Errorf("unknown command %q (try \"help\")", verb)
	}
}

func currentClassID(ctx context.Context, svc sheetsvc.Service, sheetID string) (string, error) {
	resp, err := svc.GetSheet(ctx, &sheetsvc.GetSheetInput{SheetID: sheetID})
	if err != nil {
		return "", err
	}
	if resp.Sheet.ClassID == "" {
		return "", fmt.Errorf("set a class first")
	}
	return resp.Sheet.ClassID, nil
}

// parseScores reads six scores in STR DEX CON INT WIS CHA order.
func parseScores(rest string) (*dnd5e.AbilityScores, error) {
	fields := strings.Fields(rest)
	if len(fields) != 6 {
		return nil, fmt.Errorf("expected 6 scores (STR DEX CON INT WIS CHA), got %d", len(fields))
	}

	values := make([]int32, 6)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("score %q is not a number", field)
		}
		values[i] = int32(n)
	}

	return &dnd5e.AbilityScores{
		Strength:     values[0],
		Dexterity:    values[1],
		Constitution: values[2],
		Intelligence: values[3],
		Wisdom:       values[4],
		Charisma:     values[5],
	}, nil
}

func splitList(rest string) []string {
	var out []string
	for _, item := range strings.Split(rest, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func printSheet(s *dnd5e.CharacterSheet) {
	fmt.Printf("📜 %s (level %d)\n", orUnset(s.Name), s.Level)
	fmt.Printf("   Race: %s  Class: %s  Subclass: %s\n",
		orUnset(s.RaceID), orUnset(s.ClassID), orUnset(s.SubclassID))
	if s.Alignment != "" {
		fmt.Printf("   Alignment: %s\n", s.Alignment)
	}
	if len(s.Spells) > 0 {
		fmt.Printf("   Spells: %s\n", strings.Join(s.Spells, ", "))
	}

	if s.AbilityScores == nil {
		fmt.Println("   Ability scores not set; derived stats unavailable.")
		return
	}
	if s.Derived == nil {
		return
	}

	d := s.Derived
	fmt.Printf("   AC %d  HP %d  Speed %d  Initiative %+d  Passive Perception %d\n",
		d.ArmorClass, d.HitPoints, d.Speed, d.Initiative, d.PassivePerception)
	fmt.Printf("   Proficiency Bonus: %+d\n", d.ProficiencyBonus)

	for _, ability := range dnd5e.Abilities {
		marker := " "
		if s.HasSavingThrowProf(ability) {
			marker = "*"
		}
		fmt.Printf("   %-13s %2d (%+d)  save %+d%s\n",
			ability, s.AbilityScores.Get(ability), d.Modifiers[ability], d.SavingThrows[ability], marker)
	}

	if len(s.Skills) > 0 {
		fmt.Println("   Skills:")
		for _, skill := range s.Skills {
			suffix := ""
			if s.HasExpertise(skill) {
				suffix = " (expertise)"
			}
			fmt.Printf("     %-17s %+d%s\n", skill, d.Skills[skill], suffix)
		}
	}
}

func printSpell(spell *catalog.SpellData) {
	levelLabel := fmt.Sprintf("level %d", spell.Level)
	if spell.Level == 0 {
		levelLabel = "cantrip"
	}
	fmt.Printf("✨ %s (%s %s)\n", spell.Name, spell.School, levelLabel)
	fmt.Printf("   Casting Time: %s\n", spell.CastingTime)
	fmt.Printf("   Range: %s\n", spell.Range)
	fmt.Printf("   Duration: %s\n", spell.Duration)
	if spell.Ritual {
		fmt.Println("   Ritual")
	}
	if spell.Concentration {
		fmt.Println("   Concentration")
	}
	if len(spell.Classes) > 0 {
		fmt.Printf("   Classes: %s\n", strings.Join(spell.Classes, ", "))
	}
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}
