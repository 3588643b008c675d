package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

var withSubclasses bool

var listClassesCmd = &cobra.Command{
	Use:   "list-classes",
	Short: "List all available classes",
	Long:  `List all available D&D 5e classes with their hit die, saving throws and skill choices.`,
	RunE:  runListClasses,
}

func init() {
	listClassesCmd.Flags().BoolVar(&withSubclasses, "subclasses", false, "Also list each class's subclasses")
}

func runListClasses(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := svc.ListClasses(ctx, &sheetsvc.ListClassesInput{})
	if err != nil {
		return fmt.Errorf("failed to list classes: %w", err)
	}

	fmt.Printf("Found %d classes:\n\n", len(resp.Classes))

	for _, class := range resp.Classes {
		fmt.Printf("⚔️  %s (ID: %s)\n", class.Name, class.ID)
		fmt.Printf("   Hit Die: d%d\n", class.HitDie)
		fmt.Printf("   Saving Throws: %s\n", strings.Join(class.SavingThrows, ", "))
		if class.SkillChoiceCount > 0 {
			fmt.Printf("   Skills: choose %d from %s\n",
				class.SkillChoiceCount, strings.Join(class.AvailableSkills, ", "))
		}

		if withSubclasses {
			subs, err := svc.ListSubclasses(ctx, &sheetsvc.ListSubclassesInput{ClassID: class.ID})
			if err != nil {
				fmt.Printf("   Subclasses: unavailable (%v)\n", err)
			} else {
				for _, sub := range subs.Subclasses {
					fmt.Printf("   Subclass: %s (ID: %s)\n", sub.Name, sub.ID)
				}
			}
		}

		fmt.Println()
	}

	return nil
}
