package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

var listRacesCmd = &cobra.Command{
	Use:   "list-races",
	Short: "List all available races",
	Long:  `List all available D&D 5e races with their speed, size, ability bonuses and traits.`,
	RunE:  runListRaces,
}

func runListRaces(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := svc.ListRaces(ctx, &sheetsvc.ListRacesInput{})
	if err != nil {
		return fmt.Errorf("failed to list races: %w", err)
	}

	fmt.Printf("Found %d races:\n\n", len(resp.Races))

	for _, race := range resp.Races {
		fmt.Printf("🎭 %s (ID: %s)\n", race.Name, race.ID)
		fmt.Printf("   Speed: %d ft\n", race.Speed)
		fmt.Printf("   Size: %s\n", race.Size)

		if len(race.AbilityBonuses) > 0 {
			fmt.Printf("   Ability Bonuses:\n")
			for ability, bonus := range race.AbilityBonuses {
				fmt.Printf("     - %s: %+d\n", ability, bonus)
			}
		}

		if len(race.Traits) > 0 {
			fmt.Printf("   Traits:\n")
			for _, trait := range race.Traits {
				fmt.Printf("     - %s\n", trait)
			}
		}

		fmt.Println()
	}

	return nil
}
