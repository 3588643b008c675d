package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

var spellClassID string

var listSpellsCmd = &cobra.Command{
	Use:   "list-spells",
	Short: "List the spells a class can cast",
	RunE:  runListSpells,
}

func init() {
	listSpellsCmd.Flags().StringVar(&spellClassID, "class", "", "Class ID to list spells for (e.g. wizard)")
	_ = listSpellsCmd.MarkFlagRequired("class")
}

func runListSpells(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := svc.ListSpells(ctx, &sheetsvc.ListSpellsInput{ClassID: spellClassID})
	if err != nil {
		return fmt.Errorf("failed to list spells: %w", err)
	}

	fmt.Printf("Found %d spells for %s:\n\n", len(resp.Spells), spellClassID)
	for _, spell := range resp.Spells {
		fmt.Printf("✨ %s (ID: %s)\n", spell.Name, spell.ID)
	}

	return nil
}
