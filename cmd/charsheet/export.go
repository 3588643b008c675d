package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

var (
	exportSheetID string
	exportOutFile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored sheet as JSON",
	Long: `Export a stored character sheet as JSON, derived stats included.
Useful with --redis-addr, where sheets outlive the session that built them.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSheetID, "id", "", "Sheet ID to export")
	exportCmd.Flags().StringVarP(&exportOutFile, "out", "o", "", "Write to a file instead of stdout")
	_ = exportCmd.MarkFlagRequired("id")
}

func runExport(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := svc.ExportSheet(ctx, &sheetsvc.ExportSheetInput{SheetID: exportSheetID, Indent: true})
	if err != nil {
		return fmt.Errorf("failed to export sheet: %w", err)
	}

	if exportOutFile == "" {
		fmt.Println(string(resp.JSON))
		return nil
	}

	if err := os.WriteFile(exportOutFile, resp.JSON, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutFile, err)
	}
	fmt.Printf("Wrote %s\n", exportOutFile)

	return nil
}
