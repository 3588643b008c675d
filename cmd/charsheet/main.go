// Package main is the entry point for the charsheet CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	catalogBaseURL string
	redisAddr      string
)

var rootCmd = &cobra.Command{
	Use:   "charsheet",
	Short: "D&D 5e character sheet builder",
	Long: `charsheet builds D&D 5e character sheets from the public reference API.
Pick a race, class and scores interactively, then export the finished
sheet (selections plus derived stats) as JSON.`,
}

func main() {
	// Missing .env is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogBaseURL, "api-url", "",
		"D&D 5e API base URL (defaults to the public API, env DND5E_API_URL)")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "",
		"Redis address for sheet storage (empty keeps sheets in memory, env REDIS_ADDR)")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(listRacesCmd)
	rootCmd.AddCommand(listClassesCmd)
	rootCmd.AddCommand(listSpellsCmd)
	rootCmd.AddCommand(exportCmd)
}
