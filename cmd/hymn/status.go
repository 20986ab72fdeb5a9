package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isdelr/hymn-sub000/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long: `Show the installation path, the active profile, and mod counts.

Examples:
  hymn status`,
	RunE: runStatus,
}

var worldCmd = &cobra.Command{
	Use:   "world <id>",
	Short: "Pin the active save-world",
	Long: `Pin which save-world's config is consulted during scans. Without a
pinned world, the most recently played world is used.

Examples:
  hymn world MyWorld`,
	Args: cobra.ExactArgs(1),
	RunE: runWorld,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(worldCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.Scan(cmd.Context(), worldID)
	if err != nil {
		return fmt.Errorf("scanning library: %w", err)
	}

	enabled := 0
	for _, entry := range result.Entries {
		if entry.Enabled {
			enabled++
		}
	}

	var activeID string
	active, err := service.ActiveProfile()
	if err == nil {
		activeID = active.ID
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"installPath":   result.InstallPath,
			"activeProfile": activeID,
			"entries":       len(result.Entries),
			"enabled":       enabled,
			"hasErrors":     result.Validation.HasErrors,
			"hasWarnings":   result.Validation.HasWarnings,
		})
	}

	if result.InstallPath == "" {
		fmt.Println("No installation configured.")
		fmt.Println("\nSet one with --install or in config.yaml.")
		return nil
	}

	fmt.Printf("Installation: %s\n", result.InstallPath)
	if activeID != "" {
		fmt.Printf("Active profile: %s\n", activeID)
	}
	fmt.Printf("Mods: %d (%d enabled)\n", len(result.Entries), enabled)
	if result.Validation.HasErrors {
		fmt.Println(colorRed("Dependency errors found; run 'hymn validate'."))
	} else if result.Validation.HasWarnings {
		fmt.Println(colorYellow("Optional dependencies missing; run 'hymn validate'."))
	}

	return nil
}

func runWorld(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.SetActiveWorld(args[0]); err != nil {
		return err
	}

	fmt.Printf("Active world: %s\n", args[0])
	return nil
}
