package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a mod from the library",
	Long: `Delete a mod's files from the installation. The mod is first copied to
a timestamped backup folder, so a single deletion can always be undone by
hand.

Examples:
  hymn remove com.example:Foo`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	backup, err := service.RemoveMod(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("removing mod: %w", err)
	}

	fmt.Printf("Removed %s (backup: %s)\n", args[0], backup)
	return nil
}
