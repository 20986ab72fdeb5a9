package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/isdelr/hymn-sub000/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered mods",
	Long: `Scan the installation and list every discovered mod, pack, and plugin
with its resolved enabled state.

Examples:
  hymn list
  hymn list --world MyWorld
  hymn list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.Scan(cmd.Context(), worldID)
	if err != nil {
		return fmt.Errorf("scanning library: %w", err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(result.Entries)
	}

	if result.InstallPath == "" {
		fmt.Println("No installation configured. Set one with --install or in config.yaml.")
		return nil
	}

	if len(result.Entries) == 0 {
		fmt.Println("No mods found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION\tTYPE\tLOCATION\tSIZE\tENABLED")
	fmt.Fprintln(w, "--\t----\t-------\t----\t--------\t----\t-------")

	for _, entry := range result.Entries {
		enabled := colorRed("no")
		if entry.Enabled {
			enabled = colorGreen("yes")
		}
		size := "?"
		if entry.Size != domain.SizeUnknown {
			size = humanize.Bytes(uint64(entry.Size))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.ID,
			truncate(entry.Name, 40),
			entry.Version,
			entry.Type,
			entry.Location,
			size,
			enabled,
		)
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nTotal: %d entries\n", len(result.Entries))
	}

	return nil
}

// truncate shortens s to max runes, appending an ellipsis when it cuts.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
