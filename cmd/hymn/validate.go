package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/isdelr/hymn-sub000/internal/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check mod dependencies",
	Long: `Scan the installation and report dependency problems: enabled mods whose
dependencies are missing or disabled, and missing optional dependencies.

Exits non-zero when any hard dependency problem is found.

Examples:
  hymn validate
  hymn validate --json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.Scan(cmd.Context(), worldID)
	if err != nil {
		return fmt.Errorf("scanning library: %w", err)
	}
	validation := result.Validation

	if jsonOutput {
		if err := json.NewEncoder(os.Stdout).Encode(validation); err != nil {
			return err
		}
	} else if len(validation.Issues) == 0 {
		fmt.Println(colorGreen("All dependencies satisfied."))
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MOD\tISSUE\tDEPENDENCY\tDETAIL")
		fmt.Fprintln(w, "---\t-----\t----------\t------")
		for _, issue := range validation.Issues {
			kind := string(issue.Type)
			if issue.Type == domain.IssueOptionalMissing {
				kind = colorYellow(kind)
			} else {
				kind = colorRed(kind)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", issue.ModID, kind, issue.DependencyID, issue.Message)
		}
		w.Flush()
	}

	if validation.HasErrors {
		return fmt.Errorf("found %d dependency issue(s)", len(validation.Issues))
	}
	return nil
}
