package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileMods []string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Manage named profiles: persisted sets of mods that should be enabled
together. The readonly "default" profile always mirrors the library's
physical state and cannot be edited.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE:  runProfileList,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Long: `Create a new profile. Mods can be listed upfront with --mods or added
later with 'hymn profile set'.

Examples:
  hymn profile create "Survival Plus"
  hymn profile create minimal --mods com.example:Foo,Bar`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a profile's mod set",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Replace a profile's mod set",
	Long: `Replace the enabled-mod set of an existing profile.

The default profile is readonly and cannot be edited.

Examples:
  hymn profile set minimal --mods com.example:Foo,Bar`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSet,
}

var profileUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Mark a profile active without applying it",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileUse,
}

var profileApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply a profile to the installation",
	Long: `Reconcile the installation against a profile: move every mod whose
placement disagrees with the profile between the enabled root and the
disabled mirror, and rewrite the active save-world's config to match.

Mods whose destination already holds a same-named file are skipped and
reported, not overwritten.

Examples:
  hymn profile apply survival-plus`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileApply,
}

func init() {
	profileCreateCmd.Flags().StringSliceVar(&profileMods, "mods", nil, "mod ids to enable (comma separated)")
	profileSetCmd.Flags().StringSliceVar(&profileMods, "mods", nil, "mod ids to enable (comma separated)")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileApplyCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profiles, err := service.Profiles()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(profiles)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet. Run 'hymn list' once to seed the default profile.")
		return nil
	}

	active, err := service.ActiveProfile()
	if err != nil {
		return fmt.Errorf("resolving active profile: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODS\tREADONLY\tACTIVE")
	fmt.Fprintln(w, "--\t----\t----\t--------\t------")
	for _, p := range profiles {
		readonly := ""
		if p.Readonly {
			readonly = "yes"
		}
		isActive := ""
		if p.ID == active.ID {
			isActive = colorGreen("*")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.Name, len(p.EnabledMods), readonly, isActive)
	}
	w.Flush()

	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.CreateProfile(args[0], profileMods)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	fmt.Printf("Created profile %s (%d mods)\n", profile.ID, len(profile.EnabledMods))
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.Profile(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(profile)
	}

	fmt.Printf("%s (%s)\n", profile.Name, profile.ID)
	if profile.Readonly {
		fmt.Println("readonly: mirrors the library's physical state")
	}
	if len(profile.EnabledMods) == 0 {
		fmt.Println("No mods enabled.")
		return nil
	}
	fmt.Println(strings.Join(profile.EnabledMods, "\n"))
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.Profile(args[0])
	if err != nil {
		return err
	}

	profile.EnabledMods = profileMods
	if err := service.UpdateProfile(profile); err != nil {
		return err
	}

	fmt.Printf("Updated profile %s (%d mods)\n", profile.ID, len(profile.EnabledMods))
	return nil
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.SetActiveProfile(args[0]); err != nil {
		return err
	}

	fmt.Printf("Active profile: %s\n", args[0])
	return nil
}

func runProfileApply(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.Apply(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("applying profile: %w", err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Printf("Applied %s: %d mod(s) moved\n", result.ProfileID, result.Moved)
	for _, entry := range result.Skipped {
		fmt.Printf("%s %s left in place: destination already exists\n", colorYellow("skipped"), entry.ID)
	}
	return nil
}
