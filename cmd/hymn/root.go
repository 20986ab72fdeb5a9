package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/isdelr/hymn-sub000/internal/core"
)

var (
	version = "0.3.0"

	// Global flags
	configDir   string
	dataDir     string
	installPath string
	worldID     string
	verbose     bool
	jsonOutput  bool
	noColor     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hymn",
	Short: "Hymn - manage a local library of game mods, packs, and plugins",
	Long: `hymn scans the mod library of a local game installation, validates
dependencies between mods, and switches between named profiles by moving
mod files in and out of the disabled mirror and keeping each save-world's
config in agreement.

Use subcommands for operations. Run 'hymn --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: "+filepath.Join("~", ".config", "hymn")+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: "+filepath.Join("~", ".local", "share", "hymn")+")")
	rootCmd.PersistentFlags().StringVar(&installPath, "install", "", "installation root (overrides config and stored setting)")
	rootCmd.PersistentFlags().StringVarP(&worldID, "world", "w", "", "save-world to resolve enablement against (default: most recently played)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (list, validate, status, profile list)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
// When --json is set and an error occurs, prints {"error":"..."} to stdout
// before exiting.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfgDir := configDir
	if cfgDir == "" {
		cfgDir = filepath.Join(xdg.ConfigHome, "hymn")
	}
	datDir := dataDir
	if datDir == "" {
		datDir = filepath.Join(xdg.DataHome, "hymn")
	}

	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(datDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	svc, err := core.NewService(core.ServiceConfig{
		ConfigDir: cfgDir,
		DataDir:   datDir,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	if installPath != "" {
		if err := svc.SetInstallPath(installPath); err != nil {
			svc.Close()
			return nil, err
		}
	}

	return svc, nil
}

// colorEnabled returns true if colored output should be used (respects
// --no-color and the NO_COLOR env var per https://no-color.org).
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// colorGreen returns s with green ANSI when color is enabled, otherwise s.
func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

// colorRed returns s with red ANSI when color is enabled, otherwise s.
func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

// colorYellow returns s with yellow ANSI when color is enabled, otherwise s.
func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}
