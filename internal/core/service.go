// Package core wires storage, scanning, and reconciliation into one
// long-lived service. All mutable process state (the active profile
// pointer, the default-profile seed flag, the install path override)
// lives behind the service's settings store instead of package globals.
package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/layout"
	"github.com/isdelr/hymn-sub000/internal/library"
	"github.com/isdelr/hymn-sub000/internal/reconcile"
	"github.com/isdelr/hymn-sub000/internal/storage/config"
	"github.com/isdelr/hymn-sub000/internal/storage/db"
	"github.com/isdelr/hymn-sub000/internal/world"
)

// Settings keys for the scalar runtime state.
const (
	settingInstallPath   = "install_path"
	settingActiveProfile = "active_profile"
	settingActiveWorld   = "active_world"
	settingDefaultSeeded = "default_profile_seeded"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string      // Directory for configuration files
	DataDir   string      // Directory for database and backups
	Fs        afero.Fs    // Filesystem for the mod library (nil: OS filesystem)
	Logger    *log.Logger // nil: the package-level default logger
}

// Service is the main orchestrator for library scanning, profile
// management, and reconciliation.
type Service struct {
	config  *config.Config
	db      *db.DB
	fs      afero.Fs
	log     *log.Logger
	dataDir string

	// applyMu serializes the whole rescan-diff-move-worldsync sequence;
	// two applies racing on the same mod would corrupt collision skipping.
	applyMu sync.Mutex
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig) (*Service, error) {
	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "hymn.db")
	database, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	fsys := cfg.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		config:  appConfig,
		db:      database,
		fs:      fsys,
		log:     logger,
		dataDir: cfg.DataDir,
	}, nil
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Config returns the loaded application config.
func (s *Service) Config() *config.Config {
	return s.config
}

// InstallPath resolves the active installation root: the settings
// override wins, then the config file. Empty means not configured.
func (s *Service) InstallPath() (string, error) {
	override, err := s.db.Setting(settingInstallPath)
	if err != nil {
		return "", err
	}
	if override != "" {
		return override, nil
	}
	return s.config.InstallPath, nil
}

// SetInstallPath persists an installation root override.
func (s *Service) SetInstallPath(path string) error {
	return s.db.SetSetting(settingInstallPath, path)
}

// SetActiveWorld pins which save-world's overrides apply during scans.
func (s *Service) SetActiveWorld(worldID string) error {
	return s.db.SetSetting(settingActiveWorld, worldID)
}

// Scan reads the whole library: every install category's enabled root and
// disabled mirror, with enablement resolved against the given world (or
// the active one when worldID is empty). The readonly default profile is
// seeded on the first successful scan and resynced to physical reality on
// every scan after that.
func (s *Service) Scan(ctx context.Context, worldID string) (*domain.ScanResult, error) {
	result, _, err := s.scan(ctx, worldID)
	return result, err
}

func (s *Service) scan(ctx context.Context, worldID string) (*domain.ScanResult, string, error) {
	install, err := s.InstallPath()
	if err != nil {
		return nil, "", err
	}
	if install == "" {
		// First-run state: nothing configured, nothing to scan.
		return &domain.ScanResult{}, "", nil
	}

	lay := layout.New(install)
	worlds := world.NewStore(s.fs, lay)

	if worldID == "" {
		worldID, err = s.db.Setting(settingActiveWorld)
		if err != nil {
			return nil, "", err
		}
	}
	activeWorld := worlds.ActiveWorld(worldID)
	overrides := worlds.ReadOverrides(activeWorld)

	entries, err := library.NewScanner(s.fs, lay, s.log).Scan(ctx, overrides)
	if err != nil {
		return nil, "", err
	}

	if err := s.syncDefaultProfile(entries); err != nil {
		return nil, "", err
	}

	return &domain.ScanResult{
		InstallPath: install,
		Entries:     entries,
		Validation:  library.Validate(entries),
	}, activeWorld, nil
}

// syncDefaultProfile keeps the readonly "default" profile equal to the
// set of currently enabled ids. It is seeded exactly once (guarded by a
// persisted flag) and only rewritten afterwards when the membership
// actually drifted.
func (s *Service) syncDefaultProfile(entries []domain.ModEntry) error {
	enabled := enabledIDs(entries)

	seeded, err := s.db.Setting(settingDefaultSeeded)
	if err != nil {
		return err
	}
	if seeded != "true" {
		profile := &domain.Profile{
			ID:          domain.DefaultProfileID,
			Name:        "Default",
			Readonly:    true,
			EnabledMods: enabled,
		}
		if err := s.db.SaveProfile(profile); err != nil {
			return err
		}
		return s.db.SetSetting(settingDefaultSeeded, "true")
	}

	existing, err := s.db.Profile(domain.DefaultProfileID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
		existing = &domain.Profile{
			ID:       domain.DefaultProfileID,
			Name:     "Default",
			Readonly: true,
		}
	}

	if sameSet(existing.EnabledMods, enabled) {
		return nil
	}
	existing.EnabledMods = enabled
	return s.db.SaveProfile(existing)
}

// Profiles returns all profiles, readonly first, then alphabetical.
func (s *Service) Profiles() ([]domain.Profile, error) {
	return s.db.Profiles()
}

// Profile retrieves one profile by id.
func (s *Service) Profile(id string) (*domain.Profile, error) {
	return s.db.Profile(id)
}

// CreateProfile creates a named profile over the given mod ids.
func (s *Service) CreateProfile(name string, enabledMods []string) (*domain.Profile, error) {
	return s.db.CreateProfile(name, enabledMods)
}

// UpdateProfile overwrites a profile; readonly profiles are rejected.
func (s *Service) UpdateProfile(p *domain.Profile) error {
	return s.db.UpdateProfile(p)
}

// ActiveProfile returns the profile the active pointer references. A
// stale pointer self-heals: it silently falls back to the first available
// profile and persists the correction.
func (s *Service) ActiveProfile() (*domain.Profile, error) {
	id, err := s.db.Setting(settingActiveProfile)
	if err != nil {
		return nil, err
	}
	if id != "" {
		profile, err := s.db.Profile(id)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
	}

	profiles, err := s.db.Profiles()
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrProfileNotFound
	}

	first := profiles[0]
	if err := s.db.SetSetting(settingActiveProfile, first.ID); err != nil {
		return nil, err
	}
	return &first, nil
}

// SetActiveProfile points the active pointer at the given profile. An
// unknown id is a no-op.
func (s *Service) SetActiveProfile(id string) error {
	if _, err := s.db.Profile(id); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil
		}
		return err
	}
	return s.db.SetSetting(settingActiveProfile, id)
}

// Apply reconciles the library against a profile: it re-scans fresh,
// moves every mod whose placement disagrees with the profile, rewrites
// the active world's config, and marks the profile active. Collisions are
// reported on the result, never treated as failures.
func (s *Service) Apply(ctx context.Context, profileID string) (*domain.ApplyResult, error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	profile, err := s.db.Profile(profileID)
	if err != nil {
		return nil, err
	}

	install, err := s.InstallPath()
	if err != nil {
		return nil, err
	}
	if install == "" {
		return nil, domain.ErrNoInstallPath
	}

	// Never trust a caller-supplied entry list; reconcile against reality.
	result, activeWorld, err := s.scan(ctx, "")
	if err != nil {
		return nil, err
	}

	lay := layout.New(install)
	applier := reconcile.NewApplier(s.fs, lay, world.NewStore(s.fs, lay), s.log)
	moved, skipped, err := applier.Reconcile(result.Entries, profile.EnabledSet(), activeWorld)
	if err != nil {
		return nil, err
	}

	if err := s.db.SetSetting(settingActiveProfile, profileID); err != nil {
		return nil, err
	}

	return &domain.ApplyResult{
		ProfileID: profileID,
		AppliedAt: time.Now(),
		Moved:     moved,
		Skipped:   skipped,
	}, nil
}

// RemoveMod deletes a mod from the library after copying it into a
// timestamped backup folder. Returns the backup path.
func (s *Service) RemoveMod(ctx context.Context, id string) (string, error) {
	result, _, err := s.scan(ctx, "")
	if err != nil {
		return "", err
	}

	var target *domain.ModEntry
	for i := range result.Entries {
		if result.Entries[i].ID == id {
			target = &result.Entries[i]
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrModNotFound, id)
	}

	remover := reconcile.NewRemover(s.fs, layout.New(result.InstallPath), s.backupDir())
	return remover.Remove(target.Path)
}

func (s *Service) backupDir() string {
	if s.config.BackupPath != "" {
		return s.config.BackupPath
	}
	return filepath.Join(s.dataDir, "backups")
}

func enabledIDs(entries []domain.ModEntry) []string {
	var ids []string
	for _, e := range entries {
		if e.Enabled {
			ids = append(ids, e.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
