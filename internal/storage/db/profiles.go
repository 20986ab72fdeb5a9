package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/isdelr/hymn-sub000/internal/domain"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a profile id.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "profile"
	}
	return slug
}

// CreateProfile inserts a new profile. The id is the slugified name,
// de-duplicated with a numeric suffix on collision.
func (d *DB) CreateProfile(name string, enabledMods []string) (*domain.Profile, error) {
	base := Slugify(name)
	id := base
	for n := 2; ; n++ {
		var exists int
		err := d.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = ?", id).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking profile id: %w", err)
		}
		if exists == 0 {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}

	profile := &domain.Profile{ID: id, Name: name, EnabledMods: enabledMods}
	if err := d.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile inserts or overwrites a profile record unconditionally.
// The readonly guard lives in UpdateProfile; this path is also how the
// default profile gets resynced to physical reality.
func (d *DB) SaveProfile(p *domain.Profile) error {
	mods, err := json.Marshal(modsOrEmpty(p.EnabledMods))
	if err != nil {
		return fmt.Errorf("encoding enabled mods: %w", err)
	}

	_, err = d.Exec(`
		INSERT INTO profiles (id, name, readonly, enabled_mods)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			readonly = excluded.readonly,
			enabled_mods = excluded.enabled_mods
	`, p.ID, p.Name, p.Readonly, string(mods))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// UpdateProfile overwrites a profile's name and mod set. Readonly
// profiles are rejected: the default profile tracks physical reality and
// is not user-editable.
func (d *DB) UpdateProfile(p *domain.Profile) error {
	existing, err := d.Profile(p.ID)
	if err != nil {
		return err
	}
	if existing.Readonly {
		return fmt.Errorf("%w: %s", domain.ErrProfileReadonly, p.ID)
	}

	p.Readonly = false
	return d.SaveProfile(p)
}

// Profile retrieves a single profile by id.
func (d *DB) Profile(id string) (*domain.Profile, error) {
	var p domain.Profile
	var mods string
	err := d.QueryRow(`
		SELECT id, name, readonly, enabled_mods FROM profiles WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Readonly, &mods)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	if err := json.Unmarshal([]byte(mods), &p.EnabledMods); err != nil {
		return nil, fmt.Errorf("decoding enabled mods: %w", err)
	}
	return &p, nil
}

// Profiles returns every profile, readonly ones first, then alphabetical
// by name.
func (d *DB) Profiles() ([]domain.Profile, error) {
	rows, err := d.Query(`
		SELECT id, name, readonly, enabled_mods FROM profiles
		ORDER BY readonly DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var mods string
		if err := rows.Scan(&p.ID, &p.Name, &p.Readonly, &mods); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		if err := json.Unmarshal([]byte(mods), &p.EnabledMods); err != nil {
			return nil, fmt.Errorf("decoding enabled mods: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func modsOrEmpty(mods []string) []string {
	if mods == nil {
		return []string{}
	}
	return mods
}
