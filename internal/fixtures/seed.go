// Package fixtures loads catalog content from YAML files and seeds the
// spell and equipment catalogs. Seeding is idempotent: entries whose name
// already exists are skipped, never overwritten.
package fixtures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ushki/dndsheet/internal/game/catalog"
)

// SpellWriter is the catalog surface required to seed spells.
type SpellWriter interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, s catalog.Spell) (catalog.Spell, error)
}

// EquipmentWriter is the catalog surface required to seed equipment.
type EquipmentWriter interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, e catalog.Equipment) (catalog.Equipment, error)
}

// Report summarizes a seeding run.
type Report struct {
	Spells    int
	Equipment int
	Skipped   int
}

type spellEntry struct {
	Name          string `yaml:"name"`
	Level         int    `yaml:"level"`
	School        string `yaml:"school"`
	CastingTime   string `yaml:"casting_time"`
	Range         string `yaml:"range"`
	Components    string `yaml:"components"`
	Duration      string `yaml:"duration"`
	Concentration bool   `yaml:"concentration"`
	Ritual        bool   `yaml:"ritual"`
	Description   string `yaml:"description"`
	HigherLevels  string `yaml:"higher_levels"`
}

type equipmentEntry struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Type        string  `yaml:"type"`
	Weight      float64 `yaml:"weight"`
	Damage      string  `yaml:"damage"`
	DamageType  string  `yaml:"damage_type"`
	Properties  string  `yaml:"properties"`
}

type spellFile struct {
	Spells []spellEntry `yaml:"spells"`
}

type equipmentFile struct {
	Equipment []equipmentEntry `yaml:"equipment"`
}

// Seed loads every .yaml file in dir and inserts the catalog entries it
// declares. A file may carry a `spells:` list, an `equipment:` list, or both.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns counts of inserted and skipped entries, or an error
// on the first invalid entry.
func Seed(ctx context.Context, dir string, spells SpellWriter, equipment EquipmentWriter) (Report, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return report, fmt.Errorf("reading %s: %w", path, err)
		}

		var sf spellFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return report, fmt.Errorf("parsing %s: %w", path, err)
		}
		var ef equipmentFile
		if err := yaml.Unmarshal(data, &ef); err != nil {
			return report, fmt.Errorf("parsing %s: %w", path, err)
		}

		for _, entry := range sf.Spells {
			inserted, err := seedSpell(ctx, spells, entry)
			if err != nil {
				return report, fmt.Errorf("%s: spell %q: %w", path, entry.Name, err)
			}
			if inserted {
				report.Spells++
			} else {
				report.Skipped++
			}
		}

		for _, entry := range ef.Equipment {
			inserted, err := seedEquipment(ctx, equipment, entry)
			if err != nil {
				return report, fmt.Errorf("%s: equipment %q: %w", path, entry.Name, err)
			}
			if inserted {
				report.Equipment++
			} else {
				report.Skipped++
			}
		}
	}
	return report, nil
}

func seedSpell(ctx context.Context, w SpellWriter, entry spellEntry) (bool, error) {
	spell := catalog.Spell{
		Name:          entry.Name,
		Level:         entry.Level,
		School:        catalog.SpellSchool(entry.School),
		CastingTime:   entry.CastingTime,
		Range:         entry.Range,
		Components:    entry.Components,
		Duration:      entry.Duration,
		Concentration: entry.Concentration,
		Ritual:        entry.Ritual,
		Description:   entry.Description,
		HigherLevels:  entry.HigherLevels,
	}
	if err := spell.Validate(); err != nil {
		return false, err
	}

	exists, err := w.ExistsByName(ctx, spell.Name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := w.Create(ctx, spell); err != nil {
		return false, err
	}
	return true, nil
}

func seedEquipment(ctx context.Context, w EquipmentWriter, entry equipmentEntry) (bool, error) {
	item := catalog.Equipment{
		Name:        entry.Name,
		Description: entry.Description,
		Type:        catalog.EquipmentType(entry.Type),
		Quantity:    1,
		Weight:      entry.Weight,
		Damage:      entry.Damage,
		DamageType:  entry.DamageType,
		Properties:  entry.Properties,
	}
	if err := item.Validate(); err != nil {
		return false, err
	}

	exists, err := w.ExistsByName(ctx, item.Name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := w.Create(ctx, item); err != nil {
		return false, err
	}
	return true, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
