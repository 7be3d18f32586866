package fixtures_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ushki/dndsheet/internal/fixtures"
	"github.com/ushki/dndsheet/internal/game/catalog"
)

type memSpellWriter struct {
	byName map[string]catalog.Spell
}

func (m *memSpellWriter) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok := m.byName[name]
	return ok, nil
}

func (m *memSpellWriter) Create(ctx context.Context, s catalog.Spell) (catalog.Spell, error) {
	s.ID = int64(len(m.byName) + 1)
	m.byName[s.Name] = s
	return s, nil
}

type memEquipmentWriter struct {
	byName map[string]catalog.Equipment
}

func (m *memEquipmentWriter) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok := m.byName[name]
	return ok, nil
}

func (m *memEquipmentWriter) Create(ctx context.Context, e catalog.Equipment) (catalog.Equipment, error) {
	e.ID = int64(len(m.byName) + 1)
	m.byName[e.Name] = e
	return e, nil
}

const fixtureYAML = `
spells:
  - name: Fireball
    level: 3
    school: EVOCATION
    casting_time: 1 action
    range: 150 feet
    components: V, S, M
    duration: Instantaneous
    description: A bright streak flashes to a point you choose.
    higher_levels: +1d6 per slot level above 3rd.
  - name: Mage Hand
    level: 0
    school: CONJURATION
    casting_time: 1 action
    range: 30 feet
    duration: 1 minute
equipment:
  - name: Longsword
    type: WEAPON
    weight: 3
    damage: 1d8
    damage_type: slashing
    properties: versatile (1d10)
  - name: Shield
    type: SHIELD
    weight: 6
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(content), 0644))
	return dir
}

func TestSeed(t *testing.T) {
	dir := writeFixture(t, fixtureYAML)
	spells := &memSpellWriter{byName: make(map[string]catalog.Spell)}
	equipment := &memEquipmentWriter{byName: make(map[string]catalog.Equipment)}

	report, err := fixtures.Seed(context.Background(), dir, spells, equipment)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Spells)
	assert.Equal(t, 2, report.Equipment)
	assert.Equal(t, 0, report.Skipped)

	fireball := spells.byName["Fireball"]
	assert.Equal(t, 3, fireball.Level)
	assert.Equal(t, catalog.Evocation, fireball.School)

	sword := equipment.byName["Longsword"]
	assert.Equal(t, catalog.Weapon, sword.Type)
	assert.Equal(t, 1, sword.Quantity)
}

func TestSeedIsIdempotent(t *testing.T) {
	dir := writeFixture(t, fixtureYAML)
	spells := &memSpellWriter{byName: make(map[string]catalog.Spell)}
	equipment := &memEquipmentWriter{byName: make(map[string]catalog.Equipment)}

	_, err := fixtures.Seed(context.Background(), dir, spells, equipment)
	require.NoError(t, err)

	report, err := fixtures.Seed(context.Background(), dir, spells, equipment)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Spells)
	assert.Equal(t, 0, report.Equipment)
	assert.Equal(t, 4, report.Skipped)
	assert.Len(t, spells.byName, 2)
	assert.Len(t, equipment.byName, 2)
}

func TestSeedRejectsInvalidEntries(t *testing.T) {
	dir := writeFixture(t, `
spells:
  - name: Broken
    level: 12
    school: EVOCATION
`)
	spells := &memSpellWriter{byName: make(map[string]catalog.Spell)}
	equipment := &memEquipmentWriter{byName: make(map[string]catalog.Equipment)}

	_, err := fixtures.Seed(context.Background(), dir, spells, equipment)
	assert.Error(t, err)
}

func TestSeedMissingDir(t *testing.T) {
	spells := &memSpellWriter{byName: make(map[string]catalog.Spell)}
	equipment := &memEquipmentWriter{byName: make(map[string]catalog.Equipment)}

	_, err := fixtures.Seed(context.Background(), "/nonexistent/dir", spells, equipment)
	assert.Error(t, err)
}
