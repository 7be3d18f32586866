package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ushki/dndsheet/internal/game/catalog"
)

// ErrSpellNotFound is returned when a spell lookup yields no results.
var ErrSpellNotFound = errors.New("spell not found")

// ErrSpellNameTaken is returned when creating a spell with a name already in the catalog.
var ErrSpellNameTaken = errors.New("spell name already taken")

// SpellRepository provides catalog spell persistence operations.
type SpellRepository struct {
	db *pgxpool.Pool
}

// NewSpellRepository creates a SpellRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSpellRepository(db *pgxpool.Pool) *SpellRepository {
	return &SpellRepository{db: db}
}

const spellColumns = `id, name, level, school, casting_time, range, components,
	duration, concentration, ritual, description, higher_levels`

func scanSpell(row pgx.Row, s *catalog.Spell) error {
	return row.Scan(
		&s.ID, &s.Name, &s.Level, &s.School, &s.CastingTime, &s.Range,
		&s.Components, &s.Duration, &s.Concentration, &s.Ritual,
		&s.Description, &s.HigherLevels,
	)
}

// Create inserts a catalog spell.
//
// Precondition: s must pass catalog.Spell.Validate.
// Postcondition: Returns the created spell with ID set, or ErrSpellNameTaken
// on a duplicate name.
func (r *SpellRepository) Create(ctx context.Context, s catalog.Spell) (catalog.Spell, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO spells
			(name, level, school, casting_time, range, components,
			 duration, concentration, ritual, description, higher_levels)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`,
		s.Name, s.Level, s.School, s.CastingTime, s.Range, s.Components,
		s.Duration, s.Concentration, s.Ritual, s.Description, s.HigherLevels,
	).Scan(&s.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return catalog.Spell{}, ErrSpellNameTaken
		}
		return catalog.Spell{}, fmt.Errorf("inserting spell: %w", err)
	}
	return s, nil
}

// GetByID retrieves a spell by its primary key.
//
// Postcondition: Returns the spell or ErrSpellNotFound.
func (r *SpellRepository) GetByID(ctx context.Context, id int64) (catalog.Spell, error) {
	var s catalog.Spell
	err := scanSpell(r.db.QueryRow(ctx,
		`SELECT `+spellColumns+` FROM spells WHERE id = $1`, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Spell{}, ErrSpellNotFound
		}
		return catalog.Spell{}, fmt.Errorf("querying spell: %w", err)
	}
	return s, nil
}

// List returns the full spell catalog ordered by name.
func (r *SpellRepository) List(ctx context.Context) ([]catalog.Spell, error) {
	return r.query(ctx, `SELECT `+spellColumns+` FROM spells ORDER BY name`)
}

// ListByLevel returns all spells of the given level, ordered by name.
func (r *SpellRepository) ListByLevel(ctx context.Context, level int) ([]catalog.Spell, error) {
	return r.query(ctx,
		`SELECT `+spellColumns+` FROM spells WHERE level = $1 ORDER BY name`, level)
}

// ListBySchool returns all spells of the given school, ordered by name.
func (r *SpellRepository) ListBySchool(ctx context.Context, school catalog.SpellSchool) ([]catalog.Spell, error) {
	return r.query(ctx,
		`SELECT `+spellColumns+` FROM spells WHERE school = $1 ORDER BY name`, school)
}

// SearchByName returns all spells whose name contains the given fragment,
// case-insensitively, ordered by name.
func (r *SpellRepository) SearchByName(ctx context.Context, name string) ([]catalog.Spell, error) {
	return r.query(ctx,
		`SELECT `+spellColumns+` FROM spells WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, name)
}

// ExistsByName reports whether a spell with the given name exists.
func (r *SpellRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM spells WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking spell name: %w", err)
	}
	return exists, nil
}

// Update overwrites all fields of an existing spell.
//
// Postcondition: Returns the updated spell, ErrSpellNotFound if no row
// matched, or ErrSpellNameTaken if renaming collides.
func (r *SpellRepository) Update(ctx context.Context, s catalog.Spell) (catalog.Spell, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE spells SET
			name = $2, level = $3, school = $4, casting_time = $5, range = $6,
			components = $7, duration = $8, concentration = $9, ritual = $10,
			description = $11, higher_levels = $12
		WHERE id = $1`,
		s.ID, s.Name, s.Level, s.School, s.CastingTime, s.Range,
		s.Components, s.Duration, s.Concentration, s.Ritual,
		s.Description, s.HigherLevels,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return catalog.Spell{}, ErrSpellNameTaken
		}
		return catalog.Spell{}, fmt.Errorf("updating spell: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.Spell{}, ErrSpellNotFound
	}
	return s, nil
}

// Delete removes a spell from the catalog. Join rows in character_spells go
// with it via ON DELETE CASCADE; characters themselves are untouched.
//
// Postcondition: Returns nil on success, ErrSpellNotFound if no row deleted.
func (r *SpellRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM spells WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting spell: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSpellNotFound
	}
	return nil
}

func (r *SpellRepository) query(ctx context.Context, sql string, args ...any) ([]catalog.Spell, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing spells: %w", err)
	}
	defer rows.Close()

	spells := make([]catalog.Spell, 0)
	for rows.Next() {
		var s catalog.Spell
		if err := scanSpell(rows, &s); err != nil {
			return nil, fmt.Errorf("scanning spell row: %w", err)
		}
		spells = append(spells, s)
	}
	return spells, rows.Err()
}
