package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ushki/dndsheet/internal/game/catalog"
)

// ErrEquipmentNotFound is returned when an equipment lookup yields no results.
var ErrEquipmentNotFound = errors.New("equipment not found")

// ErrEquipmentNameTaken is returned when creating a catalog item with a name
// already in the catalog.
var ErrEquipmentNameTaken = errors.New("equipment name already taken")

// EquipmentRepository provides catalog equipment persistence operations.
// Character-owned equipment instances live in character_equipment and are
// managed by CharacterRepository; this repository covers the shared catalog.
type EquipmentRepository struct {
	db *pgxpool.Pool
}

// NewEquipmentRepository creates an EquipmentRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

const equipmentColumns = `id, name, description, quantity, weight, equipped,
	attuned, type, damage, damage_type, properties`

func scanEquipment(row pgx.Row, e *catalog.Equipment) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Quantity, &e.Weight, &e.Equipped,
		&e.Attuned, &e.Type, &e.Damage, &e.DamageType, &e.Properties,
	)
}

// Create inserts a catalog equipment template.
//
// Precondition: e must pass catalog.Equipment.Validate.
// Postcondition: Returns the created item with ID set, or
// ErrEquipmentNameTaken on a name collision.
func (r *EquipmentRepository) Create(ctx context.Context, e catalog.Equipment) (catalog.Equipment, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO equipment
			(name, description, quantity, weight, equipped, attuned,
			 type, damage, damage_type, properties)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`,
		e.Name, e.Description, e.Quantity, e.Weight, e.Equipped, e.Attuned,
		e.Type, e.Damage, e.DamageType, e.Properties,
	).Scan(&e.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return catalog.Equipment{}, ErrEquipmentNameTaken
		}
		return catalog.Equipment{}, fmt.Errorf("inserting equipment: %w", err)
	}
	return e, nil
}

// GetByID retrieves a catalog item by its primary key.
//
// Postcondition: Returns the item or ErrEquipmentNotFound.
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (catalog.Equipment, error) {
	var e catalog.Equipment
	err := scanEquipment(r.db.QueryRow(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Equipment{}, ErrEquipmentNotFound
		}
		return catalog.Equipment{}, fmt.Errorf("querying equipment: %w", err)
	}
	return e, nil
}

// List returns the full equipment catalog ordered by name.
func (r *EquipmentRepository) List(ctx context.Context) ([]catalog.Equipment, error) {
	return r.query(ctx, `SELECT `+equipmentColumns+` FROM equipment ORDER BY name`)
}

// ListByType returns all catalog items of the given type, ordered by name.
func (r *EquipmentRepository) ListByType(ctx context.Context, t catalog.EquipmentType) ([]catalog.Equipment, error) {
	return r.query(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE type = $1 ORDER BY name`, t)
}

// SearchByName returns all catalog items whose name contains the given
// fragment, case-insensitively, ordered by name.
func (r *EquipmentRepository) SearchByName(ctx context.Context, name string) ([]catalog.Equipment, error) {
	return r.query(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, name)
}

// ExistsByName reports whether a catalog item with the given name exists.
func (r *EquipmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM equipment WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking equipment name: %w", err)
	}
	return exists, nil
}

// Update overwrites all fields of an existing catalog item.
//
// Postcondition: Returns the updated item, ErrEquipmentNotFound if no row
// matched, or ErrEquipmentNameTaken if renaming collides.
func (r *EquipmentRepository) Update(ctx context.Context, e catalog.Equipment) (catalog.Equipment, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE equipment SET
			name = $2, description = $3, quantity = $4, weight = $5,
			equipped = $6, attuned = $7, type = $8,
			damage = $9, damage_type = $10, properties = $11
		WHERE id = $1`,
		e.ID, e.Name, e.Description, e.Quantity, e.Weight,
		e.Equipped, e.Attuned, e.Type, e.Damage, e.DamageType, e.Properties,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return catalog.Equipment{}, ErrEquipmentNameTaken
		}
		return catalog.Equipment{}, fmt.Errorf("updating equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.Equipment{}, ErrEquipmentNotFound
	}
	return e, nil
}

// Delete removes a catalog item.
//
// Postcondition: Returns nil on success, ErrEquipmentNotFound if no row deleted.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) query(ctx context.Context, sql string, args ...any) ([]catalog.Equipment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	defer rows.Close()

	items := make([]catalog.Equipment, 0)
	for rows.Next() {
		var e catalog.Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, fmt.Errorf("scanning equipment row: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
