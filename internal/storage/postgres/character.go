package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// CharacterRepository persists the character aggregate: the character row
// plus its owned classes, skills, equipment, saving throws, and the
// character_spells join rows. Every mutating call runs in a single
// transaction so the aggregate never partially commits.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `
	c.id, c.user_id, u.username, c.name, c.race, c.subrace, c.alignment,
	c.background, c.experience_points, c.portrait_url,
	c.strength, c.dexterity, c.constitution, c.intelligence, c.wisdom, c.charisma,
	c.max_hit_points, c.current_hit_points, c.temporary_hit_points,
	c.armor_class, c.initiative, c.speed, c.proficiency_bonus, c.hit_dice,
	c.death_save_successes, c.death_save_failures,
	c.copper, c.silver, c.electrum, c.gold, c.platinum,
	c.spellcasting_ability,
	c.features_and_traits, c.backstory, c.personality_traits,
	c.ideals, c.bonds, c.flaws, c.notes,
	c.is_public, c.created_at, c.updated_at`

// scanCharacterRow scans one joined characters/users row.
func scanCharacterRow(row pgx.Row, c *character.Character) error {
	return row.Scan(
		&c.ID, &c.OwnerID, &c.OwnerUsername, &c.Name, &c.Race, &c.Subrace, &c.Alignment,
		&c.Background, &c.ExperiencePoints, &c.PortraitURL,
		&c.Scores.Strength, &c.Scores.Dexterity, &c.Scores.Constitution,
		&c.Scores.Intelligence, &c.Scores.Wisdom, &c.Scores.Charisma,
		&c.MaxHitPoints, &c.CurrentHitPoints, &c.TemporaryHitPoints,
		&c.ArmorClass, &c.Initiative, &c.Speed, &c.ProficiencyBonus, &c.HitDice,
		&c.DeathSaveSuccesses, &c.DeathSaveFailures,
		&c.Coins.Copper, &c.Coins.Silver, &c.Coins.Electrum, &c.Coins.Gold, &c.Coins.Platinum,
		&c.SpellcastingAbility,
		&c.FeaturesAndTraits, &c.Backstory, &c.PersonalityTraits,
		&c.Ideals, &c.Bonds, &c.Flaws, &c.Notes,
		&c.Public, &c.CreatedAt, &c.UpdatedAt,
	)
}

// Create inserts a full character aggregate and returns it with all IDs and
// timestamps set.
//
// Precondition: c.OwnerID must reference an existing user.
// Postcondition: The character row and all owned child rows exist, or the
// transaction is rolled back and an error returned.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO characters
			(user_id, name, race, subrace, alignment, background,
			 experience_points, portrait_url,
			 strength, dexterity, constitution, intelligence, wisdom, charisma,
			 max_hit_points, current_hit_points, temporary_hit_points,
			 armor_class, initiative, speed, proficiency_bonus, hit_dice,
			 death_save_successes, death_save_failures,
			 copper, silver, electrum, gold, platinum,
			 spellcasting_ability,
			 features_and_traits, backstory, personality_traits,
			 ideals, bonds, flaws, notes, is_public)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
		        $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,
		        $35,$36,$37,$38)
		RETURNING id, created_at, updated_at`,
		c.OwnerID, c.Name, c.Race, c.Subrace, c.Alignment, c.Background,
		c.ExperiencePoints, c.PortraitURL,
		c.Scores.Strength, c.Scores.Dexterity, c.Scores.Constitution,
		c.Scores.Intelligence, c.Scores.Wisdom, c.Scores.Charisma,
		c.MaxHitPoints, c.CurrentHitPoints, c.TemporaryHitPoints,
		c.ArmorClass, c.Initiative, c.Speed, c.ProficiencyBonus, c.HitDice,
		c.DeathSaveSuccesses, c.DeathSaveFailures,
		c.Coins.Copper, c.Coins.Silver, c.Coins.Electrum, c.Coins.Gold, c.Coins.Platinum,
		c.SpellcastingAbility,
		c.FeaturesAndTraits, c.Backstory, c.PersonalityTraits,
		c.Ideals, c.Bonds, c.Flaws, c.Notes, c.Public,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting character: %w", err)
	}

	for i := range c.Classes {
		cl := &c.Classes[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO character_classes (character_id, class_name, subclass, level)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			c.ID, cl.Name, cl.Subclass, cl.Level,
		).Scan(&cl.ID)
		if err != nil {
			return nil, fmt.Errorf("inserting class: %w", err)
		}
	}

	for i := range c.Skills {
		s := &c.Skills[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO character_skills (character_id, skill_type, proficiency, expertise, bonus)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			c.ID, s.Type, s.Proficiency, s.Expertise, s.Bonus,
		).Scan(&s.ID)
		if err != nil {
			return nil, fmt.Errorf("inserting skill: %w", err)
		}
	}

	for _, ability := range c.SavingThrowProficiencies {
		if _, err := tx.Exec(ctx, `
			INSERT INTO character_saving_throws (character_id, ability)
			VALUES ($1, $2)`,
			c.ID, ability,
		); err != nil {
			return nil, fmt.Errorf("inserting saving throw: %w", err)
		}
	}

	for i := range c.Equipment {
		if err := insertOwnedEquipment(ctx, tx, c.ID, &c.Equipment[i]); err != nil {
			return nil, err
		}
	}

	for _, sp := range c.Spells {
		if _, err := tx.Exec(ctx, `
			INSERT INTO character_spells (character_id, spell_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			c.ID, sp.ID,
		); err != nil {
			return nil, fmt.Errorf("inserting character spell: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return c, nil
}

// GetByID loads the full character aggregate by its primary key.
//
// Precondition: id must be > 0.
// Postcondition: Returns the complete aggregate or ErrCharacterNotFound.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*character.Character, error) {
	var c character.Character
	err := scanCharacterRow(r.db.QueryRow(ctx, `
		SELECT`+characterColumns+`
		FROM characters c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}

	if err := r.loadChildren(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByOwner returns all characters belonging to the given user, ordered by
// most-recently-updated first. Class lists are loaded; the remaining child
// collections are loaded too so callers can project either view.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*character.Character, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+characterColumns+`
		FROM characters c JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1
		ORDER BY c.updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	chars := make([]*character.Character, 0)
	for rows.Next() {
		var c character.Character
		if err := scanCharacterRow(rows, &c); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		chars = append(chars, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range chars {
		if err := r.loadChildren(ctx, c); err != nil {
			return nil, err
		}
	}
	return chars, nil
}

// Save persists the aggregate's current in-memory state: the character row
// is updated and every child collection is synchronized (new rows inserted,
// vanished rows deleted, existing rows updated) in one transaction.
//
// Precondition: c.ID must reference an existing character.
// Postcondition: c.UpdatedAt reflects the new row timestamp, and new child
// rows have their IDs set.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) (*character.Character, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE characters SET
			name = $2, race = $3, subrace = $4, alignment = $5, background = $6,
			experience_points = $7, portrait_url = $8,
			strength = $9, dexterity = $10, constitution = $11,
			intelligence = $12, wisdom = $13, charisma = $14,
			max_hit_points = $15, current_hit_points = $16, temporary_hit_points = $17,
			armor_class = $18, initiative = $19, speed = $20,
			proficiency_bonus = $21, hit_dice = $22,
			death_save_successes = $23, death_save_failures = $24,
			copper = $25, silver = $26, electrum = $27, gold = $28, platinum = $29,
			spellcasting_ability = $30,
			features_and_traits = $31, backstory = $32, personality_traits = $33,
			ideals = $34, bonds = $35, flaws = $36, notes = $37,
			is_public = $38, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Name, c.Race, c.Subrace, c.Alignment, c.Background,
		c.ExperiencePoints, c.PortraitURL,
		c.Scores.Strength, c.Scores.Dexterity, c.Scores.Constitution,
		c.Scores.Intelligence, c.Scores.Wisdom, c.Scores.Charisma,
		c.MaxHitPoints, c.CurrentHitPoints, c.TemporaryHitPoints,
		c.ArmorClass, c.Initiative, c.Speed, c.ProficiencyBonus, c.HitDice,
		c.DeathSaveSuccesses, c.DeathSaveFailures,
		c.Coins.Copper, c.Coins.Silver, c.Coins.Electrum, c.Coins.Gold, c.Coins.Platinum,
		c.SpellcastingAbility,
		c.FeaturesAndTraits, c.Backstory, c.PersonalityTraits,
		c.Ideals, c.Bonds, c.Flaws, c.Notes, c.Public,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("updating character: %w", err)
	}

	if err := syncClasses(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := syncSkills(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := syncSavingThrows(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := syncEquipment(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := syncSpells(ctx, tx, c); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return c, nil
}

// Delete removes the character row. Owned child rows (classes, skills,
// equipment, saving throws, spell join rows) go with it via ON DELETE
// CASCADE; catalog spells themselves are untouched.
//
// Postcondition: Returns nil on success, ErrCharacterNotFound if no row deleted.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// loadChildren populates the aggregate's owned collections and spell set.
func (r *CharacterRepository) loadChildren(ctx context.Context, c *character.Character) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, class_name, subclass, level
		FROM character_classes WHERE character_id = $1 ORDER BY id`, c.ID)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}
	c.Classes = nil
	for rows.Next() {
		var cl character.Class
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Subclass, &cl.Level); err != nil {
			rows.Close()
			return fmt.Errorf("scanning class row: %w", err)
		}
		c.Classes = append(c.Classes, cl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, skill_type, proficiency, expertise, bonus
		FROM character_skills WHERE character_id = $1 ORDER BY id`, c.ID)
	if err != nil {
		return fmt.Errorf("loading skills: %w", err)
	}
	c.Skills = nil
	for rows.Next() {
		var s character.Skill
		if err := rows.Scan(&s.ID, &s.Type, &s.Proficiency, &s.Expertise, &s.Bonus); err != nil {
			rows.Close()
			return fmt.Errorf("scanning skill row: %w", err)
		}
		c.Skills = append(c.Skills, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT ability FROM character_saving_throws
		WHERE character_id = $1 ORDER BY ability`, c.ID)
	if err != nil {
		return fmt.Errorf("loading saving throws: %w", err)
	}
	c.SavingThrowProficiencies = nil
	for rows.Next() {
		var a character.AbilityType
		if err := rows.Scan(&a); err != nil {
			rows.Close()
			return fmt.Errorf("scanning saving throw row: %w", err)
		}
		c.SavingThrowProficiencies = append(c.SavingThrowProficiencies, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, name, description, quantity, weight, equipped, attuned,
		       type, damage, damage_type, properties
		FROM character_equipment WHERE character_id = $1 ORDER BY id`, c.ID)
	if err != nil {
		return fmt.Errorf("loading equipment: %w", err)
	}
	c.Equipment = nil
	for rows.Next() {
		var e catalog.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Quantity, &e.Weight,
			&e.Equipped, &e.Attuned, &e.Type, &e.Damage, &e.DamageType, &e.Properties); err != nil {
			rows.Close()
			return fmt.Errorf("scanning equipment row: %w", err)
		}
		c.Equipment = append(c.Equipment, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT s.id, s.name, s.level, s.school, s.casting_time, s.range,
		       s.components, s.duration, s.concentration, s.ritual,
		       s.description, s.higher_levels
		FROM spells s
		JOIN character_spells cs ON cs.spell_id = s.id
		WHERE cs.character_id = $1 ORDER BY s.id`, c.ID)
	if err != nil {
		return fmt.Errorf("loading spells: %w", err)
	}
	c.Spells = nil
	for rows.Next() {
		var s catalog.Spell
		if err := scanSpell(rows, &s); err != nil {
			rows.Close()
			return fmt.Errorf("scanning spell row: %w", err)
		}
		c.Spells = append(c.Spells, s)
	}
	rows.Close()
	return rows.Err()
}

func insertOwnedEquipment(ctx context.Context, tx pgx.Tx, characterID int64, e *catalog.Equipment) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO character_equipment
			(character_id, name, description, quantity, weight, equipped,
			 attuned, type, damage, damage_type, properties)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`,
		characterID, e.Name, e.Description, e.Quantity, e.Weight, e.Equipped,
		e.Attuned, e.Type, e.Damage, e.DamageType, e.Properties,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("inserting equipment: %w", err)
	}
	return nil
}

func syncClasses(ctx context.Context, tx pgx.Tx, c *character.Character) error {
	keep := make([]int64, 0, len(c.Classes))
	for i := range c.Classes {
		cl := &c.Classes[i]
		if cl.ID == 0 {
			err := tx.QueryRow(ctx, `
				INSERT INTO character_classes (character_id, class_name, subclass, level)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				c.ID, cl.Name, cl.Subclass, cl.Level,
			).Scan(&cl.ID)
			if err != nil {
				return fmt.Errorf("inserting class: %w", err)
			}
		} else {
			if _, err := tx.Exec(ctx, `
				UPDATE character_classes SET class_name = $2, subclass = $3, level = $4
				WHERE id = $1`,
				cl.ID, cl.Name, cl.Subclass, cl.Level,
			); err != nil {
				return fmt.Errorf("updating class: %w", err)
			}
		}
		keep = append(keep, cl.ID)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM character_classes
		WHERE character_id = $1 AND NOT (id = ANY($2))`,
		c.ID, keep,
	); err != nil {
		return fmt.Errorf("pruning classes: %w", err)
	}
	return nil
}

func syncSkills(ctx context.Context, tx pgx.Tx, c *character.Character) error {
	for i := range c.Skills {
		s := &c.Skills[i]
		if _, err := tx.Exec(ctx, `
			UPDATE character_skills SET proficiency = $3, expertise = $4, bonus = $5
			WHERE character_id = $1 AND skill_type = $2`,
			c.ID, s.Type, s.Proficiency, s.Expertise, s.Bonus,
		); err != nil {
			return fmt.Errorf("updating skill: %w", err)
		}
	}
	return nil
}

func syncSavingThrows(ctx context.Context, tx pgx.Tx, c *character.Character) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM character_saving_throws WHERE character_id = $1`, c.ID,
	); err != nil {
		return fmt.Errorf("clearing saving throws: %w", err)
	}
	for _, ability := range c.SavingThrowProficiencies {
		if _, err := tx.Exec(ctx, `
			INSERT INTO character_saving_throws (character_id, ability)
			VALUES ($1, $2)`,
			c.ID, ability,
		); err != nil {
			return fmt.Errorf("inserting saving throw: %w", err)
		}
	}
	return nil
}

func syncEquipment(ctx context.Context, tx pgx.Tx, c *character.Character) error {
	keep := make([]int64, 0, len(c.Equipment))
	for i := range c.Equipment {
		e := &c.Equipment[i]
		if e.ID == 0 {
			if err := insertOwnedEquipment(ctx, tx, c.ID, e); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(ctx, `
				UPDATE character_equipment SET
					name = $2, description = $3, quantity = $4, weight = $5,
					equipped = $6, attuned = $7, type = $8,
					damage = $9, damage_type = $10, properties = $11
				WHERE id = $1`,
				e.ID, e.Name, e.Description, e.Quantity, e.Weight,
				e.Equipped, e.Attuned, e.Type, e.Damage, e.DamageType, e.Properties,
			); err != nil {
				return fmt.Errorf("updating equipment: %w", err)
			}
		}
		keep = append(keep, e.ID)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM character_equipment
		WHERE character_id = $1 AND NOT (id = ANY($2))`,
		c.ID, keep,
	); err != nil {
		return fmt.Errorf("pruning equipment: %w", err)
	}
	return nil
}

func syncSpells(ctx context.Context, tx pgx.Tx, c *character.Character) error {
	keep := make([]int64, 0, len(c.Spells))
	for _, s := range c.Spells {
		if _, err := tx.Exec(ctx, `
			INSERT INTO character_spells (character_id, spell_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			c.ID, s.ID,
		); err != nil {
			return fmt.Errorf("inserting character spell: %w", err)
		}
		keep = append(keep, s.ID)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM character_spells
		WHERE character_id = $1 AND NOT (spell_id = ANY($2))`,
		c.ID, keep,
	); err != nil {
		return fmt.Errorf("pruning character spells: %w", err)
	}
	return nil
}
