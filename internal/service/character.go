package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/game/character"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

// UserStore defines the user lookup operations required by CharacterService.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (postgres.User, error)
}

// CharacterStore defines the character persistence operations required by
// CharacterService. Save must persist the whole aggregate atomically.
type CharacterStore interface {
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
	GetByID(ctx context.Context, id int64) (*character.Character, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*character.Character, error)
	Save(ctx context.Context, c *character.Character) (*character.Character, error)
	Delete(ctx context.Context, id int64) error
}

// SpellCatalog defines the catalog lookup required to attach spells.
type SpellCatalog interface {
	GetByID(ctx context.Context, id int64) (catalog.Spell, error)
}

// CharacterService orchestrates ownership-checked character mutations.
// Every single-character operation loads the aggregate, verifies that the
// authenticated principal owns it, applies the mutation through aggregate
// methods, and persists the result.
type CharacterService struct {
	characters CharacterStore
	users      UserStore
	spells     SpellCatalog
	logger     *zap.Logger
}

// NewCharacterService creates a CharacterService.
//
// Precondition: all arguments must be non-nil.
func NewCharacterService(characters CharacterStore, users UserStore, spells SpellCatalog, logger *zap.Logger) *CharacterService {
	return &CharacterService{
		characters: characters,
		users:      users,
		spells:     spells,
		logger:     logger,
	}
}

// GetAllByUsername returns summaries of all characters owned by the given
// user, most recently updated first.
//
// Postcondition: Returns a slice (may be empty), or NotFound if the user
// does not exist.
func (s *CharacterService) GetAllByUsername(ctx context.Context, username string) ([]CharacterSummary, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	chars, err := s.characters.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	summaries := make([]CharacterSummary, 0, len(chars))
	for _, c := range chars {
		summaries = append(summaries, NewCharacterSummary(c))
	}
	return summaries, nil
}

// GetByID returns the detail view of a single character.
//
// Postcondition: Returns the detail, NotFound if the character does not
// exist, or Unauthorized if the principal is not the owner.
func (s *CharacterService) GetByID(ctx context.Context, id int64, username string) (CharacterDetail, error) {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return CharacterDetail{}, err
	}
	return NewCharacterDetail(c), nil
}

// Create builds a new character for the given user: one initial class at
// level 1 and the full 18-skill set, per the creation contract.
//
// Postcondition: Returns the persisted character's detail view, NotFound if
// the user does not exist, or Validation on bad input.
func (s *CharacterService) Create(ctx context.Context, in character.CreateInput, username string) (CharacterDetail, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return CharacterDetail{}, err
	}

	c, err := character.Build(in)
	if err != nil {
		return CharacterDetail{}, invalid(err)
	}
	c.OwnerID = user.ID
	c.OwnerUsername = user.Username

	saved, err := s.characters.Create(ctx, c)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("creating character: %w", err)
	}

	s.logger.Info("character created",
		zap.String("name", saved.Name),
		zap.String("username", username),
		zap.Int64("id", saved.ID),
	)
	return NewCharacterDetail(saved), nil
}

// Update applies a partial merge: exactly the fields present in the patch
// overwrite the aggregate; absent fields are untouched.
func (s *CharacterService) Update(ctx context.Context, id int64, patch character.UpdatePatch, username string) (CharacterDetail, error) {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return CharacterDetail{}, err
	}

	if err := patch.Validate(); err != nil {
		return CharacterDetail{}, invalid(err)
	}
	patch.Apply(c)

	saved, err := s.characters.Save(ctx, c)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("saving character: %w", err)
	}

	s.logger.Info("character updated",
		zap.String("name", saved.Name),
		zap.Int64("id", saved.ID),
	)
	return NewCharacterDetail(saved), nil
}

// Delete removes a character and, with it, all of its owned child rows.
// Catalog spells referenced by the character are detached, not deleted.
func (s *CharacterService) Delete(ctx context.Context, id int64, username string) error {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return err
	}

	if err := s.characters.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}

	s.logger.Info("character deleted",
		zap.String("name", c.Name),
		zap.Int64("id", c.ID),
	)
	return nil
}

// AddEquipment constructs a new owned equipment instance from the given item
// and appends it to the character's list.
func (s *CharacterService) AddEquipment(ctx context.Context, id int64, item catalog.Equipment, username string) (CharacterDetail, error) {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return CharacterDetail{}, err
	}

	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := item.Validate(); err != nil {
		return CharacterDetail{}, invalid(err)
	}
	// An owned instance gets its own row; never carry a catalog ID here.
	item.ID = 0
	c.AddEquipment(item)

	saved, err := s.characters.Save(ctx, c)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("saving character: %w", err)
	}

	s.logger.Info("equipment added",
		zap.String("item", item.Name),
		zap.String("character", saved.Name),
	)
	return NewCharacterDetail(saved), nil
}

// RemoveEquipment removes the owned equipment item with the given ID from
// the character's list. The lookup is scoped to this character, not the
// global catalog.
func (s *CharacterService) RemoveEquipment(ctx context.Context, id, equipmentID int64, username string) (CharacterDetail, error) {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return CharacterDetail{}, err
	}

	if !c.RemoveEquipment(equipmentID) {
		return CharacterDetail{}, notFound("equipment", equipmentID)
	}

	saved, err := s.characters.Save(ctx, c)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("saving character: %w", err)
	}

	s.logger.Info("equipment removed",
		zap.Int64("equipmentID", equipmentID),
		zap.String("character", saved.Name),
	)
	return NewCharacterDetail(saved), nil
}

// AddSpell resolves a spell from the catalog and adds it to the character's
// spell set. Adding an already-known spell is a no-op, not an error.
func (s *CharacterService) AddSpell(ctx context.Context, id, spellID int64, username string) (CharacterDetail, error) {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return CharacterDetail{}, err
	}

	spell, err := s.findSpell(ctx, spellID)
	if err != nil {
		return CharacterDetail{}, err
	}
	c.AddSpell(spell)

	saved, err := s.characters.Save(ctx, c)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("saving character: %w", err)
	}

	s.logger.Info("spell added",
		zap.String("spell", spell.Name),
		zap.String("character", saved.Name),
	)
	return NewCharacterDetail(saved), nil
}

// RemoveSpell resolves a spell from the catalog and removes it from the
// character's spell set. Removing an unknown spell is a no-op.
func (s *CharacterService) RemoveSpell(ctx context.Context, id, spellID int64, username string) (CharacterDetail, error) {
	c, err := s.findOwned(ctx, id, username)
	if err != nil {
		return CharacterDetail{}, err
	}

	spell, err := s.findSpell(ctx, spellID)
	if err != nil {
		return CharacterDetail{}, err
	}
	c.RemoveSpell(spell.ID)

	saved, err := s.characters.Save(ctx, c)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("saving character: %w", err)
	}

	s.logger.Info("spell removed",
		zap.String("spell", spell.Name),
		zap.String("character", saved.Name),
	)
	return NewCharacterDetail(saved), nil
}

func (s *CharacterService) findUser(ctx context.Context, username string) (postgres.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return postgres.User{}, notFound("user", username)
		}
		return postgres.User{}, fmt.Errorf("resolving user: %w", err)
	}
	return user, nil
}

// findOwned loads a character and verifies that the principal owns it.
// The ownership check runs before any read or mutation of the aggregate.
func (s *CharacterService) findOwned(ctx context.Context, id int64, username string) (*character.Character, error) {
	c, err := s.characters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrCharacterNotFound) {
			return nil, notFound("character", id)
		}
		return nil, fmt.Errorf("loading character: %w", err)
	}
	if c.OwnerUsername != username {
		return nil, fmt.Errorf("%w: no access to this character", ErrUnauthorized)
	}
	return c, nil
}

func (s *CharacterService) findSpell(ctx context.Context, spellID int64) (catalog.Spell, error) {
	spell, err := s.spells.GetByID(ctx, spellID)
	if err != nil {
		if errors.Is(err, postgres.ErrSpellNotFound) {
			return catalog.Spell{}, notFound("spell", spellID)
		}
		return catalog.Spell{}, fmt.Errorf("resolving spell: %w", err)
	}
	return spell, nil
}
