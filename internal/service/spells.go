package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

// SpellStore defines the catalog persistence operations required by
// SpellService.
type SpellStore interface {
	Create(ctx context.Context, s catalog.Spell) (catalog.Spell, error)
	GetByID(ctx context.Context, id int64) (catalog.Spell, error)
	List(ctx context.Context) ([]catalog.Spell, error)
	ListByLevel(ctx context.Context, level int) ([]catalog.Spell, error)
	ListBySchool(ctx context.Context, school catalog.SpellSchool) ([]catalog.Spell, error)
	SearchByName(ctx context.Context, name string) ([]catalog.Spell, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, s catalog.Spell) (catalog.Spell, error)
	Delete(ctx context.Context, id int64) error
}

// SpellService manages the shared spell catalog. Catalog entries are global:
// characters reference them, they are not per-character copies.
type SpellService struct {
	store  SpellStore
	logger *zap.Logger
}

func NewSpellService(store SpellStore, logger *zap.Logger) *SpellService {
	return &SpellService{store: store, logger: logger}
}

// Create adds a spell to the catalog.
//
// Postcondition: Returns Validation on bad input and Duplicate when a spell
// with the same name already exists.
func (s *SpellService) Create(ctx context.Context, spell catalog.Spell) (catalog.Spell, error) {
	if err := spell.Validate(); err != nil {
		return catalog.Spell{}, invalid(err)
	}
	spell.ID = 0

	created, err := s.store.Create(ctx, spell)
	if err != nil {
		if errors.Is(err, postgres.ErrSpellNameTaken) {
			return catalog.Spell{}, duplicate("spell", spell.Name)
		}
		return catalog.Spell{}, fmt.Errorf("creating spell: %w", err)
	}

	s.logger.Info("spell created", zap.String("name", created.Name), zap.Int64("id", created.ID))
	return created, nil
}

func (s *SpellService) GetByID(ctx context.Context, id int64) (catalog.Spell, error) {
	spell, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrSpellNotFound) {
			return catalog.Spell{}, notFound("spell", id)
		}
		return catalog.Spell{}, fmt.Errorf("loading spell: %w", err)
	}
	return spell, nil
}

func (s *SpellService) List(ctx context.Context) ([]catalog.Spell, error) {
	spells, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing spells: %w", err)
	}
	return spells, nil
}

// ListByLevel returns every catalog spell of the given level (0 is a
// cantrip).
func (s *SpellService) ListByLevel(ctx context.Context, level int) ([]catalog.Spell, error) {
	if level < catalog.MinSpellLevel || level > catalog.MaxSpellLevel {
		return nil, invalid(fmt.Errorf("spell level %d out of range", level))
	}
	spells, err := s.store.ListByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("listing spells by level: %w", err)
	}
	return spells, nil
}

func (s *SpellService) ListBySchool(ctx context.Context, school catalog.SpellSchool) ([]catalog.Spell, error) {
	if !catalog.ValidSpellSchool(school) {
		return nil, invalid(fmt.Errorf("unknown spell school %q", school))
	}
	spells, err := s.store.ListBySchool(ctx, school)
	if err != nil {
		return nil, fmt.Errorf("listing spells by school: %w", err)
	}
	return spells, nil
}

func (s *SpellService) SearchByName(ctx context.Context, name string) ([]catalog.Spell, error) {
	spells, err := s.store.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("searching spells: %w", err)
	}
	return spells, nil
}

// Update replaces a catalog spell in full.
func (s *SpellService) Update(ctx context.Context, spell catalog.Spell) (catalog.Spell, error) {
	if err := spell.Validate(); err != nil {
		return catalog.Spell{}, invalid(err)
	}

	updated, err := s.store.Update(ctx, spell)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrSpellNotFound):
			return catalog.Spell{}, notFound("spell", spell.ID)
		case errors.Is(err, postgres.ErrSpellNameTaken):
			return catalog.Spell{}, duplicate("spell", spell.Name)
		}
		return catalog.Spell{}, fmt.Errorf("updating spell: %w", err)
	}
	return updated, nil
}

func (s *SpellService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrSpellNotFound) {
			return notFound("spell", id)
		}
		return fmt.Errorf("deleting spell: %w", err)
	}
	s.logger.Info("spell deleted", zap.Int64("id", id))
	return nil
}
