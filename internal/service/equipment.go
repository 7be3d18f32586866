package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

// EquipmentStore defines the catalog persistence operations required by
// EquipmentService.
type EquipmentStore interface {
	Create(ctx context.Context, e catalog.Equipment) (catalog.Equipment, error)
	GetByID(ctx context.Context, id int64) (catalog.Equipment, error)
	List(ctx context.Context) ([]catalog.Equipment, error)
	ListByType(ctx context.Context, t catalog.EquipmentType) ([]catalog.Equipment, error)
	SearchByName(ctx context.Context, name string) ([]catalog.Equipment, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, e catalog.Equipment) (catalog.Equipment, error)
	Delete(ctx context.Context, id int64) error
}

// EquipmentService manages the shared equipment catalog. Characters copy
// catalog entries into owned instances rather than referencing them, so
// catalog edits never rewrite an existing sheet.
type EquipmentService struct {
	store  EquipmentStore
	logger *zap.Logger
}

func NewEquipmentService(store EquipmentStore, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{store: store, logger: logger}
}

// Create adds an equipment template to the catalog.
//
// Postcondition: Returns Validation on bad input and Duplicate when an item
// with the same name already exists.
func (s *EquipmentService) Create(ctx context.Context, item catalog.Equipment) (catalog.Equipment, error) {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := item.Validate(); err != nil {
		return catalog.Equipment{}, invalid(err)
	}
	item.ID = 0

	created, err := s.store.Create(ctx, item)
	if err != nil {
		if errors.Is(err, postgres.ErrEquipmentNameTaken) {
			return catalog.Equipment{}, duplicate("equipment", item.Name)
		}
		return catalog.Equipment{}, fmt.Errorf("creating equipment: %w", err)
	}

	s.logger.Info("equipment created", zap.String("name", created.Name), zap.Int64("id", created.ID))
	return created, nil
}

func (s *EquipmentService) GetByID(ctx context.Context, id int64) (catalog.Equipment, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrEquipmentNotFound) {
			return catalog.Equipment{}, notFound("equipment", id)
		}
		return catalog.Equipment{}, fmt.Errorf("loading equipment: %w", err)
	}
	return item, nil
}

func (s *EquipmentService) List(ctx context.Context) ([]catalog.Equipment, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	return items, nil
}

func (s *EquipmentService) ListByType(ctx context.Context, t catalog.EquipmentType) ([]catalog.Equipment, error) {
	if !catalog.ValidEquipmentType(t) {
		return nil, invalid(fmt.Errorf("unknown equipment type %q", t))
	}
	items, err := s.store.ListByType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("listing equipment by type: %w", err)
	}
	return items, nil
}

func (s *EquipmentService) SearchByName(ctx context.Context, name string) ([]catalog.Equipment, error) {
	items, err := s.store.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("searching equipment: %w", err)
	}
	return items, nil
}

// Update replaces a catalog entry in full. Owned copies on character sheets
// are unaffected.
func (s *EquipmentService) Update(ctx context.Context, item catalog.Equipment) (catalog.Equipment, error) {
	if err := item.Validate(); err != nil {
		return catalog.Equipment{}, invalid(err)
	}

	updated, err := s.store.Update(ctx, item)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrEquipmentNotFound):
			return catalog.Equipment{}, notFound("equipment", item.ID)
		case errors.Is(err, postgres.ErrEquipmentNameTaken):
			return catalog.Equipment{}, duplicate("equipment", item.Name)
		}
		return catalog.Equipment{}, fmt.Errorf("updating equipment: %w", err)
	}
	return updated, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrEquipmentNotFound) {
			return notFound("equipment", id)
		}
		return fmt.Errorf("deleting equipment: %w", err)
	}
	s.logger.Info("equipment deleted", zap.Int64("id", id))
	return nil
}
