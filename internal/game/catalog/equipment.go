package catalog

import "fmt"

// EquipmentType classifies an equipment item.
type EquipmentType string

// Equipment type variants.
const (
	Weapon     EquipmentType = "WEAPON"
	Armor      EquipmentType = "ARMOR"
	Shield     EquipmentType = "SHIELD"
	Consumable EquipmentType = "CONSUMABLE"
	Tool       EquipmentType = "TOOL"
	Wondrous   EquipmentType = "WONDROUS"
	Gear       EquipmentType = "GEAR"
)

// ValidEquipmentType reports whether t is a known equipment type.
func ValidEquipmentType(t EquipmentType) bool {
	switch t {
	case Weapon, Armor, Shield, Consumable, Tool, Wondrous, Gear:
		return true
	}
	return false
}

// Equipment is a catalog equipment template. A character's equipment list
// holds its own owned copies, not references into the catalog.
type Equipment struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Quantity    int           `json:"quantity"`
	Weight      float64       `json:"weight"`
	Equipped    bool          `json:"equipped"`
	Attuned     bool          `json:"attuned"`
	Type        EquipmentType `json:"type"`

	// Weapon-specific fields, empty for non-weapons.
	Damage     string `json:"damage,omitempty"`
	DamageType string `json:"damageType,omitempty"`
	Properties string `json:"properties,omitempty"`
}

// Validate checks the item's input constraints.
func (e Equipment) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("equipment name must not be empty")
	}
	if e.Quantity < 1 {
		return fmt.Errorf("equipment quantity must be positive, got %d", e.Quantity)
	}
	if !ValidEquipmentType(e.Type) {
		return fmt.Errorf("unknown equipment type %q", e.Type)
	}
	return nil
}
