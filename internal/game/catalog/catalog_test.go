package catalog

import "testing"

func TestSpell_Validate(t *testing.T) {
	valid := Spell{Name: "Fireball", Level: 3, School: Evocation}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]Spell{
		"empty name":     {Level: 3, School: Evocation},
		"level too high": {Name: "X", Level: 10, School: Evocation},
		"level negative": {Name: "X", Level: -1, School: Evocation},
		"unknown school": {Name: "X", Level: 1, School: "CHRONOMANCY"},
	}
	for name, s := range cases {
		if err := s.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSpell_Validate_CantripAllowed(t *testing.T) {
	s := Spell{Name: "Prestidigitation", Level: 0, School: Transmutation}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEquipment_Validate(t *testing.T) {
	valid := Equipment{Name: "Longsword", Quantity: 1, Type: Weapon}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]Equipment{
		"empty name":    {Quantity: 1, Type: Weapon},
		"zero quantity": {Name: "X", Quantity: 0, Type: Weapon},
		"unknown type":  {Name: "X", Quantity: 1, Type: "VEHICLE"},
	}
	for name, e := range cases {
		if err := e.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
