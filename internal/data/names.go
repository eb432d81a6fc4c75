package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

type nameFile struct {
	Prefixes []string            `yaml:"prefixes"`
	Names    map[string][]string `yaml:"names"`
}

// NameTable supplies display names for generated gear.
type NameTable struct {
	prefixes []string
	names    map[world.ItemType][]string
}

// Prefix returns the floor-tier prefix (floor/10, clamped).
func (t *NameTable) Prefix(floor int) string {
	i := floor / 10
	if i > len(t.prefixes)-1 {
		i = len(t.prefixes) - 1
	}
	if i < 0 {
		i = 0
	}
	return t.prefixes[i]
}

// Names returns the base names of an equipment type.
func (t *NameTable) Names(it world.ItemType) []string { return t.names[it] }

func (t *NameTable) Count() int { return len(t.names) }

// LoadNameTable loads item_names.yaml. Every equipment type needs a name.
func LoadNameTable(fsys fs.FS) (*NameTable, error) {
	var f nameFile
	if err := loadYAML(fsys, "item_names.yaml", &f); err != nil {
		return nil, err
	}
	if len(f.Prefixes) == 0 {
		return nil, fmt.Errorf("item_names.yaml: no prefixes")
	}
	t := &NameTable{prefixes: f.Prefixes, names: make(map[world.ItemType][]string)}
	for key, list := range f.Names {
		var it world.ItemType
		if err := it.UnmarshalText([]byte(key)); err != nil {
			return nil, fmt.Errorf("item_names.yaml: %w", err)
		}
		t.names[it] = list
	}
	for _, it := range world.EquipmentTypes {
		if len(t.names[it]) == 0 {
			return nil, fmt.Errorf("item_names.yaml: no names for %s", it)
		}
	}
	return t, nil
}
