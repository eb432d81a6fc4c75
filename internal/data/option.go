package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// Composite is a multi-stat option blueprint.
type Composite struct {
	Label string       `yaml:"label"`
	Parts []world.Stat `yaml:"parts"`
}

// SpecialOption is a special-pool blueprint with an explicit value range.
type SpecialOption struct {
	Stat world.Stat `yaml:"stat"`
	Min  int        `yaml:"min"`
	Max  int        `yaml:"max"`
}

type optionFile struct {
	Pools      map[string][]world.Stat `yaml:"pools"`
	Composites []Composite             `yaml:"composites"`
	Special    []SpecialOption         `yaml:"special"`
}

// OptionTable holds option pools.
type OptionTable struct {
	basic      []world.Stat
	pools      map[world.ItemType][]world.Stat
	composites []Composite
	special    []SpecialOption
}

// Pool returns the simple-option pool for an equipment type (the basic pool
// for anything else).
func (t *OptionTable) Pool(it world.ItemType) []world.Stat {
	if p, ok := t.pools[it]; ok {
		return p
	}
	return t.basic
}

// CompositesFor lists composites whose parts all belong to the type's pool.
func (t *OptionTable) CompositesFor(it world.ItemType) []Composite {
	pool := t.Pool(it)
	in := func(s world.Stat) bool {
		for _, p := range pool {
			if p == s {
				return true
			}
		}
		return false
	}
	var out []Composite
	for _, c := range t.composites {
		ok := true
		for _, part := range c.Parts {
			if !in(part) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// Special returns the special pool.
func (t *OptionTable) Special() []SpecialOption { return t.special }

// SpecialFor returns the special blueprint of s, if any.
func (t *OptionTable) SpecialFor(s world.Stat) (SpecialOption, bool) {
	for _, sp := range t.special {
		if sp.Stat == s {
			return sp, true
		}
	}
	return SpecialOption{}, false
}

func (t *OptionTable) Count() int { return len(t.pools) + len(t.composites) + len(t.special) }

// LoadOptionTable loads options.yaml.
func LoadOptionTable(fsys fs.FS) (*OptionTable, error) {
	var f optionFile
	if err := loadYAML(fsys, "options.yaml", &f); err != nil {
		return nil, err
	}
	t := &OptionTable{
		pools:      make(map[world.ItemType][]world.Stat),
		composites: f.Composites,
		special:    f.Special,
	}
	for key, pool := range f.Pools {
		if key == "basic" {
			t.basic = pool
			continue
		}
		var it world.ItemType
		if err := it.UnmarshalText([]byte(key)); err != nil {
			return nil, fmt.Errorf("options.yaml: %w", err)
		}
		if !it.IsEquipment() {
			return nil, fmt.Errorf("options.yaml: pool for non-equipment type %s", it)
		}
		t.pools[it] = pool
	}
	if len(t.basic) == 0 {
		return nil, fmt.Errorf("options.yaml: basic pool is required")
	}
	for _, sp := range t.special {
		if sp.Min > sp.Max {
			return nil, fmt.Errorf("options.yaml: special %s has min > max", sp.Stat)
		}
	}
	return t, nil
}
