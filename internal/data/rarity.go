package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// RarityInfo is the per-tier tuning.
type RarityInfo struct {
	Key      world.Rarity `yaml:"key"`
	Mult     float64      `yaml:"mult"`
	OptCount int          `yaml:"opt_count"`
	InkSlots int          `yaml:"ink_slots"`
}

type rarityFile struct {
	Rarities []RarityInfo `yaml:"rarities"`
}

// RarityTable is indexed by world.Rarity.
type RarityTable struct {
	byRarity [world.RarityCount]RarityInfo
}

// Get returns the tuning for r.
func (t *RarityTable) Get(r world.Rarity) RarityInfo {
	if r >= world.RarityCount {
		r = world.RarityCount - 1
	}
	return t.byRarity[r]
}

// OptCount returns the option-slot cap of r.
func (t *RarityTable) OptCount(r world.Rarity) int { return t.Get(r).OptCount }

// MaxOptCount returns the highest option-slot cap of any tier.
func (t *RarityTable) MaxOptCount() int { return t.byRarity[world.RarityCount-1].OptCount }

func (t *RarityTable) Count() int { return len(t.byRarity) }

// LoadRarityTable loads rarities.yaml. Every tier must be listed exactly once.
func LoadRarityTable(fsys fs.FS) (*RarityTable, error) {
	var f rarityFile
	if err := loadYAML(fsys, "rarities.yaml", &f); err != nil {
		return nil, err
	}
	t := &RarityTable{}
	var seen [world.RarityCount]bool
	for _, r := range f.Rarities {
		if seen[r.Key] {
			return nil, fmt.Errorf("rarities.yaml: duplicate %s", r.Key)
		}
		seen[r.Key] = true
		t.byRarity[r.Key] = r
	}
	for r, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("rarities.yaml: missing %s", world.Rarity(r))
		}
	}
	return t, nil
}
