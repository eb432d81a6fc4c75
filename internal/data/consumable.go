package data

import (
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// ConsumableTemplate is an equipment-consumable blueprint. Only the field
// matching its kind is set.
type ConsumableTemplate struct {
	Name      string        `yaml:"name"`
	Rarity    world.Rarity  `yaml:"rarity"`
	Floor     int           `yaml:"floor"`
	Mult      float64       `yaml:"mult"`
	PowerMult float64       `yaml:"power_mult"`
	Element   world.Element `yaml:"element"`
	Stat      world.Stat    `yaml:"stat"`
	Value     int           `yaml:"value"`
	Slots     int           `yaml:"slots"`
	Upgrades  int           `yaml:"upgrades"`
}

type consumableFile struct {
	Enhancement   []ConsumableTemplate `yaml:"enhancement"`
	Enchant       []ConsumableTemplate `yaml:"enchant"`
	Element       []ConsumableTemplate `yaml:"element"`
	Special       []ConsumableTemplate `yaml:"special"`
	Reroll        []ConsumableTemplate `yaml:"reroll"`
	OptionSlot    []ConsumableTemplate `yaml:"option_slot"`
	RarityUpgrade []ConsumableTemplate `yaml:"rarity_upgrade"`
}

// ConsumableTable groups templates by consumable item type.
type ConsumableTable struct {
	byType map[world.ItemType][]ConsumableTemplate
}

// Eligible lists templates of type it whose floor gate floor passes.
func (t *ConsumableTable) Eligible(it world.ItemType, floor int) []ConsumableTemplate {
	var out []ConsumableTemplate
	for _, c := range t.byType[it] {
		if floor >= c.Floor {
			out = append(out, c)
		}
	}
	return out
}

// All lists every template of type it.
func (t *ConsumableTable) All(it world.ItemType) []ConsumableTemplate { return t.byType[it] }

func (t *ConsumableTable) Count() int {
	n := 0
	for _, l := range t.byType {
		n += len(l)
	}
	return n
}

// LoadConsumableTable loads consumables.yaml.
func LoadConsumableTable(fsys fs.FS) (*ConsumableTable, error) {
	var f consumableFile
	if err := loadYAML(fsys, "consumables.yaml", &f); err != nil {
		return nil, err
	}
	return &ConsumableTable{byType: map[world.ItemType][]ConsumableTemplate{
		world.EnhancementStone:   f.Enhancement,
		world.EnchantScroll:      f.Enchant,
		world.ElementStone:       f.Element,
		world.SpecialStone:       f.Special,
		world.RerollScroll:       f.Reroll,
		world.OptionSlotStone:    f.OptionSlot,
		world.RarityUpgradeStone: f.RarityUpgrade,
	}}, nil
}
