package gen

import (
	"github.com/inkblade/hackslash/internal/world"
)

// Cumulative dispatch of equipment consumables. A roll tries its own kind
// first and falls through to the next kinds when nothing is floor-eligible.
var consumableDispatch = []struct {
	below float64
	typ   world.ItemType
}{
	{0.30, world.EnhancementStone},
	{0.50, world.EnchantScroll},
	{0.60, world.RerollScroll},
	{0.70, world.ElementStone},
	{0.80, world.SpecialStone},
	{0.90, world.OptionSlotStone},
	{1.00, world.RarityUpgradeStone},
}

// EquipmentItem creates one equipment consumable for floor. Never nil: when no
// template qualifies a small enhancement stone is returned.
func (g *Generator) EquipmentItem(floor int) *world.Item {
	roll := g.rng.Float64()
	for _, d := range consumableDispatch {
		if roll >= d.below {
			continue
		}
		if it := g.Consumable(d.typ, floor); it != nil {
			return it
		}
	}
	return &world.Item{
		ID:     g.newID(),
		Type:   world.EnhancementStone,
		Name:   "Small Enhancement Stone",
		Rarity: world.Common,
		Mult:   0.05,
		Count:  1,
	}
}

// Consumable creates a consumable of type typ from the templates floor
// unlocks, or nil when none qualifies.
func (g *Generator) Consumable(typ world.ItemType, floor int) *world.Item {
	tpls := g.tables.Consumables.Eligible(typ, floor)
	if len(tpls) == 0 {
		return nil
	}
	t := tpls[g.pick(len(tpls))]
	return &world.Item{
		ID:        g.newID(),
		Type:      typ,
		Name:      t.Name,
		Rarity:    t.Rarity,
		Count:     1,
		Mult:      t.Mult,
		PowerMult: t.PowerMult,
		Element:   t.Element,
		Special:   t.Stat,
		Value:     t.Value,
		Slots:     t.Slots,
		Upgrades:  t.Upgrades,
	}
}
