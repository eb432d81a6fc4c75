package gen

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/world"
)

const (
	maxStoneAttempts = 100
	minDungeonFloors = 3
)

func (g *Generator) stoneRarity() world.Rarity {
	roll := g.rng.Float64()
	switch {
	case roll > 0.95:
		return world.Legendary
	case roll > 0.85:
		return world.Epic
	case roll > 0.65:
		return world.Rare
	case roll > 0.40:
		return world.Uncommon
	}
	return world.Common
}

// MagicStone creates a dungeon key for floor. Each risk drawn is paired with
// one compatible reward; no modifier appears twice.
func (g *Generator) MagicStone(floor int) *world.Item {
	stones := g.tables.Stones
	rarity := g.stoneRarity()
	modCount := max(1, g.randInt(1, g.tables.Rarities.OptCount(rarity)))

	used := make(map[world.StoneMod]bool)
	var mods []world.StoneRoll
	roll := func(m world.StoneMod) {
		r := stones.Range(m)
		mods = append(mods, world.StoneRoll{Mod: m, Value: g.randInt(r.Min, r.Max)})
		used[m] = true
	}

	for attempts := 0; len(mods) < modCount && attempts < maxStoneAttempts; attempts++ {
		var risks []world.StoneMod
		for _, m := range stones.Risks() {
			if !used[m] {
				risks = append(risks, m)
			}
		}
		if len(risks) == 0 {
			break
		}
		risk := risks[g.pick(len(risks))]
		roll(risk)

		var rewards []world.StoneMod
		for _, m := range stones.RewardsFor(risk) {
			if !used[m] {
				rewards = append(rewards, m)
			}
		}
		if len(rewards) > 0 {
			roll(rewards[g.pick(len(rewards))])
		}
	}

	depth := 5 + g.randInt(0, 5)
	for _, m := range mods {
		switch m.Mod {
		case world.ModFloorAdd:
			depth += m.Value
		case world.ModFloorSub:
			depth -= m.Value
		}
	}

	return &world.Item{
		ID:     g.newID(),
		Type:   world.MagicStone,
		Name:   fmt.Sprintf("Magic Stone Lv.%d", floor),
		Rarity: rarity,
		Power:  floor,
		Stone: &world.StoneData{
			Tier:     floor,
			MaxFloor: max(minDungeonFloors, depth),
			Mods:     mods,
		},
	}
}
