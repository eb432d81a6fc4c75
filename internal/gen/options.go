package gen

import (
	"math"

	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/world"
)

// candidate is one drawable option blueprint.
type candidate struct {
	stat      world.Stat
	composite *data.Composite
}

func (c candidate) stats() []world.Stat {
	if c.composite != nil {
		return c.composite.Parts
	}
	return []world.Stat{c.stat}
}

func (c candidate) clashes(used map[world.Stat]bool) bool {
	for _, s := range c.stats() {
		if used[s] {
			return true
		}
	}
	return false
}

// pool returns the simple stats of an equipment type followed by its
// eligible composites.
func (g *Generator) pool(it world.ItemType) []candidate {
	stats := g.tables.Options.Pool(it)
	comps := g.tables.Options.CompositesFor(it)
	out := make([]candidate, 0, len(stats)+len(comps))
	for _, s := range stats {
		out = append(out, candidate{stat: s})
	}
	for i := range comps {
		out = append(out, candidate{composite: &comps[i]})
	}
	return out
}

// rollValue rolls the value of a simple stat. powerMult scales the
// power-derived part of the roll; bonusPct widens its upper bound.
func (g *Generator) rollValue(s world.Stat, power, powerMult float64, bonusPct int) int {
	switch {
	case s.IsRes():
		return g.randInt(5, 20)
	case s.IsPercent():
		return g.randInt(1, 10)
	case s.IsSkillLevel():
		return g.randInt(1, 5)
	case s == world.StatHPRegen:
		return g.randInt(1, 5)
	case s == world.StatMaxMP:
		return max(1, int(math.Floor(power*float64(g.randInt(3, 8))/100*powerMult)))
	}
	if sp, ok := g.tables.Options.SpecialFor(s); ok {
		return g.randInt(sp.Min, sp.Max)
	}

	val := max(1, int(math.Floor(power*float64(g.randInt(5, 15+bonusPct))/100*powerMult)))
	switch {
	case s == world.StatMaxHP:
		val *= 5
	case s.IsAttribute():
		val = max(1, val/2)
	}
	return val
}

func (g *Generator) roll(c candidate, power, powerMult float64, bonusPct int) world.Option {
	if c.composite == nil {
		return world.SimpleOption{Stat: c.stat, Value: g.rollValue(c.stat, power, powerMult, bonusPct)}
	}
	parts := make([]world.Effect, len(c.composite.Parts))
	for i, s := range c.composite.Parts {
		parts[i] = world.Effect{Stat: s, Value: g.rollValue(s, power, powerMult, bonusPct)}
	}
	return world.CompositeOption{Label: c.composite.Label, Parts: parts}
}

// RollOption rolls one simple option of stat s.
func (g *Generator) RollOption(s world.Stat, power int, powerMult float64) world.SimpleOption {
	return world.SimpleOption{Stat: s, Value: g.rollValue(s, float64(power), powerMult, 0)}
}

// RollFromPool draws one option for an item of type it whose stats are all
// absent from exclude. Reports false when the pool is exhausted.
func (g *Generator) RollFromPool(it world.ItemType, power int, powerMult float64, exclude []world.Stat) (world.Option, bool) {
	used := make(map[world.Stat]bool, len(exclude))
	for _, s := range exclude {
		used[s] = true
	}
	avail := g.available(g.pool(it), used)
	if len(avail) == 0 {
		return nil, false
	}
	return g.roll(avail[g.pick(len(avail))], float64(power), powerMult, 0), true
}

func (g *Generator) available(pool []candidate, used map[world.Stat]bool) []candidate {
	out := make([]candidate, 0, len(pool))
	for _, c := range pool {
		if !c.clashes(used) {
			out = append(out, c)
		}
	}
	return out
}

// Options rolls the option list of a new equipment item. The list holds at
// most the rarity's option count and never repeats a stat, composite parts
// included. A legendary item spends one of its slots on a special option.
func (g *Generator) Options(rarity world.Rarity, power float64, it world.ItemType, mods world.Mods) world.Options {
	count := g.tables.Rarities.OptCount(rarity)
	special := g.tables.Options.Special()
	withSpecial := rarity == world.Legendary && len(special) > 0 && count > 0
	regular := count
	if withSpecial {
		regular--
	}
	bonus := mods.Get(world.QualRarity) / 10

	pool := g.pool(it)
	used := make(map[world.Stat]bool, count+2)
	opts := make(world.Options, 0, count)
	for len(opts) < regular {
		avail := g.available(pool, used)
		if len(avail) == 0 {
			break
		}
		c := avail[g.pick(len(avail))]
		opts = append(opts, g.roll(c, power, 1, bonus))
		for _, s := range c.stats() {
			used[s] = true
		}
	}

	if withSpecial {
		var avail []data.SpecialOption
		for _, sp := range special {
			if !used[sp.Stat] {
				avail = append(avail, sp)
			}
		}
		if len(avail) > 0 {
			sp := avail[g.pick(len(avail))]
			opts = append(opts, world.SimpleOption{Stat: sp.Stat, Value: g.randInt(sp.Min, sp.Max), Special: true})
		}
	}
	return opts
}
