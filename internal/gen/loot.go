package gen

import (
	"fmt"
	"math"

	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/world"
)

// Cumulative upper bounds of the loot type roll.
var lootTypeRanges = []struct {
	below float64
	typ   world.ItemType
}{
	{0.30, world.Weapon},
	{0.55, world.Armor},
	{0.60, world.Amulet},
	{0.63, world.Ring},
	{0.66, world.Belt},
	{0.69, world.Feet},
	{0.80, world.SkillBook},
	{0.85, world.InkPot},
}

var attrLabels = map[world.Stat]string{
	world.StatStr: "Strength",
	world.StatDex: "Dexterity",
	world.StatInt: "Intellect",
}

const (
	minSkillLevel = 1
	maxSkillLevel = 50
)

// lootRarity rolls a rarity. qual_rarity lowers every threshold.
func (g *Generator) lootRarity(mods world.Mods) world.Rarity {
	roll := g.rng.Float64()
	boost := float64(mods.Get(world.QualRarity)) / 100
	switch {
	case roll > 0.98-boost*0.1:
		return world.Legendary
	case roll > 0.90-boost*0.2:
		return world.Epic
	case roll > 0.75-boost*0.3:
		return world.Rare
	case roll > 0.50-boost*0.3:
		return world.Uncommon
	}
	return world.Common
}

// Loot creates one drop for a floor. stoneTier anchors the level of skill
// books; zero means no stone and level 1.
func (g *Generator) Loot(floor int, mods world.Mods, stoneTier int) *world.Item {
	rarity := g.lootRarity(mods)

	typeRoll := g.rng.Float64()
	typ := world.ItemTypeCount
	for _, r := range lootTypeRanges {
		if typeRoll < r.below {
			typ = r.typ
			break
		}
	}
	switch typ {
	case world.InkPot:
		return g.Ink(floor)
	case world.ItemTypeCount:
		return g.EquipmentItem(floor)
	case world.SkillBook:
		return g.skillBook(floor, rarity, stoneTier)
	}
	return g.equipment(floor, typ, rarity, mods)
}

func (g *Generator) itemPower(floor int, rarity world.Rarity) float64 {
	return float64(floor) * 1.5 * g.tables.Rarities.Get(rarity).Mult
}

// requirement is the attribute gate of gear with the given power.
func (g *Generator) requirement(power float64) int {
	return int(math.Floor(power/3)) + g.randInt(5, 15)
}

// equipment builds a gear item of type typ.
func (g *Generator) equipment(floor int, typ world.ItemType, rarity world.Rarity, mods world.Mods) *world.Item {
	power := g.itemPower(floor, rarity)
	names := g.tables.Names.Names(typ)
	name := names[g.pick(len(names))]
	fl := func(v float64) int { return int(math.Floor(v)) }

	var base world.BaseStats
	var req world.Attrs
	switch typ {
	case world.Weapon:
		base.Atk = fl(power*float64(g.randInt(8, 12))/10) + 1
		req.Str = g.requirement(power)
	case world.Armor:
		base.Def = fl(power*float64(g.randInt(8, 12))/20) + 1
		base.HP = fl(power * 2)
		req.Str = g.requirement(power)
	case world.Amulet:
		attrs := []world.Stat{world.StatStr, world.StatDex, world.StatInt}
		s := attrs[g.pick(len(attrs))]
		v := fl(power / 8)
		switch s {
		case world.StatStr:
			base.Str = v
		case world.StatDex:
			base.Dex = v
		default:
			base.Int = v
		}
		name = fmt.Sprintf("%s of %s", name, attrLabels[s])
		req.Int = g.requirement(power)
	case world.Ring:
		base.Dex = fl(power / 12)
		base.Int = fl(power / 12)
		req.Dex = g.requirement(power)
	case world.Belt:
		base.Str = fl(power / 10)
		base.HP = fl(power * 1.5)
		req.Str = g.requirement(power)
	case world.Feet:
		base.Def = fl(power*float64(g.randInt(5, 8))/20) + 1
		base.Dex = fl(power / 12)
		req.Dex = g.requirement(power)
	}

	return &world.Item{
		ID:       g.newID(),
		Type:     typ,
		Name:     g.tables.Names.Prefix(floor) + " " + name,
		Rarity:   rarity,
		Power:    fl(power),
		Base:     base,
		Options:  g.Options(rarity, power, typ, mods),
		Required: req,
	}
}

// skillBook builds a skill item. Its level follows the stone tier with
// -2..+8 jitter.
func (g *Generator) skillBook(floor int, rarity world.Rarity, stoneTier int) *world.Item {
	power := g.itemPower(floor, rarity)
	templates := g.tables.Skills.ForRarity(rarity)
	tpl := templates[g.pick(len(templates))]

	level := minSkillLevel
	if stoneTier > 0 {
		level = min(maxSkillLevel, max(minSkillLevel, stoneTier+g.randInt(-2, 8)))
	}

	sd := skillData(tpl, level, power)
	return &world.Item{
		ID:       g.newID(),
		Type:     world.SkillBook,
		Name:     fmt.Sprintf("%s Lv.%d", tpl.Name, level),
		Rarity:   rarity,
		Power:    int(math.Floor(power)),
		Required: world.Attrs{Int: level * 3},
		Skill:    sd,
		InkSlots: g.tables.Rarities.Get(rarity).InkSlots,
	}
}

// skillData scales a template to a skill level.
func skillData(tpl data.SkillTemplate, level int, power float64) *world.SkillData {
	sd := &world.SkillData{
		Template:  tpl.ID,
		Kind:      tpl.Kind,
		Element:   tpl.Element,
		Power:     tpl.Power,
		Cooldown:  tpl.Cooldown,
		MPCost:    tpl.MPCost,
		Duration:  tpl.Duration,
		Buff:      tpl.Buff,
		BuffValue: tpl.BuffValue,
		Level:     level,
	}
	switch tpl.Kind {
	case world.SkillAttack:
		sd.Power = tpl.Power*(1+float64(level-1)*0.05) + power*0.01
		sd.MPCost = int(math.Floor(float64(tpl.MPCost) * (1 + float64(level-1)*0.1)))
	case world.SkillHeal:
		sd.Power = tpl.Power + math.Floor(power/2)*float64(level)
	}
	return sd
}

// Ink creates a loose ink. Rare inks carry a special effect and a penalty.
func (g *Generator) Ink(floor int) *world.Item {
	rarity := world.Common
	if g.rng.Float64() > 0.9 {
		rarity = world.Rare
	}
	var tpl data.InkTemplate
	if rarity == world.Rare || g.rng.Float64() > 0.8 {
		rarity = world.Rare
		tpl = g.tables.Inks.Rare[g.pick(len(g.tables.Inks.Rare))]
	} else {
		tpl = g.tables.Inks.Basic[g.pick(len(g.tables.Inks.Basic))]
	}

	ink := world.Ink{
		Name:    tpl.Label + " Ink",
		Rarity:  rarity,
		Effects: append([]world.InkEffect(nil), tpl.Effects...),
	}
	return &world.Item{
		ID:     g.newID(),
		Type:   world.InkPot,
		Name:   ink.Name,
		Rarity: rarity,
		Power:  floor,
		Ink:    &ink,
	}
}
