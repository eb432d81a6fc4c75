package system

import (
	"fmt"
	"math"

	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/world"
)

// StatInput is everything the aggregator reads.
type StatInput struct {
	Level   int
	Attrs   world.Attrs
	Equip   *world.Equipment
	Buffs   []world.Buff
	Learned map[string]int
	Tree    *data.SkillTreeTable
}

// deferredMult is a whole-pool multiplier applied after flat sums.
type deferredMult struct {
	mp    bool
	value float64 // 0.05 = +5%
}

// accumulator is the flat stage of the aggregation.
type accumulator struct {
	str, dex, intel int
	atk, def        int
	hp, mp          int

	evade, crit, critDmg, dmgMult int
	vamp, gold, exp, hpRegen      int
	cdSpeed                       float64

	res        [world.ElementCount]int
	skillLevel [world.ElementCount]int
	elementDmg [world.ElementCount]float64

	deferred []deferredMult
}

func floorMul(v int, f float64) int { return int(math.Floor(float64(v) * f)) }

type optionFn func(a *accumulator, v int)

type effectFn func(a *accumulator, v float64)

type buffFn func(a *accumulator, v float64)

var (
	optionApply [world.StatCount]optionFn
	treeApply   [world.EffectKindCount]effectFn
	buffApply   [world.BuffTypeCount]buffFn
)

// itemLocal options scale their own item's base stats in the per-item
// stage and contribute nothing to the flat sums.
func itemLocal(*accumulator, int) {}

func init() {
	optionApply = [world.StatCount]optionFn{
		world.StatStr:         func(a *accumulator, v int) { a.str += v },
		world.StatDex:         func(a *accumulator, v int) { a.dex += v },
		world.StatInt:         func(a *accumulator, v int) { a.intel += v },
		world.StatAtk:         func(a *accumulator, v int) { a.atk += v },
		world.StatDef:         func(a *accumulator, v int) { a.def += v },
		world.StatMaxHP:       func(a *accumulator, v int) { a.hp += v },
		world.StatMaxMP:       func(a *accumulator, v int) { a.mp += v },
		world.StatEvade:       func(a *accumulator, v int) { a.evade += v },
		world.StatCrit:        func(a *accumulator, v int) { a.crit += v },
		world.StatCritMult:    func(a *accumulator, v int) { a.crit += v },
		world.StatCritDmg:     func(a *accumulator, v int) { a.critDmg += v },
		world.StatCritDmgMult: func(a *accumulator, v int) { a.critDmg += v },
		world.StatDmgMult:     func(a *accumulator, v int) { a.dmgMult += v },
		world.StatVamp:        func(a *accumulator, v int) { a.vamp += v },
		world.StatGold:        func(a *accumulator, v int) { a.gold += v },
		world.StatExp:         func(a *accumulator, v int) { a.exp += v },
		world.StatHPRegen:     func(a *accumulator, v int) { a.hpRegen += v },
		world.StatAtkMult:     itemLocal,
		world.StatDefMult:     itemLocal,
		world.StatHPMult:      itemLocal,
		world.StatGlobalHPMult: func(a *accumulator, v int) {
			a.deferred = append(a.deferred, deferredMult{value: float64(v) / 100})
		},
		world.StatGlobalMPMult: func(a *accumulator, v int) {
			a.deferred = append(a.deferred, deferredMult{mp: true, value: float64(v) / 100})
		},
	}
	for _, el := range world.Elements {
		optionApply[world.ResStat(el)] = func(a *accumulator, v int) { a.res[el] += v }
		optionApply[world.SkillLevelStat(el)] = func(a *accumulator, v int) { a.skillLevel[el] += v }
	}

	treeApply = [world.EffectKindCount]effectFn{
		world.EffStr:      func(a *accumulator, v float64) { a.str += int(v) },
		world.EffDex:      func(a *accumulator, v float64) { a.dex += int(v) },
		world.EffInt:      func(a *accumulator, v float64) { a.intel += int(v) },
		world.EffAtkMult:  func(a *accumulator, v float64) { a.atk = floorMul(a.atk, 1+v) },
		world.EffDefMult:  func(a *accumulator, v float64) { a.def = floorMul(a.def, 1+v) },
		world.EffHPMult:   func(a *accumulator, v float64) { a.hp = floorMul(a.hp, 1+v) },
		world.EffCrit:     func(a *accumulator, v float64) { a.crit = min(100, a.crit+int(v)) },
		world.EffVamp:     func(a *accumulator, v float64) { a.vamp += int(v) },
		world.EffCdSpeed:  func(a *accumulator, v float64) { a.cdSpeed += v },
		world.EffGoldMult: func(a *accumulator, v float64) { a.gold += int(v) },
		world.EffExpMult:  func(a *accumulator, v float64) { a.exp += int(v) },
		world.EffCritDmg:  func(a *accumulator, v float64) { a.critDmg += int(v) },
		world.EffResAll: func(a *accumulator, v float64) {
			for _, el := range world.Elements {
				a.res[el] += int(v)
			}
		},
		world.EffAllStats: func(a *accumulator, v float64) {
			a.str = floorMul(a.str, 1+v)
			a.dex = floorMul(a.dex, 1+v)
			a.intel = floorMul(a.intel, 1+v)
		},
		world.EffMaxMPMult: func(a *accumulator, v float64) {
			a.deferred = append(a.deferred, deferredMult{mp: true, value: v})
		},
		world.EffAllElementDmg: func(a *accumulator, v float64) {
			for _, el := range world.Elements {
				a.elementDmg[el] += v
			}
		},
	}
	for i, el := range world.Elements {
		treeApply[world.EffResFire+world.EffectKind(i)] = func(a *accumulator, v float64) { a.res[el] += int(v) }
		treeApply[world.EffFireDmg+world.EffectKind(i)] = func(a *accumulator, v float64) { a.elementDmg[el] += v }
	}

	buffApply = [world.BuffTypeCount]buffFn{
		world.BuffAtk:     func(a *accumulator, v float64) { a.atk = floorMul(a.atk, 1+v) },
		world.BuffDef:     func(a *accumulator, v float64) { a.def += int(v) },
		world.BuffCdSpeed: func(a *accumulator, v float64) { a.cdSpeed += v },
		world.BuffCrit:    func(a *accumulator, v float64) { a.crit += int(v) },
		world.BuffHPRegen: func(a *accumulator, v float64) { a.hpRegen += int(v) },
	}

	for s, fn := range optionApply {
		if fn == nil {
			panic(fmt.Sprintf("stats: option %s has no apply rule", world.Stat(s)))
		}
	}
	for k, fn := range treeApply {
		if fn == nil {
			panic(fmt.Sprintf("stats: tree effect %s has no apply rule", world.EffectKind(k)))
		}
	}
	for b, fn := range buffApply {
		if fn == nil {
			panic(fmt.Sprintf("stats: buff %s has no apply rule", world.BuffType(b)))
		}
	}
}

// CalcStats derives the combat profile. Pure: the same input always gives
// the same output and nothing in the input is modified.
func CalcStats(in StatInput) world.Stats {
	a := &accumulator{str: in.Attrs.Str, dex: in.Attrs.Dex, intel: in.Attrs.Int}

	if in.Equip != nil {
		for _, it := range in.Equip.Gear() {
			a.addItem(it)
		}
	}

	for _, b := range in.Buffs {
		if b.Type < world.BuffTypeCount {
			buffApply[b.Type](a, b.Value)
		}
	}

	if in.Tree != nil {
		for _, n := range in.Tree.Nodes() {
			if in.Learned[n.ID] <= 0 {
				continue
			}
			a.applyTree(n.Effect)
			if n.Bonus != nil {
				a.applyTree(*n.Bonus)
			}
			if n.Penalty != nil {
				a.applyTree(*n.Penalty)
			}
		}
	}

	return a.finalize(in.Level)
}

// addItem applies one equipped item: local multipliers on its own base
// stats first, then its options into the flat sums.
func (a *accumulator) addItem(it *world.Item) {
	var atkPct, defPct, hpPct int
	for _, o := range it.Options {
		for _, e := range o.Effects() {
			switch e.Stat {
			case world.StatAtkMult:
				atkPct += e.Value
			case world.StatDefMult:
				defPct += e.Value
			case world.StatHPMult:
				hpPct += e.Value
			}
		}
	}
	b := it.Base
	a.atk += floorMul(b.Atk, 1+float64(atkPct)/100)
	a.def += floorMul(b.Def, 1+float64(defPct)/100)
	a.hp += floorMul(b.HP, 1+float64(hpPct)/100)
	a.str += b.Str
	a.dex += b.Dex
	a.intel += b.Int

	for _, o := range it.Options {
		for _, e := range o.Effects() {
			if e.Stat < world.StatCount {
				optionApply[e.Stat](a, e.Value)
			}
		}
	}
}

func (a *accumulator) applyTree(e data.TreeEffect) {
	if e.Kind < world.EffectKindCount {
		treeApply[e.Kind](a, e.Value)
	}
}

func (a *accumulator) finalize(level int) world.Stats {
	maxHP := 100 + a.str*10 + a.hp
	maxMP := 50 + (level-1)*5 + a.intel*3 + a.mp
	for _, d := range a.deferred {
		if d.mp {
			maxMP = floorMul(maxMP, 1+d.value)
		} else {
			maxHP = floorMul(maxHP, 1+d.value)
		}
	}
	return world.Stats{
		Str:        a.str,
		Dex:        a.dex,
		Int:        a.intel,
		Atk:        a.atk,
		Def:        a.def,
		MaxHP:      max(1, maxHP),
		MaxMP:      max(0, maxMP),
		Crit:       min(75, a.crit),
		CritDmg:    a.critDmg,
		Vamp:       a.vamp,
		GoldMult:   a.gold,
		ExpMult:    a.exp,
		CdSpeed:    a.cdSpeed,
		Evade:      min(75, a.dex+a.evade),
		DmgMult:    a.dmgMult,
		HPRegen:    a.hpRegen,
		Res:        a.res,
		SkillLevel: a.skillLevel,
		ElementDmg: a.elementDmg,
	}
}

// StatsOf builds the aggregator input from the live state.
func StatsOf(st *world.State, tree *data.SkillTreeTable) world.Stats {
	p := st.Player
	return CalcStats(StatInput{
		Level:   p.Level,
		Attrs:   p.Attrs,
		Equip:   &st.Equip,
		Buffs:   p.Buffs,
		Learned: p.LearnedSkills,
		Tree:    tree,
	})
}
