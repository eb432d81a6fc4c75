package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/world"
)

func TestCalcStats_BareCharacter(t *testing.T) {
	st := CalcStats(StatInput{Level: 1, Attrs: world.Attrs{Str: 5, Dex: 5, Int: 0}, Equip: &world.Equipment{}})

	assert.Equal(t, 0, st.Atk)
	assert.Equal(t, 0, st.Def)
	assert.Equal(t, 150, st.MaxHP)
	assert.Equal(t, 50, st.MaxMP)
	assert.Equal(t, 0, st.Crit)
	assert.Equal(t, 5, st.Evade)
}

func TestCalcStats_Equipment(t *testing.T) {
	var eq world.Equipment
	eq.Set(world.SlotWeapon, &world.Item{
		ID: "w", Type: world.Weapon, Base: world.BaseStats{Atk: 10, Str: 2},
		Options: world.Options{world.SimpleOption{Stat: world.StatAtkMult, Value: 10}},
	})
	eq.Set(world.SlotRing1, &world.Item{
		ID: "r", Type: world.Ring,
		Options: world.Options{
			world.CompositeOption{Label: "Guardian", Parts: []world.Effect{{Stat: world.StatDef, Value: 2}, {Stat: world.StatMaxHP, Value: 15}}},
			world.SimpleOption{Stat: world.StatResFire, Value: 12},
		},
	})
	eq.Set(world.SlotAmulet, &world.Item{
		ID: "a", Type: world.Amulet,
		Options: world.Options{world.SimpleOption{Stat: world.StatGlobalHPMult, Value: 10}},
	})

	st := CalcStats(StatInput{Level: 1, Attrs: world.Attrs{Str: 5, Dex: 5, Int: 5}, Equip: &eq})

	assert.Equal(t, 11, st.Atk, "item-local atk_mult scales its own base")
	assert.Equal(t, 2, st.Def)
	assert.Equal(t, 7, st.Str)
	// (100 + 7×10 + 15) × 1.1
	assert.Equal(t, 203, st.MaxHP)
	assert.Equal(t, 12, st.Res[world.Fire])
	assert.Zero(t, st.Res[world.Ice])
}

func TestCalcStats_Caps(t *testing.T) {
	var eq world.Equipment
	eq.Set(world.SlotRing1, &world.Item{ID: "r", Type: world.Ring, Options: world.Options{
		world.SimpleOption{Stat: world.StatCrit, Value: 60},
		world.SimpleOption{Stat: world.StatCritMult, Value: 30},
		world.SimpleOption{Stat: world.StatEvade, Value: 50},
	}})
	st := CalcStats(StatInput{Level: 1, Attrs: world.Attrs{Dex: 40}, Equip: &eq})

	assert.Equal(t, 75, st.Crit)
	assert.Equal(t, 75, st.Evade)
}

func TestCalcStats_Buffs(t *testing.T) {
	var eq world.Equipment
	eq.Set(world.SlotWeapon, &world.Item{ID: "w", Type: world.Weapon, Base: world.BaseStats{Atk: 10}})
	st := CalcStats(StatInput{
		Level: 1,
		Equip: &eq,
		Buffs: []world.Buff{
			{Type: world.BuffAtk, Value: 0.5},
			{Type: world.BuffDef, Value: 20},
			{Type: world.BuffCdSpeed, Value: 0.5},
			{Type: world.BuffHPRegen, Value: 3},
		},
	})

	assert.Equal(t, 15, st.Atk)
	assert.Equal(t, 20, st.Def)
	assert.InDelta(t, 0.5, st.CdSpeed, 1e-9)
	assert.Equal(t, 3, st.HPRegen)
}

func TestCalcStats_SkillTree(t *testing.T) {
	tree := data.MustDefault().SkillTree
	learned := map[string]int{
		"base_str_1": 1, "base_str_2": 1, "base_str_3": 1, "base_str_4": 1, "base_str_5": 1,
		"base_dex_1": 1, "base_dex_2": 1, "base_dex_3": 1, "base_dex_4": 1, "base_dex_5": 1,
		"crit_master_1": 1, "crit_master_2": 1, "crit_master_3": 1,
		"res_all_1": 1,
	}
	st := CalcStats(StatInput{Level: 1, Attrs: world.Attrs{Str: 5, Dex: 5, Int: 5}, Equip: &world.Equipment{}, Learned: learned, Tree: tree})

	assert.Equal(t, 10, st.Str)
	assert.Equal(t, 200, st.MaxHP)
	assert.Equal(t, 15, st.Crit)
	assert.Equal(t, 10, st.Evade)
	for _, el := range world.Elements {
		assert.Equal(t, 5, st.Res[el], el.String())
	}

	// unlearned nodes (value 0) contribute nothing
	learned["base_int_1"] = 0
	assert.Equal(t, st, CalcStats(StatInput{Level: 1, Attrs: world.Attrs{Str: 5, Dex: 5, Int: 5}, Equip: &world.Equipment{}, Learned: learned, Tree: tree}))
}

func TestCalcStats_Pure(t *testing.T) {
	var eq world.Equipment
	weapon := &world.Item{
		ID: "w", Type: world.Weapon, Base: world.BaseStats{Atk: 7, HP: 9},
		Options: world.Options{world.SimpleOption{Stat: world.StatHPMult, Value: 5}, world.SimpleOption{Stat: world.StatGlobalMPMult, Value: 8}},
	}
	eq.Set(world.SlotWeapon, weapon)
	before := weapon.Clone()
	in := StatInput{Level: 4, Attrs: world.Attrs{Str: 5, Dex: 5, Int: 5}, Equip: &eq, Buffs: []world.Buff{{Type: world.BuffCrit, Value: 10}}}

	first := CalcStats(in)
	assert.Equal(t, first, CalcStats(in))
	assert.Equal(t, before, weapon)
	assert.Equal(t, 10, first.Crit)
	// (50 + 3×5 + 5×3) × 1.08
	assert.Equal(t, 86, first.MaxMP)
}
