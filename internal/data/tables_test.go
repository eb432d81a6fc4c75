package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkblade/hackslash/internal/world"
)

func TestDefault_LoadsEveryTable(t *testing.T) {
	tb, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 5, tb.Rarities.Count())
	assert.Equal(t, 7, tb.Monsters.Count())
	assert.Equal(t, 10, tb.Skills.Count())
	assert.Equal(t, 5, tb.Inks.Count())
	assert.NotZero(t, tb.Options.Count())
	assert.Equal(t, 9, tb.Stones.Count())
	assert.Equal(t, 24, tb.Consumables.Count())
	assert.NotZero(t, tb.SkillTree.Count())
}

func TestRarityTable(t *testing.T) {
	tb := MustDefault()
	assert.Equal(t, 0, tb.Rarities.OptCount(world.Common))
	assert.Equal(t, 2, tb.Rarities.OptCount(world.Uncommon))
	assert.Equal(t, 5, tb.Rarities.MaxOptCount())
	assert.Equal(t, 7.0, tb.Rarities.Get(world.Legendary).Mult)
	assert.Equal(t, 3, tb.Rarities.Get(world.Rare).InkSlots)
}

func TestMonsterTable_ForFloor(t *testing.T) {
	tb := MustDefault()
	tests := []struct {
		floor int
		want  string
	}{
		{1, "Slime"},
		{5, "Slime"},
		{6, "Bat"},
		{10, "Bat"},
		{31, "Dragon"},
		{500, "Dragon"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tb.Monsters.ForFloor(tt.floor).Name, "floor %d", tt.floor)
	}
}

func TestSkillTable_ForRarity(t *testing.T) {
	tb := MustDefault()
	has := func(list []SkillTemplate, id string) bool {
		for _, s := range list {
			if s.ID == id {
				return true
			}
		}
		return false
	}
	assert.False(t, has(tb.Skills.ForRarity(world.Epic), "meteor"))
	assert.True(t, has(tb.Skills.ForRarity(world.Legendary), "meteor"))
	assert.True(t, has(tb.Skills.ForRarity(world.Common), "fireball"))

	berserk := tb.Skills.Get("berserk")
	require.NotNil(t, berserk)
	assert.Equal(t, world.SkillBuff, berserk.Kind)
	assert.Equal(t, world.BuffAtk, berserk.Buff)
}

func TestOptionTable_CompositesNeedWholePool(t *testing.T) {
	tb := MustDefault()
	labels := func(it world.ItemType) []string {
		var out []string
		for _, c := range tb.Options.CompositesFor(it) {
			out = append(out, c.Label)
		}
		return out
	}
	assert.Contains(t, labels(world.Weapon), "Warrior's Heart")
	assert.NotContains(t, labels(world.Weapon), "Guardian")
	assert.Contains(t, labels(world.Belt), "Spring of Life")
	assert.Contains(t, labels(world.Feet), "Gale")
}

func TestStoneTable_EveryRiskHasReward(t *testing.T) {
	tb := MustDefault()
	require.Len(t, tb.Stones.Risks(), 4)
	for _, risk := range tb.Stones.Risks() {
		assert.NotEmpty(t, tb.Stones.RewardsFor(risk), risk.String())
	}
	assert.Equal(t, 100, tb.Stones.Range(world.RiskHP).Max)
}

func TestConsumableTable_FloorGate(t *testing.T) {
	tb := MustDefault()
	assert.Len(t, tb.Consumables.Eligible(world.EnhancementStone, 1), 1)
	assert.Len(t, tb.Consumables.Eligible(world.EnhancementStone, 15), 4)
	assert.Empty(t, tb.Consumables.Eligible(world.RarityUpgradeStone, 14))
	assert.Len(t, tb.Consumables.Eligible(world.ElementStone, 12), 3)
}

func TestSkillTree_ExpandsChains(t *testing.T) {
	tb := MustDefault()

	n, ok := tb.SkillTree.Get("base_str_3")
	require.True(t, ok)
	assert.Equal(t, []string{"base_str_2"}, n.Requires)
	assert.Equal(t, world.EffStr, n.Effect.Kind)

	first, ok := tb.SkillTree.Get("atk_boost_1")
	require.True(t, ok)
	assert.Equal(t, []string{"base_str_5"}, first.Requires)

	b, ok := tb.SkillTree.Get("berserker")
	require.True(t, ok)
	require.NotNil(t, b.Penalty)
	assert.Equal(t, world.EffDefMult, b.Penalty.Kind)
	assert.Equal(t, -0.10, b.Penalty.Value)
}

func TestLoadDir_OverlaysEmbedded(t *testing.T) {
	dir := t.TempDir()
	body := "monsters:\n  - { name: Rat, icon: r, base_hp: 5, base_exp: 1, base_gold: 1 }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "monsters.yaml"), []byte(body), 0o644))

	tb, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Monsters.Count())
	assert.Equal(t, "Rat", tb.Monsters.ForFloor(40).Name)
	// files the directory lacks come from the embedded copy
	assert.Equal(t, 5, tb.Rarities.Count())
}

func TestLoadDir_RejectsUnknownEnum(t *testing.T) {
	dir := t.TempDir()
	body := "skills:\n  - { id: x, name: X, kind: summon, cooldown: 1 }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skills.yaml"), []byte(body), 0o644))

	_, err := LoadDir(dir)
	assert.Error(t, err)
}
