package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkblade/hackslash/internal/world"
)

// ==================== Healer ====================

func TestHeal(t *testing.T) {
	deps := newTestDeps(t, 1)
	p := deps.World.Player
	p.HP, p.Gold = 100, 10

	require.NoError(t, deps.Shop.Heal())
	assert.Equal(t, p.MaxHP, p.HP)
	assert.Equal(t, 5, p.Gold, "level 1 costs 5")

	assert.ErrorIs(t, deps.Shop.Heal(), ErrFullHealth)

	p.HP, p.Gold = 1, 4
	assert.ErrorIs(t, deps.Shop.Heal(), ErrNotEnoughGold)
	assert.Equal(t, 1, p.HP)
	assert.Equal(t, 4, p.Gold)
}

// ==================== Shop ====================

func TestSell(t *testing.T) {
	tests := []struct {
		name  string
		item  *world.Item
		stone bool
		want  int
	}{
		{"magic stone by tier", magicStone(8, 5), true, 80},
		{"equipment by power", &world.Item{ID: "sword", Type: world.Weapon, Name: "Sword", Power: 42}, false, 84},
		{"stack by units", &world.Item{ID: "stones", Type: world.EnhancementStone, Name: "Stone", Rarity: world.Uncommon, Count: 3, Mult: 0.1}, false, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, 1)
			ws := deps.World
			from := ws.Inv
			if tt.stone {
				from = ws.Stones
			}
			from.AddItem(tt.item)

			require.NoError(t, deps.Shop.Sell(tt.item.ID))
			assert.Equal(t, tt.want, ws.Player.Gold)
			assert.Nil(t, from.Find(tt.item.ID))
		})
	}
}

func TestSell_Unknown(t *testing.T) {
	deps := newTestDeps(t, 1)
	assert.ErrorIs(t, deps.Shop.Sell("missing"), ErrItemNotFound)
	assert.Zero(t, deps.World.Player.Gold)
}

// ==================== Warehouse ====================

func TestWarehouse(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	sword := ws.Inv.AddItem(gear(world.Common, 3))

	require.NoError(t, deps.Warehouse.Deposit(sword.ID))
	assert.Nil(t, ws.Inv.Find(sword.ID))
	assert.Same(t, sword, ws.Warehouse.Find(sword.ID))
	assert.ErrorIs(t, deps.Warehouse.Deposit(sword.ID), ErrItemNotFound)

	for !ws.Inv.IsFull() {
		ws.Inv.AddItem(gear(world.Common, 1))
	}
	assert.ErrorIs(t, deps.Warehouse.Withdraw(sword.ID), ErrInventoryFull)
	assert.NotNil(t, ws.Warehouse.Find(sword.ID))
}

// ==================== Progression ====================

func TestGainExp(t *testing.T) {
	deps := newTestDeps(t, 1)
	p := deps.World.Player

	assert.Zero(t, deps.Progress.GainExp(49))
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 49, p.Exp)

	p.HP = 1
	assert.Equal(t, 1, deps.Progress.GainExp(1))
	assert.Equal(t, 2, p.Level)
	assert.Zero(t, p.Exp)
	assert.Equal(t, 60, p.ExpToNext)
	assert.Equal(t, 3, p.StatPoints)
	assert.Equal(t, 1, p.SkillPoints)
	assert.Equal(t, p.MaxHP, p.HP)
}

func TestAllocateStat(t *testing.T) {
	deps := newTestDeps(t, 1)
	p := deps.World.Player
	p.StatPoints = 1

	assert.ErrorIs(t, deps.Progress.AllocateStat(world.StatAtk), ErrNotAttribute)
	require.NoError(t, deps.Progress.AllocateStat(world.StatStr))
	assert.Equal(t, 6, p.Attrs.Str)
	assert.Equal(t, 160, p.MaxHP)
	assert.Zero(t, p.StatPoints)
	assert.ErrorIs(t, deps.Progress.AllocateStat(world.StatStr), ErrNoStatPoints)
}

func TestLearnNode(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	p := ws.Player

	assert.ErrorIs(t, deps.Progress.LearnNode("nope"), ErrUnknownNode)
	assert.ErrorIs(t, deps.Progress.LearnNode("base_str_1"), ErrNoSkillPoints)

	p.SkillPoints = 2
	require.NoError(t, deps.Progress.LearnNode("base_str_1"))
	assert.Equal(t, 6, ws.Stats.Str)
	assert.Equal(t, 1, p.SkillPoints)
	assert.ErrorIs(t, deps.Progress.LearnNode("base_str_1"), ErrAlreadyLearned)
	assert.ErrorIs(t, deps.Progress.LearnNode("base_str_3"), ErrPrerequisite)
	assert.Equal(t, 1, p.SkillPoints)
}

// ==================== Equipment ====================

func TestEquip_RingsFillThenReplace(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	ring := func(id string) *world.Item {
		return ws.Inv.AddItem(&world.Item{ID: id, Type: world.Ring, Name: id, Base: world.BaseStats{Def: 1}})
	}
	ring("r1")
	ring("r2")
	ring("r3")

	require.NoError(t, deps.Equip.Equip("r1", world.SlotCount))
	require.NoError(t, deps.Equip.Equip("r2", world.SlotCount))
	assert.Equal(t, "r1", ws.Equip.Get(world.SlotRing1).ID)
	assert.Equal(t, "r2", ws.Equip.Get(world.SlotRing2).ID)
	assert.Equal(t, 3, ws.Stats.Def)

	require.NoError(t, deps.Equip.Equip("r3", world.SlotCount))
	assert.Equal(t, "r3", ws.Equip.Get(world.SlotRing1).ID)
	assert.NotNil(t, ws.Inv.Find("r1"), "replaced ring goes back to the bag")
}

func TestEquip_Rejections(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	heavy := ws.Inv.AddItem(&world.Item{ID: "heavy", Type: world.Weapon, Name: "Greatsword", Required: world.Attrs{Str: 10}})
	stone := ws.Inv.AddItem(consumable(world.EnhancementStone, 1, nil))

	assert.ErrorIs(t, deps.Equip.Equip(heavy.ID, world.SlotWeapon), ErrRequirements)
	assert.ErrorIs(t, deps.Equip.Equip(heavy.ID, world.SlotArmor), ErrWrongSlot)
	assert.ErrorIs(t, deps.Equip.Equip(stone.ID, world.SlotCount), ErrNotEquippable)
	assert.ErrorIs(t, deps.Equip.Equip("missing", world.SlotWeapon), ErrItemNotFound)

	ws.Player.Attrs.Str = 10
	deps.Equip.Recalc()
	require.NoError(t, deps.Equip.Equip(heavy.ID, world.SlotWeapon))
	assert.Equal(t, "Wooden Stick", ws.Inv.Items[len(ws.Inv.Items)-1].Name)
}

func TestUnequip(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World

	assert.ErrorIs(t, deps.Equip.Unequip(world.SlotAmulet), ErrSlotEmpty)
	for !ws.Inv.IsFull() {
		ws.Inv.AddItem(gear(world.Common, 1))
	}
	assert.ErrorIs(t, deps.Equip.Unequip(world.SlotWeapon), ErrInventoryFull)
	assert.NotNil(t, ws.Equip.Weapon())

	ws.Inv.RemoveItem(ws.Inv.Items[0].ID)
	require.NoError(t, deps.Equip.Unequip(world.SlotWeapon))
	assert.Nil(t, ws.Equip.Weapon())
	assert.Zero(t, ws.Stats.Atk)
}

func TestEquip_SkillTakesFirstFreeSlot(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	ws.Inv.AddItem(skillItem("a", world.SkillData{Kind: world.SkillAttack, Power: 1, Cooldown: 1}))
	ws.Inv.AddItem(skillItem("b", world.SkillData{Kind: world.SkillHeal, Power: 10, Cooldown: 1}))

	require.NoError(t, deps.Equip.Equip("a", world.SlotCount))
	require.NoError(t, deps.Equip.Equip("b", world.SlotCount))
	assert.Equal(t, "a", ws.Equip.Get(world.SlotSkill1).ID)
	assert.Equal(t, "b", ws.Equip.Get(world.SlotSkill2).ID)
	assert.Nil(t, ws.Equip.Get(world.SlotSkill3))
}

func TestEquip_SkillCooldownSurvivesSwap(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	ws.Inv.AddItem(skillItem("a", world.SkillData{Kind: world.SkillAttack, Power: 1, Cooldown: 3}))

	require.NoError(t, deps.Equip.Equip("a", world.SlotSkill1))
	ws.Cooldowns[0] = 2.5
	require.NoError(t, deps.Equip.Unequip(world.SlotSkill1))
	assert.InDelta(t, 2.5, ws.Cooldowns[0], 1e-9)
	require.NoError(t, deps.Equip.Equip("a", world.SlotSkill1))
	assert.InDelta(t, 2.5, ws.Cooldowns[0], 1e-9)
}

func TestAttachInk(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	book := skillItem("bolt", world.SkillData{Kind: world.SkillAttack, Power: 1})
	book.InkSlots = 1
	ws.Inv.AddItem(book)
	inkItem := func(id string) *world.Item {
		in := ink(world.InkEffect{Kind: world.InkPower, Value: 0.2})
		return ws.Inv.AddItem(&world.Item{ID: id, Type: world.InkPot, Name: "Power Ink", Ink: &in})
	}
	inkItem("i1")
	inkItem("i2")

	assert.ErrorIs(t, deps.Equip.AttachInk("i1", "i1"), ErrNotSkill)
	require.NoError(t, deps.Equip.AttachInk("i1", "bolt"))
	assert.Len(t, book.Inks, 1)
	assert.Nil(t, ws.Inv.Find("i1"))

	assert.ErrorIs(t, deps.Equip.AttachInk("i2", "bolt"), ErrInkSlotsFull)
	assert.NotNil(t, ws.Inv.Find("i2"))
	assert.ErrorIs(t, deps.Equip.AttachInk("bolt", "bolt"), ErrNotInk)
}
