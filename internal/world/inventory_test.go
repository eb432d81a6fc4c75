package world

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enhanceStone(mult float64, r Rarity) *Item {
	return &Item{ID: NewItemID(), Type: EnhancementStone, Name: "Enhancement Stone", Rarity: r, Mult: mult, Count: 1}
}

func TestInventory_AddItemStacks(t *testing.T) {
	inv := NewInventory(2)

	first := inv.AddItem(enhanceStone(0.10, Uncommon))
	require.NotNil(t, first)
	same := inv.AddItem(enhanceStone(0.10, Uncommon))
	assert.Same(t, first, same)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 1, inv.Size())

	// different distinguishing value opens a new entry
	other := inv.AddItem(enhanceStone(0.15, Rare))
	require.NotNil(t, other)
	assert.Equal(t, 2, inv.Size())
	assert.True(t, inv.IsFull())

	// full, but a matching stack still accepts
	assert.True(t, inv.CanAdd(enhanceStone(0.10, Uncommon)))
	assert.False(t, inv.CanAdd(&Item{ID: NewItemID(), Type: Weapon}))
	assert.Nil(t, inv.AddItem(&Item{ID: NewItemID(), Type: Weapon}))
}

func TestInventory_GearNeverStacks(t *testing.T) {
	inv := NewInventory(5)
	inv.AddItem(&Item{ID: "a", Type: Ring, Rarity: Rare})
	inv.AddItem(&Item{ID: "b", Type: Ring, Rarity: Rare})
	assert.Equal(t, 2, inv.Size())
}

func TestInventory_TakeOne(t *testing.T) {
	inv := NewInventory(5)
	stack := inv.AddItem(enhanceStone(0.05, Common))
	inv.AddItem(enhanceStone(0.05, Common))

	one := inv.TakeOne(stack.ID)
	require.NotNil(t, one)
	assert.Equal(t, 1, one.Count)
	assert.NotEqual(t, stack.ID, one.ID)
	assert.Equal(t, 1, stack.Count)
	assert.Equal(t, 1, inv.Size())

	last := inv.TakeOne(stack.ID)
	assert.Same(t, stack, last)
	assert.Zero(t, inv.Size())
	assert.Nil(t, inv.TakeOne(stack.ID))
}

func TestOptions_StatsIncludeCompositeParts(t *testing.T) {
	opts := Options{
		SimpleOption{Stat: StatAtk, Value: 4},
		CompositeOption{Label: "Guardian", Parts: []Effect{{Stat: StatDef, Value: 2}, {Stat: StatMaxHP, Value: 15}}},
	}
	assert.Equal(t, []Stat{StatAtk, StatDef, StatMaxHP}, opts.Stats())
	assert.True(t, opts.Has(StatMaxHP))
	assert.False(t, opts.Has(StatStr))

	c := opts.Clone()
	c[1].(CompositeOption).Parts[0].Value = 99
	assert.Equal(t, 2, opts[1].(CompositeOption).Parts[0].Value)
}

func TestItem_JSONKeepsOptionVariants(t *testing.T) {
	it := &Item{
		ID: "x", Type: Amulet, Rarity: Legendary, Power: 40,
		Options: Options{
			SimpleOption{Stat: StatVamp, Value: 3, Special: true},
			CompositeOption{Label: "Sage", Parts: []Effect{{Stat: StatInt, Value: 2}, {Stat: StatMaxMP, Value: 3}}},
		},
	}
	raw, err := json.Marshal(it)
	require.NoError(t, err)

	var back Item
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, it.Options, back.Options)
	assert.Equal(t, Legendary, back.Rarity)
}

func TestEquipment_JSONDropsMisplacedItems(t *testing.T) {
	raw := []byte(`{"weapon":{"id":"w","type":"weapon","name":"Sword"},"skill1":{"id":"r","type":"ring","name":"Ring"}}`)
	var eq Equipment
	require.NoError(t, json.Unmarshal(raw, &eq))
	require.NotNil(t, eq.Weapon())
	assert.Equal(t, "w", eq.Weapon().ID)
	assert.Nil(t, eq.Get(SlotSkill1))
}

func TestSession_FinalFloor(t *testing.T) {
	s := NewState(Limits{Inventory: 5, Warehouse: 5, Stones: 5})
	s.Phase = PhaseDungeon
	run := s.NewSession(7, 3, 7, nil)
	assert.False(t, run.FinalFloor())
	run.Floor = 9
	assert.True(t, run.FinalFloor())
	assert.True(t, s.SameSession(run.ID))

	next := s.NewSession(1, 5, 0, nil)
	assert.False(t, s.SameSession(run.ID))
	assert.True(t, s.SameSession(next.ID))
}
