package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkblade/hackslash/internal/world"
)

func magicStone(tier, maxFloor int, mods ...world.StoneRoll) *world.Item {
	return &world.Item{
		ID: world.NewItemID(), Type: world.MagicStone, Name: "Magic Stone", Power: tier,
		Stone: &world.StoneData{Tier: tier, MaxFloor: maxFloor, Mods: mods},
	}
}

func TestDungeonStart_Default(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	ws.Player.MP = 0
	ws.Player.Buffs = []world.Buff{{Type: world.BuffDef, Value: 5, Remaining: 3}}

	require.NoError(t, deps.Dungeon.Start(""))
	assert.Equal(t, world.PhaseDungeon, ws.Phase)
	require.NotNil(t, ws.Session)
	assert.Equal(t, 1, ws.Session.Floor)
	assert.Equal(t, 5, ws.Session.MaxFloor)
	assert.Equal(t, world.InCombat, ws.Session.State)
	assert.True(t, ws.Enemy.Alive())
	assert.Equal(t, ws.Player.MaxMP, ws.Player.MP)
	assert.Empty(t, ws.Player.Buffs)

	assert.ErrorIs(t, deps.Dungeon.Start(""), ErrAlreadyInDungeon)
}

func TestDungeonStart_WithStone(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	stone := ws.Stones.AddItem(magicStone(8, 6,
		world.StoneRoll{Mod: world.RiskHP, Value: 40},
		world.StoneRoll{Mod: world.RewardGold, Value: 30},
		world.StoneRoll{Mod: world.RiskHP, Value: 10},
	))

	require.NoError(t, deps.Dungeon.Start(stone.ID))
	sess := ws.Session
	assert.Equal(t, 8, sess.Floor)
	assert.Equal(t, 8, sess.StartFloor)
	assert.Equal(t, 6, sess.MaxFloor)
	assert.Equal(t, 8, sess.StoneTier)
	assert.Equal(t, 50, sess.Mods.Get(world.RiskHP))
	assert.Equal(t, 30, sess.Mods.Get(world.RewardGold))
	assert.Zero(t, ws.Stones.Size(), "stone is consumed")
}

func TestDungeonStart_UnknownStone(t *testing.T) {
	deps := newTestDeps(t, 1)
	assert.ErrorIs(t, deps.Dungeon.Start("nope"), ErrItemNotFound)
	assert.Equal(t, world.PhaseTown, deps.World.Phase)
	assert.Nil(t, deps.World.Session)
}

func TestReturnToTown_CancelsContinuations(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	e := startRun(t, deps)
	e.HP = 0
	deps.Combat.Victory()
	require.Equal(t, 1, deps.Scheduler.Pending())
	ws.Player.HP = 3

	deps.Dungeon.ReturnToTown()
	assert.Zero(t, deps.Scheduler.Pending())
	assert.Equal(t, world.PhaseTown, ws.Phase)
	assert.Nil(t, ws.Session)
	assert.Nil(t, ws.Enemy)
	assert.Equal(t, ws.Player.MaxHP, ws.Player.HP)
	assert.Equal(t, ws.Player.MaxMP, ws.Player.MP)
}

func TestSpawnNext_IgnoresStaleSession(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	e := startRun(t, deps)
	e.HP = 0
	deps.Combat.Victory()
	old := ws.Session.ID

	deps.Dungeon.ReturnToTown()
	require.NoError(t, deps.Dungeon.Start(""))
	current := ws.Enemy

	spawnNext(deps, old)
	assert.Same(t, current, ws.Enemy)
	assert.NotEqual(t, old, ws.Session.ID)
}

func TestCooldownSystem(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	startRun(t, deps)
	ws.Player.Buffs = []world.Buff{{Type: world.BuffCdSpeed, Value: 1, Remaining: 100}}
	deps.Equip.Recalc()
	ws.Cooldowns = [world.SkillSlots]float64{3, 1, 0}

	cds := NewCooldownSystem(deps)
	cds.Update(time.Second)
	assert.InDelta(t, 1.0, ws.Cooldowns[0], 1e-9)
	assert.Zero(t, ws.Cooldowns[1], "never negative")
	assert.Zero(t, ws.Cooldowns[2])

	// nothing ticks outside combat
	ws.Cooldowns[0] = 3
	deps.Dungeon.ReturnToTown()
	ws.Cooldowns[0] = 3
	cds.Update(time.Second)
	assert.InDelta(t, 3.0, ws.Cooldowns[0], 1e-9)
}

func TestRegenSystem(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	startRun(t, deps)
	ws.Player.Buffs = []world.Buff{{Type: world.BuffHPRegen, Value: 5, Remaining: 100}}
	deps.Equip.Recalc()
	ws.Player.HP = 100

	regen := NewRegenSystem(deps)
	regen.Update(time.Second)
	assert.Equal(t, 105, ws.Player.HP)

	ws.Player.HP = ws.Player.MaxHP - 2
	regen.Update(time.Second)
	assert.Equal(t, ws.Player.MaxHP, ws.Player.HP)
}

func TestRunner_FullTickLoop(t *testing.T) {
	deps, runner := newTestGame(t, 11)
	ws := deps.World
	require.NoError(t, deps.Dungeon.Start(""))

	// fight the default run with manual attacks until it ends one way or another
	for i := 0; i < 20000 && ws.Phase == world.PhaseDungeon; i++ {
		if ws.Session.State == world.InCombat {
			require.NoError(t, deps.Combat.Attack())
		}
		runner.Tick(50 * time.Millisecond)
		assert.GreaterOrEqual(t, ws.Player.HP, 0)
		assert.LessOrEqual(t, ws.Player.HP, ws.Player.MaxHP)
	}
	assert.Equal(t, world.PhaseTown, ws.Phase)
	assert.Zero(t, deps.Scheduler.Pending())
}
