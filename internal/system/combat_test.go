package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/world"
)

func TestAttack_DamagesEnemy(t *testing.T) {
	deps := newTestDeps(t, 3)
	e := startRun(t, deps)

	require.NoError(t, deps.Combat.Attack())
	// atk 2 with a 0.8-1.2 spread, no crit
	assert.GreaterOrEqual(t, e.HP, 998)
	assert.LessOrEqual(t, e.HP, 999)
}

func TestAttack_VampHeals(t *testing.T) {
	deps := newTestDeps(t, 3)
	ws := deps.World
	ws.Equip.Set(world.SlotAmulet, &world.Item{ID: "a", Type: world.Amulet, Options: world.Options{
		world.SimpleOption{Stat: world.StatVamp, Value: 10, Special: true},
	}})
	startRun(t, deps)
	ws.Player.HP = 100

	require.NoError(t, deps.Combat.Attack())
	assert.Equal(t, 101, ws.Player.HP, "ceil(1..2 × 10%) = 1")
}

func TestAttack_KillAndStaleCalls(t *testing.T) {
	deps := newTestDeps(t, 3)
	ws := deps.World
	e := startRun(t, deps)
	e.HP = 1

	require.NoError(t, deps.Combat.Attack())
	assert.Equal(t, world.Victory, ws.Session.State)
	gold := ws.Player.Gold

	// enemy already dead: further attacks and settlements are ignored
	require.NoError(t, deps.Combat.Attack())
	deps.Combat.Victory()
	assert.Equal(t, gold, ws.Player.Gold)
	assert.Equal(t, 2, ws.Session.Floor)
}

func TestVictory_RewardsAndLevelUps(t *testing.T) {
	deps := newTestDeps(t, 5)
	ws := deps.World
	e := startRun(t, deps)
	ws.Session.Mods = world.Mods{world.RewardExp: 50, world.RewardGold: 100}
	e.Exp, e.Gold, e.HP = 100, 40, 0
	ws.Player.HP = 10

	deps.Combat.Victory()

	p := ws.Player
	assert.Equal(t, 80, p.Gold)
	// 150 exp: 50 → level 2 (next 60), 60 → level 3 (next 72), 40 left
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 40, p.Exp)
	assert.Equal(t, 72, p.ExpToNext)
	assert.Equal(t, 6, p.StatPoints)
	assert.Equal(t, 2, p.SkillPoints)
	assert.Equal(t, p.MaxHP, p.HP, "level up restores HP")

	// next floor spawns after the floor delay
	assert.Equal(t, world.Victory, ws.Session.State)
	assert.Equal(t, 2, ws.Session.Floor)
	deps.Scheduler.Advance(599 * time.Millisecond)
	assert.Equal(t, world.Victory, ws.Session.State)
	deps.Scheduler.Advance(time.Millisecond)
	assert.Equal(t, world.InCombat, ws.Session.State)
	require.True(t, ws.Enemy.Alive())
	assert.NotSame(t, e, ws.Enemy)
}

func TestVictory_FinalBossClearsRun(t *testing.T) {
	deps := newTestDeps(t, 5)
	ws := deps.World
	e := startRun(t, deps)
	ws.Session.Floor = 5
	e.Boss, e.HP = true, 0

	deps.Combat.Victory()
	assert.Equal(t, world.Cleared, ws.Session.State)
	assert.Equal(t, 1, deps.Scheduler.Pending())

	deps.Scheduler.Advance(2 * time.Second)
	assert.Equal(t, world.PhaseTown, ws.Phase)
	assert.Nil(t, ws.Session)
	assert.Nil(t, ws.Enemy)
}

func TestEnemyAttack_DefeatReturnsToTown(t *testing.T) {
	deps := newTestDeps(t, 7)
	ws := deps.World
	ws.Player.Attrs.Dex = 0
	e := startRun(t, deps)
	require.Zero(t, ws.Stats.Evade)
	ws.Player.HP = 1
	e.Atk = 1000
	e.Wait = e.MaxWait - 1

	enemy := NewEnemyAttackSystem(deps)
	enemy.Update(50 * time.Millisecond)
	assert.Equal(t, 1, ws.Player.HP, "still winding up")
	enemy.Update(50 * time.Millisecond)

	assert.Equal(t, 0, ws.Player.HP)
	assert.Equal(t, world.Defeated, ws.Session.State)
	assert.Zero(t, e.Wait)

	// a dead player is not attacked again
	enemy.Update(50 * time.Millisecond)
	assert.Equal(t, 0, ws.Player.HP)

	deps.Scheduler.Advance(2 * time.Second)
	assert.Equal(t, world.PhaseTown, ws.Phase)
	assert.Equal(t, ws.Player.MaxHP, ws.Player.HP)
}

func TestEnemyAttack_ResistanceMitigates(t *testing.T) {
	deps := newTestDeps(t, 7)
	ws := deps.World
	ws.Player.Attrs.Dex = 0
	ws.Equip.Set(world.SlotRing1, &world.Item{ID: "r", Type: world.Ring, Options: world.Options{
		world.SimpleOption{Stat: world.StatResIce, Value: 50},
	}})
	e := startRun(t, deps)
	e.Element = world.Ice
	e.Atk = 21 // 21 - def 1 = 20, halved
	e.Wait = e.MaxWait
	hp := ws.Player.HP

	NewEnemyAttackSystem(deps).Update(50 * time.Millisecond)
	assert.Equal(t, hp-10, ws.Player.HP)
}

func TestPlace_OverflowsToWarehouse(t *testing.T) {
	deps := newTestDeps(t, 1)
	ws := deps.World
	combat := deps.Combat.(*CombatSystem)
	weapon := func() *world.Item { return &world.Item{ID: world.NewItemID(), Type: world.Weapon, Name: "Blade"} }

	for !ws.Inv.IsFull() {
		ws.Inv.AddItem(weapon())
	}
	combat.place(weapon())
	assert.Equal(t, 1, ws.Warehouse.Size())

	for !ws.Warehouse.IsFull() {
		ws.Warehouse.AddItem(weapon())
	}
	deps.Bus.Flush()
	var lost []string
	event.Subscribe(deps.Bus, func(e event.LogEntry) {
		if e.Color == event.ColorWarning {
			lost = append(lost, e.Message)
		}
	})
	combat.place(weapon())
	deps.Bus.Flush()

	assert.Equal(t, ws.Inv.Limit, ws.Inv.Size())
	assert.Equal(t, ws.Warehouse.Limit, ws.Warehouse.Size())
	assert.Len(t, lost, 1)
}
