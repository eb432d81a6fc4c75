package system

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkblade/hackslash/internal/config"
	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/gen"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/scripting"
	"github.com/inkblade/hackslash/internal/world"
)

// newTestDeps wires a full game around a fresh state with a seeded RNG.
func newTestDeps(t *testing.T, seed uint64) *handler.Deps {
	t.Helper()
	deps, _ := newTestGame(t, seed)
	return deps
}

// newTestGame is newTestDeps plus the runner the tick systems live in.
func newTestGame(t *testing.T, seed uint64) (*handler.Deps, *coresys.Runner) {
	t.Helper()
	cfg := config.Default()
	tables := data.MustDefault()
	lua, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(lua.Close)

	deps := &handler.Deps{
		Config: cfg,
		Log:    zap.NewNop(),
		World: world.NewState(world.Limits{
			Inventory: cfg.Game.MaxInventory,
			Warehouse: cfg.Game.MaxWarehouse,
			Stones:    cfg.Game.MaxStones,
		}),
		Tables:    tables,
		Gen:       gen.New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), tables),
		Scripting: lua,
		Bus:       event.NewBus(),
		Scheduler: coresys.NewScheduler(),
	}
	runner := coresys.NewRunner()
	Install(runner, deps)
	return deps, runner
}

// startRun enters the default dungeon and gives the enemy plenty of HP.
func startRun(t *testing.T, deps *handler.Deps) *world.Enemy {
	t.Helper()
	require.NoError(t, deps.Dungeon.Start(""))
	e := deps.World.Enemy
	require.NotNil(t, e)
	e.MaxHP, e.HP = 1000, 1000
	return e
}

func skillItem(id string, sd world.SkillData, inks ...world.Ink) *world.Item {
	return &world.Item{ID: id, Type: world.SkillBook, Name: id, Skill: &sd, InkSlots: 3, Inks: inks}
}

func ink(effects ...world.InkEffect) world.Ink {
	return world.Ink{Name: "Test Ink", Effects: effects}
}
