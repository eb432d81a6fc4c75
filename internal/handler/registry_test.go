package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/world"
)

type fakeDungeon struct {
	started  []string
	returned int
}

func (f *fakeDungeon) Start(stoneID string) error { f.started = append(f.started, stoneID); return nil }
func (f *fakeDungeon) ReturnToTown()              { f.returned++ }
func (f *fakeDungeon) Defeat()                    {}

type fakeShop struct{ healErr error }

func (f *fakeShop) Sell(string) error { return nil }
func (f *fakeShop) Heal() error       { return f.healErr }

type fakeSkill struct{ used []int }

func (f *fakeSkill) Use(idx int) error { f.used = append(f.used, idx); return nil }

func newTestRegistry(t *testing.T) (*Registry, *Deps) {
	t.Helper()
	deps := &Deps{
		Log:     zap.NewNop(),
		Bus:     event.NewBus(),
		Dungeon: &fakeDungeon{},
		Shop:    &fakeShop{},
		Skill:   &fakeSkill{},
	}
	reg := NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)
	return reg, deps
}

func TestDispatch_PhaseGating(t *testing.T) {
	tests := []struct {
		name  string
		phase world.Phase
		op    Op
		ok    bool
	}{
		{"enter from town", world.PhaseTown, OpEnterDungeon, true},
		{"enter from dungeon", world.PhaseDungeon, OpEnterDungeon, false},
		{"return from dungeon", world.PhaseDungeon, OpReturnToTown, true},
		{"return from town", world.PhaseTown, OpReturnToTown, false},
		{"healer in dungeon", world.PhaseDungeon, OpHeal, false},
		{"skill in town", world.PhaseTown, OpUseSkill, false},
		{"skill in dungeon", world.PhaseDungeon, OpUseSkill, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t)
			err := reg.Dispatch(tt.phase, Command{Op: tt.op})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPhaseNotAllowed)
			}
		})
	}
}

func TestDispatch_RoutesArguments(t *testing.T) {
	reg, deps := newTestRegistry(t)
	require.NoError(t, reg.Dispatch(world.PhaseTown, Command{Op: OpEnterDungeon, ItemID: "stone-1"}))
	require.NoError(t, reg.Dispatch(world.PhaseDungeon, Command{Op: OpUseSkill, Index: 2}))
	require.NoError(t, reg.Dispatch(world.PhaseDungeon, Command{Op: OpReturnToTown}))

	assert.Equal(t, []string{"stone-1"}, deps.Dungeon.(*fakeDungeon).started)
	assert.Equal(t, []int{2}, deps.Skill.(*fakeSkill).used)
	assert.Equal(t, 1, deps.Dungeon.(*fakeDungeon).returned)

	assert.Error(t, reg.Dispatch(world.PhaseDungeon, Command{Op: OpUseSkill, Index: world.SkillSlots}))
	assert.Len(t, deps.Skill.(*fakeSkill).used, 1)
}

func TestDispatch_UnknownOpIgnored(t *testing.T) {
	reg, _ := newTestRegistry(t)
	assert.NoError(t, reg.Dispatch(world.PhaseTown, Command{Op: Op(200)}))
	assert.Equal(t, "Unknown(200)", Op(200).String())
}

func TestDispatch_RecoversPanics(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(OpHeal, []world.Phase{world.PhaseTown}, func(Command) error { panic("boom") })

	err := reg.Dispatch(world.PhaseTown, Command{Op: OpHeal})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDispatch_RejectionBecomesWarning(t *testing.T) {
	reg, deps := newTestRegistry(t)
	denied := errors.New("not enough gold")
	deps.Shop.(*fakeShop).healErr = denied

	var lines []event.LogEntry
	event.Subscribe(deps.Bus, func(e event.LogEntry) { lines = append(lines, e) })

	assert.ErrorIs(t, reg.Dispatch(world.PhaseTown, Command{Op: OpHeal}), denied)
	deps.Bus.Flush()
	require.Len(t, lines, 1)
	assert.Equal(t, event.ColorWarning, lines[0].Color)
	assert.Equal(t, "not enough gold", lines[0].Message)
}
