package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestCalcEnemyAttack(t *testing.T) {
	e := newTestEngine(t, "")

	tests := []struct {
		name string
		ctx  EnemyAttackContext
		want EnemyAttackResult
	}{
		{"evaded", EnemyAttackContext{Atk: 50, Evade: 30, EvadeRoll: 10}, EnemyAttackResult{Evaded: true}},
		{"plain hit", EnemyAttackContext{Atk: 25, Def: 5, EvadeRoll: 99}, EnemyAttackResult{Damage: 20}},
		{"def above atk", EnemyAttackContext{Atk: 5, Def: 40, EvadeRoll: 99}, EnemyAttackResult{Damage: 1}},
		{"resist halves", EnemyAttackContext{Atk: 30, Def: 10, Res: 50, Elemental: true, EvadeRoll: 99}, EnemyAttackResult{Damage: 10}},
		{"mitigation capped", EnemyAttackContext{Atk: 110, Def: 10, Res: 300, Elemental: true, EvadeRoll: 99}, EnemyAttackResult{Damage: 20}},
		{"res ignored without element", EnemyAttackContext{Atk: 30, Def: 10, Res: 50, EvadeRoll: 99}, EnemyAttackResult{Damage: 20}},
		{"risk dmg", EnemyAttackContext{Atk: 30, Def: 10, RiskDmg: 50, EvadeRoll: 99}, EnemyAttackResult{Damage: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.CalcEnemyAttack(tt.ctx))
		})
	}
}

func TestCalcPlayerAttack(t *testing.T) {
	e := newTestEngine(t, "")

	// spread 0.5 keeps the base damage at atk
	got := e.CalcPlayerAttack(PlayerAttackContext{Atk: 100, CritRoll: 99, SpreadRoll: 0.5})
	assert.Equal(t, PlayerAttackResult{Damage: 100}, got)

	got = e.CalcPlayerAttack(PlayerAttackContext{Atk: 100, Crit: 10, CritDmg: 50, CritRoll: 5, SpreadRoll: 0.5})
	assert.Equal(t, PlayerAttackResult{Crit: true, Damage: 200}, got)

	got = e.CalcPlayerAttack(PlayerAttackContext{Atk: 100, DmgMult: 20, CritRoll: 99, SpreadRoll: 0})
	assert.Equal(t, PlayerAttackResult{Damage: 96}, got)

	got = e.CalcPlayerAttack(PlayerAttackContext{Atk: 0, CritRoll: 99})
	assert.Equal(t, 1, got.Damage)
}

func TestProgressionAndTown(t *testing.T) {
	e := newTestEngine(t, "")

	assert.Equal(t, 60, e.NextExpThreshold(50))
	assert.Equal(t, 72, e.NextExpThreshold(60))
	assert.Equal(t, 2, e.NextExpThreshold(1))
	assert.Equal(t, 5, e.NextExpThreshold(4), "floor(4.8) would not grow")
	assert.Equal(t, 6, e.NextExpThreshold(5))
	assert.Equal(t, 35, e.HealCost(7))

	assert.Equal(t, 30, e.SellValue(SellContext{Kind: "stone", Tier: 3}))
	assert.Equal(t, 84, e.SellValue(SellContext{Kind: "equipment", Power: 42}))
	assert.Equal(t, 40, e.SellValue(SellContext{Kind: "consumable", Rarity: 3}))
	assert.Equal(t, 10, e.SellValue(SellContext{Kind: "ink"}))
}

func TestNewEngine_DirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "economy"), 0o755))
	src := "function heal_cost(level)\n    return level * 2\nend\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "economy", "heal.lua"), []byte(src), 0o644))

	e := newTestEngine(t, dir)
	assert.Equal(t, 14, e.HealCost(7))
	// untouched formulas keep the built-in version
	assert.Equal(t, 60, e.NextExpThreshold(50))
}

func TestNewEngine_BrokenScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "bad.lua"), []byte("function ("), 0o644))

	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestEngine_FallsBackWhenScriptFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "progression"), 0o755))
	src := "function next_exp_threshold(c)\n    error(\"boom\")\nend\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "progression", "level.lua"), []byte(src), 0o644))

	e := newTestEngine(t, dir)
	assert.Equal(t, 60, e.NextExpThreshold(50))
}
