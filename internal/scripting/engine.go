package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts
var builtin embed.FS

// scriptDirs are loaded in this order; later files may redefine globals.
var scriptDirs = []string{"combat", "progression", "economy"}

// Engine wraps a single gopher-lua VM holding the balance formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine loads the built-in scripts, then any overrides found under
// scriptsDir (same sub-directory layout). An empty scriptsDir loads only the
// built-ins.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range scriptDirs {
		if err := e.loadEmbedded(path.Join("scripts", sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load built-in %s scripts: %w", sub, err)
		}
	}
	if scriptsDir != "" {
		for _, sub := range scriptDirs {
			if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
				vm.Close()
				return nil, fmt.Errorf("load %s scripts: %w", sub, err)
			}
		}
	}
	return e, nil
}

func (e *Engine) loadEmbedded(dir string) error {
	entries, err := fs.ReadDir(builtin, dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".lua" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		src, err := builtin.ReadFile(path.Join(dir, name))
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		e.log.Debug("loaded built-in lua script", zap.String("file", name))
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// ---------- 敵人攻擊 ----------

// EnemyAttackContext holds pre-packed data for one enemy swing.
type EnemyAttackContext struct {
	Atk       int
	Def       int
	Res       int // player resistance to the enemy's element
	Elemental bool
	RiskDmg   int     // dungeon risk_dmg percent
	Evade     int     // player evade chance, percent
	EvadeRoll float64 // [0,100)
}

// EnemyAttackResult is returned by calc_enemy_attack.
type EnemyAttackResult struct {
	Evaded bool
	Damage int
}

// CalcEnemyAttack calls the Lua calc_enemy_attack function.
func (e *Engine) CalcEnemyAttack(ctx EnemyAttackContext) EnemyAttackResult {
	t := e.vm.NewTable()
	t.RawSetString("atk", lua.LNumber(ctx.Atk))
	t.RawSetString("def", lua.LNumber(ctx.Def))
	t.RawSetString("res", lua.LNumber(ctx.Res))
	t.RawSetString("elemental", lua.LBool(ctx.Elemental))
	t.RawSetString("risk_dmg", lua.LNumber(ctx.RiskDmg))
	t.RawSetString("evade", lua.LNumber(ctx.Evade))
	t.RawSetString("evade_roll", lua.LNumber(ctx.EvadeRoll))

	rt, ok := e.callTable("calc_enemy_attack", t)
	if !ok {
		return EnemyAttackResult{Damage: 1}
	}
	return EnemyAttackResult{
		Evaded: lua.LVAsBool(rt.RawGetString("evaded")),
		Damage: lInt(rt, "damage"),
	}
}

// ---------- 玩家攻擊 ----------

// PlayerAttackContext holds pre-packed data for a manual attack.
type PlayerAttackContext struct {
	Atk        int
	Crit       int // percent
	CritDmg    int // percent over the base 150%
	DmgMult    int // percent
	CritRoll   float64
	SpreadRoll float64
}

// PlayerAttackResult is returned by calc_player_attack.
type PlayerAttackResult struct {
	Crit   bool
	Damage int
}

// CalcPlayerAttack calls the Lua calc_player_attack function.
func (e *Engine) CalcPlayerAttack(ctx PlayerAttackContext) PlayerAttackResult {
	t := e.vm.NewTable()
	t.RawSetString("atk", lua.LNumber(ctx.Atk))
	t.RawSetString("crit", lua.LNumber(ctx.Crit))
	t.RawSetString("crit_dmg", lua.LNumber(ctx.CritDmg))
	t.RawSetString("dmg_mult", lua.LNumber(ctx.DmgMult))
	t.RawSetString("crit_roll", lua.LNumber(ctx.CritRoll))
	t.RawSetString("spread_roll", lua.LNumber(ctx.SpreadRoll))

	rt, ok := e.callTable("calc_player_attack", t)
	if !ok {
		return PlayerAttackResult{Damage: 1}
	}
	return PlayerAttackResult{
		Crit:   lua.LVAsBool(rt.RawGetString("crit")),
		Damage: lInt(rt, "damage"),
	}
}

// ---------- 成長 / 城鎮 ----------

// NextExpThreshold returns the experience needed for the level after one
// whose threshold was current. The fallback is floor(current×1.2), raised to
// current+1 when that would not grow (thresholds of 5 or less).
func (e *Engine) NextExpThreshold(current int) int {
	next := e.callIntFunc("next_exp_threshold", current)
	if next <= current {
		next = int(math.Floor(float64(current) * 1.2))
		if next <= current {
			next = current + 1
		}
	}
	return next
}

// HealCost returns the healer fee for a player level.
func (e *Engine) HealCost(level int) int {
	return e.callIntFunc("heal_cost", level)
}

// SellContext describes an item being sold.
type SellContext struct {
	Kind   string // stone, equipment, skill, ink, consumable
	Power  int
	Tier   int
	Rarity int
}

// SellValue calls the Lua sell_value function.
func (e *Engine) SellValue(ctx SellContext) int {
	fn := e.vm.GetGlobal("sell_value")
	if fn == lua.LNil {
		e.log.Error("lua function sell_value not found")
		return 0
	}
	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("power", lua.LNumber(ctx.Power))
	t.RawSetString("tier", lua.LNumber(ctx.Tier))
	t.RawSetString("rarity", lua.LNumber(ctx.Rarity))
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		e.log.Error("lua sell_value error", zap.Error(err))
		return 0
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// ---------- helpers ----------

// callTable calls a one-argument Lua function expected to return a table.
func (e *Engine) callTable(name string, arg *lua.LTable) (*lua.LTable, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return nil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return nil, false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua function returned non-table", zap.String("func", name))
		return nil, false
	}
	return rt, true
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
