package system

import (
	"fmt"
	"time"

	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/scripting"
	"github.com/inkblade/hackslash/internal/world"
)

// EnemyAttackSystem 推進敵人攻擊計數，滿 maxWait 時攻擊玩家。Phase 2 (Combat)。
// 傷害公式在 Lua calc_enemy_attack。
type EnemyAttackSystem struct {
	deps *handler.Deps
}

func NewEnemyAttackSystem(deps *handler.Deps) *EnemyAttackSystem {
	return &EnemyAttackSystem{deps: deps}
}

func (s *EnemyAttackSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *EnemyAttackSystem) Update(_ time.Duration) {
	ws := s.deps.World
	if !battleLive(ws) {
		return
	}
	e := ws.Enemy
	if e.Wait < e.MaxWait {
		e.Wait++
		return
	}
	e.Wait = 0
	s.attack(e)
}

func (s *EnemyAttackSystem) attack(e *world.Enemy) {
	ws := s.deps.World
	p := ws.Player
	st := ws.Stats

	ctx := scripting.EnemyAttackContext{
		Atk:       e.Atk,
		Def:       st.Def,
		Elemental: e.Element != world.ElementNone,
		RiskDmg:   ws.Session.Mods.Get(world.RiskDmg),
		Evade:     st.Evade,
		EvadeRoll: s.deps.Gen.Rand().Float64() * 100,
	}
	if ctx.Elemental && e.Element < world.ElementCount {
		ctx.Res = st.Res[e.Element]
	}
	res := s.deps.Scripting.CalcEnemyAttack(ctx)
	if res.Evaded {
		handler.SendLog(s.deps, fmt.Sprintf("You evaded %s's attack!", e.Name), event.ColorInfo)
		handler.SendFloat(s.deps, "MISS", event.ColorInfo, false)
		return
	}

	p.HP = max(0, min(p.MaxHP, p.HP-res.Damage))
	ws.Dirty = true
	handler.SendLog(s.deps, fmt.Sprintf("%s hits you for %d.", e.Name, res.Damage), event.ColorDamage)
	handler.SendFloat(s.deps, fmt.Sprintf("-%d", res.Damage), event.ColorDamage, false)
	handler.SendChanged(s.deps, event.WhatPlayer)
	if p.HP <= 0 {
		s.deps.Dungeon.Defeat()
	}
}
