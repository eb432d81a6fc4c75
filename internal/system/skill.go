package system

import (
	"fmt"
	"math"
	"time"

	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// elementLevelBonus is the powerMult gained per elemental skill level.
const elementLevelBonus = 0.05

// Cast is a skill with its inks folded in.
type Cast struct {
	Name      string
	Kind      world.SkillKind
	Element   world.Element
	Power     float64 // base power × PowerMult
	PowerMult float64
	Cooldown  float64 // seconds, base × cdMult
	Duration  float64 // seconds, base × durMult
	MPCost    int
	Buff      world.BuffType
	BuffValue float64 // base × PowerMult
	MultiCast int
	AutoCast  bool
}

// Resolve folds a skill item's inks and the caster's elemental skill level
// into a Cast. Pure.
func Resolve(item *world.Item, stats world.Stats) Cast {
	sd := item.Skill
	powerMult, cdMult, durMult := 1.0, 1.0, 1.0
	multi := 1.0
	auto := false
	for _, ink := range item.Inks {
		for _, e := range ink.Effects {
			switch e.Kind {
			case world.InkPower:
				powerMult += e.Value
			case world.InkCooldown:
				cdMult += e.Value
			case world.InkDuration:
				durMult += e.Value
			case world.InkMultiCast:
				multi += e.Value
			case world.InkAutoCast:
				auto = true
			}
		}
	}
	if sd.Element != world.ElementNone && sd.Element < world.ElementCount {
		powerMult += float64(stats.SkillLevel[sd.Element]) * elementLevelBonus
	}
	return Cast{
		Name:      item.Name,
		Kind:      sd.Kind,
		Element:   sd.Element,
		Power:     sd.Power * powerMult,
		PowerMult: powerMult,
		Cooldown:  math.Max(0, sd.Cooldown*cdMult),
		Duration:  math.Max(0, sd.Duration*durMult),
		MPCost:    sd.MPCost,
		Buff:      sd.Buff,
		BuffValue: sd.BuffValue * powerMult,
		MultiCast: max(1, int(math.Round(multi))),
		AutoCast:  auto,
	}
}

// SkillSystem 處理技能施放。實作 handler.SkillManager 介面。
type SkillSystem struct {
	deps *handler.Deps
}

func NewSkillSystem(deps *handler.Deps) *SkillSystem {
	return &SkillSystem{deps: deps}
}

// Use 施放技能欄 idx 的技能。
// 玩家已死亡、或敵人已倒下（勝利結算中）時靜默忽略。
func (s *SkillSystem) Use(idx int) error {
	ws := s.deps.World
	p := ws.Player
	if p.HP <= 0 || (ws.Enemy != nil && ws.Enemy.HP <= 0) {
		return nil
	}
	item := ws.Equip.Get(world.SkillSlot(idx))
	if item == nil || item.Skill == nil {
		return ErrEmptySkillSlot
	}
	if ws.Cooldowns[idx] > 0 {
		return ErrOnCooldown
	}

	cast := Resolve(item, ws.Stats)
	if cast.Kind == world.SkillAttack {
		if !ws.Enemy.Alive() {
			return nil
		}
		if p.MP < cast.MPCost {
			return ErrNotEnoughMP
		}
		p.MP -= cast.MPCost
	}

	for i := 0; i < cast.MultiCast; i++ {
		if !s.apply(cast) {
			break
		}
	}

	ws.Cooldowns[idx] = cast.Cooldown
	ws.Dirty = true
	handler.SendChanged(s.deps, event.WhatPlayer, event.WhatEnemy)
	return nil
}

// apply 執行一次施放效果。回傳 false 表示後續連發不再有意義（敵人已死）。
func (s *SkillSystem) apply(c Cast) bool {
	ws := s.deps.World
	p := ws.Player
	switch c.Kind {
	case world.SkillAttack:
		e := ws.Enemy
		if !e.Alive() {
			return false
		}
		bonus := (1 + float64(ws.Stats.DmgMult)/100) * (1 + ws.Stats.ElementDmg[c.Element])
		dmg := max(1, int(math.Floor(float64(ws.Stats.Atk)*c.Power*bonus)))
		e.HP = max(0, e.HP-dmg)
		handler.SendLog(s.deps, fmt.Sprintf("%s hits %s for %d!", c.Name, e.Name, dmg), event.ColorDamage)
		handler.SendFloat(s.deps, fmt.Sprintf("-%d", dmg), event.ColorDamage, false)
		if e.HP <= 0 {
			s.deps.Combat.Victory()
			return false
		}

	case world.SkillHeal:
		heal := int(math.Floor(c.Power))
		p.HP = min(p.MaxHP, p.HP+heal)
		handler.SendLog(s.deps, fmt.Sprintf("%s restores %d HP.", c.Name, heal), event.ColorHeal)
		handler.SendFloat(s.deps, fmt.Sprintf("+%d", heal), event.ColorHeal, false)

	case world.SkillBuff:
		p.Buffs = append(p.Buffs, world.Buff{
			ID:        world.NewItemID(),
			Name:      c.Name,
			Type:      c.Buff,
			Value:     c.BuffValue,
			Remaining: c.Duration,
		})
		s.deps.Equip.Recalc()
		handler.SendLog(s.deps, fmt.Sprintf("%s activated (%.0fs).", c.Name, c.Duration), event.ColorInfo)
	}
	return true
}

// ==================== 自動施放 ====================

// AutoCastSystem 每個 tick 施放鑲有 auto_cast 墨水且冷卻完畢的技能。Phase 1 (Skills)。
type AutoCastSystem struct {
	deps *handler.Deps
}

func NewAutoCastSystem(deps *handler.Deps) *AutoCastSystem {
	return &AutoCastSystem{deps: deps}
}

func (s *AutoCastSystem) Phase() coresys.Phase { return coresys.PhaseSkills }

func (s *AutoCastSystem) Update(_ time.Duration) {
	ws := s.deps.World
	for i := 0; i < world.SkillSlots; i++ {
		if !battleLive(ws) {
			return
		}
		item := ws.Equip.Get(world.SkillSlot(i))
		if item == nil || item.Skill == nil || ws.Cooldowns[i] > 0 || !hasInk(item, world.InkAutoCast) {
			continue
		}
		if err := s.deps.Skill.Use(i); err != nil {
			s.deps.Log.Debug("自動施放失敗", zap.Int("slot", i), zap.Error(err))
		}
	}
}

func hasInk(item *world.Item, k world.InkKind) bool {
	for _, ink := range item.Inks {
		if ink.Has(k) {
			return true
		}
	}
	return false
}

// battleLive reports whether per-tick combat work should run.
func battleLive(ws *world.State) bool {
	return ws.Phase == world.PhaseDungeon &&
		ws.Session != nil && ws.Session.State == world.InCombat &&
		ws.Enemy.Alive() && ws.Player.HP > 0
}
