package system

import (
	"fmt"
	"math"
	"time"

	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/handler"
)

// BuffTickSystem 遞減 buff 剩餘時間，到期移除並重新計算屬性。Phase 0 (Timers)。
// 只在地城戰鬥中計時。
type BuffTickSystem struct {
	deps *handler.Deps
}

func NewBuffTickSystem(deps *handler.Deps) *BuffTickSystem {
	return &BuffTickSystem{deps: deps}
}

func (s *BuffTickSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *BuffTickSystem) Update(dt time.Duration) {
	ws := s.deps.World
	if !battleLive(ws) {
		return
	}
	p := ws.Player
	if len(p.Buffs) == 0 {
		return
	}
	secs := dt.Seconds()
	kept := p.Buffs[:0]
	expired := 0
	for _, b := range p.Buffs {
		b.Remaining -= secs
		if b.Remaining > 0 {
			kept = append(kept, b)
			continue
		}
		expired++
		handler.SendLog(s.deps, fmt.Sprintf("%s wore off.", b.Name), event.ColorInfo)
	}
	p.Buffs = kept
	if expired > 0 {
		s.deps.Equip.Recalc()
		ws.Dirty = true
		handler.SendChanged(s.deps, event.WhatPlayer)
	}
}

// CooldownSystem 遞減技能冷卻，速度為 1+cdSpeed 倍。Phase 0 (Timers)。
type CooldownSystem struct {
	deps *handler.Deps
}

func NewCooldownSystem(deps *handler.Deps) *CooldownSystem {
	return &CooldownSystem{deps: deps}
}

func (s *CooldownSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *CooldownSystem) Update(dt time.Duration) {
	ws := s.deps.World
	if !battleLive(ws) {
		return
	}
	step := dt.Seconds() * (1 + ws.Stats.CdSpeed)
	for i, cd := range ws.Cooldowns {
		if cd > 0 {
			ws.Cooldowns[i] = math.Max(0, cd-step)
		}
	}
}
