package system

import (
	"time"

	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/handler"
)

// RegenSystem 依 hpRegen（每秒）回復 HP。Phase 0 (Timers)。
// tick 間的小數部分累積在 acc，滿 1 點才回復，tick 長度不影響總回復量。
type RegenSystem struct {
	deps *handler.Deps
	acc  float64
}

func NewRegenSystem(deps *handler.Deps) *RegenSystem {
	return &RegenSystem{deps: deps}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *RegenSystem) Update(dt time.Duration) {
	ws := s.deps.World
	if !battleLive(ws) || ws.Stats.HPRegen <= 0 {
		s.acc = 0
		return
	}
	p := ws.Player
	if p.HP >= p.MaxHP {
		s.acc = 0
		return
	}
	s.acc += float64(ws.Stats.HPRegen) * dt.Seconds()
	whole := int(s.acc)
	if whole <= 0 {
		return
	}
	s.acc -= float64(whole)
	p.HP = min(p.MaxHP, p.HP+whole)
	handler.SendChanged(s.deps, event.WhatPlayer)
}
