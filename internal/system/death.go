package system

import (
	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// Defeat 玩家 HP 歸零：session 轉為 Defeated，延遲後回城。
// 同一場戰鬥只處理一次。
func (s *DungeonSystem) Defeat() {
	ws := s.deps.World
	sess := ws.Session
	if ws.Phase != world.PhaseDungeon || sess == nil || sess.State != world.InCombat {
		return
	}
	sess.State = world.Defeated
	ws.Player.HP = 0
	ws.Dirty = true

	handler.SendLog(s.deps, "You have been defeated...", event.ColorDamage)
	handler.SendChanged(s.deps, event.WhatPlayer)
	s.deps.Log.Info("玩家死亡", zap.Uint64("session", sess.ID), zap.Int("floor", sess.Floor))

	id := sess.ID
	s.deps.Scheduler.After(s.deps.Config.Game.ReturnDelay, func() {
		if ws.SameSession(id) {
			s.ReturnToTown()
		}
	})
}
