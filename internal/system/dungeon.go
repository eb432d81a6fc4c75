package system

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// 不使用魔法石時的預設地城
const (
	defaultStartFloor = 1
	defaultMaxFloor   = 5
)

// DungeonSystem 負責城鎮與地城之間的切換。實作 handler.DungeonManager 介面。
type DungeonSystem struct {
	deps *handler.Deps
}

func NewDungeonSystem(deps *handler.Deps) *DungeonSystem {
	return &DungeonSystem{deps: deps}
}

// ==================== 進入地城 ====================

// Start 進入地城。stoneID 為空時使用預設地城（1 樓起、共 5 層），
// 否則消耗魔法石：起始樓層 = 石頭階級，層數與修正值取自石頭。
func (s *DungeonSystem) Start(stoneID string) error {
	ws := s.deps.World
	if ws.Phase == world.PhaseDungeon {
		return ErrAlreadyInDungeon
	}

	floor, maxFloor, tier := defaultStartFloor, defaultMaxFloor, 0
	mods := world.Mods{}
	if stoneID != "" {
		stone := ws.Stones.Find(stoneID)
		if stone == nil {
			return ErrItemNotFound
		}
		if stone.Type != world.MagicStone || stone.Stone == nil {
			return ErrNotAStone
		}
		tier = stone.Stone.Tier
		floor = max(1, tier)
		maxFloor = max(1, stone.Stone.MaxFloor)
		for _, m := range stone.Stone.Mods {
			mods[m.Mod] += m.Value
		}
		ws.Stones.RemoveItem(stoneID)
	}

	s.deps.Scheduler.CancelAll()
	ws.Phase = world.PhaseDungeon
	sess := ws.NewSession(floor, maxFloor, tier, mods)
	ws.Cooldowns = [world.SkillSlots]float64{}
	p := ws.Player
	p.Buffs = nil
	s.deps.Equip.Recalc()
	p.MP = p.MaxMP

	ws.Enemy = s.deps.Gen.Enemy(sess.Floor, sess.Mods, sess.FinalFloor())
	ws.Dirty = true

	handler.SendLog(s.deps, fmt.Sprintf("Entered the dungeon (F%d-F%d).", floor, floor+maxFloor-1), event.ColorInfo)
	handler.SendLog(s.deps, fmt.Sprintf("%s appears!", ws.Enemy.Name), event.ColorWarning)
	handler.SendChanged(s.deps, event.WhatPhase, event.WhatEnemy, event.WhatPlayer, event.WhatInventory)
	s.deps.Log.Info("進入地城",
		zap.Uint64("session", sess.ID),
		zap.Int("floor", floor),
		zap.Int("maxFloor", maxFloor),
		zap.Int("mods", len(mods)),
	)
	return nil
}

// spawnNext 是樓層推進的延遲回呼：session 已結束或已換新時不做任何事。
func spawnNext(deps *handler.Deps, id uint64) {
	ws := deps.World
	if !ws.SameSession(id) || ws.Session.State != world.Victory {
		return
	}
	sess := ws.Session
	sess.State = world.InCombat
	ws.Enemy = deps.Gen.Enemy(sess.Floor, sess.Mods, sess.FinalFloor())

	color := event.ColorWarning
	if ws.Enemy.Boss {
		color = event.ColorCrit
	}
	handler.SendLog(deps, fmt.Sprintf("Floor %d: %s appears!", sess.Floor, ws.Enemy.Name), color)
	handler.SendChanged(deps, event.WhatEnemy)
}

// ==================== 回城 ====================

// ReturnToTown 結束地城：取消所有延遲回呼、清除敵人與 buff、HP/MP 全滿。
func (s *DungeonSystem) ReturnToTown() {
	ws := s.deps.World
	s.deps.Scheduler.CancelAll()

	ws.Phase = world.PhaseTown
	ws.Session = nil
	ws.Enemy = nil
	ws.Cooldowns = [world.SkillSlots]float64{}
	p := ws.Player
	p.Buffs = nil
	s.deps.Equip.Recalc()
	p.HP = p.MaxHP
	p.MP = p.MaxMP
	ws.Dirty = true

	handler.SendLog(s.deps, "Returned to town.", event.ColorInfo)
	handler.SendChanged(s.deps, event.WhatPhase, event.WhatEnemy, event.WhatPlayer)
}
