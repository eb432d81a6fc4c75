package system

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// defaultExpToNext 是存檔損壞時的經驗門檻下限。
const defaultExpToNext = 50

// ProgressSystem 處理經驗升級、屬性點分配與技能樹。
// 實作 handler.ProgressManager 介面。
type ProgressSystem struct {
	deps *handler.Deps
}

func NewProgressSystem(deps *handler.Deps) *ProgressSystem {
	return &ProgressSystem{deps: deps}
}

// ==================== 經驗 / 升級 ====================

// GainExp 增加經驗並連續升級，直到 exp < expToNext。
// 每升一級門檻 ×1.2（Lua next_exp_threshold），並獲得屬性點、技能點；
// 升級後 HP/MP 全滿。
func (s *ProgressSystem) GainExp(exp int) int {
	p := s.deps.World.Player
	cfg := s.deps.Config.Game
	if p.ExpToNext <= 0 {
		p.ExpToNext = defaultExpToNext
	}
	p.Exp += max(0, exp)

	levels := 0
	for p.Exp >= p.ExpToNext {
		p.Exp -= p.ExpToNext
		p.Level++
		p.ExpToNext = s.deps.Scripting.NextExpThreshold(p.ExpToNext)
		p.StatPoints += cfg.StatPointsPerLevel
		p.SkillPoints += cfg.SkillPointsPerLevel
		levels++
	}
	if levels == 0 {
		return 0
	}

	s.deps.Equip.Recalc()
	p.HP = p.MaxHP
	p.MP = p.MaxMP
	s.deps.World.Dirty = true
	handler.SendLog(s.deps, fmt.Sprintf("Level up! You are now level %d.", p.Level), event.ColorLevel)
	handler.SendChanged(s.deps, event.WhatPlayer)
	s.deps.Log.Info("升級", zap.Int("level", p.Level), zap.Int("levels", levels))
	return levels
}

// ==================== 屬性點 ====================

// AllocateStat 消耗一點屬性點提升 str/dex/int。
func (s *ProgressSystem) AllocateStat(stat world.Stat) error {
	p := s.deps.World.Player
	if !stat.IsAttribute() {
		return ErrNotAttribute
	}
	if p.StatPoints <= 0 {
		return ErrNoStatPoints
	}
	switch stat {
	case world.StatStr:
		p.Attrs.Str++
	case world.StatDex:
		p.Attrs.Dex++
	case world.StatInt:
		p.Attrs.Int++
	}
	p.StatPoints--

	s.deps.Equip.Recalc()
	s.deps.World.Dirty = true
	handler.SendChanged(s.deps, event.WhatPlayer)
	return nil
}

// ==================== 技能樹 ====================

// LearnNode 消耗一點技能點學習節點。前置節點必須全部已學。
func (s *ProgressSystem) LearnNode(id string) error {
	p := s.deps.World.Player
	node, ok := s.deps.Tables.SkillTree.Get(id)
	if !ok {
		return ErrUnknownNode
	}
	if p.Learned(id) {
		return ErrAlreadyLearned
	}
	if p.SkillPoints <= 0 {
		return ErrNoSkillPoints
	}
	for _, req := range node.Requires {
		if !p.Learned(req) {
			return fmt.Errorf("%s: %w", req, ErrPrerequisite)
		}
	}
	if p.LearnedSkills == nil {
		p.LearnedSkills = make(map[string]int)
	}
	p.LearnedSkills[id] = 1
	p.SkillPoints--

	s.deps.Equip.Recalc()
	s.deps.World.Dirty = true
	handler.SendLog(s.deps, fmt.Sprintf("Learned %s.", node.Name), event.ColorLevel)
	handler.SendChanged(s.deps, event.WhatPlayer)
	return nil
}
