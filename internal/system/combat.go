package system

import (
	"fmt"
	"math"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/scripting"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// 掉落機率
const (
	lootRate          = 0.35
	bossLootRate      = 1.0
	equipItemRate     = 0.15
	bossEquipItemRate = 0.8
	stoneRate         = 0.05
	bossStoneRate     = 0.4
)

// CombatSystem 處理手動攻擊與擊殺結算（經驗、金幣、升級、掉落、樓層推進）。
// 實作 handler.CombatManager 介面。
type CombatSystem struct {
	deps *handler.Deps
}

func NewCombatSystem(deps *handler.Deps) *CombatSystem {
	return &CombatSystem{deps: deps}
}

// ==================== 手動攻擊 ====================

// Attack 對當前敵人普通攻擊。沒有可攻擊目標時靜默忽略。
func (s *CombatSystem) Attack() error {
	ws := s.deps.World
	if !battleLive(ws) {
		return nil
	}
	p, e, st := ws.Player, ws.Enemy, ws.Stats
	rng := s.deps.Gen.Rand()

	res := s.deps.Scripting.CalcPlayerAttack(scripting.PlayerAttackContext{
		Atk:        st.Atk,
		Crit:       st.Crit,
		CritDmg:    st.CritDmg,
		DmgMult:    st.DmgMult,
		CritRoll:   rng.Float64() * 100,
		SpreadRoll: rng.Float64(),
	})
	e.HP = max(0, e.HP-res.Damage)

	color := event.ColorDamage
	text := fmt.Sprintf("-%d", res.Damage)
	if res.Crit {
		color = event.ColorCrit
		text += "!"
	}
	handler.SendFloat(s.deps, text, color, res.Crit)

	// 吸血
	if st.Vamp > 0 && p.HP < p.MaxHP {
		heal := int(math.Ceil(float64(res.Damage) * float64(st.Vamp) / 100))
		if heal > 0 {
			p.HP = min(p.MaxHP, p.HP+heal)
			handler.SendFloat(s.deps, fmt.Sprintf("+%d", heal), event.ColorHeal, false)
		}
	}

	ws.Dirty = true
	handler.SendChanged(s.deps, event.WhatEnemy, event.WhatPlayer)
	if e.HP <= 0 {
		s.Victory()
	}
	return nil
}

// ==================== 勝利結算 ====================

// Victory 結算已倒下的敵人。session 不在戰鬥中或敵人仍存活時忽略，
// 同一隻敵人只會結算一次。
func (s *CombatSystem) Victory() {
	ws := s.deps.World
	sess, e := ws.Session, ws.Enemy
	if ws.Phase != world.PhaseDungeon || sess == nil || sess.State != world.InCombat || e == nil || e.HP > 0 {
		return
	}
	sess.State = world.Victory

	cfg := s.deps.Config
	st := ws.Stats
	expMult := (1 + float64(st.ExpMult)/100 + float64(sess.Mods.Get(world.RewardExp))/100) * cfg.Rates.ExpRate
	goldMult := (1 + float64(st.GoldMult)/100 + float64(sess.Mods.Get(world.RewardGold))/100) * cfg.Rates.GoldRate
	expGain := int(math.Floor(float64(e.Exp) * expMult))
	goldGain := int(math.Floor(float64(e.Gold) * goldMult))

	p := ws.Player
	p.Gold += goldGain
	handler.SendLog(s.deps, fmt.Sprintf("Defeated %s! +%d EXP, +%d gold", e.Name, expGain, goldGain), event.ColorGold)
	s.deps.Progress.GainExp(expGain)

	if sess.FinalFloor() && e.Boss {
		sess.State = world.Cleared
		handler.SendLog(s.deps, "Dungeon cleared!", event.ColorLevel)
		s.distributeLoot(sess.Floor, true)
		id := sess.ID
		s.deps.Scheduler.After(cfg.Game.ReturnDelay, func() {
			if ws.SameSession(id) {
				s.deps.Dungeon.ReturnToTown()
			}
		})
	} else {
		s.distributeLoot(sess.Floor, false)
		sess.Floor++
		id := sess.ID
		s.deps.Scheduler.After(cfg.Game.FloorDelay, func() {
			spawnNext(s.deps, id)
		})
	}

	ws.Dirty = true
	s.deps.Log.Debug("擊殺結算",
		zap.String("enemy", e.Name),
		zap.Int("floor", sess.Floor),
		zap.Int("exp", expGain),
		zap.Int("gold", goldGain),
	)
	handler.SendChanged(s.deps, event.WhatPlayer, event.WhatEnemy, event.WhatInventory)
}

// ==================== 掉落 ====================

// distributeLoot 擲掉落：一般道具、裝備強化類道具、魔法石。
// 背包滿時改放倉庫，倉庫也滿則丟失並提示。
func (s *CombatSystem) distributeLoot(floor int, boss bool) {
	ws := s.deps.World
	sess := ws.Session
	rng := s.deps.Gen.Rand()
	rates := s.deps.Config.Rates

	dropRate, count := lootRate, 1
	itemRate, stRate, stoneFloor := equipItemRate, stoneRate, floor
	if boss {
		dropRate = bossLootRate
		count = 1 + sess.Mods.Get(world.RewardDrop)
		itemRate, stRate, stoneFloor = bossEquipItemRate, bossStoneRate, floor+1
	}
	dropRate = math.Min(1, dropRate*rates.DropRate)

	tier := sess.StoneTier
	if tier <= 0 {
		tier = floor
	}
	for i := 0; i < count; i++ {
		if rng.Float64() < dropRate {
			s.place(s.deps.Gen.Loot(floor, sess.Mods, tier))
		}
	}
	if rng.Float64() < math.Min(1, itemRate*rates.DropRate) {
		s.place(s.deps.Gen.EquipmentItem(floor))
	}
	if !ws.Stones.IsFull() && rng.Float64() < math.Min(1, stRate*rates.DropRate) {
		stone := s.deps.Gen.MagicStone(stoneFloor)
		ws.Stones.AddItem(stone)
		handler.SendLog(s.deps, fmt.Sprintf("Found %s!", stone.Name), event.ColorLoot)
	}
}

// place 放入背包，滿了改放倉庫。
func (s *CombatSystem) place(item *world.Item) {
	if item == nil {
		return
	}
	ws := s.deps.World
	switch {
	case ws.Inv.CanAdd(item):
		ws.Inv.AddItem(item)
		handler.SendLog(s.deps, fmt.Sprintf("Found %s [%s].", item.Name, item.Rarity), event.ColorLoot)
	case ws.Warehouse.CanAdd(item):
		ws.Warehouse.AddItem(item)
		handler.SendLog(s.deps, fmt.Sprintf("Found %s [%s] (sent to warehouse).", item.Name, item.Rarity), event.ColorLoot)
	default:
		handler.SendLog(s.deps, fmt.Sprintf("Inventory and warehouse are full, %s was lost.", item.Name), event.ColorWarning)
	}
}
