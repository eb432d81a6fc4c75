package main

import (
	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// 回城後休息多少 tick 再出發
const townRestTicks = 40

// 背包超過這個數量就賣掉最弱的裝備
const sellThreshold = 20

// autopilot 在沒有人操作時代替玩家下指令。只在遊戲迴圈的 goroutine 中執行，
// 所有動作都經過 handler.Registry，與手動輸入走同一條路徑。
type autopilot struct {
	ws      *world.State
	tree    *data.SkillTreeTable
	reg     *handler.Registry
	log     *zap.Logger
	enabled bool
	rest    int
}

func newAutopilot(ws *world.State, tree *data.SkillTreeTable, reg *handler.Registry, log *zap.Logger) *autopilot {
	return &autopilot{ws: ws, tree: tree, reg: reg, log: log, enabled: true}
}

func (a *autopilot) send(cmd handler.Command) bool {
	if err := a.reg.Dispatch(a.ws.Phase, cmd); err != nil {
		a.log.Debug("自動指令被拒絕", zap.Stringer("op", cmd.Op), zap.Error(err))
		return false
	}
	return true
}

// Step 每個 tick 呼叫一次。
func (a *autopilot) Step() {
	if !a.enabled {
		return
	}
	switch a.ws.Phase {
	case world.PhaseTown:
		a.town()
	case world.PhaseDungeon:
		a.fight()
	}
}

// ==================== 地城 ====================

func (a *autopilot) fight() {
	ws := a.ws
	if ws.Session == nil || ws.Session.State != world.InCombat || !ws.Enemy.Alive() {
		return
	}
	for i := 0; i < world.SkillSlots; i++ {
		sk := ws.Equip.Get(world.SkillSlot(i))
		if sk == nil || sk.Skill == nil || ws.Cooldowns[i] > 0 || ws.Player.MP < sk.Skill.MPCost {
			continue
		}
		if sk.Skill.Kind == world.SkillHeal && ws.Player.HP*2 > ws.Player.MaxHP {
			continue
		}
		a.send(handler.Command{Op: handler.OpUseSkill, Index: i})
		if !ws.Enemy.Alive() {
			return
		}
	}
	a.send(handler.Command{Op: handler.OpAttack})
}

// ==================== 城鎮 ====================

func (a *autopilot) town() {
	if a.rest < townRestTicks {
		a.rest++
		return
	}
	a.rest = 0
	p := a.ws.Player

	for p.StatPoints > 0 {
		if !a.send(handler.Command{Op: handler.OpAllocateStat, Stat: world.StatStr}) {
			break
		}
	}
	for p.SkillPoints > 0 {
		id, ok := a.nextNode()
		if !ok || !a.send(handler.Command{Op: handler.OpLearnNode, NodeID: id}) {
			break
		}
	}
	a.upgradeGear()
	a.sellJunk()
	if p.HP < p.MaxHP && p.Gold >= p.Level*5 {
		a.send(handler.Command{Op: handler.OpHeal})
	}
	a.send(handler.Command{Op: handler.OpEnterDungeon, ItemID: a.bestStone()})
}

// nextNode 回傳第一個前置條件已滿足、尚未學習的節點。
func (a *autopilot) nextNode() (string, bool) {
	p := a.ws.Player
	for _, n := range a.tree.Nodes() {
		if p.Learned(n.ID) {
			continue
		}
		ready := true
		for _, req := range n.Requires {
			if !p.Learned(req) {
				ready = false
				break
			}
		}
		if ready {
			return n.ID, true
		}
	}
	return "", false
}

// upgradeGear 穿上背包中比身上更強、且屬性需求已滿足的裝備與技能。
func (a *autopilot) upgradeGear() {
	ws := a.ws
	var candidates []*world.Item
	for _, it := range ws.Inv.Items {
		if (it.Type.IsEquipment() || it.Type == world.SkillBook) && ws.Stats.Attrs().Meets(it.Required) {
			candidates = append(candidates, it)
		}
	}
	for _, it := range candidates {
		if a.better(it) {
			a.send(handler.Command{Op: handler.OpEquip, ItemID: it.ID, Slot: world.SlotCount})
		}
	}
}

func (a *autopilot) better(it *world.Item) bool {
	if it.Type == world.SkillBook {
		return a.ws.Equip.Get(a.ws.Equip.FirstFreeSkillSlot()) == nil
	}
	for _, sl := range world.SlotsFor(it.Type) {
		cur := a.ws.Equip.Get(sl)
		if cur == nil || score(it) > score(cur) {
			return true
		}
	}
	return false
}

func score(it *world.Item) int {
	return it.Power*(int(it.Rarity)+1) + len(it.Options)
}

// sellJunk 背包快滿時賣掉分數最低的裝備。
func (a *autopilot) sellJunk() {
	for a.ws.Inv.Size() > sellThreshold {
		var worst *world.Item
		for _, it := range a.ws.Inv.Items {
			if !it.Type.IsEquipment() {
				continue
			}
			if worst == nil || score(it) < score(worst) {
				worst = it
			}
		}
		if worst == nil || !a.send(handler.Command{Op: handler.OpSell, ItemID: worst.ID}) {
			return
		}
	}
}

// bestStone 挑選階級最高的魔法石；沒有則走預設地城。
func (a *autopilot) bestStone() string {
	best, tier := "", 0
	for _, it := range a.ws.Stones.Items {
		if it.Stone != nil && it.Stone.Tier > tier {
			best, tier = it.ID, it.Stone.Tier
		}
	}
	return best
}
