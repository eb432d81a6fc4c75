package system

import (
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/handler"
)

// Install 建立所有遊戲系統、填入 deps 的管理器介面，並依 phase 註冊 tick 系統。
// deps 的基礎欄位（World、Tables、Gen、Scripting、Bus、Scheduler）必須先設好。
func Install(runner *coresys.Runner, deps *handler.Deps) {
	equip := NewEquipSystem(deps)
	deps.Equip = equip
	deps.Dungeon = NewDungeonSystem(deps)
	deps.Combat = NewCombatSystem(deps)
	deps.Skill = NewSkillSystem(deps)
	deps.ItemUse = NewItemUseSystem(deps)
	deps.Shop = NewShopSystem(deps)
	deps.Warehouse = NewWarehouseSystem(deps)
	deps.Progress = NewProgressSystem(deps)

	// Phase 0: 計時
	runner.Register(NewBuffTickSystem(deps))
	runner.Register(NewRegenSystem(deps))
	runner.Register(NewCooldownSystem(deps))
	// Phase 1: 自動施放
	runner.Register(NewAutoCastSystem(deps))
	// Phase 2: 敵人攻擊
	runner.Register(NewEnemyAttackSystem(deps))
	// Phase 3: 延遲回呼（下一樓層、回城）
	runner.Register(deps.Scheduler)

	equip.Recalc()
}
