package handler

import (
	"github.com/inkblade/hackslash/internal/config"
	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/gen"
	"github.com/inkblade/hackslash/internal/scripting"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all handlers and systems.
// The manager fields are filled in by system.Install.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	World     *world.State
	Tables    *data.Tables
	Gen       *gen.Generator
	Scripting *scripting.Engine
	Bus       *event.Bus
	Scheduler *coresys.Scheduler

	Dungeon   DungeonManager
	Combat    CombatManager
	Skill     SkillManager
	Equip     EquipManager
	ItemUse   ItemUseManager
	Shop      ShopManager
	Warehouse WarehouseManager
	Progress  ProgressManager
}

// DungeonManager owns the town/dungeon transitions.
type DungeonManager interface {
	// Start enters a dungeon. An empty stoneID starts the default run.
	Start(stoneID string) error
	ReturnToTown()
	// Defeat ends the run after the player's HP reached zero.
	Defeat()
}

// CombatManager resolves manual attacks and enemy kills.
type CombatManager interface {
	Attack() error
	// Victory settles a killed enemy. Stale calls are ignored.
	Victory()
}

// SkillManager casts the skill in a skill slot (0..2).
type SkillManager interface {
	Use(idx int) error
}

// EquipManager moves items between the inventory and equipment slots.
type EquipManager interface {
	// Equip puts an inventory item on. slot == world.SlotCount picks a slot.
	Equip(itemID string, slot world.Slot) error
	Unequip(slot world.Slot) error
	AttachInk(inkID, skillID string) error
	// Recalc recomputes the cached stats and clamps HP/MP to the new maxima.
	Recalc()
}

// ItemUseManager applies equipment consumables.
type ItemUseManager interface {
	Apply(consumableID, targetID string) error
}

// ShopManager covers the town merchant and healer.
type ShopManager interface {
	Sell(itemID string) error
	Heal() error
}

// WarehouseManager moves items between the inventory and the warehouse.
type WarehouseManager interface {
	Deposit(itemID string) error
	Withdraw(itemID string) error
}

// ProgressManager covers experience, stat points and the skill tree.
type ProgressManager interface {
	// GainExp adds experience and returns how many levels were gained.
	GainExp(exp int) int
	AllocateStat(s world.Stat) error
	LearnNode(id string) error
}
