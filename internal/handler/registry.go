package handler

import (
	"errors"
	"fmt"

	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// Op identifies a player action.
type Op uint8

const (
	OpEnterDungeon Op = iota + 1
	OpReturnToTown
	OpAttack
	OpUseSkill
	OpEquip
	OpUnequip
	OpAttachInk
	OpUseItem
	OpSell
	OpHeal
	OpDeposit
	OpWithdraw
	OpAllocateStat
	OpLearnNode
)

var opNames = map[Op]string{
	OpEnterDungeon: "EnterDungeon",
	OpReturnToTown: "ReturnToTown",
	OpAttack:       "Attack",
	OpUseSkill:     "UseSkill",
	OpEquip:        "Equip",
	OpUnequip:      "Unequip",
	OpAttachInk:    "AttachInk",
	OpUseItem:      "UseItem",
	OpSell:         "Sell",
	OpHeal:         "Heal",
	OpDeposit:      "Deposit",
	OpWithdraw:     "Withdraw",
	OpAllocateStat: "AllocateStat",
	OpLearnNode:    "LearnNode",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", int(o))
}

// Command is one player action with its arguments. Which fields matter
// depends on Op.
type Command struct {
	Op     Op
	ItemID string     // item acted on (stone for EnterDungeon, consumable for UseItem, ink for AttachInk)
	Target string     // UseItem target equipment, AttachInk target skill
	Index  int        // UseSkill slot 0..2
	Slot   world.Slot // Equip/Unequip; SlotCount = automatic
	Stat   world.Stat // AllocateStat
	NodeID string     // LearnNode
}

// ErrPhaseNotAllowed is returned when a command arrives in the wrong phase.
var ErrPhaseNotAllowed = errors.New("not allowed here")

// HandlerFunc is the callback signature for command handlers.
type HandlerFunc func(cmd Command) error

type handlerEntry struct {
	fn            HandlerFunc
	allowedPhases map[world.Phase]bool
}

// Registry maps ops to handlers with phase-based access control.
type Registry struct {
	handlers map[Op]*handlerEntry
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[Op]*handlerEntry),
		log:      log,
	}
}

// Register maps an op to a handler, restricted to the given phases.
func (reg *Registry) Register(op Op, phases []world.Phase, fn HandlerFunc) {
	allowed := make(map[world.Phase]bool, len(phases))
	for _, p := range phases {
		allowed[p] = true
	}
	reg.handlers[op] = &handlerEntry{
		fn:            fn,
		allowedPhases: allowed,
	}
}

// Dispatch validates the phase and runs the handler for cmd.Op. Unknown ops
// are ignored.
func (reg *Registry) Dispatch(phase world.Phase, cmd Command) error {
	entry, ok := reg.handlers[cmd.Op]
	if !ok {
		reg.log.Debug("未知指令", zap.Stringer("op", cmd.Op))
		return nil
	}
	if !entry.allowedPhases[phase] {
		reg.log.Debug("指令在此階段不允許",
			zap.Stringer("op", cmd.Op),
			zap.Stringer("phase", phase),
		)
		return fmt.Errorf("%s: %w", cmd.Op, ErrPhaseNotAllowed)
	}
	return reg.safeCall(entry.fn, cmd)
}

// safeCall runs a handler with panic recovery so one bad command cannot
// stop the game loop.
func (reg *Registry) safeCall(fn HandlerFunc, cmd Command) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("處理器 panic 已恢復",
				zap.Stringer("op", cmd.Op),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for %s: %v", cmd.Op, rec)
		}
	}()
	return fn(cmd)
}

var (
	anyPhase  = []world.Phase{world.PhaseTown, world.PhaseDungeon}
	townOnly  = []world.Phase{world.PhaseTown}
	inDungeon = []world.Phase{world.PhaseDungeon}
)

// RegisterAll registers every command handler into the registry.
func RegisterAll(reg *Registry, deps *Deps) {
	on := func(op Op, phases []world.Phase, h func(Command, *Deps) error) {
		reg.Register(op, phases, func(cmd Command) error { return h(cmd, deps) })
	}

	// 城鎮 ↔ 地城
	on(OpEnterDungeon, townOnly, HandleEnterDungeon)
	on(OpReturnToTown, inDungeon, HandleReturnToTown)

	// 戰鬥
	on(OpAttack, inDungeon, HandleAttack)
	on(OpUseSkill, inDungeon, HandleUseSkill)

	// 裝備與道具
	on(OpEquip, anyPhase, HandleEquip)
	on(OpUnequip, anyPhase, HandleUnequip)
	on(OpAttachInk, anyPhase, HandleAttachInk)
	on(OpUseItem, anyPhase, HandleUseItem)

	// 城鎮設施
	on(OpSell, townOnly, HandleSell)
	on(OpHeal, townOnly, HandleHeal)
	on(OpDeposit, townOnly, HandleDeposit)
	on(OpWithdraw, townOnly, HandleWithdraw)

	// 成長
	on(OpAllocateStat, anyPhase, HandleAllocateStat)
	on(OpLearnNode, anyPhase, HandleLearnNode)
}
