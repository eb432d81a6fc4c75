package system

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// mutateFn 修改 target（已是複本），回傳成功訊息。
type mutateFn func(s *ItemUseSystem, target, cons *world.Item) (string, error)

var mutators = map[world.ItemType]mutateFn{
	world.EnhancementStone:   (*ItemUseSystem).enhance,
	world.EnchantScroll:      (*ItemUseSystem).enchant,
	world.ElementStone:       (*ItemUseSystem).addElement,
	world.SpecialStone:       (*ItemUseSystem).addSpecial,
	world.RerollScroll:       (*ItemUseSystem).reroll,
	world.OptionSlotStone:    (*ItemUseSystem).addSlots,
	world.RarityUpgradeStone: (*ItemUseSystem).upgradeRarity,
}

// ItemUseSystem 處理裝備強化類道具。實作 handler.ItemUseManager 介面。
type ItemUseSystem struct {
	deps *handler.Deps
}

func NewItemUseSystem(deps *handler.Deps) *ItemUseSystem {
	return &ItemUseSystem{deps: deps}
}

// Apply 對裝備使用強化道具。
// 在複本上修改，成功才寫回並消耗一個道具；失敗時裝備與道具數量都不變。
func (s *ItemUseSystem) Apply(consumableID, targetID string) error {
	ws := s.deps.World
	cons := ws.Inv.Find(consumableID)
	if cons == nil {
		return ErrItemNotFound
	}
	fn, ok := mutators[cons.Type]
	if !ok {
		return ErrNotConsumable
	}
	target := ws.FindItem(targetID)
	if target == nil {
		return ErrItemNotFound
	}
	if !target.Type.IsEquipment() {
		return ErrNotEquipment
	}

	clone := target.Clone()
	msg, err := fn(s, clone, cons)
	if err != nil {
		s.deps.Log.Debug("道具使用失敗",
			zap.Stringer("consumable", cons.Type),
			zap.String("target", target.Name),
			zap.Error(err),
		)
		return err
	}

	// 寫回原指標，裝備欄與背包中的參照保持有效
	*target = *clone
	ws.Inv.TakeOne(consumableID)
	if _, eq := ws.Equip.Find(targetID); eq != nil {
		s.deps.Equip.Recalc()
	}
	ws.Dirty = true

	handler.SendLog(s.deps, msg, event.ColorLoot)
	handler.SendChanged(s.deps, event.WhatInventory, event.WhatEquipment, event.WhatPlayer)
	return nil
}

func (s *ItemUseSystem) optCount(r world.Rarity) int {
	return s.deps.Tables.Rarities.OptCount(r)
}

func powerMultOf(cons *world.Item) float64 {
	if cons.PowerMult > 0 {
		return cons.PowerMult
	}
	return 1
}

// ==================== 強化石 ====================

// enhance 基礎屬性 ×(1+mult)（各自取整）。石頭稀有度不可低於裝備。
func (s *ItemUseSystem) enhance(target, cons *world.Item) (string, error) {
	if cons.Rarity < target.Rarity {
		return "", ErrRarityTooLow
	}
	target.Base = target.Base.Scale(1 + cons.Mult)
	return fmt.Sprintf("%s enhanced (+%.0f%%).", target.Name, cons.Mult*100), nil
}

// ==================== 附魔 / 屬性 / 特殊 ====================

func (s *ItemUseSystem) enchant(target, cons *world.Item) (string, error) {
	if len(target.Options) >= s.optCount(target.Rarity) {
		return "", ErrSlotsFull
	}
	opt, ok := s.deps.Gen.RollFromPool(target.Type, target.Power, powerMultOf(cons), target.Options.Stats())
	if !ok {
		return "", ErrNoEligibleOption
	}
	target.Options = append(target.Options, opt)
	return fmt.Sprintf("%s gained %s.", target.Name, world.Describe(opt)), nil
}

func (s *ItemUseSystem) addElement(target, cons *world.Item) (string, error) {
	if len(target.Options) >= s.optCount(target.Rarity) {
		return "", ErrSlotsFull
	}
	if cons.Element == world.ElementNone || cons.Element >= world.ElementCount {
		return "", ErrNoEligibleOption
	}
	stat := world.ResStat(cons.Element)
	if target.Options.Has(stat) {
		return "", ErrOptionPresent
	}
	opt := world.SimpleOption{Stat: stat, Value: cons.Value}
	target.Options = append(target.Options, opt)
	return fmt.Sprintf("%s gained %s.", target.Name, world.Describe(opt)), nil
}

func (s *ItemUseSystem) addSpecial(target, cons *world.Item) (string, error) {
	if len(target.Options) >= s.optCount(target.Rarity) {
		return "", ErrSlotsFull
	}
	if target.Options.Has(cons.Special) {
		return "", ErrOptionPresent
	}
	opt := world.SimpleOption{Stat: cons.Special, Value: cons.Value, Special: true}
	target.Options = append(target.Options, opt)
	return fmt.Sprintf("%s gained %s.", target.Name, world.Describe(opt)), nil
}

// ==================== 重鑄 ====================

// reroll 隨機替換一個選項。新選項不可與任何現有選項同類型；
// 池中已無其他類型時，允許抽回被替換選項本身的類型。
func (s *ItemUseSystem) reroll(target, cons *world.Item) (string, error) {
	n := len(target.Options)
	if n == 0 {
		return "", ErrNoOptions
	}
	idx := s.deps.Gen.Rand().IntN(n)
	pm := powerMultOf(cons)

	opt, ok := s.deps.Gen.RollFromPool(target.Type, target.Power, pm, target.Options.Stats())
	if !ok {
		others := make(world.Options, 0, n-1)
		others = append(others, target.Options[:idx]...)
		others = append(others, target.Options[idx+1:]...)
		opt, ok = s.deps.Gen.RollFromPool(target.Type, target.Power, pm, others.Stats())
		if !ok {
			return "", ErrNoEligibleOption
		}
	}
	old := target.Options[idx]
	target.Options[idx] = opt
	return fmt.Sprintf("%s: %s → %s.", target.Name, world.Describe(old), world.Describe(opt)), nil
}

// ==================== 擴充 / 升階 ====================

// addSlots 選項格數 +slots，稀有度升到第一個容得下的階級。上限為最高階的格數。
func (s *ItemUseSystem) addSlots(target, cons *world.Item) (string, error) {
	rt := s.deps.Tables.Rarities
	want := rt.OptCount(target.Rarity) + max(1, cons.Slots)
	if want > rt.MaxOptCount() {
		return "", ErrSlotCap
	}
	for r := target.Rarity + 1; r < world.RarityCount; r++ {
		if rt.OptCount(r) >= want {
			target.Rarity = r
			return fmt.Sprintf("%s is now %s.", target.Name, r), nil
		}
	}
	return "", ErrSlotCap
}

// upgradeRarity 稀有度提升 upgrades 階（最高 legendary），
// 只為新開的選項格產生選項（新格數 - 舊格數），選項池耗盡時提早停止。
func (s *ItemUseSystem) upgradeRarity(target, cons *world.Item) (string, error) {
	if target.Rarity >= world.Legendary {
		return "", ErrMaxRarity
	}
	oldCount := s.optCount(target.Rarity)
	target.Rarity = min(world.Legendary, target.Rarity+world.Rarity(max(1, cons.Upgrades)))
	for added := max(0, s.optCount(target.Rarity)-oldCount); added > 0; added-- {
		opt, ok := s.deps.Gen.RollFromPool(target.Type, target.Power, 1, target.Options.Stats())
		if !ok {
			break
		}
		target.Options = append(target.Options, opt)
	}
	return fmt.Sprintf("%s is now %s.", target.Name, target.Rarity), nil
}
