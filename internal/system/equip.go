package system

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// EquipSystem 負責所有裝備邏輯（穿脫裝備、技能欄、墨水鑲嵌、屬性計算）。
// 實作 handler.EquipManager 介面。
type EquipSystem struct {
	deps *handler.Deps
}

// NewEquipSystem 建立裝備系統。
func NewEquipSystem(deps *handler.Deps) *EquipSystem {
	return &EquipSystem{deps: deps}
}

// ==================== 穿上 ====================

// Equip 從背包穿上道具，原本佔用該欄位的道具放回背包。
// 技能欄的冷卻跟著欄位走，換裝不會重置。
func (s *EquipSystem) Equip(itemID string, slot world.Slot) error {
	ws := s.deps.World
	item := ws.Inv.Find(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	if !item.Type.IsEquipment() && item.Type != world.SkillBook {
		return ErrNotEquippable
	}
	if slot >= world.SlotCount {
		slot = s.pickSlot(item.Type)
	}
	if !slot.Accepts(item.Type) {
		return ErrWrongSlot
	}
	if !ws.Stats.Attrs().Meets(item.Required) {
		return ErrRequirements
	}

	// 先移出背包，舊裝備必定放得回去
	ws.Inv.RemoveItem(itemID)
	if prev := ws.Equip.Set(slot, item); prev != nil {
		ws.Inv.AddItem(prev)
	}

	s.Recalc()
	ws.Dirty = true
	handler.SendLog(s.deps, fmt.Sprintf("Equipped %s.", item.Name), event.ColorInfo)
	handler.SendChanged(s.deps, event.WhatEquipment, event.WhatInventory, event.WhatPlayer)
	s.deps.Log.Debug("穿上裝備", zap.String("item", item.Name), zap.Stringer("slot", slot))
	return nil
}

// pickSlot 選擇預設欄位：技能放第一個空技能欄（全滿則 skill1），
// 戒指優先空的那一格。
func (s *EquipSystem) pickSlot(t world.ItemType) world.Slot {
	eq := &s.deps.World.Equip
	if t == world.SkillBook {
		return eq.FirstFreeSkillSlot()
	}
	slots := world.SlotsFor(t)
	if len(slots) == 0 {
		return world.SlotCount
	}
	for _, sl := range slots {
		if eq.Get(sl) == nil {
			return sl
		}
	}
	return slots[0]
}

// ==================== 脫下 ====================

// Unequip 脫下欄位中的道具放回背包。背包滿時拒絕。
func (s *EquipSystem) Unequip(slot world.Slot) error {
	ws := s.deps.World
	item := ws.Equip.Get(slot)
	if item == nil {
		return ErrSlotEmpty
	}
	if ws.Inv.IsFull() {
		return ErrInventoryFull
	}
	ws.Equip.Set(slot, nil)
	ws.Inv.AddItem(item)

	s.Recalc()
	ws.Dirty = true
	handler.SendChanged(s.deps, event.WhatEquipment, event.WhatInventory, event.WhatPlayer)
	return nil
}

// ==================== 墨水 ====================

// AttachInk 將背包中的墨水鑲入技能（裝備中或背包中皆可），上限為技能的 InkSlots。
func (s *EquipSystem) AttachInk(inkID, skillID string) error {
	ws := s.deps.World
	inkItem := ws.Inv.Find(inkID)
	if inkItem == nil {
		return ErrItemNotFound
	}
	if inkItem.Type != world.InkPot || inkItem.Ink == nil {
		return ErrNotInk
	}
	skill := ws.FindItem(skillID)
	if skill == nil {
		return ErrItemNotFound
	}
	if skill.Type != world.SkillBook || skill.Skill == nil {
		return ErrNotSkill
	}
	if len(skill.Inks) >= skill.InkSlots {
		return ErrInkSlotsFull
	}

	ws.Inv.RemoveItem(inkID)
	skill.Inks = append(skill.Inks, *inkItem.Ink)
	ws.Dirty = true
	handler.SendLog(s.deps, fmt.Sprintf("%s attached to %s.", inkItem.Name, skill.Name), event.ColorInfo)
	handler.SendChanged(s.deps, event.WhatEquipment, event.WhatInventory)
	return nil
}

// ==================== 屬性計算 ====================

// Recalc 重新計算衍生屬性，並將 HP/MP 夾在新上限內。
// 裝備、buff、技能樹、等級、屬性點任何變動後都必須呼叫。
func (s *EquipSystem) Recalc() {
	ws := s.deps.World
	ws.Stats = StatsOf(ws, s.deps.Tables.SkillTree)
	p := ws.Player
	p.MaxHP = ws.Stats.MaxHP
	p.MaxMP = ws.Stats.MaxMP
	p.HP = max(0, min(p.HP, p.MaxHP))
	p.MP = max(0, min(p.MP, p.MaxMP))
}
