package system

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/scripting"
	"github.com/inkblade/hackslash/internal/world"
)

// ShopSystem 處理城鎮商店（出售）與治療師。實作 handler.ShopManager 介面。
// 價格公式在 Lua（heal_cost、sell_value）。
type ShopSystem struct {
	deps *handler.Deps
}

func NewShopSystem(deps *handler.Deps) *ShopSystem {
	return &ShopSystem{deps: deps}
}

// Sell 出售背包或魔法石袋中的整個欄位（堆疊道具按數量計價）。
func (s *ShopSystem) Sell(itemID string) error {
	ws := s.deps.World
	from := ws.Inv
	item := from.Find(itemID)
	if item == nil {
		from = ws.Stones
		item = from.Find(itemID)
	}
	if item == nil {
		return ErrItemNotFound
	}

	price := s.deps.Scripting.SellValue(sellContext(item)) * item.Units()
	from.RemoveItem(itemID)
	ws.Player.Gold += price
	ws.Dirty = true

	handler.SendLog(s.deps, fmt.Sprintf("Sold %s for %d gold.", item.Name, price), event.ColorGold)
	handler.SendChanged(s.deps, event.WhatInventory, event.WhatPlayer)
	return nil
}

func sellContext(item *world.Item) scripting.SellContext {
	ctx := scripting.SellContext{Power: item.Power, Rarity: int(item.Rarity)}
	switch {
	case item.Type == world.MagicStone:
		ctx.Kind = "stone"
		if item.Stone != nil {
			ctx.Tier = item.Stone.Tier
		}
	case item.Type.IsEquipment():
		ctx.Kind = "equipment"
	case item.Type == world.SkillBook:
		ctx.Kind = "skill"
	case item.Type == world.InkPot:
		ctx.Kind = "ink"
	default:
		ctx.Kind = "consumable"
	}
	return ctx
}

// Heal 付費回滿 HP，費用 = 等級 × 5。
func (s *ShopSystem) Heal() error {
	ws := s.deps.World
	p := ws.Player
	if p.HP >= p.MaxHP {
		return ErrFullHealth
	}
	cost := s.deps.Scripting.HealCost(p.Level)
	if p.Gold < cost {
		return ErrNotEnoughGold
	}
	p.Gold -= cost
	p.HP = p.MaxHP
	ws.Dirty = true

	handler.SendLog(s.deps, fmt.Sprintf("The healer restores you for %d gold.", cost), event.ColorHeal)
	handler.SendChanged(s.deps, event.WhatPlayer)
	return nil
}
