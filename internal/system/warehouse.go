package system

import (
	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
)

// WarehouseSystem 在背包與倉庫之間搬移道具。實作 handler.WarehouseManager 介面。
type WarehouseSystem struct {
	deps *handler.Deps
}

func NewWarehouseSystem(deps *handler.Deps) *WarehouseSystem {
	return &WarehouseSystem{deps: deps}
}

// Deposit 背包 → 倉庫。
func (s *WarehouseSystem) Deposit(itemID string) error {
	return s.move(s.deps.World.Inv, s.deps.World.Warehouse, itemID, ErrWarehouseFull)
}

// Withdraw 倉庫 → 背包。
func (s *WarehouseSystem) Withdraw(itemID string) error {
	return s.move(s.deps.World.Warehouse, s.deps.World.Inv, itemID, ErrInventoryFull)
}

// move 搬移整個欄位；堆疊道具可併入目標的同類堆疊。
func (s *WarehouseSystem) move(from, to *world.Inventory, itemID string, errFull error) error {
	item := from.Find(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	if !to.CanAdd(item) {
		return errFull
	}
	from.RemoveItem(itemID)
	to.AddItem(item)
	s.deps.World.Dirty = true
	handler.SendChanged(s.deps, event.WhatInventory)
	return nil
}
