package handler

// HandleEquip puts an inventory item on. cmd.Slot == world.SlotCount lets
// the equip system pick the slot.
func HandleEquip(cmd Command, deps *Deps) error {
	return report(deps, deps.Equip.Equip(cmd.ItemID, cmd.Slot))
}

// HandleUnequip moves the item in cmd.Slot back to the inventory.
func HandleUnequip(cmd Command, deps *Deps) error {
	return report(deps, deps.Equip.Unequip(cmd.Slot))
}

// HandleAttachInk sockets an inventory ink (cmd.ItemID) into a skill (cmd.Target).
func HandleAttachInk(cmd Command, deps *Deps) error {
	return report(deps, deps.Equip.AttachInk(cmd.ItemID, cmd.Target))
}

// HandleUseItem applies an equipment consumable (cmd.ItemID) to a piece of
// equipment (cmd.Target).
func HandleUseItem(cmd Command, deps *Deps) error {
	return report(deps, deps.ItemUse.Apply(cmd.ItemID, cmd.Target))
}
