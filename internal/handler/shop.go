package handler

// HandleSell sells an inventory entry or a magic stone.
func HandleSell(cmd Command, deps *Deps) error {
	return report(deps, deps.Shop.Sell(cmd.ItemID))
}

// HandleHeal pays the town healer.
func HandleHeal(_ Command, deps *Deps) error {
	return report(deps, deps.Shop.Heal())
}
