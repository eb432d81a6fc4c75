package handler

func HandleDeposit(cmd Command, deps *Deps) error {
	return report(deps, deps.Warehouse.Deposit(cmd.ItemID))
}

func HandleWithdraw(cmd Command, deps *Deps) error {
	return report(deps, deps.Warehouse.Withdraw(cmd.ItemID))
}
