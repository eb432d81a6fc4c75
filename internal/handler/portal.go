package handler

// HandleEnterDungeon starts a run. cmd.ItemID names the magic stone to use;
// empty starts the default five-floor run.
func HandleEnterDungeon(cmd Command, deps *Deps) error {
	return report(deps, deps.Dungeon.Start(cmd.ItemID))
}

// HandleReturnToTown abandons the current run.
func HandleReturnToTown(_ Command, deps *Deps) error {
	deps.Dungeon.ReturnToTown()
	return nil
}
