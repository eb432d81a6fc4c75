package handler

// HandleAllocateStat spends one stat point on cmd.Stat (str, dex or int).
func HandleAllocateStat(cmd Command, deps *Deps) error {
	return report(deps, deps.Progress.AllocateStat(cmd.Stat))
}

// HandleLearnNode spends one skill point on a skill-tree node.
func HandleLearnNode(cmd Command, deps *Deps) error {
	return report(deps, deps.Progress.LearnNode(cmd.NodeID))
}
