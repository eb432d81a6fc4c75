package handler

// HandleAttack processes a manual attack on the current enemy.
func HandleAttack(_ Command, deps *Deps) error {
	return report(deps, deps.Combat.Attack())
}
