package handler

import (
	"fmt"

	"github.com/inkblade/hackslash/internal/world"
)

// HandleUseSkill casts the skill in slot cmd.Index.
func HandleUseSkill(cmd Command, deps *Deps) error {
	if cmd.Index < 0 || cmd.Index >= world.SkillSlots {
		return fmt.Errorf("skill slot %d out of range", cmd.Index)
	}
	return report(deps, deps.Skill.Use(cmd.Index))
}
