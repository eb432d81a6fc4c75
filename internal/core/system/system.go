package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseTimers  Phase = iota // 0: buff durations, regen, skill cooldowns
	PhaseSkills               // 1: auto-cast skills
	PhaseCombat               // 2: enemy attack timer
	PhaseSchedule             // 3: fire due delayed continuations
	PhasePersist              // 4: autosave

	phaseCount
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
