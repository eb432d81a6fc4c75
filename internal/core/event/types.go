package event

// Color tags understood by the renderer.
const (
	ColorInfo    = "info"
	ColorDamage  = "damage"
	ColorHeal    = "heal"
	ColorGold    = "gold"
	ColorLoot    = "loot"
	ColorWarning = "warning"
	ColorLevel   = "level"
	ColorCrit    = "crit"
)

// LogEntry is one line in the battle log.
type LogEntry struct {
	Message string
	Color   string
}

// FloatingText is a transient damage/heal indicator.
type FloatingText struct {
	Text  string
	Color string
	Crit  bool
}

// What names the part of the state a StateChanged refers to.
type What string

const (
	WhatPhase     What = "phase"
	WhatPlayer    What = "player"
	WhatEnemy     What = "enemy"
	WhatEquipment What = "equipment"
	WhatInventory What = "inventory"
)

// StateChanged tells the renderer to re-read part of the state.
type StateChanged struct {
	What What
}
