package handler

import (
	"github.com/inkblade/hackslash/internal/core/event"
)

// SendLog queues a battle-log line.
func SendLog(deps *Deps, msg, color string) {
	event.Emit(deps.Bus, event.LogEntry{Message: msg, Color: color})
}

// SendFloat queues a floating damage/heal indicator.
func SendFloat(deps *Deps, text, color string, crit bool) {
	event.Emit(deps.Bus, event.FloatingText{Text: text, Color: color, Crit: crit})
}

// SendChanged tells the renderer which parts of the state to re-read.
func SendChanged(deps *Deps, whats ...event.What) {
	for _, w := range whats {
		event.Emit(deps.Bus, event.StateChanged{What: w})
	}
}

// report turns a rejected action into a warning line. Returns err unchanged.
func report(deps *Deps, err error) error {
	if err != nil {
		SendLog(deps, err.Error(), event.ColorWarning)
	}
	return err
}
