package state

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/event"
)

// Scoreboard carries the goal count, the simulated clock and the ordered
// event log. The log pointer is shared between copies on purpose: it is the
// match's single append-only sequence.
type Scoreboard struct {
	HomeGoals int
	AwayGoals int
	Clock     float64 // simulated seconds elapsed

	Events *event.Log
}

func MakeScoreboard() Scoreboard {
	return Scoreboard{
		Events: event.NewLog(),
	}
}

func (board Scoreboard) GoalsFor(team Team) int {
	if team == TeamHome {
		return board.HomeGoals
	}
	return board.AwayGoals
}
