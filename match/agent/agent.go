package agent

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/action"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Agent is the single capability the core requires from a player brain:
// given a read-only snapshot, return exactly one action for this tick.
//
// The contract is a pure function: no side effects observable by the match,
// bounded execution time. An agent exceeding the per-tick budget gets a
// Hold() substituted (see Collector); the call is abandoned, never awaited.
type Agent interface {
	Decide(view state.Snapshot) action.Action
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(view state.Snapshot) action.Action

func (f AgentFunc) Decide(view state.Snapshot) action.Action {
	return f(view)
}
