package agent

import (
	"context"
	"time"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/action"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Decision is the outcome of one agent's turn: the action it returned, or
// Hold() when it blew the budget or panicked.
type Decision struct {
	Player   state.PlayerID
	Action   action.Action
	TimedOut bool
	Panicked bool
}

// Collector fans one Decide call per player out in parallel against the
// same snapshot. Decide calls are independent and read-only, so they need
// no synchronization; the collector only guarantees none of them can block
// the tick past the budget.
type Collector struct {
	budget time.Duration
}

func NewCollector(budget time.Duration) *Collector {
	return &Collector{budget: budget}
}

type decideResult struct {
	act      action.Action
	panicked bool
}

// Collect returns one Decision per player, in snapshot player order. A
// player without a bound agent, a timed-out agent, and a panicking agent
// all resolve to Hold(); the match never stalls on agent faults.
//
// Timed-out agent goroutines are abandoned: their result channel is
// buffered, so they complete and get garbage collected without anyone
// waiting on them.
func (c *Collector) Collect(ctx context.Context, snapshot state.Snapshot, agents map[state.PlayerID]Agent) []Decision {

	players := snapshot.Players
	results := make([]chan decideResult, len(players))

	for i, player := range players {
		bound, ok := agents[player.Id]
		if !ok {
			continue
		}

		ch := make(chan decideResult, 1)
		results[i] = ch

		go func(bound Agent, ch chan decideResult) {
			defer func() {
				if recovered := recover(); recovered != nil {
					ch <- decideResult{act: action.Hold{}, panicked: true}
				}
			}()

			ch <- decideResult{act: bound.Decide(snapshot)}
		}(bound, ch)
	}

	deadline := time.NewTimer(c.budget)
	defer deadline.Stop()

	expired := false
	decisions := make([]Decision, len(players))

	for i, player := range players {
		decision := Decision{Player: player.Id, Action: action.Hold{}}

		if results[i] == nil {
			decisions[i] = decision
			continue
		}

		if expired {
			// budget already gone; take the result only if it is already there
			select {
			case res := <-results[i]:
				decision.Action = res.act
				decision.Panicked = res.panicked
			default:
				decision.TimedOut = true
			}
			decisions[i] = decision
			continue
		}

		select {
		case res := <-results[i]:
			decision.Action = res.act
			decision.Panicked = res.panicked
		case <-deadline.C:
			expired = true
			decision.TimedOut = true
		case <-ctx.Done():
			expired = true
			decision.TimedOut = true
		}

		decisions[i] = decision
	}

	return decisions
}
