package agent

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/action"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Reference agents. Deliberately naive: they exist to exercise the
// decision pipeline and as scripted opponents in tests, not to play well.

// Hold holds position forever.
func Hold() Agent {
	return AgentFunc(func(view state.Snapshot) action.Action {
		return action.Hold{}
	})
}

// Chaser runs at the ball, tackles whoever holds it, and when it wins the
// ball itself shoots at the opposing goal.
func Chaser(me state.PlayerID) Agent {
	return AgentFunc(func(view state.Snapshot) action.Action {
		self, ok := view.Player(me)
		if !ok {
			return action.Hold{}
		}

		if self.HasBall {
			target := vector.MakeVector2(view.Field.Length/2, 0)
			if self.Team == state.TeamAway {
				target = vector.MakeVector2(-view.Field.Length/2, 0)
			}
			return action.Shoot{Target: target, Power: 0.9}
		}

		possessor := view.Possessor()
		if possessor != state.NoPlayer && possessor != me {
			holder, ok := view.Player(possessor)
			if ok && holder.Team != self.Team && holder.Position.DistanceTo(self.Position) < 2.0 {
				return action.Tackle{Target: possessor}
			}
		}

		return action.MoveTo{
			Target: view.Ball.Position,
			Speed:  self.EffectiveMaxSpeed(),
		}
	})
}

// Anchor walks back to its assigned post and stays there, passing to the
// given teammate whenever the ball lands in its hands.
func Anchor(me state.PlayerID, post vector.Vector2, outlet state.PlayerID) Agent {
	return AgentFunc(func(view state.Snapshot) action.Action {
		self, ok := view.Player(me)
		if !ok {
			return action.Hold{}
		}

		if self.HasBall {
			return action.PassTo{Target: outlet, Power: 0.6}
		}

		if self.Position.DistanceTo(post) > 0.5 {
			return action.MoveTo{Target: post, Speed: self.EffectiveMaxSpeed() * 0.7}
		}

		return action.Hold{}
	})
}
