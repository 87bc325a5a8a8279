package physics

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// processCollisions runs the pairwise checks in a single deterministic
// pass, ordered by ascending entity id pair (player-player first, then
// player-ball). Ordering is what keeps two runs of the same tick
// bit-identical; never iterate a map here.
func (engine *Engine) processCollisions(gamestate *state.GameState, contestPending bool, result *StepResult) {

	ids := gamestate.PlayerIDs()

	///////////////////////////////////////////////////////////////////////////
	// Player / player
	///////////////////////////////////////////////////////////////////////////

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, _ := gamestate.GetPlayerState(ids[i])
			b, _ := gamestate.GetPlayerState(ids[j])

			a, b, touched := engine.resolvePlayerPlayer(a, b)
			if touched {
				gamestate.SetPlayerState(ids[i], a)
				gamestate.SetPlayerState(ids[j], b)
			}
		}
	}

	///////////////////////////////////////////////////////////////////////////
	// Player / ball: capture first, bounce otherwise
	///////////////////////////////////////////////////////////////////////////

	ballstate := gamestate.GetBallState()
	if ballstate.PossessedBy != state.NoPlayer {
		// a possessed ball is glued to its owner; nothing to collide
		return
	}

	if !contestPending {
		winner := state.NoPlayer
		bestDistSq := 0.0

		captureRadius := engine.tuning.CaptureRadius

		for _, id := range ids {
			playerstate, _ := gamestate.GetPlayerState(id)

			distSq := playerstate.Position.DistanceToSq(ballstate.Position)
			if distSq > captureRadius*captureRadius {
				continue
			}

			// strict less keeps the lowest id on exact ties, since ids
			// are visited in ascending order
			if winner == state.NoPlayer || distSq < bestDistSq-engine.tuning.Epsilon {
				winner = id
				bestDistSq = distSq
			}
		}

		if winner != state.NoPlayer {
			if err := gamestate.SetPossession(winner); err == nil {
				result.Captures = append(result.Captures, CaptureNote{Player: winner})
			}
			return
		}
	}

	// no capture: the ball still bounces off bodies it overlaps
	for _, id := range ids {
		playerstate, _ := gamestate.GetPlayerState(id)
		ballstate = gamestate.GetBallState()

		delta := ballstate.Position.Sub(playerstate.Position)
		minDist := playerstate.Radius + ballstate.Radius

		if delta.MagSq() >= minDist*minDist {
			continue
		}

		normal := delta.Normalize()
		if normal.IsNull() {
			// dead center overlap: push along +x; lowest-id-first order
			// keeps this deterministic
			normal = vector.MakeVector2(1, 0)
		}

		overlap := minDist - delta.Mag()
		totalInvMass := 1/playerstate.Mass + 1/ballstate.Mass

		// the ball does virtually all the moving: inverse-mass weighting
		ballstate.Position = ballstate.Position.Add(normal.MultScalar(overlap * (1 / ballstate.Mass) / totalInvMass))
		playerstate.Position = playerstate.Position.Sub(normal.MultScalar(overlap * (1 / playerstate.Mass) / totalInvMass))

		relative := ballstate.Velocity.Sub(playerstate.Velocity)
		approach := relative.Dot(normal)
		if approach < 0 {
			impulse := -(1 + engine.tuning.RestitutionPlayerBall) * approach / totalInvMass
			ballstate.Velocity = ballstate.Velocity.Add(normal.MultScalar(impulse / ballstate.Mass))
			ballstate.LastTouchID = id
		}

		gamestate.SetPlayerState(id, playerstate)
		gamestate.SetBallState(ballstate)
	}
}

// resolvePlayerPlayer pushes two overlapping players apart along the
// contact normal, proportional to overlap and inverse mass, then applies
// the restitution velocity response. Reports whether a contact happened.
func (engine *Engine) resolvePlayerPlayer(a state.PlayerState, b state.PlayerState) (state.PlayerState, state.PlayerState, bool) {

	delta := b.Position.Sub(a.Position)
	minDist := a.Radius + b.Radius

	if delta.MagSq() >= minDist*minDist {
		return a, b, false
	}

	normal := delta.Normalize()
	if normal.IsNull() {
		normal = vector.MakeVector2(1, 0)
	}

	overlap := minDist - delta.Mag()
	totalInvMass := 1/a.Mass + 1/b.Mass

	a.Position = a.Position.Sub(normal.MultScalar(overlap * (1 / a.Mass) / totalInvMass))
	b.Position = b.Position.Add(normal.MultScalar(overlap * (1 / b.Mass) / totalInvMass))

	relative := b.Velocity.Sub(a.Velocity)
	approach := relative.Dot(normal)
	if approach < 0 {
		impulse := -(1 + engine.tuning.RestitutionPlayerPlayer) * approach / totalInvMass
		a.Velocity = a.Velocity.Sub(normal.MultScalar(impulse / a.Mass))
		b.Velocity = b.Velocity.Add(normal.MultScalar(impulse / b.Mass))
	}

	return a, b, true
}
