package physics

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/trigo"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// checkGoals sweeps the ball's tick trajectory against the static geometry
// index and reports a goal when it crossed a goal mouth. Runs before
// boundary enforcement: a ball inside the goal has legitimately left the
// field and must not be clamped back.
func (engine *Engine) checkGoals(gamestate *state.GameState, ballbefore entitySnapshot, result *StepResult) {

	ballstate := gamestate.GetBallState()

	from := ballbefore.position
	to := ballstate.Position

	if from.Equals(to) {
		return
	}

	for _, object := range engine.field.SearchSweep(from, to, ballstate.Radius) {
		if object.Kind != pitch.BoundaryGoalMouth {
			continue
		}

		_, intersects, colinear, _ := trigo.IntersectionWithLineSegment(
			from, to,
			object.Segment.GetPointA(), object.Segment.GetPointB(),
		)

		if intersects && !colinear {
			result.Goals = append(result.Goals, GoalNote{
				Mouth:  object.Side,
				Scorer: ballstate.LastTouchID,
			})
			return
		}
	}
}

// enforceBoundaries clamps every entity crossing the playable boundary
// back onto the field, emitting an out-of-bounds note rather than
// teleporting silently. Skipped for the ball on a goal tick.
func (engine *Engine) enforceBoundaries(
	gamestate *state.GameState,
	before map[state.PlayerID]entitySnapshot,
	ballbefore entitySnapshot,
	goalScored bool,
	result *StepResult,
) {

	field := engine.field

	for _, id := range gamestate.PlayerIDs() {
		playerstate, _ := gamestate.GetPlayerState(id)

		clamped := field.ClampToBounds(playerstate.Position, playerstate.Radius)
		if clamped.Equals(playerstate.Position) {
			continue
		}

		// only a fresh crossing emits an event; an entity already pinned to
		// the line stays silent
		if boundaryCrossed(before[id].position, playerstate.Position, clamped) {
			result.OutOfBounds = append(result.OutOfBounds, OutOfBoundsNote{
				Entity:    "player",
				EntityID:  id,
				Position:  playerstate.Position,
				LastTouch: state.NoPlayer,
			})
		}

		playerstate.Velocity = killOutwardVelocity(playerstate.Velocity, playerstate.Position, clamped)
		playerstate.Position = clamped
		gamestate.SetPlayerState(id, playerstate)
	}

	if goalScored {
		return
	}

	ballstate := gamestate.GetBallState()
	if ballstate.PossessedBy != state.NoPlayer {
		// glued to its owner, who was clamped above
		return
	}

	clamped := field.ClampToBounds(ballstate.Position, ballstate.Radius)
	if clamped.Equals(ballstate.Position) {
		return
	}

	if boundaryCrossed(ballbefore.position, ballstate.Position, clamped) {
		result.OutOfBounds = append(result.OutOfBounds, OutOfBoundsNote{
			Entity:    "ball",
			EntityID:  state.NoPlayer,
			Position:  ballstate.Position,
			LastTouch: ballstate.LastTouchID,
		})
	}

	ballstate.Velocity = reflectClampedVelocity(ballstate.Velocity, ballstate.Position, clamped, engine.tuning.RestitutionBallBoundary)
	ballstate.Position = clamped
	gamestate.SetBallState(ballstate)
}

// boundaryCrossed reports whether the clamp engaged on an axis the entity
// was not already pinned to. A body sliding along the line, or parked on
// it, stays silent; only the arrival at the line reports.
func boundaryCrossed(before vector.Vector2, raw vector.Vector2, clamped vector.Vector2) bool {
	if raw.GetX() != clamped.GetX() && before.GetX() != clamped.GetX() {
		return true
	}
	if raw.GetY() != clamped.GetY() && before.GetY() != clamped.GetY() {
		return true
	}
	return false
}

// killOutwardVelocity zeroes the velocity component pointing out of the
// field on each clamped axis.
func killOutwardVelocity(velocity vector.Vector2, raw vector.Vector2, clamped vector.Vector2) vector.Vector2 {
	vx, vy := velocity.Get()

	if raw.GetX() != clamped.GetX() {
		vx = 0
	}
	if raw.GetY() != clamped.GetY() {
		vy = 0
	}

	return vector.MakeVector2(vx, vy)
}

// reflectClampedVelocity bounces the velocity component on each clamped
// axis, scaled by the restitution coefficient.
func reflectClampedVelocity(velocity vector.Vector2, raw vector.Vector2, clamped vector.Vector2, restitution float64) vector.Vector2 {
	vx, vy := velocity.Get()

	if raw.GetX() != clamped.GetX() {
		vx = -vx * restitution
	}
	if raw.GetY() != clamped.GetY() {
		vy = -vy * restitution
	}

	return vector.MakeVector2(vx, vy)
}
