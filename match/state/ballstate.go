package state

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
)

// BallState is a value; cloning is a plain copy. Possession is an id-based
// back-reference, never an embedded player.
type BallState struct {
	Position vector.Vector2
	Velocity vector.Vector2
	Spin     float64 // signed scalar; positive curls the trajectory left

	Mass   float64
	Radius float64

	PossessedBy PlayerID // NoPlayer when free
	LastTouchID PlayerID // NoPlayer before the first touch
}

func MakeBallState(position vector.Vector2) BallState {
	return BallState{
		Position: position,
		Velocity: vector.MakeNullVector2(),

		Mass:   0.43,
		Radius: 0.11,

		PossessedBy: NoPlayer,
		LastTouchID: NoPlayer,
	}
}

func (state BallState) IsFree() bool {
	return state.PossessedBy == NoPlayer
}

func (state BallState) Clone() BallState {
	return state // passed by value
}
