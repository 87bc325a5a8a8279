package physics

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Inputs are the only write path from decisions into the physical world.
// The resolver emits them; the engine consumes them within the same tick.

type Input interface {
	InputName() string
}

// Steer applies a steering force to a player for this tick. The resolver
// has already capped it by the player's acceleration limit.
type Steer struct {
	Player state.PlayerID
	Force  vector.Vector2
}

func (i Steer) InputName() string { return "steer" }

// Kick releases the ball from its possessor with the given velocity.
// Ignored if By does not hold the ball, except when the ball is free and
// By is within capture range (a loose-ball kick).
type Kick struct {
	By       state.PlayerID
	Velocity vector.Vector2
	Spin     float64
}

func (i Kick) InputName() string { return "kick" }

// Transfer moves possession to a player. A Transfer this tick constitutes
// a pending contest: the engine's contact-capture is suppressed so a won
// tackle cannot be overridden by an incidental touch.
type Transfer struct {
	To state.PlayerID
}

func (i Transfer) InputName() string { return "transfer" }

// Slow scales a player's velocity once, modelling a committed lunge.
type Slow struct {
	Player state.PlayerID
	Factor float64
}

func (i Slow) InputName() string { return "slow" }
