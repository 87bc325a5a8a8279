package state

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/number"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
)

// PlayerID is the global id of a player, assigned at match setup.
// Ids are small ints because ordering is contractual: conflict ties are
// broken by the lowest id.
type PlayerID int

const NoPlayer PlayerID = -1

type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

func (t Team) Opponent() Team {
	if t == TeamHome {
		return TeamAway
	}
	return TeamHome
}

// Attributes are the per-player skill scalars from the roster, all in [0,1].
type Attributes struct {
	Speed   float64 `json:"speed" yaml:"speed"`
	Power   float64 `json:"power" yaml:"power"`
	Control float64 `json:"control" yaml:"control"`
}

func (a Attributes) Clamped() Attributes {
	return Attributes{
		Speed:   number.Clamp01(a.Speed),
		Power:   number.Clamp01(a.Power),
		Control: number.Clamp01(a.Control),
	}
}

// ActionInProgress tracks a multi-tick commitment (e.g. a tackle lunge).
// The zero value means no action in progress.
type ActionInProgress struct {
	Name      string
	Remaining int // ticks
}

func (a ActionInProgress) IsNone() bool {
	return a.Name == ""
}

// PlayerState follows the Simple Vehicle Model from Reynolds
// (http://www.red3d.com/cwr/steer/gdc99/): behaviorally determined steering
// forces, limited by MaxSteeringForce, produce an acceleration which is
// added to the velocity, truncated by the stamina-scaled max speed.
//
// PlayerState is a value; cloning is a plain copy.
type PlayerState struct {
	Id     PlayerID
	Team   Team
	Number int // jersey number, 1..11 within a team

	Position    vector.Vector2
	Velocity    vector.Vector2
	Orientation float64 // heading angle in radians relative to field north

	Stamina    float64 // [0,1]
	Attributes Attributes

	Mass             float64
	Radius           float64
	MaxSpeed         float64 // magnitude cap of Velocity at full stamina
	MaxSteeringForce float64

	HasBall    bool
	InProgress ActionInProgress
}

func MakePlayerState(id PlayerID, team Team, number int, position vector.Vector2, attributes Attributes) PlayerState {
	attributes = attributes.Clamped()

	return PlayerState{
		Id:     id,
		Team:   team,
		Number: number,

		Position: position,
		Velocity: vector.MakeNullVector2(),

		Stamina:    1.0,
		Attributes: attributes,

		Mass:   75.0,
		Radius: 0.4,

		// base locomotion envelope, scaled by the speed attribute
		MaxSpeed:         6.0 + 3.0*attributes.Speed,
		MaxSteeringForce: 400.0,
	}
}

// EffectiveMaxSpeed is the speed cap after stamina: an exhausted player
// keeps at least 40% of their pace.
func (state PlayerState) EffectiveMaxSpeed() float64 {
	return state.MaxSpeed * (0.4 + 0.6*state.Stamina)
}

func (state PlayerState) Clone() PlayerState {
	return state // passed by value
}
