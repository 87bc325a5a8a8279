package action

import (
	"fmt"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Actions are immutable intents. Agents produce exactly one per tick; the
// resolver translates them into physical inputs. An action never executes
// itself.

type Kind int

const (
	KindHold Kind = iota
	KindMoveTo
	KindPassTo
	KindShoot
	KindTackle
)

func (k Kind) String() string {
	switch k {
	case KindHold:
		return "hold"
	case KindMoveTo:
		return "moveto"
	case KindPassTo:
		return "passto"
	case KindShoot:
		return "shoot"
	case KindTackle:
		return "tackle"
	}
	return "unknown"
}

type Action interface {
	Kind() Kind
	String() string
}

// Hold is the explicit no-op. Every agent must return some action every
// tick; this is the one substituted on timeout or fault.
type Hold struct{}

func (a Hold) Kind() Kind     { return KindHold }
func (a Hold) String() string { return "Hold()" }

type MoveTo struct {
	Target vector.Vector2
	Speed  float64 // desired speed, m/s; clamped to the player's max
}

func (a MoveTo) Kind() Kind { return KindMoveTo }
func (a MoveTo) String() string {
	return fmt.Sprintf("MoveTo(%s, %.2f)", a.Target.String(), a.Speed)
}

type PassTo struct {
	Target state.PlayerID
	Power  float64 // [0,1]
}

func (a PassTo) Kind() Kind { return KindPassTo }
func (a PassTo) String() string {
	return fmt.Sprintf("PassTo(%d, %.2f)", a.Target, a.Power)
}

type Shoot struct {
	Target vector.Vector2
	Power  float64 // [0,1]
}

func (a Shoot) Kind() Kind { return KindShoot }
func (a Shoot) String() string {
	return fmt.Sprintf("Shoot(%s, %.2f)", a.Target.String(), a.Power)
}

type Tackle struct {
	Target state.PlayerID
}

func (a Tackle) Kind() Kind { return KindTackle }
func (a Tackle) String() string {
	return fmt.Sprintf("Tackle(%d)", a.Target)
}
