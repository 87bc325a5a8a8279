package event

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
)

// Match events, appended in tick order. Player ids are the global ids
// assigned at match setup; teams are "home"/"away".

type Event interface {
	EventName() string
	EventTime() float64
}

type EventGoal struct {
	Time     float64
	Team     string
	ScorerID int
}

func (e EventGoal) EventName() string { return "goal" }
func (e EventGoal) EventTime() float64 { return e.Time }

type EventOutOfBounds struct {
	Time        float64
	Position    vector.Vector2
	Entity      string // "ball" or "player"
	EntityID    int
	LastTouchID int // -1 when unknown
}

func (e EventOutOfBounds) EventName() string { return "outofbounds" }
func (e EventOutOfBounds) EventTime() float64 { return e.Time }

type EventFoul struct {
	Time float64
	ByID int
	OnID int
}

func (e EventFoul) EventName() string { return "foul" }
func (e EventFoul) EventTime() float64 { return e.Time }

type EventKickoff struct {
	Time float64
	Team string // team taking the kickoff
}

func (e EventKickoff) EventName() string { return "kickoff" }
func (e EventKickoff) EventTime() float64 { return e.Time }

type EventPossession struct {
	Time     float64
	PlayerID int // -1 when possession is lost rather than won
}

func (e EventPossession) EventName() string { return "possession" }
func (e EventPossession) EventTime() float64 { return e.Time }

// EventAnomaly records a recovered fault: agent timeout, malformed action,
// numeric instability. Never fatal.
type EventAnomaly struct {
	Time     float64
	Kind     string
	PlayerID int // -1 when not tied to a player
	Detail   string
}

func (e EventAnomaly) EventName() string { return "anomaly" }
func (e EventAnomaly) EventTime() float64 { return e.Time }

type EventFullTime struct {
	Time      float64
	HomeGoals int
	AwayGoals int
}

func (e EventFullTime) EventName() string { return "fulltime" }
func (e EventFullTime) EventTime() float64 { return e.Time }
