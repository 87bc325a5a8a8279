package state

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// Snapshot is an immutable deep copy of the game state at a tick boundary.
// It is the only view handed to agents and external consumers; mutating a
// snapshot cannot desynchronize the match.
type Snapshot struct {
	Tick  uint64
	Clock float64

	HomeGoals int
	AwayGoals int

	Players []PlayerState // ascending id order
	Ball    BallState

	Field pitch.FieldDef
}

// Snapshot captures the current state. Only the loop calls this, at tick
// boundaries, so observers never see a partial tick.
func (gamestate *GameState) Snapshot(tick uint64) Snapshot {
	gamestate.mutex.Lock()
	defer gamestate.mutex.Unlock()

	players := make([]PlayerState, 0, len(gamestate.playerorder))
	for _, id := range gamestate.playerorder {
		players = append(players, gamestate.players[id])
	}

	return Snapshot{
		Tick:  tick,
		Clock: gamestate.board.Clock,

		HomeGoals: gamestate.board.HomeGoals,
		AwayGoals: gamestate.board.AwayGoals,

		Players: players,
		Ball:    gamestate.ball,

		Field: gamestate.field.Def(),
	}
}

func (s Snapshot) Player(id PlayerID) (PlayerState, bool) {
	for _, player := range s.Players {
		if player.Id == id {
			return player, true
		}
	}
	return PlayerState{}, false
}

func (s Snapshot) PlayersOf(team Team) []PlayerState {
	res := make([]PlayerState, 0, len(s.Players)/2)
	for _, player := range s.Players {
		if player.Team == team {
			res = append(res, player)
		}
	}
	return res
}

func (s Snapshot) Possessor() PlayerID {
	return s.Ball.PossessedBy
}

// Fingerprint digests the physical state into 64 bits. Two runs of the same
// match produce identical fingerprint sequences; replay verification and
// the determinism tests compare these instead of whole snapshots.
func (s Snapshot) Fingerprint() uint64 {
	digest := xxhash.New()
	buf := make([]byte, 8)

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		digest.Write(buf)
	}
	writeF64 := func(v float64) {
		writeU64(math.Float64bits(v))
	}

	writeU64(s.Tick)
	writeF64(s.Clock)
	writeU64(uint64(s.HomeGoals))
	writeU64(uint64(s.AwayGoals))

	for _, player := range s.Players {
		writeU64(uint64(player.Id))
		writeF64(player.Position.GetX())
		writeF64(player.Position.GetY())
		writeF64(player.Velocity.GetX())
		writeF64(player.Velocity.GetY())
		writeF64(player.Orientation)
		writeF64(player.Stamina)
		if player.HasBall {
			writeU64(1)
		} else {
			writeU64(0)
		}
	}

	writeF64(s.Ball.Position.GetX())
	writeF64(s.Ball.Position.GetY())
	writeF64(s.Ball.Velocity.GetX())
	writeF64(s.Ball.Velocity.GetY())
	writeF64(s.Ball.Spin)
	writeU64(uint64(int64(s.Ball.PossessedBy)))
	writeU64(uint64(int64(s.Ball.LastTouchID)))

	return digest.Sum64()
}
