package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/event"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// GameState is the single mutable snapshot of the match. Created at match
// start, mutated once per tick by the physics pass and the loop, discarded
// at match end. Agents never see it: they get value Snapshots.
type GameState struct {
	players     map[PlayerID]PlayerState
	playerorder []PlayerID // ascending ids, fixed for the match
	ball        BallState

	field *pitch.Field
	board Scoreboard

	mutex sync.Mutex
}

func NewGameState(field *pitch.Field, players []PlayerState, ball BallState) (*GameState, error) {
	if field == nil {
		return nil, fmt.Errorf("state: nil field")
	}

	playermap := make(map[PlayerID]PlayerState, len(players))
	order := make([]PlayerID, 0, len(players))

	for _, player := range players {
		if _, dup := playermap[player.Id]; dup {
			return nil, fmt.Errorf("state: duplicate player id %d", player.Id)
		}
		if !field.ContainsWithMargin(player.Position) {
			return nil, fmt.Errorf("state: player %d spawns outside field bounds at %s", player.Id, player.Position.String())
		}

		playermap[player.Id] = player
		order = append(order, player.Id)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	return &GameState{
		players:     playermap,
		playerorder: order,
		ball:        ball,
		field:       field,
		board:       MakeScoreboard(),
	}, nil
}

func (gamestate *GameState) Field() *pitch.Field {
	return gamestate.field
}

// PlayerIDs returns the match's player ids in ascending order. The slice is
// shared and must not be mutated by callers; iteration order is part of the
// determinism contract.
func (gamestate *GameState) PlayerIDs() []PlayerID {
	return gamestate.playerorder
}

func (gamestate *GameState) GetPlayerState(id PlayerID) (PlayerState, bool) {
	gamestate.mutex.Lock()
	res, ok := gamestate.players[id]
	gamestate.mutex.Unlock()

	return res, ok
}

func (gamestate *GameState) SetPlayerState(id PlayerID, playerstate PlayerState) {
	gamestate.mutex.Lock()
	if _, ok := gamestate.players[id]; ok {
		gamestate.players[id] = playerstate
	}
	gamestate.mutex.Unlock()
}

func (gamestate *GameState) GetBallState() BallState {
	gamestate.mutex.Lock()
	res := gamestate.ball
	gamestate.mutex.Unlock()

	return res
}

func (gamestate *GameState) SetBallState(ballstate BallState) {
	gamestate.mutex.Lock()
	gamestate.ball = ballstate
	gamestate.mutex.Unlock()
}

func (gamestate *GameState) Possessor() PlayerID {
	gamestate.mutex.Lock()
	res := gamestate.ball.PossessedBy
	gamestate.mutex.Unlock()

	return res
}

// SetPossession transfers the ball to the given player, clearing any
// previous possessor. At most one player holds possession at any instant.
func (gamestate *GameState) SetPossession(id PlayerID) error {
	gamestate.mutex.Lock()
	defer gamestate.mutex.Unlock()

	newpossessor, ok := gamestate.players[id]
	if !ok {
		return fmt.Errorf("state: cannot give possession to unknown player %d", id)
	}

	if previous := gamestate.ball.PossessedBy; previous != NoPlayer && previous != id {
		previousstate := gamestate.players[previous]
		previousstate.HasBall = false
		gamestate.players[previous] = previousstate
	}

	newpossessor.HasBall = true
	gamestate.players[id] = newpossessor

	gamestate.ball.PossessedBy = id
	gamestate.ball.LastTouchID = id

	return nil
}

func (gamestate *GameState) ClearPossession() {
	gamestate.mutex.Lock()
	defer gamestate.mutex.Unlock()

	if previous := gamestate.ball.PossessedBy; previous != NoPlayer {
		previousstate := gamestate.players[previous]
		previousstate.HasBall = false
		gamestate.players[previous] = previousstate
	}

	gamestate.ball.PossessedBy = NoPlayer
}

func (gamestate *GameState) Scoreboard() Scoreboard {
	gamestate.mutex.Lock()
	res := gamestate.board
	gamestate.mutex.Unlock()

	return res
}

func (gamestate *GameState) AddGoal(team Team) {
	gamestate.mutex.Lock()
	if team == TeamHome {
		gamestate.board.HomeGoals++
	} else {
		gamestate.board.AwayGoals++
	}
	gamestate.mutex.Unlock()
}

func (gamestate *GameState) Clock() float64 {
	gamestate.mutex.Lock()
	res := gamestate.board.Clock
	gamestate.mutex.Unlock()

	return res
}

func (gamestate *GameState) AdvanceClock(dt float64) {
	gamestate.mutex.Lock()
	gamestate.board.Clock += dt
	gamestate.mutex.Unlock()
}

func (gamestate *GameState) AppendEvent(e event.Event) {
	gamestate.board.Events.Append(e)
}

func (gamestate *GameState) Events() []event.Event {
	return gamestate.board.Events.Events()
}
