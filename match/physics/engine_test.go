package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

const testDt = 1.0 / 60.0

func testEngine(t *testing.T) *Engine {
	t.Helper()

	field, err := pitch.MakeField(pitch.DefaultFieldDef())
	require.NoError(t, err)

	engine, err := NewEngine(field, testDt, DefaultTuning())
	require.NoError(t, err)

	return engine
}

func engineState(t *testing.T, ballPos vector.Vector2, positions ...vector.Vector2) *state.GameState {
	t.Helper()

	field, err := pitch.MakeField(pitch.DefaultFieldDef())
	require.NoError(t, err)

	players := make([]state.PlayerState, 0, len(positions))
	for i, pos := range positions {
		team := state.TeamHome
		if i%2 == 1 {
			team = state.TeamAway
		}
		players = append(players, state.MakePlayerState(state.PlayerID(i), team, i/2+1, pos, state.Attributes{Speed: 0.5, Power: 0.5, Control: 0.5}))
	}

	gamestate, err := state.NewGameState(field, players, state.MakeBallState(ballPos))
	require.NoError(t, err)

	return gamestate
}

func TestNewEngineRejectsBadArguments(t *testing.T) {
	field, err := pitch.MakeField(pitch.DefaultFieldDef())
	require.NoError(t, err)

	_, err = NewEngine(nil, testDt, DefaultTuning())
	assert.Error(t, err)

	_, err = NewEngine(field, 0, DefaultTuning())
	assert.Error(t, err)

	_, err = NewEngine(field, -1, DefaultTuning())
	assert.Error(t, err)
}

func TestStepWithoutInputsIsQuiet(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(20, 0), vector.MakeVector2(-10, 3))

	before, _ := gamestate.GetPlayerState(0)

	result := engine.Step(gamestate, nil)

	after, _ := gamestate.GetPlayerState(0)
	assert.True(t, after.Position.Equals(before.Position), "a resting player stays put")
	assert.True(t, after.Velocity.IsNull())

	assert.Empty(t, result.Goals)
	assert.Empty(t, result.OutOfBounds)
	assert.Empty(t, result.Anomalies)
}

func TestSteerAcceleratesAndDampingDecays(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(30, 0), vector.MakeVector2(0, 0))

	force := vector.MakeVector2(400, 0)
	for i := 0; i < 30; i++ {
		engine.Step(gamestate, []Input{Steer{Player: 0, Force: force}})
	}

	moving, _ := gamestate.GetPlayerState(0)
	assert.Greater(t, moving.Velocity.GetX(), 0.0)
	assert.Greater(t, moving.Position.GetX(), 0.0)
	assert.LessOrEqual(t, moving.Velocity.Mag(), moving.EffectiveMaxSpeed()+1e-9)

	// orientation follows velocity: +x is a quarter turn from north
	assert.InDelta(t, math.Pi/2, moving.Orientation, 1e-6)

	// without further force the damping bleeds the speed away
	peak := moving.Velocity.Mag()
	engine.Step(gamestate, nil)
	coasting, _ := gamestate.GetPlayerState(0)
	assert.Less(t, coasting.Velocity.Mag(), peak)
}

func TestBallDampingAndStop(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-40, 20))

	ballstate := gamestate.GetBallState()
	ballstate.Velocity = vector.MakeVector2(10, 0)
	gamestate.SetBallState(ballstate)

	engine.Step(gamestate, nil)
	afterOne := gamestate.GetBallState()
	assert.InDelta(t, 10*0.99, afterOne.Velocity.GetX(), 1e-9)
	assert.Greater(t, afterOne.Position.GetX(), 0.0)

	// a long roll ends with the ball at rest, not asymptotically jittering
	for i := 0; i < 5000; i++ {
		engine.Step(gamestate, nil)
	}
	assert.True(t, gamestate.GetBallState().Velocity.IsNull())
}

func TestSpinCurlsTrajectory(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-40, 20))

	ballstate := gamestate.GetBallState()
	ballstate.Velocity = vector.MakeVector2(15, 0)
	ballstate.Spin = 1.0
	gamestate.SetBallState(ballstate)

	for i := 0; i < 30; i++ {
		engine.Step(gamestate, nil)
	}

	curled := gamestate.GetBallState()
	assert.NotEqual(t, 0.0, curled.Position.GetY(), "spin bends the path sideways")
	assert.Less(t, math.Abs(curled.Spin), 1.0, "spin decays")
}

func TestCaptureGluesBallToPlayer(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0.3, 0), vector.MakeVector2(0, 0), vector.MakeVector2(30, 0))

	result := engine.Step(gamestate, nil)

	require.Len(t, result.Captures, 1)
	assert.Equal(t, state.PlayerID(0), result.Captures[0].Player)
	assert.Equal(t, state.PlayerID(0), gamestate.Possessor())

	holder, _ := gamestate.GetPlayerState(0)
	assert.True(t, holder.HasBall)

	// the possessed ball rides just ahead of its owner from the next
	// integration on
	engine.Step(gamestate, nil)

	holder, _ = gamestate.GetPlayerState(0)
	ballstate := gamestate.GetBallState()
	offset := ballstate.Position.Sub(holder.Position).Mag()
	assert.InDelta(t, holder.Radius+ballstate.Radius+engine.tuning.DribbleOffset, offset, 1e-9)
}

func TestCaptureTieGoesToLowestId(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-0.5, 0), vector.MakeVector2(0.5, 0))

	result := engine.Step(gamestate, nil)

	require.Len(t, result.Captures, 1)
	assert.Equal(t, state.PlayerID(0), result.Captures[0].Player)
}

func TestKickReleasesPossession(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0.3, 0), vector.MakeVector2(0, 0), vector.MakeVector2(30, 0))

	// tick 1: capture; tick 2: the ball settles at dribble distance
	engine.Step(gamestate, nil)
	require.Equal(t, state.PlayerID(0), gamestate.Possessor())
	engine.Step(gamestate, nil)

	// tick 3: kick
	engine.Step(gamestate, []Input{Kick{By: 0, Velocity: vector.MakeVector2(20, 0)}})

	ballstate := gamestate.GetBallState()
	assert.Equal(t, state.NoPlayer, ballstate.PossessedBy)
	assert.Equal(t, state.PlayerID(0), ballstate.LastTouchID)
	assert.Greater(t, ballstate.Velocity.GetX(), 0.0)

	former, _ := gamestate.GetPlayerState(0)
	assert.False(t, former.HasBall)
}

func TestKickByNonPossessorIsIgnored(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0.3, 0), vector.MakeVector2(0, 0), vector.MakeVector2(30, 0))

	engine.Step(gamestate, nil)
	require.Equal(t, state.PlayerID(0), gamestate.Possessor())

	engine.Step(gamestate, []Input{Kick{By: 1, Velocity: vector.MakeVector2(20, 0)}})

	assert.Equal(t, state.PlayerID(0), gamestate.Possessor(), "a remote player cannot kick a held ball")
}

func TestTransferMovesPossession(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0.3, 0), vector.MakeVector2(0, 0), vector.MakeVector2(0.8, 0))

	engine.Step(gamestate, nil)
	require.Equal(t, state.PlayerID(0), gamestate.Possessor())

	result := engine.Step(gamestate, []Input{Transfer{To: 1}})

	assert.Equal(t, state.PlayerID(1), gamestate.Possessor())
	assert.Empty(t, result.Captures, "a transferred ball is not re-captured the same tick")
}

func TestPlayerPlayerCollisionSeparates(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(30, 0), vector.MakeVector2(-0.2, 0), vector.MakeVector2(0.2, 0))

	engine.Step(gamestate, nil)

	a, _ := gamestate.GetPlayerState(0)
	b, _ := gamestate.GetPlayerState(1)

	dist := a.Position.DistanceTo(b.Position)
	assert.GreaterOrEqual(t, dist, a.Radius+b.Radius-1e-9, "overlap resolved")
}

func TestBoundaryClampsPlayerAndEmitsEvent(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0, 0), vector.MakeVector2(52.0, 0))

	playerstate, _ := gamestate.GetPlayerState(0)
	playerstate.Velocity = vector.MakeVector2(50, 0)
	gamestate.SetPlayerState(0, playerstate)

	// EffectiveMaxSpeed caps the velocity, so push over several ticks
	var oob []OutOfBoundsNote
	for i := 0; i < 60; i++ {
		result := engine.Step(gamestate, []Input{Steer{Player: 0, Force: vector.MakeVector2(400, 0)}})
		oob = append(oob, result.OutOfBounds...)
	}

	clamped, _ := gamestate.GetPlayerState(0)
	assert.LessOrEqual(t, clamped.Position.GetX(), 52.5-clamped.Radius+1e-9)
	assert.NotEmpty(t, oob, "crossing the line reports out of bounds")
	assert.Equal(t, "player", oob[0].Entity)
}

func TestBallBouncesOffBoundary(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0, 33.5), vector.MakeVector2(-40, -20))

	ballstate := gamestate.GetBallState()
	ballstate.Velocity = vector.MakeVector2(0, 40)
	gamestate.SetBallState(ballstate)

	var bounced bool
	for i := 0; i < 10; i++ {
		result := engine.Step(gamestate, nil)
		for _, note := range result.OutOfBounds {
			if note.Entity == "ball" {
				bounced = true
			}
		}
		if bounced {
			break
		}
	}

	require.True(t, bounced)

	after := gamestate.GetBallState()
	assert.Less(t, after.Velocity.GetY(), 0.0, "reflected with restitution")
	assert.LessOrEqual(t, after.Position.GetY(), 34.0-after.Radius+1e-9)
}

func TestGoalDetection(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(51.5, 0), vector.MakeVector2(40, 0))

	ballstate := gamestate.GetBallState()
	ballstate.Velocity = vector.MakeVector2(80, 0)
	ballstate.LastTouchID = 0
	gamestate.SetBallState(ballstate)

	var goals []GoalNote
	for i := 0; i < 5 && len(goals) == 0; i++ {
		result := engine.Step(gamestate, nil)
		goals = append(goals, result.Goals...)
	}

	require.Len(t, goals, 1)
	assert.Equal(t, pitch.GoalEast, goals[0].Mouth)
	assert.Equal(t, state.PlayerID(0), goals[0].Scorer)
}

func TestWideShotIsOutNotGoal(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(51.5, 10), vector.MakeVector2(40, 0))

	ballstate := gamestate.GetBallState()
	ballstate.Velocity = vector.MakeVector2(80, 0)
	gamestate.SetBallState(ballstate)

	var goals []GoalNote
	var oob []OutOfBoundsNote
	for i := 0; i < 5; i++ {
		result := engine.Step(gamestate, nil)
		goals = append(goals, result.Goals...)
		oob = append(oob, result.OutOfBounds...)
	}

	assert.Empty(t, goals, "y=10 is outside the 7.32m mouth")
	assert.NotEmpty(t, oob)
}

func TestInstabilityRecovery(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-10, 5))

	playerstate, _ := gamestate.GetPlayerState(0)
	lastValid := playerstate.Position
	playerstate.Velocity = vector.MakeVector2(math.NaN(), 0)
	gamestate.SetPlayerState(0, playerstate)

	result := engine.Step(gamestate, nil)

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, "instability", result.Anomalies[0].Kind)

	recovered, _ := gamestate.GetPlayerState(0)
	assert.True(t, recovered.Position.Equals(lastValid), "restored to last valid position")
	assert.True(t, recovered.Velocity.IsNull())
}

func TestBallInstabilityRecovery(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(3, 3), vector.MakeVector2(-10, 5))

	ballstate := gamestate.GetBallState()
	ballstate.Velocity = vector.MakeVector2(math.Inf(1), 0)
	gamestate.SetBallState(ballstate)

	result := engine.Step(gamestate, nil)

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, state.NoPlayer, result.Anomalies[0].PlayerID)

	recovered := gamestate.GetBallState()
	assert.True(t, recovered.Position.Equals(vector.MakeVector2(3, 3)))
	assert.True(t, recovered.Velocity.IsNull())
	assert.Equal(t, 0.0, recovered.Spin)
}

func TestStaminaDrainsUnderEffortAndRecoversAtRest(t *testing.T) {
	engine := testEngine(t)
	gamestate := engineState(t, vector.MakeVector2(30, 0), vector.MakeVector2(-40, 0))

	for i := 0; i < 600; i++ {
		engine.Step(gamestate, []Input{Steer{Player: 0, Force: vector.MakeVector2(0, 400)}})
	}

	tired, _ := gamestate.GetPlayerState(0)
	assert.Less(t, tired.Stamina, 1.0)

	drained := tired.Stamina
	for i := 0; i < 600; i++ {
		engine.Step(gamestate, nil)
	}

	rested, _ := gamestate.GetPlayerState(0)
	assert.Greater(t, rested.Stamina, drained)
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() uint64 {
		engine := testEngine(t)
		gamestate := engineState(t,
			vector.MakeVector2(0.5, 0.2),
			vector.MakeVector2(0, 0), vector.MakeVector2(1, 0.1), vector.MakeVector2(-3, 2),
		)

		for i := 0; i < 120; i++ {
			engine.Step(gamestate, []Input{
				Steer{Player: 0, Force: vector.MakeVector2(300, 10)},
				Steer{Player: 1, Force: vector.MakeVector2(-120, 40)},
				Steer{Player: 2, Force: vector.MakeVector2(80, -200)},
			})
		}

		return gamestate.Snapshot(120).Fingerprint()
	}

	assert.Equal(t, run(), run())
}
