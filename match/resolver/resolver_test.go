package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/action"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/agent"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/physics"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

func testResolver(t *testing.T, seed uint64) *Resolver {
	t.Helper()

	field, err := pitch.MakeField(pitch.DefaultFieldDef())
	require.NoError(t, err)

	res, err := NewResolver(field, 1.0/60.0, physics.DefaultTuning(), seed)
	require.NoError(t, err)

	return res
}

func resolverState(t *testing.T, ballPos vector.Vector2, positions ...vector.Vector2) *state.GameState {
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

func decide(player state.PlayerID, act action.Action) agent.Decision {
	return agent.Decision{Player: player, Action: act}
}

func inputsOfName(outcome Outcome, name string) []physics.Input {
	var res []physics.Input
	for _, input := range outcome.Inputs {
		if input.InputName() == name {
			res = append(res, input)
		}
	}
	return res
}

func TestResolvePossessorBeatsCloserOpponent(t *testing.T) {
	gamestate := resolverState(t,
		vector.MakeVector2(0, 0),
		vector.MakeVector2(0, 0),    // player 0, will hold the ball
		vector.MakeVector2(0.1, 0),  // player 1, closer to the ball than 0's dribble offset
	)
	require.NoError(t, gamestate.SetPossession(0))

	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.Shoot{Target: vector.MakeVector2(52.5, 0), Power: 1}),
		decide(1, action.Shoot{Target: vector.MakeVector2(-52.5, 0), Power: 1}),
	}, 0)

	kicks := inputsOfName(outcome, "kick")
	require.Len(t, kicks, 1)
	assert.Equal(t, state.PlayerID(0), kicks[0].(physics.Kick).By)

	// the loser degrades to a chase
	steers := inputsOfName(outcome, "steer")
	require.Len(t, steers, 1)
	assert.Equal(t, state.PlayerID(1), steers[0].(physics.Steer).Player)
}

func TestResolveEquidistantTieGoesToLowestId(t *testing.T) {
	gamestate := resolverState(t,
		vector.MakeVector2(0, 0),
		vector.MakeVector2(-0.8, 0), // player 0
		vector.MakeVector2(0.8, 0),  // player 1, exactly as far
	)

	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.Tackle{Target: 1}),
		decide(1, action.Tackle{Target: 0}),
	}, 0)

	// loose ball: the winner claims it with a transfer
	transfers := inputsOfName(outcome, "transfer")
	require.Len(t, transfers, 1)
	assert.Equal(t, state.PlayerID(0), transfers[0].(physics.Transfer).To)
}

func TestResolveOutOfRangeBallActionDegradesToChase(t *testing.T) {
	gamestate := resolverState(t,
		vector.MakeVector2(0, 0),
		vector.MakeVector2(-30, 0),
	)

	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.Shoot{Target: vector.MakeVector2(52.5, 0), Power: 1}),
	}, 0)

	assert.Empty(t, inputsOfName(outcome, "kick"))

	steers := inputsOfName(outcome, "steer")
	require.Len(t, steers, 1)
}

func TestResolveTimeoutBecomesAnomaly(t *testing.T) {
	gamestate := resolverState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-10, 0))
	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		{Player: 0, Action: action.Hold{}, TimedOut: true},
	}, 0)

	require.Len(t, outcome.Anomalies, 1)
	assert.Equal(t, "timeout", outcome.Anomalies[0].Kind)
	assert.Empty(t, outcome.Inputs)
}

func TestResolveBadTargetBecomesAnomalyAndHold(t *testing.T) {
	gamestate := resolverState(t, vector.MakeVector2(0, 0), vector.MakeVector2(0.5, 0))
	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.PassTo{Target: 42, Power: 0.5}),
	}, 0)

	require.Len(t, outcome.Anomalies, 1)
	assert.Equal(t, "badtarget", outcome.Anomalies[0].Kind)
	assert.Empty(t, outcome.Inputs, "an invalid pass becomes Hold, not a kick")
}

func TestResolveSelfTargetIsInvalid(t *testing.T) {
	gamestate := resolverState(t, vector.MakeVector2(0, 0), vector.MakeVector2(0.5, 0))
	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.PassTo{Target: 0, Power: 0.5}),
	}, 0)

	require.Len(t, outcome.Anomalies, 1)
	assert.Equal(t, "badtarget", outcome.Anomalies[0].Kind)
}

func TestResolvePassAimsAtTeammate(t *testing.T) {
	gamestate := resolverState(t,
		vector.MakeVector2(0, 0),
		vector.MakeVector2(0, 0),   // player 0 home
		vector.MakeVector2(5, 5),   // player 1 away
		vector.MakeVector2(20, 0),  // player 2 home, pass target
	)
	require.NoError(t, gamestate.SetPossession(0))

	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.PassTo{Target: 2, Power: 0.5}),
	}, 0)

	kicks := inputsOfName(outcome, "kick")
	require.Len(t, kicks, 1)

	kick := kicks[0].(physics.Kick)
	assert.Equal(t, state.PlayerID(0), kick.By)
	assert.Greater(t, kick.Velocity.GetX(), 0.0, "kick flies toward the receiver")
	assert.Greater(t, kick.Velocity.Mag(), 0.0)
}

func TestResolveTackleContestIsDeterministic(t *testing.T) {
	build := func() state.Snapshot {
		gamestate := resolverState(t,
			vector.MakeVector2(0, 0),
			vector.MakeVector2(0, 0),   // player 0 home, holder
			vector.MakeVector2(0.6, 0), // player 1 away, tackler
		)
		require.NoError(t, gamestate.SetPossession(0))
		return gamestate.Snapshot(0)
	}

	res := testResolver(t, 42)

	first := res.Resolve(build(), []agent.Decision{
		decide(1, action.Tackle{Target: 0}),
	}, 7)
	second := res.Resolve(build(), []agent.Decision{
		decide(1, action.Tackle{Target: 0}),
	}, 7)

	assert.Equal(t, first.Inputs, second.Inputs, "same seed, same tick, same outcome")
	assert.Equal(t, first.Fouls, second.Fouls)
}

func TestResolveTackleOutcomesVaryAcrossTicks(t *testing.T) {
	res := testResolver(t, 42)

	gamestate := resolverState(t,
		vector.MakeVector2(0, 0),
		vector.MakeVector2(0, 0),
		vector.MakeVector2(0.6, 0),
	)
	require.NoError(t, gamestate.SetPossession(0))
	snapshot := gamestate.Snapshot(0)

	transfers := 0
	for tick := uint64(0); tick < 200; tick++ {
		outcome := res.Resolve(snapshot, []agent.Decision{
			decide(1, action.Tackle{Target: 0}),
		}, tick)
		transfers += len(inputsOfName(outcome, "transfer"))
	}

	// the contest is stochastic over ticks: some attempts win, some fail
	assert.Greater(t, transfers, 0)
	assert.Less(t, transfers, 200)
}

func TestContestRollDistribution(t *testing.T) {
	for tick := uint64(0); tick < 100; tick++ {
		roll := contestRoll(42, tick, 1, 0)
		assert.GreaterOrEqual(t, roll, 0.0)
		assert.Less(t, roll, 1.0)
	}

	assert.Equal(t, contestRoll(42, 3, 1, 0), contestRoll(42, 3, 1, 0))
	assert.NotEqual(t, contestRoll(42, 3, 1, 0), contestRoll(43, 3, 1, 0), "seed changes the roll")
}

func TestResolveMoveToProducesCappedSteering(t *testing.T) {
	gamestate := resolverState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-40, 0))
	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.MoveTo{Target: vector.MakeVector2(40, 0), Speed: 100}),
	}, 0)

	steers := inputsOfName(outcome, "steer")
	require.Len(t, steers, 1)

	player, _ := snapshot.Player(0)
	force := steers[0].(physics.Steer).Force
	assert.LessOrEqual(t, force.Mag(), player.MaxSteeringForce+1e-9)
	assert.Greater(t, force.GetX(), 0.0, "pushes toward the target")
}

func TestResolveHoldProducesNothing(t *testing.T) {
	gamestate := resolverState(t, vector.MakeVector2(0, 0), vector.MakeVector2(-10, 0))
	snapshot := gamestate.Snapshot(0)

	res := testResolver(t, 1)
	outcome := res.Resolve(snapshot, []agent.Decision{
		decide(0, action.Hold{}),
	}, 0)

	assert.Empty(t, outcome.Inputs)
	assert.Empty(t, outcome.Anomalies)
	assert.Empty(t, outcome.Fouls)
}
