package physics

import (
	"github.com/pkg/errors"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/number"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// Engine advances all dynamic entities by one fixed timestep. It is the
// single writer of GameState during its pass; the fixed order is force
// accumulation, integration, collision detection, collision resolution,
// boundary enforcement. The timestep is fixed at construction; the engine
// never accepts a variable dt.
type Engine struct {
	field  *pitch.Field
	dt     float64
	tuning Tuning
}

func NewEngine(field *pitch.Field, dt float64, tuning Tuning) (*Engine, error) {
	if field == nil {
		return nil, errors.New("physics: nil field")
	}

	if dt <= 0 {
		return nil, errors.Errorf("physics: non-positive dt %f", dt)
	}

	return &Engine{
		field:  field,
		dt:     dt,
		tuning: tuning,
	}, nil
}

func (engine *Engine) Dt() float64 {
	return engine.dt
}

// GoalNote reports the ball fully crossing a goal mouth this tick.
type GoalNote struct {
	Mouth  pitch.GoalSide
	Scorer state.PlayerID // last toucher; NoPlayer if the ball was never touched
}

// OutOfBoundsNote reports an entity clamped back onto the field.
type OutOfBoundsNote struct {
	Entity    string // "ball" or "player"
	EntityID  state.PlayerID // NoPlayer for the ball
	Position  vector.Vector2 // where the entity left the field
	LastTouch state.PlayerID
}

// AnomalyNote reports a recovered numeric fault.
type AnomalyNote struct {
	Kind     string
	PlayerID state.PlayerID // NoPlayer when the ball is the offender
	Detail   string
}

// CaptureNote reports a contact possession change.
type CaptureNote struct {
	Player state.PlayerID
}

type StepResult struct {
	Goals       []GoalNote
	OutOfBounds []OutOfBoundsNote
	Anomalies   []AnomalyNote
	Captures    []CaptureNote
}

// entitySnapshot is the pre-step state kept for swept collision checks and
// numeric-instability recovery.
type entitySnapshot struct {
	position vector.Vector2
	velocity vector.Vector2
	stamina  float64
}

// Step runs one full physics pass over the game state, consuming the
// resolver's inputs for this tick.
func (engine *Engine) Step(gamestate *state.GameState, inputs []Input) StepResult {

	result := StepResult{}

	///////////////////////////////////////////////////////////////////////////
	// Keep pre-step state: swept checks and instability recovery need it
	///////////////////////////////////////////////////////////////////////////

	before := make(map[state.PlayerID]entitySnapshot, len(gamestate.PlayerIDs()))
	for _, id := range gamestate.PlayerIDs() {
		playerstate, _ := gamestate.GetPlayerState(id)
		before[id] = entitySnapshot{position: playerstate.Position, velocity: playerstate.Velocity, stamina: playerstate.Stamina}
	}

	ballbefore := entitySnapshot{
		position: gamestate.GetBallState().Position,
		velocity: gamestate.GetBallState().Velocity,
	}

	///////////////////////////////////////////////////////////////////////////
	// Force accumulation: resolver inputs, then constant forces
	///////////////////////////////////////////////////////////////////////////

	forces := make(map[state.PlayerID]vector.Vector2, len(before))
	contestPending := false

	for _, input := range inputs {
		switch concrete := input.(type) {
		case Transfer:
			if err := gamestate.SetPossession(concrete.To); err == nil {
				contestPending = true
			}
		case Slow:
			if playerstate, ok := gamestate.GetPlayerState(concrete.Player); ok {
				playerstate.Velocity = playerstate.Velocity.MultScalar(number.Clamp01(concrete.Factor))
				gamestate.SetPlayerState(concrete.Player, playerstate)
			}
		}
	}

	for _, input := range inputs {
		switch concrete := input.(type) {
		case Steer:
			forces[concrete.Player] = forces[concrete.Player].Add(concrete.Force)
		case Kick:
			engine.applyKick(gamestate, concrete)
		}
	}

	///////////////////////////////////////////////////////////////////////////
	// Integration: semi-implicit Euler, velocity first, then position
	///////////////////////////////////////////////////////////////////////////

	for _, id := range gamestate.PlayerIDs() {
		playerstate, _ := gamestate.GetPlayerState(id)
		playerstate = engine.integratePlayer(playerstate, forces[id])

		if !stateIsFinite(playerstate.Position, playerstate.Velocity) || !number.IsFinite(playerstate.Stamina) {
			prev := before[id]
			playerstate.Position = prev.position
			playerstate.Velocity = vector.MakeNullVector2()
			playerstate.Stamina = prev.stamina
			result.Anomalies = append(result.Anomalies, AnomalyNote{
				Kind:     "instability",
				PlayerID: id,
				Detail:   "non-finite player state after integration; reset to last valid position",
			})
		}

		gamestate.SetPlayerState(id, playerstate)
	}

	ballstate := gamestate.GetBallState()
	ballstate = engine.integrateBall(gamestate, ballstate)

	if !stateIsFinite(ballstate.Position, ballstate.Velocity) || !number.IsFinite(ballstate.Spin) {
		ballstate.Position = ballbefore.position
		ballstate.Velocity = vector.MakeNullVector2()
		ballstate.Spin = 0
		result.Anomalies = append(result.Anomalies, AnomalyNote{
			Kind:     "instability",
			PlayerID: state.NoPlayer,
			Detail:   "non-finite ball state after integration; reset to last valid position",
		})
	}

	gamestate.SetBallState(ballstate)

	///////////////////////////////////////////////////////////////////////////
	// Collision detection + resolution, ordered by ascending id pair
	///////////////////////////////////////////////////////////////////////////

	engine.processCollisions(gamestate, contestPending, &result)

	///////////////////////////////////////////////////////////////////////////
	// Goal-line check before boundary enforcement: a ball inside the goal
	// mouth has legitimately left the field
	///////////////////////////////////////////////////////////////////////////

	engine.checkGoals(gamestate, ballbefore, &result)

	///////////////////////////////////////////////////////////////////////////
	// Boundary enforcement: clamp, never teleport silently
	///////////////////////////////////////////////////////////////////////////

	engine.enforceBoundaries(gamestate, before, ballbefore, len(result.Goals) > 0, &result)

	return result
}

func (engine *Engine) applyKick(gamestate *state.GameState, kick Kick) {
	ballstate := gamestate.GetBallState()

	possessor := ballstate.PossessedBy
	if possessor != kick.By {
		// loose-ball kick: only valid when the ball is free and the kicker
		// is within capture range
		if possessor != state.NoPlayer {
			return
		}

		kicker, ok := gamestate.GetPlayerState(kick.By)
		if !ok || kicker.Position.DistanceTo(ballstate.Position) > engine.tuning.CaptureRadius+kicker.Radius+ballstate.Radius {
			return
		}
	}

	gamestate.ClearPossession()

	ballstate = gamestate.GetBallState()
	ballstate.Velocity = kick.Velocity
	ballstate.Spin = kick.Spin
	ballstate.LastTouchID = kick.By
	gamestate.SetBallState(ballstate)
}

func (engine *Engine) integratePlayer(playerstate state.PlayerState, force vector.Vector2) state.PlayerState {
	tun := engine.tuning
	dt := engine.dt

	acceleration := force.DivScalar(playerstate.Mass)

	velocity := playerstate.Velocity.Add(acceleration.MultScalar(dt))
	velocity = velocity.MultScalar(tun.PlayerDamping)
	velocity = velocity.Limit(playerstate.EffectiveMaxSpeed())

	if velocity.Mag() < tun.Epsilon {
		velocity = vector.MakeNullVector2()
	}

	playerstate.Velocity = velocity
	playerstate.Position = playerstate.Position.Add(velocity.MultScalar(dt))

	if !velocity.IsNull() {
		playerstate.Orientation = velocity.Angle()
	}

	playerstate = engine.updateStamina(playerstate)

	if !playerstate.InProgress.IsNone() {
		playerstate.InProgress.Remaining--
		if playerstate.InProgress.Remaining <= 0 {
			playerstate.InProgress = state.ActionInProgress{}
		}
	}

	return playerstate
}

func (engine *Engine) updateStamina(playerstate state.PlayerState) state.PlayerState {
	tun := engine.tuning
	dt := engine.dt

	effort := 0.0
	if playerstate.MaxSpeed > 0 {
		effort = playerstate.Velocity.Mag() / playerstate.MaxSpeed
	}

	if effort > 0.1 {
		playerstate.Stamina -= tun.StaminaDrainRate * effort * dt
	} else {
		playerstate.Stamina += tun.StaminaRecoveryRate * dt
	}

	playerstate.Stamina = number.Clamp01(playerstate.Stamina)

	return playerstate
}

func (engine *Engine) integrateBall(gamestate *state.GameState, ballstate state.BallState) state.BallState {
	tun := engine.tuning
	dt := engine.dt

	if possessor := ballstate.PossessedBy; possessor != state.NoPlayer {
		// a possessed ball is dribbled: it sits just ahead of its owner
		owner, ok := gamestate.GetPlayerState(possessor)
		if ok {
			offset := vector.MakeVector2(0, owner.Radius+ballstate.Radius+tun.DribbleOffset).SetAngle(owner.Orientation)
			ballstate.Position = owner.Position.Add(offset)
			ballstate.Velocity = owner.Velocity
			ballstate.Spin = 0
			return ballstate
		}
	}

	// Magnus-style deflection: spin accelerates the ball sideways
	if !number.IsZero(ballstate.Spin) && !ballstate.Velocity.IsNull() {
		curl := ballstate.Velocity.Normalize().OrthogonalCounterClockwise()
		curl = curl.MultScalar(tun.SpinCurlGain * ballstate.Spin * ballstate.Velocity.Mag())
		ballstate.Velocity = ballstate.Velocity.Add(curl.MultScalar(dt))
	}

	ballstate.Velocity = ballstate.Velocity.MultScalar(tun.BallDamping)
	if ballstate.Velocity.Mag() < tun.Epsilon {
		ballstate.Velocity = vector.MakeNullVector2()
	}

	ballstate.Spin *= tun.SpinDecay
	if number.IsZero(ballstate.Spin) {
		ballstate.Spin = 0
	}

	ballstate.Position = ballstate.Position.Add(ballstate.Velocity.MultScalar(dt))

	return ballstate
}

func stateIsFinite(position vector.Vector2, velocity vector.Vector2) bool {
	px, py := position.Get()
	vx, vy := velocity.Get()
	return number.IsFinite(px) && number.IsFinite(py) && number.IsFinite(vx) && number.IsFinite(vy)
}
