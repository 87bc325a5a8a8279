package resolver

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/number"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/action"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/agent"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/physics"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// Resolver deterministically translates the per-tick action set into
// physical inputs, arbitrating multi-agent conflicts. It never writes game
// state itself; everything it decides flows through physics.Input values
// consumed by the engine in the same tick.
type Resolver struct {
	field  *pitch.Field
	dt     float64
	tuning physics.Tuning
	seed   uint64
}

func NewResolver(field *pitch.Field, dt float64, tuning physics.Tuning, seed uint64) (*Resolver, error) {
	if field == nil {
		return nil, errors.New("resolver: nil field")
	}

	if dt <= 0 {
		return nil, errors.Errorf("resolver: non-positive dt %f", dt)
	}

	return &Resolver{
		field:  field,
		dt:     dt,
		tuning: tuning,
		seed:   seed,
	}, nil
}

// Foul is a contest outcome the loop turns into a match event.
type Foul struct {
	By state.PlayerID
	On state.PlayerID
}

// Anomaly is a recovered agent fault: timeout, panic, malformed target.
type Anomaly struct {
	Player state.PlayerID
	Kind   string
	Detail string
}

type Outcome struct {
	Inputs    []physics.Input
	Fouls     []Foul
	Anomalies []Anomaly
}

// Resolve arbitrates the tick's decisions. Decisions arrive in ascending
// player id order (snapshot order) and are processed in that order; with a
// fixed seed the outcome is a pure function of (snapshot, decisions, tick).
func (r *Resolver) Resolve(snapshot state.Snapshot, decisions []agent.Decision, tick uint64) Outcome {

	outcome := Outcome{}

	// effective action per decision after validation and arbitration
	effective := make([]action.Action, len(decisions))

	///////////////////////////////////////////////////////////////////////////
	// Validation: clamp parameters, catch faults; a bad action becomes
	// Hold() or a coerced equivalent, never a stalled tick
	///////////////////////////////////////////////////////////////////////////

	for i, decision := range decisions {
		player, ok := snapshot.Player(decision.Player)
		if !ok {
			effective[i] = action.Hold{}
			continue
		}

		if decision.TimedOut {
			outcome.Anomalies = append(outcome.Anomalies, Anomaly{
				Player: decision.Player,
				Kind:   "timeout",
				Detail: "agent exceeded the per-tick budget; holding",
			})
		}
		if decision.Panicked {
			outcome.Anomalies = append(outcome.Anomalies, Anomaly{
				Player: decision.Player,
				Kind:   "panic",
				Detail: "agent panicked during decide; holding",
			})
		}

		limits := action.Limits{
			Field:    r.field.Def(),
			MaxSpeed: player.EffectiveMaxSpeed(),
		}
		act := action.Clamp(decision.Action, limits)

		switch concrete := act.(type) {
		case action.PassTo:
			if !r.validTarget(snapshot, decision.Player, concrete.Target) {
				outcome.Anomalies = append(outcome.Anomalies, badTarget(decision.Player, int(concrete.Target)))
				act = action.Hold{}
			}
		case action.Tackle:
			if !r.validTarget(snapshot, decision.Player, concrete.Target) {
				outcome.Anomalies = append(outcome.Anomalies, badTarget(decision.Player, int(concrete.Target)))
				act = action.Hold{}
			}
		}

		effective[i] = act
	}

	///////////////////////////////////////////////////////////////////////////
	// Arbitration: at most one ball action wins per tick; losers degrade
	// to an implicit chase, never a silent drop
	///////////////////////////////////////////////////////////////////////////

	winner := r.arbitrate(snapshot, decisions, effective)

	for i, decision := range decisions {
		if !isBallAction(effective[i]) {
			continue
		}

		if i == winner {
			continue
		}

		player, _ := snapshot.Player(decision.Player)
		effective[i] = action.MoveTo{
			Target: snapshot.Ball.Position,
			Speed:  player.EffectiveMaxSpeed(),
		}
	}

	///////////////////////////////////////////////////////////////////////////
	// Translation: winner's ball action, then independent locomotion
	///////////////////////////////////////////////////////////////////////////

	if winner >= 0 {
		r.translateBallAction(snapshot, decisions[winner].Player, effective[winner], tick, &outcome)
	}

	for i, decision := range decisions {
		if moveto, ok := effective[i].(action.MoveTo); ok {
			if input, any := r.steeringInput(snapshot, decision.Player, moveto); any {
				outcome.Inputs = append(outcome.Inputs, input)
			}
		}
	}

	return outcome
}

func (r *Resolver) validTarget(snapshot state.Snapshot, actor state.PlayerID, target state.PlayerID) bool {
	if target == actor {
		return false
	}
	_, ok := snapshot.Player(target)
	return ok
}

func badTarget(player state.PlayerID, target int) Anomaly {
	return Anomaly{
		Player: player,
		Kind:   "badtarget",
		Detail: fmt.Sprintf("action references nonexistent or invalid player %d; holding", target),
	}
}

func isBallAction(act action.Action) bool {
	switch act.Kind() {
	case action.KindPassTo, action.KindShoot, action.KindTackle:
		return true
	}
	return false
}

// arbitrate picks the index of the single winning ball action, or -1.
// Resolution order: the possessor's action beats non-possessors; among
// non-possessors the smallest distance to the ball wins; exact ties go to
// the lowest player id, which iteration order provides for free.
func (r *Resolver) arbitrate(snapshot state.Snapshot, decisions []agent.Decision, effective []action.Action) int {

	possessor := snapshot.Possessor()

	winner := -1
	bestDistSq := 0.0

	for i, decision := range decisions {
		if !isBallAction(effective[i]) {
			continue
		}

		player, ok := snapshot.Player(decision.Player)
		if !ok {
			continue
		}

		if decision.Player == possessor {
			return i
		}

		distSq := player.Position.DistanceToSq(snapshot.Ball.Position)

		reach := r.tuning.InteractionRange + player.Radius + snapshot.Ball.Radius
		if distSq > reach*reach {
			// out of range: cannot contend, will degrade to a chase
			continue
		}

		if winner == -1 || distSq < bestDistSq-r.tuning.Epsilon {
			winner = i
			bestDistSq = distSq
		}
	}

	return winner
}

func (r *Resolver) translateBallAction(snapshot state.Snapshot, actor state.PlayerID, act action.Action, tick uint64, outcome *Outcome) {

	player, ok := snapshot.Player(actor)
	if !ok {
		return
	}

	possessor := snapshot.Possessor()

	switch concrete := act.(type) {
	case action.PassTo:
		target, ok := snapshot.Player(concrete.Target)
		if !ok {
			return
		}

		direction := target.Position.Sub(snapshot.Ball.Position)
		if direction.IsNull() {
			direction = vector.MakeVector2(0, 1)
		}

		speed := (0.3 + 0.7*concrete.Power) * r.tuning.PassSpeed * (0.8 + 0.2*player.Attributes.Control)

		outcome.Inputs = append(outcome.Inputs, physics.Kick{
			By:       actor,
			Velocity: direction.SetMag(speed),
		})

	case action.Shoot:
		direction := concrete.Target.Sub(snapshot.Ball.Position)
		if direction.IsNull() {
			direction = vector.MakeVector2(0, 1)
		}

		speed := concrete.Power * r.tuning.ShootSpeed * (0.7 + 0.3*player.Attributes.Power)

		outcome.Inputs = append(outcome.Inputs, physics.Kick{
			By:       actor,
			Velocity: direction.SetMag(speed),
		})

	case action.Tackle:
		switch {
		case possessor == state.NoPlayer:
			// loose ball: the arbitration winner simply claims it
			outcome.Inputs = append(outcome.Inputs, physics.Transfer{To: actor})

		case concrete.Target == possessor:
			r.translateTackleContest(snapshot, player, tick, outcome)

		default:
			// tackling someone who does not hold the ball: chase instead
			if input, any := r.steeringInput(snapshot, actor, action.MoveTo{
				Target: snapshot.Ball.Position,
				Speed:  player.EffectiveMaxSpeed(),
			}); any {
				outcome.Inputs = append(outcome.Inputs, input)
			}
		}
	}
}

// translateTackleContest rolls the seeded three-way contest against the
// current possessor: win the ball, bounce off, or concede a foul.
func (r *Resolver) translateTackleContest(snapshot state.Snapshot, tackler state.PlayerState, tick uint64, outcome *Outcome) {

	possessorID := snapshot.Possessor()
	holder, ok := snapshot.Player(possessorID)
	if !ok {
		return
	}

	dist := tackler.Position.DistanceTo(holder.Position)

	chance := r.tuning.TackleBaseChance
	chance += 0.2 * (tackler.Attributes.Control - holder.Attributes.Control)
	chance += 0.1 * (tackler.Stamina - holder.Stamina)
	chance -= 0.1 * dist
	chance = number.Clamp(chance, 0.05, 0.95)

	roll := contestRoll(r.seed, tick, tackler.Id, holder.Id)

	switch {
	case roll < chance:
		outcome.Inputs = append(outcome.Inputs,
			physics.Transfer{To: tackler.Id},
			physics.Slow{Player: holder.Id, Factor: r.tuning.TackleSlowFactor},
		)

	case roll > 1.0-r.tuning.TackleFoulChance:
		outcome.Fouls = append(outcome.Fouls, Foul{By: tackler.Id, On: holder.Id})
		outcome.Inputs = append(outcome.Inputs,
			physics.Slow{Player: tackler.Id, Factor: r.tuning.TackleSlowFactor},
		)

	default:
		// failed lunge: the tackler is the one paying for it
		outcome.Inputs = append(outcome.Inputs,
			physics.Slow{Player: tackler.Id, Factor: r.tuning.TackleSlowFactor},
		)
	}
}

// steeringInput computes the capped steering force toward a target,
// independent per player: locomotion never conflicts.
func (r *Resolver) steeringInput(snapshot state.Snapshot, id state.PlayerID, moveto action.MoveTo) (physics.Input, bool) {

	player, ok := snapshot.Player(id)
	if !ok {
		return nil, false
	}

	toTarget := moveto.Target.Sub(player.Position)
	dist := toTarget.Mag()

	desired := vector.MakeNullVector2()
	if dist > r.tuning.Epsilon {
		// arrive: never command more speed than would overshoot in one dt
		speed := moveto.Speed
		if maxApproach := dist / r.dt; speed > maxApproach {
			speed = maxApproach
		}
		desired = toTarget.SetMag(speed)
	}

	force := desired.Sub(player.Velocity).MultScalar(player.Mass * r.tuning.SteeringGain)
	force = force.Limit(player.MaxSteeringForce)

	if force.Mag() < r.tuning.Epsilon {
		return nil, false
	}

	return physics.Steer{Player: id, Force: force}, true
}
