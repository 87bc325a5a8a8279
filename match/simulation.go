package match

import (
	"context"
	"sort"
	"sync"
	"time"

	notify "github.com/bitly/go-notify"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/agent"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/event"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/physics"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/resolver"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/replay"
)

type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return "finished"
	}
}

// frameUpdate is what one committed tick hands to the broadcaster.
type frameUpdate struct {
	frame  state.Snapshot
	events []event.Event
}

// Simulation owns one match. The tick loop is strictly sequential and
// single-writer: agents only ever see value snapshots, and the broadcaster
// goroutine feeds observers from a buffered channel so slow consumers cannot
// stall the loop.
type Simulation struct {
	id  uuid.UUID
	cfg Config

	field     *pitch.Field
	gamestate *state.GameState
	engine    *physics.Engine
	resolver  *resolver.Resolver
	collector *agent.Collector
	agents    map[state.PlayerID]agent.Agent

	homeIDs []state.PlayerID
	awayIDs []state.PlayerID

	log      *zap.Logger
	recorder replay.Recorder

	mutex     sync.RWMutex
	phase     Phase
	tick      uint64
	lastFrame state.Snapshot

	broadcast     chan frameUpdate
	broadcastOnce sync.Once
	broadcastDone chan struct{}
}

type Option func(*Simulation)

func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) { s.log = log }
}

func WithRecorder(rec replay.Recorder) Option {
	return func(s *Simulation) { s.recorder = rec }
}

// NewSimulation validates the configuration, builds the kickoff state and
// binds one agent per player. Every construction error is fatal: a match
// never starts on a configuration it cannot trust.
func NewSimulation(cfg Config, bindings map[state.PlayerID]agent.Agent, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid match config")
	}

	field, err := pitch.MakeField(cfg.Field)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build field")
	}

	s := &Simulation{
		id:            uuid.NewV4(),
		cfg:           cfg,
		field:         field,
		agents:        make(map[state.PlayerID]agent.Agent),
		log:           zap.NewNop(),
		recorder:      replay.MakeEmptyRecorder(),
		broadcast:     make(chan frameUpdate, 64),
		broadcastDone: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	players, homeIDs, awayIDs := buildLineups(field, cfg)
	s.homeIDs = homeIDs
	s.awayIDs = awayIDs

	ball := state.MakeBallState(field.CenterSpot())

	s.gamestate, err = state.NewGameState(field, players, ball)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build game state")
	}

	for _, id := range s.gamestate.PlayerIDs() {
		bound, ok := bindings[id]
		if !ok || bound == nil {
			return nil, errors.Errorf("no agent bound to player %d", id)
		}
		s.agents[id] = bound
	}

	s.engine, err = physics.NewEngine(field, cfg.Dt, cfg.Tuning)
	if err != nil {
		return nil, err
	}

	s.resolver, err = resolver.NewResolver(field, cfg.Dt, cfg.Tuning, cfg.Seed)
	if err != nil {
		return nil, err
	}

	s.collector = agent.NewCollector(time.Duration(cfg.DecideBudgetMs) * time.Millisecond)

	s.gamestate.AppendEvent(event.EventKickoff{Time: 0, Team: string(state.TeamHome)})
	s.lastFrame = s.gamestate.Snapshot(0)

	go s.broadcastLoop()

	return s, nil
}

// buildLineups assigns deterministic player ids: home side first, then away,
// each sorted by jersey number, ids counting up from zero.
func buildLineups(field *pitch.Field, cfg Config) ([]state.PlayerState, []state.PlayerID, []state.PlayerID) {
	byTeam := map[state.Team][]PlayerDef{}
	for _, def := range cfg.Roster {
		team := state.Team(def.Team)
		byTeam[team] = append(byTeam[team], def)
	}

	for _, defs := range byTeam {
		sort.Slice(defs, func(i, j int) bool { return defs[i].Number < defs[j].Number })
	}

	var players []state.PlayerState
	var homeIDs, awayIDs []state.PlayerID

	next := state.PlayerID(0)
	for _, team := range []state.Team{state.TeamHome, state.TeamAway} {
		for j, def := range byTeam[team] {
			pos := kickoffPosition(field, j, len(byTeam[team]), team, team == state.TeamHome)
			playerstate := state.MakePlayerState(next, team, def.Number, pos, def.Attributes)
			playerstate.Orientation = vector.MakeVector2(-teamSign(team), 0).Angle()

			players = append(players, playerstate)
			if team == state.TeamHome {
				homeIDs = append(homeIDs, next)
			} else {
				awayIDs = append(awayIDs, next)
			}
			next++
		}
	}

	return players, homeIDs, awayIDs
}

func (s *Simulation) Id() string {
	return s.id.String()
}

// FrameTopic is the pub/sub topic committed frames are posted on.
func (s *Simulation) FrameTopic() string {
	return "match:" + s.id.String() + ":frame"
}

// EventTopic is the pub/sub topic match events are posted on.
func (s *Simulation) EventTopic() string {
	return "match:" + s.id.String() + ":event"
}

func (s *Simulation) Phase() Phase {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.phase
}

// Pause stops the loop at the next tick boundary. Ticks are atomic: a pause
// never lands mid-tick.
func (s *Simulation) Pause() {
	s.mutex.Lock()
	if s.phase == PhaseRunning {
		s.phase = PhasePaused
	}
	s.mutex.Unlock()
}

func (s *Simulation) Resume() {
	s.mutex.Lock()
	if s.phase == PhasePaused {
		s.phase = PhaseRunning
	}
	s.mutex.Unlock()
}

// State returns the last committed frame. Safe from any goroutine.
func (s *Simulation) State() state.Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastFrame
}

func (s *Simulation) Events() []event.Event {
	return s.gamestate.Events()
}

func (s *Simulation) HomeIDs() []state.PlayerID {
	return append([]state.PlayerID(nil), s.homeIDs...)
}

func (s *Simulation) AwayIDs() []state.PlayerID {
	return append([]state.PlayerID(nil), s.awayIDs...)
}

// Tick advances the match by exactly one fixed step. It returns the phase
// after the step; calling it while paused or finished is a no-op.
func (s *Simulation) Tick(ctx context.Context) Phase {
	s.mutex.RLock()
	phase := s.phase
	tick := s.tick
	s.mutex.RUnlock()

	if phase != PhaseRunning {
		return phase
	}

	view := s.gamestate.Snapshot(tick)

	decisions := s.collector.Collect(ctx, view, s.agents)
	outcome := s.resolver.Resolve(view, decisions, tick)
	result := s.engine.Step(s.gamestate, outcome.Inputs)

	clock := s.gamestate.Clock()
	newEvents := s.applyTickEvents(clock, outcome, result)

	s.gamestate.AdvanceClock(s.cfg.Dt)

	finished := s.gamestate.Clock() >= s.cfg.Duration-1e-9
	if finished {
		board := s.gamestate.Scoreboard()
		full := event.EventFullTime{
			Time:      s.gamestate.Clock(),
			HomeGoals: board.HomeGoals,
			AwayGoals: board.AwayGoals,
		}
		s.gamestate.AppendEvent(full)
		newEvents = append(newEvents, full)
	}

	frame := s.gamestate.Snapshot(tick + 1)

	s.mutex.Lock()
	s.tick = tick + 1
	s.lastFrame = frame
	if finished {
		s.phase = PhaseFinished
	}
	phase = s.phase
	s.mutex.Unlock()

	// Observability happens after the commit so it can never perturb the
	// simulated state or its timing.
	s.flushAnomalies(tick, outcome.Anomalies, result.Anomalies)

	if err := s.recorder.RecordFrame(s.Id(), frame); err != nil {
		s.log.Warn("frame recording failed", zap.Uint64("tick", tick), zap.Error(err))
	}

	select {
	case s.broadcast <- frameUpdate{frame: frame, events: newEvents}:
	default:
		// observers lag; drop the update rather than stall the loop
	}

	if finished {
		s.closeBroadcast()
	}

	return phase
}

// applyTickEvents turns resolver and physics outcomes into match events and
// rule consequences: scoring, kickoff resets, out-of-bounds restarts.
func (s *Simulation) applyTickEvents(clock float64, outcome resolver.Outcome, result physics.StepResult) []event.Event {
	var emitted []event.Event

	record := func(e event.Event) {
		s.gamestate.AppendEvent(e)
		emitted = append(emitted, e)
	}

	for _, anomaly := range outcome.Anomalies {
		record(event.EventAnomaly{
			Time:     clock,
			Kind:     anomaly.Kind,
			PlayerID: int(anomaly.Player),
			Detail:   anomaly.Detail,
		})
	}

	for _, anomaly := range result.Anomalies {
		record(event.EventAnomaly{
			Time:     clock,
			Kind:     anomaly.Kind,
			PlayerID: int(anomaly.PlayerID),
			Detail:   anomaly.Detail,
		})
	}

	for _, foul := range outcome.Fouls {
		record(event.EventFoul{Time: clock, ByID: int(foul.By), OnID: int(foul.On)})
	}

	for _, capture := range result.Captures {
		record(event.EventPossession{Time: clock, PlayerID: int(capture.Player)})
	}

	for _, oob := range result.OutOfBounds {
		record(event.EventOutOfBounds{
			Time:        clock,
			Position:    oob.Position,
			Entity:      oob.Entity,
			EntityID:    int(oob.EntityID),
			LastTouchID: int(oob.LastTouch),
		})
	}

	if len(result.Goals) > 0 {
		goal := result.Goals[0]

		scoring := state.TeamHome // home attacks east
		if goal.Mouth == pitch.GoalWest {
			scoring = state.TeamAway
		}

		s.gamestate.AddGoal(scoring)
		record(event.EventGoal{Time: clock, Team: string(scoring), ScorerID: int(goal.Scorer)})

		conceding := scoring.Opponent()
		s.resetForKickoff(conceding)
		record(event.EventKickoff{Time: clock, Team: string(conceding)})

		return emitted
	}

	// Ball out of play without a goal: the restart awards the ball to the
	// nearest opponent of the last toucher.
	for _, oob := range result.OutOfBounds {
		if oob.Entity != "ball" {
			continue
		}

		s.restartFromOutOfBounds(oob)
		break
	}

	return emitted
}

func (s *Simulation) restartFromOutOfBounds(oob physics.OutOfBoundsNote) {
	ballstate := s.gamestate.GetBallState()

	awardTo := state.Team("")
	if toucher, ok := s.gamestate.GetPlayerState(oob.LastTouch); ok {
		awardTo = toucher.Team.Opponent()
	}

	winner := state.NoPlayer
	best := 0.0

	for _, id := range s.gamestate.PlayerIDs() {
		playerstate, ok := s.gamestate.GetPlayerState(id)
		if !ok {
			continue
		}

		if awardTo != "" && playerstate.Team != awardTo {
			continue
		}

		dist := playerstate.Position.DistanceToSq(ballstate.Position)
		if winner == state.NoPlayer || dist < best {
			winner = id
			best = dist
		}
	}

	if winner == state.NoPlayer {
		return
	}

	ballstate.Velocity = vector.MakeNullVector2()
	ballstate.Spin = 0
	s.gamestate.SetBallState(ballstate)

	if err := s.gamestate.SetPossession(winner); err != nil {
		s.log.Warn("out-of-bounds restart failed", zap.Error(err))
	}
}

func (s *Simulation) flushAnomalies(tick uint64, fromResolver []resolver.Anomaly, fromPhysics []physics.AnomalyNote) {
	for _, anomaly := range fromResolver {
		s.log.Warn("agent anomaly",
			zap.Uint64("tick", tick),
			zap.String("kind", anomaly.Kind),
			zap.Int("player", int(anomaly.Player)),
			zap.String("detail", anomaly.Detail),
		)
	}

	for _, anomaly := range fromPhysics {
		s.log.Warn("physics anomaly",
			zap.Uint64("tick", tick),
			zap.String("kind", anomaly.Kind),
			zap.Int("player", int(anomaly.PlayerID)),
			zap.String("detail", anomaly.Detail),
		)
	}
}

// Run ticks the match to full time as fast as the host allows. It returns
// nil at full time, or the context error if cancelled first.
func (s *Simulation) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch s.Tick(ctx) {
		case PhaseFinished:
			return nil
		case PhasePaused:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Millisecond):
			}
		}
	}
}

// RunPaced ticks the match in real time, one fixed step per dt of wall
// clock. Useful when observers watch live.
func (s *Simulation) RunPaced(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.cfg.Dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.Tick(ctx) == PhaseFinished {
				return nil
			}
		}
	}
}

func (s *Simulation) broadcastLoop() {
	defer close(s.broadcastDone)

	for update := range s.broadcast {
		notify.Post(s.FrameTopic(), update.frame)

		for _, e := range update.events {
			notify.Post(s.EventTopic(), e)
		}
	}
}

func (s *Simulation) closeBroadcast() {
	s.broadcastOnce.Do(func() {
		close(s.broadcast)
		<-s.broadcastDone
	})
}

// Close releases the simulation's background resources. Safe to call more
// than once; a finished match has already closed them.
func (s *Simulation) Close() {
	s.closeBroadcast()
	s.recorder.Close()
}
