package physics

// Tuning groups every force-translation and contact constant in one place.
// These are tunable parameters, not structural contracts; tests pin only
// contractual behavior (ordering, determinism, clamping), never the exact
// values here.
type Tuning struct {
	// multiplicative velocity damping applied once per tick
	PlayerDamping float64 `json:"playerdamping" yaml:"playerdamping"`
	BallDamping   float64 `json:"balldamping" yaml:"balldamping"`

	// spin decay per tick and sideways acceleration per unit of spin
	SpinDecay    float64 `json:"spindecay" yaml:"spindecay"`
	SpinCurlGain float64 `json:"spincurlgain" yaml:"spincurlgain"`

	// a free ball within this distance of a player may be captured
	CaptureRadius float64 `json:"captureradius" yaml:"captureradius"`

	// players within this distance of the ball compete for ball actions
	InteractionRange float64 `json:"interactionrange" yaml:"interactionrange"`

	// ball speed at power 1.0
	ShootSpeed float64 `json:"shootspeed" yaml:"shootspeed"`
	PassSpeed  float64 `json:"passspeed" yaml:"passspeed"`

	// steering force per unit of velocity error, times player mass
	SteeringGain float64 `json:"steeringgain" yaml:"steeringgain"`

	// velocity retained by the failed party of a tackle lunge
	TackleSlowFactor float64 `json:"tackleslowfactor" yaml:"tackleslowfactor"`

	// tackle contest shape; probabilities are clamped to [0.05,0.95] so a
	// contest never becomes a certainty
	TackleBaseChance float64 `json:"tacklebasechance" yaml:"tacklebasechance"`
	TackleFoulChance float64 `json:"tacklefoulchance" yaml:"tacklefoulchance"`

	RestitutionPlayerPlayer float64 `json:"restitutionplayerplayer" yaml:"restitutionplayerplayer"`
	RestitutionPlayerBall   float64 `json:"restitutionplayerball" yaml:"restitutionplayerball"`
	RestitutionBallBoundary float64 `json:"restitutionballboundary" yaml:"restitutionballboundary"`

	// stamina points per second, drained at full sprint / recovered at rest
	StaminaDrainRate    float64 `json:"staminadrainrate" yaml:"staminadrainrate"`
	StaminaRecoveryRate float64 `json:"staminarecoveryrate" yaml:"staminarecoveryrate"`

	// distance the ball sits in front of its possessor while dribbling
	DribbleOffset float64 `json:"dribbleoffset" yaml:"dribbleoffset"`

	// all distance/velocity comparisons in the engine use this epsilon
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

func DefaultTuning() Tuning {
	return Tuning{
		PlayerDamping: 0.97,
		BallDamping:   0.99,

		SpinDecay:    0.98,
		SpinCurlGain: 0.08,

		CaptureRadius:    0.8,
		InteractionRange: 1.2,

		ShootSpeed: 30.0,
		PassSpeed:  18.0,

		SteeringGain: 5.0,

		TackleSlowFactor: 0.3,
		TackleBaseChance: 0.45,
		TackleFoulChance: 0.12,

		RestitutionPlayerPlayer: 0.1,
		RestitutionPlayerBall:   0.55,
		RestitutionBallBoundary: 0.75,

		StaminaDrainRate:    0.02,
		StaminaRecoveryRate: 0.01,

		DribbleOffset: 0.3,

		Epsilon: 0.000001,
	}
}
