package match

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/physics"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// PlayerDef describes one roster entry. Player ids are assigned from the
// roster order at construction time: home players first, then away, each
// side sorted by jersey number.
type PlayerDef struct {
	Team       string           `yaml:"team" json:"team"`
	Number     int              `yaml:"number" json:"number"`
	Attributes state.Attributes `yaml:"attributes" json:"attributes"`
}

type Config struct {
	Field          pitch.FieldDef `yaml:"field" json:"field"`
	Duration       float64        `yaml:"duration" json:"duration"` // seconds of match clock
	Dt             float64        `yaml:"dt" json:"dt"`
	Seed           uint64         `yaml:"seed" json:"seed"`
	DecideBudgetMs int            `yaml:"decidebudgetms" json:"decidebudgetms"`
	PlayersPerSide int            `yaml:"playersperside" json:"playersperside"`
	Roster         []PlayerDef    `yaml:"roster" json:"roster"`
	Tuning         physics.Tuning `yaml:"tuning" json:"tuning"`
}

// DefaultConfig is a full 11v11 match at 60 Hz with flat attributes.
func DefaultConfig() Config {
	cfg := Config{
		Field:          pitch.DefaultFieldDef(),
		Duration:       90 * 60,
		Dt:             1.0 / 60.0,
		Seed:           1,
		DecideBudgetMs: 5,
		PlayersPerSide: 11,
		Tuning:         physics.DefaultTuning(),
	}

	for _, team := range []state.Team{state.TeamHome, state.TeamAway} {
		for number := 1; number <= cfg.PlayersPerSide; number++ {
			cfg.Roster = append(cfg.Roster, PlayerDef{
				Team:       string(team),
				Number:     number,
				Attributes: state.Attributes{Speed: 0.5, Power: 0.5, Control: 0.5},
			})
		}
	}

	return cfg
}

func LoadConfigYAML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	cfg.Roster = nil

	raw, err := io.ReadAll(r)
	if err != nil {
		return cfg, errors.Wrap(err, "cannot read match config")
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid match config yaml")
	}

	if cfg.Roster == nil {
		cfg = withDefaultRoster(cfg)
	}

	return cfg, cfg.Validate()
}

func LoadConfigJSON(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	cfg.Roster = nil

	raw, err := io.ReadAll(r)
	if err != nil {
		return cfg, errors.Wrap(err, "cannot read match config")
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid match config json")
	}

	if cfg.Roster == nil {
		cfg = withDefaultRoster(cfg)
	}

	return cfg, cfg.Validate()
}

func withDefaultRoster(cfg Config) Config {
	for _, team := range []state.Team{state.TeamHome, state.TeamAway} {
		for number := 1; number <= cfg.PlayersPerSide; number++ {
			cfg.Roster = append(cfg.Roster, PlayerDef{
				Team:       string(team),
				Number:     number,
				Attributes: state.Attributes{Speed: 0.5, Power: 0.5, Control: 0.5},
			})
		}
	}

	return cfg
}

// Validate rejects configurations the simulation cannot run on.
// Construction treats any error here as fatal.
func (cfg Config) Validate() error {
	if err := cfg.Field.Validate(); err != nil {
		return errors.Wrap(err, "invalid field definition")
	}

	if cfg.Dt <= 0 {
		return errors.New("dt must be strictly positive")
	}

	if cfg.Duration <= 0 {
		return errors.New("duration must be strictly positive")
	}

	if cfg.DecideBudgetMs <= 0 {
		return errors.New("decide budget must be strictly positive")
	}

	if cfg.PlayersPerSide < 1 {
		return errors.New("playersperside must be at least 1")
	}

	if len(cfg.Roster) != 2*cfg.PlayersPerSide {
		return errors.Errorf("roster holds %d players, want %d", len(cfg.Roster), 2*cfg.PlayersPerSide)
	}

	counts := make(map[state.Team]int)
	jerseys := make(map[string]bool)

	for _, def := range cfg.Roster {
		team := state.Team(def.Team)
		if team != state.TeamHome && team != state.TeamAway {
			return errors.Errorf("unknown team %q in roster", def.Team)
		}

		counts[team]++

		key := def.Team + "#" + strconv.Itoa(def.Number)
		if jerseys[key] {
			return errors.Errorf("duplicate jersey number %d on team %s", def.Number, def.Team)
		}

		jerseys[key] = true

		if def.Number < 1 {
			return errors.Errorf("jersey number %d on team %s is invalid", def.Number, def.Team)
		}
	}

	if counts[state.TeamHome] != cfg.PlayersPerSide || counts[state.TeamAway] != cfg.PlayersPerSide {
		return errors.Errorf("roster split %d/%d, want %d per side", counts[state.TeamHome], counts[state.TeamAway], cfg.PlayersPerSide)
	}

	return nil
}
