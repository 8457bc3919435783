package scenario

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/lander/lander"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/physics"
	"github.com/lixenwraith/lander/vmath"
)

var ErrInvalidSettings = errors.New("invalid settings")

// settingsValidate is shared by every Settings.Validate call
var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New()
	_ = settingsValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite rejects NaN and infinite floats, other kinds pass
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		return vmath.Finite(f.Float())
	default:
		return true
	}
}

// Settings configure physics, landing rules and the genetic search
type Settings struct {
	PopulationSize      int     `yaml:"population_size" json:"population_size" validate:"gte=2"`
	ChromosomeLength    int     `yaml:"chromosome_length" json:"chromosome_length" validate:"gte=1"`
	EliteCount          int     `yaml:"elite_count" json:"elite_count" validate:"gte=0,ltfield=PopulationSize"`
	MutationProbability float64 `yaml:"mutation_probability" json:"mutation_probability" validate:"finite,gte=0,lte=1"`

	TickDuration float64 `yaml:"tick_duration" json:"tick_duration" validate:"finite,gt=0"`
	Gravity      float64 `yaml:"gravity" json:"gravity" validate:"finite,gte=0"`
	Ceiling      float64 `yaml:"ceiling" json:"ceiling" validate:"finite,gt=0"`

	Limits    physics.Limits   `yaml:",inline" json:"limits"`
	Tolerance lander.Tolerance `yaml:"tolerance" json:"tolerance"`

	// MaxGenerations ends the search as exhausted, 0 never exhausts
	MaxGenerations int `yaml:"max_generations" json:"max_generations" validate:"gte=0"`
	// Seed fixes the random stream; nil draws one per solver
	Seed          *uint64 `yaml:"seed" json:"seed,omitempty"`
	ReseedOnReset bool    `yaml:"reseed_on_reset" json:"reseed_on_reset"`
	Parallelism   int     `yaml:"parallelism" json:"parallelism" validate:"gte=0"`

	OutOfFuel      string `yaml:"out_of_fuel" json:"out_of_fuel" validate:"oneof=coast crash"`
	Selection      string `yaml:"selection" json:"selection" validate:"oneof=roulette tournament"`
	TournamentSize int    `yaml:"tournament_size" json:"tournament_size" validate:"gte=1"`

	Fitness lander.Weights `yaml:"fitness" json:"fitness"`
}

// legacySettings are the keys of the older solver settings file
type legacySettings struct {
	PopulationSize *int     `yaml:"PopulationSize"`
	ChromosomeSize *int     `yaml:"ChromosomeSize"`
	Elitism        *float64 `yaml:"Elitism"`
	MutationProb   *float64 `yaml:"MutationProb"`
}

// Defaults returns settings built from the parameter package
func Defaults() Settings {
	return Settings{
		PopulationSize:      parameter.GAPoolSize,
		ChromosomeLength:    parameter.GAChromosomeLength,
		EliteCount:          parameter.GAEliteCount,
		MutationProbability: parameter.GAMutationProbability,
		TickDuration:        parameter.TickDuration,
		Gravity:             parameter.Gravity,
		Ceiling:             parameter.Ceiling,
		Limits:              physics.DefaultLimits(),
		Tolerance:           lander.DefaultTolerance(),
		MaxGenerations:      parameter.GAMaxGenerations,
		Parallelism:         parameter.GAParallelism,
		OutOfFuel:           parameter.OutOfFuelCoast,
		Selection:           parameter.SelectionRoulette,
		TournamentSize:      parameter.GATournamentSize,
		Fitness:             lander.DefaultWeights(),
	}
}

// ParseSettings decodes a settings document over the defaults and validates the result
// Missing keys keep their default
func ParseSettings(data []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	var legacy legacySettings
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := legacy.apply(&s); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads and decodes a settings file
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// apply overlays legacy keys, Elitism is a fraction of the population
func (l legacySettings) apply(s *Settings) error {
	if l.PopulationSize != nil {
		s.PopulationSize = *l.PopulationSize
	}
	if l.ChromosomeSize != nil {
		s.ChromosomeLength = *l.ChromosomeSize
	}
	if l.MutationProb != nil {
		s.MutationProbability = *l.MutationProb
	}
	if l.Elitism != nil {
		frac := *l.Elitism
		if !vmath.Finite(frac) || frac < 0 || frac >= 1 {
			return fmt.Errorf("%w: Elitism %g must be in [0, 1)", ErrInvalidSettings, frac)
		}
		s.EliteCount = int(math.Round(frac * float64(s.PopulationSize)))
	}
	return nil
}

// Validate checks field ranges and cross-field constraints
func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := s.Limits.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// Physics returns the integrator these settings describe
func (s Settings) Physics() physics.Physics {
	return physics.Physics{Gravity: s.Gravity, DT: s.TickDuration}
}
