package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/scheduler"
)

// ScoringWeights are the four soft-objective weights. When omitted, the
// algorithm preset applies.
type ScoringWeights struct {
	Equity     float64 `yaml:"equity" validate:"min=0,max=1"`
	Preference float64 `yaml:"preference" validate:"min=0,max=1"`
	Rest       float64 `yaml:"rest" validate:"min=0,max=1"`
	Experience float64 `yaml:"experience" validate:"min=0,max=1"`
}

// ConstraintsConfig holds the hard labor-rule limits.
type ConstraintsConfig struct {
	MinRestHours           float64 `yaml:"minRestHours" validate:"omitempty,min=0"`
	MaxConsecutiveDays     int     `yaml:"maxConsecutiveDays" validate:"omitempty,min=1"`
	MaxWeeklyHours         float64 `yaml:"maxWeeklyHours" validate:"omitempty,min=0"`
	MinWeeklyHours         float64 `yaml:"minWeeklyHours" validate:"omitempty,min=0"`
	RequireWeekendRotation bool    `yaml:"requireWeekendRotation"`
}

// StaffOverride sets a per-store, per-weekday staffing min/max.
type StaffOverride struct {
	StoreID string `yaml:"storeID" validate:"required"`
	Weekday string `yaml:"weekday" validate:"required"`
	Min     int    `yaml:"min" validate:"omitempty,min=0"`
	Max     int    `yaml:"max" validate:"omitempty,min=0"`
}

// ClosureRule marks recurring closed dates via an RRULE (public holidays,
// seasonal closures). An empty storeID applies to every store.
type ClosureRule struct {
	StoreID string `yaml:"storeID,omitempty"`
	RRule   string `yaml:"rrule" validate:"required"`
}

// DatabaseConfig points at the Postgres store.
type DatabaseConfig struct {
	URL string `yaml:"url" validate:"required"`
}

// Config is the application configuration, read at the start of each
// scheduling run.
type Config struct {
	Algorithm      string            `yaml:"algorithm" validate:"required,oneof=round_robin weighted_fair preference_based hybrid"`
	Weights        *ScoringWeights   `yaml:"weights,omitempty"`
	LookAheadDays  int               `yaml:"lookAheadDays" validate:"omitempty,min=1"`
	MaxIterations  int               `yaml:"maxIterations" validate:"omitempty,min=1"`
	Constraints    ConstraintsConfig `yaml:"constraints"`
	StaffOverrides []StaffOverride   `yaml:"staffOverrides,omitempty" validate:"dive"`
	ClosureRules   []ClosureRule     `yaml:"closureRules,omitempty" validate:"dive"`
	Database       DatabaseConfig    `yaml:"database"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

const configFileName = "scheduling_config.yaml"

// Load loads and validates the configuration, looking in the current
// directory first and the user's home directory second.
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadWithEnv loads scheduling_config_<env>.yaml.
func LoadWithEnv(env string) (*Config, error) {
	name := fmt.Sprintf("scheduling_config_%s.yaml", env)
	configPath, err := findConfigFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file for env %q: %w", env, err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate runs struct validation plus weekday and rrule syntax checks.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.StaffOverrides {
		if _, err := ParseWeekday(override.Weekday); err != nil {
			return fmt.Errorf("invalid weekday in staffOverrides[%d]: %w", i, err)
		}
		if override.Max > 0 && override.Min > override.Max {
			return fmt.Errorf("staffOverrides[%d]: min %d exceeds max %d", i, override.Min, override.Max)
		}
	}

	for i, rule := range cfg.ClosureRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
	}
	return nil
}

// WeightSum returns the configured weight total and whether it drifts from
// the advisory 1.0. The engine still runs with the weights as given; the
// drift is only surfaced as a caller-side warning.
func (c *Config) WeightSum() (float64, bool) {
	if c.Weights == nil {
		return 1.0, false
	}
	sum := c.Weights.Equity + c.Weights.Preference + c.Weights.Rest + c.Weights.Experience
	return sum, math.Abs(sum-1.0) > 0.001
}

// EngineConfig converts the configuration into the engine's form: explicit
// weights when set, else the algorithm preset, plus the compiled staffing
// override table.
func (c *Config) EngineConfig() (scheduler.Config, error) {
	algorithm := scheduler.Algorithm(c.Algorithm)

	weights := scheduler.PresetWeights(algorithm)
	if c.Weights != nil {
		weights = scheduler.Weights{
			Equity:     c.Weights.Equity,
			Preference: c.Weights.Preference,
			Rest:       c.Weights.Rest,
			Experience: c.Weights.Experience,
		}
	}

	table := scheduler.NewStaffTable()
	for _, override := range c.StaffOverrides {
		day, err := ParseWeekday(override.Weekday)
		if err != nil {
			return scheduler.Config{}, err
		}
		table.Set(override.StoreID, day, scheduler.StaffLevels{Min: override.Min, Max: override.Max})
	}

	return scheduler.Config{
		Algorithm:     algorithm,
		Weights:       weights,
		LookAheadDays: c.LookAheadDays,
		MaxIterations: c.MaxIterations,
		Constraints: scheduler.Constraints{
			MinRestHours:           c.Constraints.MinRestHours,
			MaxConsecutiveDays:     c.Constraints.MaxConsecutiveDays,
			MaxWeeklyHours:         c.Constraints.MaxWeeklyHours,
			MinWeeklyHours:         c.Constraints.MinWeeklyHours,
			RequireWeekendRotation: c.Constraints.RequireWeekendRotation,
		},
		StaffTable: table,
	}, nil
}

// ClosureCalendar expands the closure rules over the given interval with a
// one-week buffer on each side.
func (c *Config) ClosureCalendar(start, end time.Time) (*scheduler.ClosureCalendar, error) {
	calendar := scheduler.NewClosureCalendar()

	searchStart := start.AddDate(0, 0, -7)
	searchEnd := end.AddDate(0, 0, 7)

	for i, rule := range c.ClosureRules {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule in closureRules[%d]: %w", i, err)
		}
		// A rule without its own DTSTART defaults to parse time; anchor it
		// to the search window. Rules that carry an anchor keep it, since
		// re-anchoring would shift weekday-sensitive frequencies.
		if !strings.Contains(strings.ToUpper(rule.RRule), "DTSTART") {
			r.DTStart(searchStart)
		}
		for _, occurrence := range r.Between(searchStart, searchEnd, true) {
			calendar.MarkClosed(rule.StoreID, occurrence.Format(model.DateLayout))
		}
	}
	return calendar, nil
}

// ParseWeekday parses an English weekday name, case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	case "sunday":
		return time.Sunday, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}

// findConfigFile searches the current directory and the home directory.
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
