// Package staconfig holds the ambient, non-SDC tunables every other
// component reads: level-assignment step size and ceiling, tag/tag-group
// index ceilings, the default parasitic coupling factor, the CRPR
// comparison mode, and the search worker-pool size. It deliberately does
// not parse constraints, netlists, or libraries (those stay out of scope
// per spec §1) — it is the same kind of ambient, YAML-backed settings
// object as beadwork's pkg/config.Config, scoped to this core's own knobs.
package staconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CRPRMode selects how strict the "same clock ancestor pin" match is before
// CRPR (§4.7) relaxes a check's margin. The spec names the concept without
// picking a default; see SPEC_FULL.md's Open Question decision.
type CRPRMode string

const (
	// SamePinAnyRF grants CRPR whenever both paths share a clock-network
	// ancestor pin, regardless of the transition (rise/fall) on each path.
	SamePinAnyRF CRPRMode = "same_pin_any_rf"
	// SamePinSameRF additionally requires the ancestor pin carry the same
	// transition on both paths. This is the conservative default.
	SamePinSameRF CRPRMode = "same_pin_same_rf"
)

// Config is the set of tunables read by levelize, intern and search
// (pireduce takes its coupling factor as a call argument). All fields have sane defaults via DefaultConfig; every field is
// independently overridable, matching the teacher's functional-options
// philosophy applied to a serializable settings object instead.
type Config struct {
	// LevelStep is the gap left between consecutive assigned levels (§4.2
	// step 5), so incremental relevelization can shift a vertex without
	// renumbering its fanout.
	LevelStep int `yaml:"level_step"`

	// MaxLevel is the ceiling level assignment must not exceed (§4.2,
	// "Fails with MaxLevelExceeded").
	MaxLevel int64 `yaml:"max_level"`

	// MaxTagIndex is the ceiling on interned Tag indices (§4.5).
	MaxTagIndex int64 `yaml:"max_tag_index"`

	// MaxTagGroupIndex is the ceiling on interned TagGroup indices (§4.5).
	MaxTagGroupIndex int64 `yaml:"max_tag_group_index"`

	// MaxSceneCount is the ceiling on the number of (mode, scene) pairs a
	// single analysis may register (§7).
	MaxSceneCount int64 `yaml:"max_scene_count"`

	// DefaultCouplingFactor is the coupling-capacitor fold-in scalar (§4.3).
	// No package in this module reads it; pireduce's ReduceToPi* functions
	// take the factor as an argument.
	DefaultCouplingFactor float64 `yaml:"default_coupling_factor"`

	// CRPRMode names a clock-ancestor match strictness (§4.7). Validate
	// checks it, but search does not read it: CRPR uses
	// sdc.Variables.CrprMode.
	CRPRMode CRPRMode `yaml:"crpr_mode"`

	// MaxLatchPasses bounds the latch D->Q postponement loop (§4.6): "a
	// finite pass count ... must suffice on well-formed designs."
	MaxLatchPasses int `yaml:"max_latch_passes"`

	// Workers sizes the level-synchronous BFS's worker pool (§5). 1 means
	// fully sequential; the design must behave identically either way.
	Workers int `yaml:"workers"`

	// UnconstrainedPaths, when true, seeds a zero arrival with a null clock
	// at every otherwise-unclocked startpoint (§4.6 seeding rule 3).
	UnconstrainedPaths bool `yaml:"unconstrained_paths"`
}

// DefaultConfig returns a Config with the values named as examples in
// spec.md §4.2/§4.5/§4.6 (level step 10, level ceiling 2^24-1, tag index
// ceiling 2^31-1) plus reasonable defaults for the knobs the spec left
// entirely to the implementer.
func DefaultConfig() Config {
	return Config{
		LevelStep:             10,
		MaxLevel:              1<<24 - 1,
		MaxTagIndex:           1<<31 - 1,
		MaxTagGroupIndex:      1<<31 - 1,
		MaxSceneCount:         4096,
		DefaultCouplingFactor: 1.0,
		CRPRMode:              SamePinSameRF,
		MaxLatchPasses:        5,
		Workers:               1,
		UnconstrainedPaths:    false,
	}
}

// Load reads a YAML document at path into a Config seeded with
// DefaultConfig, so a partial document only overrides the fields it names.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("staconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("staconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first structurally invalid field, if any.
func (c Config) Validate() error {
	if c.LevelStep <= 0 {
		return fmt.Errorf("staconfig: level_step must be positive, got %d", c.LevelStep)
	}
	if c.MaxLevel <= 0 {
		return fmt.Errorf("staconfig: max_level must be positive, got %d", c.MaxLevel)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("staconfig: workers must be positive, got %d", c.Workers)
	}
	if c.CRPRMode != SamePinAnyRF && c.CRPRMode != SamePinSameRF {
		return fmt.Errorf("staconfig: unknown crpr_mode %q", c.CRPRMode)
	}
	return nil
}
