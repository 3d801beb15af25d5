package generator

import (
	"errors"
	"fmt"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
)

// ErrInvalidConfig is returned for a ladder that cannot be run
var ErrInvalidConfig = errors.New("invalid generator config")

// Pool selects which players a pass draws candidates from
type Pool string

const (
	PoolSameGroup  Pool = "same_group"
	PoolOtherGroup Pool = "other_group"
	PoolAll        Pool = "all"
)

// Direction orders candidates by strength in strength-priority passes
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Pass is one rung of the fallback ladder
type Pass struct {
	Name             string `yaml:"name" json:"name"`
	Pool             Pool   `yaml:"pool" json:"pool"`
	Cap              int    `yaml:"cap" json:"cap"`
	StrengthPriority bool   `yaml:"strength_priority" json:"strength_priority"`
}

// Config holds the tunable parts of the matching waterfall
type Config struct {
	Passes            []Pass    `yaml:"passes" json:"passes"`
	StrengthDirection Direction `yaml:"strength_direction" json:"strength_direction"`
	// LeadGroup, when set, moves that group's sends ahead of the rest after the shuffle
	LeadGroup models.Group `yaml:"lead_group,omitempty" json:"lead_group,omitempty"`
}

// DefaultConfig returns the standard four-pass ladder
func DefaultConfig() Config {
	return Config{
		Passes: []Pass{
			{Name: "same-group", Pool: PoolSameGroup, Cap: 4},
			{Name: "cross-group", Pool: PoolOtherGroup, Cap: 4},
			{Name: "step-up", Pool: PoolAll, Cap: 5, StrengthPriority: true},
			{Name: "emergency", Pool: PoolAll, Cap: 6, StrengthPriority: true},
		},
		StrengthDirection: Ascending,
	}
}

// Validate checks the ladder before it is used
func (c Config) Validate() error {
	if len(c.Passes) == 0 {
		return fmt.Errorf("%w: at least one pass is required", ErrInvalidConfig)
	}
	for i, p := range c.Passes {
		switch p.Pool {
		case PoolSameGroup, PoolOtherGroup, PoolAll:
		default:
			return fmt.Errorf("%w: pass %d has unknown pool %q", ErrInvalidConfig, i+1, p.Pool)
		}
		if p.Cap < 0 {
			return fmt.Errorf("%w: pass %d has negative cap", ErrInvalidConfig, i+1)
		}
	}
	switch c.StrengthDirection {
	case Ascending, Descending:
	default:
		return fmt.Errorf("%w: unknown strength direction %q", ErrInvalidConfig, c.StrengthDirection)
	}
	if c.LeadGroup != "" && !c.LeadGroup.Valid() {
		return fmt.Errorf("%w: unknown lead group %q", ErrInvalidConfig, c.LeadGroup)
	}
	return nil
}

// MaxCap is the highest ceiling any pass allows
func (c Config) MaxCap() int {
	max := 0
	for _, p := range c.Passes {
		if p.Cap > max {
			max = p.Cap
		}
	}
	return max
}

// PassName labels pass i (1-based) for summaries
func (c Config) PassName(i int) string {
	if i < 1 || i > len(c.Passes) {
		return "unmatched"
	}
	if name := c.Passes[i-1].Name; name != "" {
		return name
	}
	return fmt.Sprintf("pass-%d", i)
}
