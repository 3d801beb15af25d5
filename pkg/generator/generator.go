package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
)

// Generator assigns every send in a roster to a target.
// A Generator owns its random source and must not be shared between goroutines.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// Option customizes a Generator
type Option func(*Generator)

// WithSeed pins the shuffle so runs are reproducible
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r for the shuffle
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// New creates a generator for the given ladder
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g, nil
}

// Config returns the ladder the generator runs
func (g *Generator) Config() Config {
	return g.cfg
}

// player is the mutable per-run view of a roster entry
type player struct {
	models.PlayerEntry
	received int
	sentTo   map[string]struct{}
}

// Generate builds the order list for roster. The roster is validated as a
// whole first; nothing is matched if any entry is unusable.
func (g *Generator) Generate(roster []models.PlayerEntry) ([]models.Assignment, error) {
	if len(roster) < 2 {
		return nil, models.ErrInsufficientPlayers
	}
	if err := Validate(roster); err != nil {
		return nil, err
	}

	players := make([]*player, len(roster))
	var sends []*player
	for i, entry := range roster {
		p := &player{PlayerEntry: entry, sentTo: make(map[string]struct{})}
		players[i] = p
		for j := 0; j < entry.SendCount; j++ {
			sends = append(sends, p)
		}
	}

	g.rng.Shuffle(len(sends), func(i, j int) {
		sends[i], sends[j] = sends[j], sends[i]
	})
	if lead := g.cfg.LeadGroup; lead != "" {
		sort.SliceStable(sends, func(i, j int) bool {
			return sends[i].Group == lead && sends[j].Group != lead
		})
	}

	orders := make([]models.Assignment, 0, len(sends))
	for _, sender := range sends {
		target, pass := g.findTarget(sender, players)
		if target == nil {
			orders = append(orders, models.Unmatched(sender.PlayerEntry))
			continue
		}

		target.received++
		sender.sentTo[target.Username] = struct{}{}
		orders = append(orders, models.Assignment{
			From:      sender.Username,
			FromGroup: sender.Group,
			To:        target.Username,
			ToGroup:   string(target.Group),
			Pass:      pass,
		})
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].From < orders[j].From
	})
	return orders, nil
}

// findTarget walks the ladder and returns the first candidate found along
// with the 1-based pass index that produced it
func (g *Generator) findTarget(sender *player, players []*player) (*player, int) {
	for i, pass := range g.cfg.Passes {
		if best := g.bestCandidate(sender, players, pass); best != nil {
			return best, i + 1
		}
	}
	return nil, 0
}

func (g *Generator) bestCandidate(sender *player, players []*player, pass Pass) *player {
	var best *player
	for _, cand := range players {
		if !inPool(pass.Pool, sender, cand) || !eligible(sender, cand, pass.Cap) {
			continue
		}
		if best == nil || g.less(cand, best, pass.StrengthPriority) {
			best = cand
		}
	}
	return best
}

func inPool(pool Pool, sender, cand *player) bool {
	switch pool {
	case PoolSameGroup:
		return cand.Group == sender.Group
	case PoolOtherGroup:
		return cand.Group != sender.Group
	}
	return true
}

func eligible(sender, cand *player, capacity int) bool {
	if cand.Username == sender.Username || cand.received >= capacity {
		return false
	}
	_, already := sender.sentTo[cand.Username]
	return !already
}

// less orders candidates; ties keep roster order because only a strictly
// better candidate replaces the current best
func (g *Generator) less(a, b *player, strength bool) bool {
	if strength && a.Strength != b.Strength {
		if g.cfg.StrengthDirection == Descending {
			return a.Strength > b.Strength
		}
		return a.Strength < b.Strength
	}
	return a.received < b.received
}

// Validate rejects a roster containing any unusable entry
func Validate(roster []models.PlayerEntry) error {
	seen := make(map[string]bool, len(roster))
	for i, p := range roster {
		switch {
		case p.Username == "":
			return &models.InvalidEntryError{Row: i, Reason: "username is required"}
		case seen[p.Username]:
			return &models.InvalidEntryError{Row: i, Username: p.Username, Reason: "duplicate username"}
		case !p.Group.Valid():
			return &models.InvalidEntryError{Row: i, Username: p.Username, Reason: "unknown group " + string(p.Group)}
		case p.SendCount < 0:
			return &models.InvalidEntryError{Row: i, Username: p.Username, Reason: "send_count must not be negative"}
		case p.Strength < 0:
			return &models.InvalidEntryError{Row: i, Username: p.Username, Reason: "strength must not be negative"}
		}
		seen[p.Username] = true
	}
	return nil
}
