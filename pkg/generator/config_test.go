package generator

import (
	"testing"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	var caps []int
	var strength []bool
	for _, p := range cfg.Passes {
		caps = append(caps, p.Cap)
		strength = append(strength, p.StrengthPriority)
	}
	assert.Equal(t, []int{4, 4, 5, 6}, caps)
	assert.Equal(t, []bool{false, false, true, true}, strength)
	assert.Equal(t, []Pool{PoolSameGroup, PoolOtherGroup, PoolAll, PoolAll},
		[]Pool{cfg.Passes[0].Pool, cfg.Passes[1].Pool, cfg.Passes[2].Pool, cfg.Passes[3].Pool})
	assert.Equal(t, Ascending, cfg.StrengthDirection)
	assert.Equal(t, 6, cfg.MaxCap())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no passes", Config{StrengthDirection: Ascending}},
		{"bad pool", Config{Passes: []Pass{{Pool: "guild", Cap: 4}}, StrengthDirection: Ascending}},
		{"negative cap", Config{Passes: []Pass{{Pool: PoolAll, Cap: -1}}, StrengthDirection: Ascending}},
		{"bad direction", Config{Passes: []Pass{{Pool: PoolAll, Cap: 4}}, StrengthDirection: "sideways"}},
		{"bad lead group", Config{Passes: []Pass{{Pool: PoolAll, Cap: 4}}, StrengthDirection: Ascending, LeadGroup: "Away"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), ErrInvalidConfig)

			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestPassName(t *testing.T) {
	cfg := Config{Passes: []Pass{{Name: "same-group"}, {}}}
	assert.Equal(t, "same-group", cfg.PassName(1))
	assert.Equal(t, "pass-2", cfg.PassName(2))
	assert.Equal(t, "unmatched", cfg.PassName(0))
}

func TestSummarize(t *testing.T) {
	cfg := DefaultConfig()
	roster := []models.PlayerEntry{
		{Username: "a", Group: models.GroupOnline, SendCount: 2},
		{Username: "b", Group: models.GroupOnline},
		{Username: "c", Group: models.GroupOffline},
	}
	orders := []models.Assignment{
		{From: "a", FromGroup: models.GroupOnline, To: "b", ToGroup: "Online", Pass: 1},
		{From: "a", FromGroup: models.GroupOnline, To: "c", ToGroup: "Offline", Pass: 2},
		models.Unmatched(roster[0]),
	}

	s := cfg.Summarize(roster, orders)
	assert.Equal(t, 3, s.Players)
	assert.Equal(t, 3, s.Sends)
	assert.Equal(t, 2, s.Matched)
	assert.Equal(t, 1, s.Unmatched)
	assert.Equal(t, map[string]int{"same-group": 1, "cross-group": 1}, s.PassCounts)
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 1}, s.Received)
	assert.InDelta(t, 29.29, s.FairnessScore, 0.01)
}

func TestFairnessScore(t *testing.T) {
	assert.Equal(t, 100.0, FairnessScore(nil))
	assert.Equal(t, 100.0, FairnessScore(map[string]int{"a": 0, "b": 0}))
	assert.Equal(t, 100.0, FairnessScore(map[string]int{"a": 3, "b": 3}))
	assert.InDelta(t, 50.0, FairnessScore(map[string]int{"a": 1, "b": 3}), 1e-9)
	assert.Equal(t, 0.0, FairnessScore(map[string]int{"a": 0, "b": 0, "c": 0, "d": 6}))
}
