package generator

import (
	"math"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
)

// Summarize reports how a run went: totals, which passes did the matching,
// what each player received and how evenly the load was spread
func (c Config) Summarize(roster []models.PlayerEntry, orders []models.Assignment) models.Summary {
	s := models.Summary{
		Players:    len(roster),
		Sends:      len(orders),
		PassCounts: make(map[string]int),
		Received:   make(map[string]int, len(roster)),
	}
	for _, p := range roster {
		s.Received[p.Username] = 0
	}
	for _, o := range orders {
		if !o.Matched() {
			s.Unmatched++
			continue
		}
		s.Matched++
		s.Received[o.To]++
		s.PassCounts[c.PassName(o.Pass)]++
	}
	s.FairnessScore = FairnessScore(s.Received)
	return s
}

// FairnessScore rates how evenly sends landed across players, from 0 to 100.
// It is 100 minus the coefficient of variation of the received counts, as a
// percentage: everyone receiving the same number scores 100, and a spread as
// wide as the average receipt scores 0. A run where nobody received anything
// counts as even.
func FairnessScore(received map[string]int) float64 {
	players := float64(len(received))
	total := 0
	for _, n := range received {
		total += n
	}
	if total == 0 {
		return 100
	}

	avg := float64(total) / players
	var sq float64
	for _, n := range received {
		d := float64(n) - avg
		sq += d * d
	}
	spread := math.Sqrt(sq/players) / avg
	return math.Max(0, 100*(1-spread))
}
