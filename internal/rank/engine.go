// Package rank scores and orders pairings deterministically.
package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/jayscottaf/pairscout/internal/model"
)

// Engine scores pairings and produces a total descending order with a
// transparent per-record breakdown. Pure and side-effect-free: safe to
// share between concurrent requests, never mutates an input Pairing.
type Engine struct {
	cfg model.RankingConfig
}

// NewEngine creates an engine with the given scoring constants
func NewEngine(cfg model.RankingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Rank scores every pairing under the given mode and returns a total order,
// descending by score. Every input record appears exactly once in the
// output; nothing is filtered. Ties break by ascending pairing number, then
// ascending ID, so identical inputs always yield identical orderings
// regardless of retrieval order. RankNone skips scoring entirely and
// preserves retrieval order.
func (e *Engine) Rank(pairings []model.Pairing, mode model.RankingMode, senioritySignal *float64) []model.RankedPairing {
	if mode == model.RankNone {
		return WrapUnranked(pairings)
	}

	ranked := make([]model.RankedPairing, 0, len(pairings))
	for _, p := range pairings {
		score, breakdown := e.score(p, mode, senioritySignal)
		ranked = append(ranked, model.RankedPairing{
			Pairing:   p,
			Score:     score,
			Breakdown: breakdown,
		})
	}

	sortRanked(ranked)
	return ranked
}

// RankByLongestLayover orders pairings by their longest layover duration,
// ignoring the ranking mode. A limit <= 0 returns everything.
func (e *Engine) RankByLongestLayover(pairings []model.Pairing, limit int) []model.RankedPairing {
	ranked := make([]model.RankedPairing, 0, len(pairings))
	for _, p := range pairings {
		longest := p.LongestLayover()
		ranked = append(ranked, model.RankedPairing{
			Pairing: p,
			Score:   longest.DurationHours,
			Breakdown: map[string]interface{}{
				"mode":          "longest_layover",
				"layover_city":  longest.City,
				"layover_hours": longest.DurationHours,
				"layover_count": len(p.Layovers),
			},
		})
	}

	sortRanked(ranked)

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// score computes the per-mode score and its breakdown
func (e *Engine) score(p model.Pairing, mode model.RankingMode, senioritySignal *float64) (float64, map[string]interface{}) {
	switch mode {
	case model.RankByCredit:
		return p.CreditHours, map[string]interface{}{
			"mode":         string(mode),
			"credit_hours": p.CreditHours,
			"formula":      "score = credit_hours",
		}

	case model.RankByEfficiency:
		eff := efficiency(p)
		return eff, map[string]interface{}{
			"mode":         string(mode),
			"credit_hours": p.CreditHours,
			"block_hours":  p.BlockHours,
			"efficiency":   eff,
			"formula":      "score = credit_hours / block_hours (0 if block <= 0)",
		}

	case model.RankByHold:
		return p.HoldProbability, map[string]interface{}{
			"mode":             string(mode),
			"hold_probability": p.HoldProbability,
			"formula":          "score = hold_probability",
		}

	case model.RankByOverall:
		return e.overall(p, senioritySignal)

	default:
		// Unknown modes score zero so every record still appears once
		return 0, nil
	}
}

// overall computes the weighted composite score, always within [0,100] for
// finite non-negative inputs.
func (e *Engine) overall(p model.Pairing, senioritySignal *float64) (float64, map[string]interface{}) {
	holdWeight := e.holdWeight(senioritySignal)
	creditWeight := e.cfg.CreditWeight
	efficiencyWeight := 1 - creditWeight - holdWeight

	creditNorm := math.Min(p.CreditHours/e.cfg.CreditCeiling*100, 100)
	if creditNorm < 0 {
		creditNorm = 0
	}

	eff := efficiency(p)
	band := e.cfg.EfficiencyCeiling - e.cfg.EfficiencyFloor
	effNorm := clamp((eff-e.cfg.EfficiencyFloor)/band*100, 0, 100)

	hold := clamp(p.HoldProbability, 0, 100)

	score := creditNorm*creditWeight + effNorm*efficiencyWeight + hold*holdWeight

	breakdown := map[string]interface{}{
		"mode":              string(model.RankByOverall),
		"credit_hours":      p.CreditHours,
		"block_hours":       p.BlockHours,
		"efficiency":        eff,
		"hold_probability":  p.HoldProbability,
		"credit_norm":       creditNorm,
		"efficiency_norm":   effNorm,
		"credit_weight":     creditWeight,
		"efficiency_weight": efficiencyWeight,
		"hold_weight":       holdWeight,
		"formula":           "score = credit_norm*credit_weight + efficiency_norm*efficiency_weight + hold*hold_weight",
	}
	if senioritySignal != nil {
		breakdown["seniority_signal"] = *senioritySignal
	}

	return score, breakdown
}

// holdWeight biases the composite toward hold probability for junior
// requesters (high seniority percentile) and away from it for senior ones.
func (e *Engine) holdWeight(senioritySignal *float64) float64 {
	if senioritySignal == nil {
		return e.cfg.BaseHoldWeight
	}
	if *senioritySignal > 50 {
		return e.cfg.JuniorHoldWeight
	}
	return e.cfg.SeniorHoldWeight
}

// Rationale produces the human-readable explanation of how results were
// ordered, for citation in generated responses.
func (e *Engine) Rationale(mode model.RankingMode, senioritySignal *float64) string {
	switch mode {
	case model.RankByCredit:
		return "Ranked by credit hours, highest first."
	case model.RankByEfficiency:
		return "Ranked by efficiency (credit hours per block hour), highest first."
	case model.RankByHold:
		return "Ranked by hold probability, highest first."
	case model.RankByOverall:
		holdWeight := e.holdWeight(senioritySignal)
		efficiencyWeight := 1 - e.cfg.CreditWeight - holdWeight
		return fmt.Sprintf(
			"Ranked by composite score: credit %.0f%%, efficiency %.0f%%, hold probability %.0f%%.",
			e.cfg.CreditWeight*100, efficiencyWeight*100, holdWeight*100)
	default:
		return ""
	}
}

// WrapUnranked attaches zero scores in retrieval order, for pipeline stages
// that need the ranked shape without any reordering.
func WrapUnranked(pairings []model.Pairing) []model.RankedPairing {
	ranked := make([]model.RankedPairing, 0, len(pairings))
	for _, p := range pairings {
		ranked = append(ranked, model.RankedPairing{Pairing: p})
	}
	return ranked
}

func efficiency(p model.Pairing) float64 {
	if p.BlockHours <= 0 {
		return 0
	}
	return p.CreditHours / p.BlockHours
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sortRanked orders descending by score with the deterministic tie-break
func sortRanked(ranked []model.RankedPairing) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].PairingNumber != ranked[j].PairingNumber {
			return ranked[i].PairingNumber < ranked[j].PairingNumber
		}
		return ranked[i].ID < ranked[j].ID
	})
}
