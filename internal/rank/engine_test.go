package rank

import (
	"math"
	"testing"

	"github.com/jayscottaf/pairscout/internal/model"
)

func testPairings() []model.Pairing {
	return []model.Pairing{
		{ID: 1, PairingNumber: "P4312", CreditHours: 18.5, BlockHours: 15.2, PairingDays: 4, HoldProbability: 85},
		{ID: 2, PairingNumber: "P4418", CreditHours: 22.1, BlockHours: 20.0, PairingDays: 4, HoldProbability: 40},
		{ID: 3, PairingNumber: "P4105", CreditHours: 12.0, BlockHours: 11.0, PairingDays: 2, HoldProbability: 95},
		{ID: 4, PairingNumber: "P4550", CreditHours: 30.0, BlockHours: 19.5, PairingDays: 5, HoldProbability: 20},
	}
}

func TestEngine_Rank_CreditOrdering(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	ranked := engine.Rank(testPairings(), model.RankByCredit, nil)

	if len(ranked) != 4 {
		t.Fatalf("expected 4 ranked pairings, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("scores not descending at %d: %.2f < %.2f", i, ranked[i-1].Score, ranked[i].Score)
		}
	}
	if ranked[0].PairingNumber != "P4550" {
		t.Errorf("expected P4550 first (30.0 credit), got %s", ranked[0].PairingNumber)
	}
	if ranked[0].Score != 30.0 {
		t.Errorf("credit score should equal credit hours, got %.2f", ranked[0].Score)
	}
}

func TestEngine_Rank_EmptyAndSingleton(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	if ranked := engine.Rank(nil, model.RankByCredit, nil); len(ranked) != 0 {
		t.Errorf("expected empty result for empty input, got %d", len(ranked))
	}

	one := []model.Pairing{{ID: 7, PairingNumber: "A100", CreditHours: 10}}
	ranked := engine.Rank(one, model.RankByCredit, nil)
	if len(ranked) != 1 || ranked[0].PairingNumber != "A100" {
		t.Fatalf("singleton input should survive ranking unchanged, got %v", ranked)
	}
	if ranked[0].Score != 10 {
		t.Errorf("singleton credit score should equal its credit hours, got %.2f", ranked[0].Score)
	}
}

func TestEngine_Rank_PreservesEveryRecord(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())
	input := testPairings()

	ranked := engine.Rank(input, model.RankByOverall, nil)

	seen := make(map[string]bool)
	for _, r := range ranked {
		seen[r.PairingNumber] = true
	}
	for _, p := range input {
		if !seen[p.PairingNumber] {
			t.Errorf("pairing %s missing from ranked output", p.PairingNumber)
		}
	}
}

func TestEngine_Rank_EfficiencyZeroBlock(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	pairings := []model.Pairing{
		{ID: 1, PairingNumber: "P1000", CreditHours: 20, BlockHours: 0},
		{ID: 2, PairingNumber: "P2000", CreditHours: 15, BlockHours: 10},
	}

	ranked := engine.Rank(pairings, model.RankByEfficiency, nil)

	if ranked[0].PairingNumber != "P2000" {
		t.Errorf("zero-block pairing must score 0, expected P2000 first, got %s", ranked[0].PairingNumber)
	}
	if ranked[1].Score != 0 {
		t.Errorf("expected zero score for zero block hours, got %.2f", ranked[1].Score)
	}
	if math.Abs(ranked[0].Score-1.5) > 1e-9 {
		t.Errorf("expected efficiency 1.5, got %.4f", ranked[0].Score)
	}
}

func TestEngine_Rank_OverallBounded(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	extremes := []model.Pairing{
		{ID: 1, PairingNumber: "P0001", CreditHours: 0, BlockHours: 0, HoldProbability: 0},
		{ID: 2, PairingNumber: "P0002", CreditHours: 500, BlockHours: 100, HoldProbability: 100},
		{ID: 3, PairingNumber: "P0003", CreditHours: 45, BlockHours: 30, HoldProbability: 250},
		{ID: 4, PairingNumber: "P0004", CreditHours: 30, BlockHours: 20, HoldProbability: 100},
	}

	ranked := engine.Rank(extremes, model.RankByOverall, nil)
	for _, r := range ranked {
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("overall score out of [0,100] for %s: %.2f", r.PairingNumber, r.Score)
		}
	}
}

func TestEngine_Rank_SeniorityWeights(t *testing.T) {
	cfg := model.DefaultRankingConfig()
	engine := NewEngine(cfg)
	junior := 80.0
	senior := 20.0

	tests := []struct {
		name       string
		signal     *float64
		holdWeight float64
	}{
		{"no signal uses base weight", nil, cfg.BaseHoldWeight},
		{"junior requester weights hold up", &junior, cfg.JuniorHoldWeight},
		{"senior requester weights hold down", &senior, cfg.SeniorHoldWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := engine.Rank(testPairings(), model.RankByOverall, tt.signal)

			bd := ranked[0].Breakdown
			hw, ok := bd["hold_weight"].(float64)
			if !ok {
				t.Fatalf("breakdown missing hold_weight: %v", bd)
			}
			if hw != tt.holdWeight {
				t.Errorf("expected hold weight %.2f, got %.2f", tt.holdWeight, hw)
			}

			cw := bd["credit_weight"].(float64)
			ew := bd["efficiency_weight"].(float64)
			if math.Abs(cw+ew+hw-1.0) > 1e-9 {
				t.Errorf("weights must sum to 1.0, got %.4f", cw+ew+hw)
			}
		})
	}
}

func TestEngine_Rank_JuniorPrefersHoldable(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())
	junior := 80.0

	// P4550 pays best but is nearly impossible to hold; P4312 holds easily.
	base := engine.Rank(testPairings(), model.RankByOverall, nil)
	biased := engine.Rank(testPairings(), model.RankByOverall, &junior)

	baseScore := scoreOf(t, base, "P4312")
	biasedScore := scoreOf(t, biased, "P4312")
	if biasedScore <= baseScore {
		t.Errorf("junior bias should raise a high-hold pairing: base %.2f, biased %.2f", baseScore, biasedScore)
	}
}

func scoreOf(t *testing.T, ranked []model.RankedPairing, number string) float64 {
	t.Helper()
	for _, r := range ranked {
		if r.PairingNumber == number {
			return r.Score
		}
	}
	t.Fatalf("pairing %s not in ranked set", number)
	return 0
}

func TestEngine_Rank_Deterministic(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())
	input := testPairings()

	first := engine.Rank(input, model.RankByOverall, nil)
	second := engine.Rank(input, model.RankByOverall, nil)

	for i := range first {
		if first[i].PairingNumber != second[i].PairingNumber {
			t.Errorf("order differs at %d: %s vs %s", i, first[i].PairingNumber, second[i].PairingNumber)
		}
		if first[i].Score != second[i].Score {
			t.Errorf("score differs at %d: %.4f vs %.4f", i, first[i].Score, second[i].Score)
		}
	}
}

func TestEngine_Rank_TieBreak(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	// Identical credit: order must fall back to pairing number, then ID.
	tied := []model.Pairing{
		{ID: 9, PairingNumber: "P2000", CreditHours: 20},
		{ID: 3, PairingNumber: "P1000", CreditHours: 20},
		{ID: 1, PairingNumber: "P2000", CreditHours: 20},
	}

	ranked := engine.Rank(tied, model.RankByCredit, nil)

	if ranked[0].PairingNumber != "P1000" {
		t.Errorf("expected P1000 first on tie, got %s", ranked[0].PairingNumber)
	}
	if ranked[1].ID != 1 || ranked[2].ID != 9 {
		t.Errorf("expected ID ascending within equal pairing numbers, got %d then %d", ranked[1].ID, ranked[2].ID)
	}
}

func TestEngine_Rank_DoesNotMutateInput(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())
	input := testPairings()
	firstBefore := input[0]

	engine.Rank(input, model.RankByCredit, nil)

	if input[0].PairingNumber != firstBefore.PairingNumber || input[0].CreditHours != firstBefore.CreditHours {
		t.Error("Rank must not mutate the input slice")
	}
}

func TestEngine_RankByLongestLayover(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	pairings := []model.Pairing{
		{ID: 1, PairingNumber: "P1000", Layovers: []model.Layover{{City: "SAN", DurationHours: 14}}},
		{ID: 2, PairingNumber: "P2000", Layovers: []model.Layover{{City: "BOS", DurationHours: 26}, {City: "ORD", DurationHours: 11}}},
		{ID: 3, PairingNumber: "P3000"},
	}

	ranked := engine.RankByLongestLayover(pairings, 2)

	if len(ranked) != 2 {
		t.Fatalf("expected limit 2 applied, got %d", len(ranked))
	}
	if ranked[0].PairingNumber != "P2000" {
		t.Errorf("expected P2000 first (26h layover), got %s", ranked[0].PairingNumber)
	}
	if city := ranked[0].Breakdown["layover_city"]; city != "BOS" {
		t.Errorf("breakdown should name the longest layover city, got %v", city)
	}
	if ranked[0].Score != 26 {
		t.Errorf("score should equal longest layover hours, got %.1f", ranked[0].Score)
	}
}

func TestEngine_Rationale(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())

	if r := engine.Rationale(model.RankNone, nil); r != "" {
		t.Errorf("no ranking means no rationale, got %q", r)
	}
	if r := engine.Rationale(model.RankByCredit, nil); r == "" {
		t.Error("credit ranking should produce a rationale")
	}

	junior := 80.0
	r := engine.Rationale(model.RankByOverall, &junior)
	if r == "" {
		t.Fatal("overall ranking should produce a rationale")
	}
}

func TestEngine_Rank_NoneKeepsRetrievalOrder(t *testing.T) {
	engine := NewEngine(model.DefaultRankingConfig())
	input := testPairings()

	got := engine.Rank(input, model.RankNone, nil)

	if len(got) != len(input) {
		t.Fatalf("expected %d records, got %d", len(input), len(got))
	}
	for i, p := range input {
		if got[i].PairingNumber != p.PairingNumber {
			t.Errorf("position %d: expected %s, got %s", i, p.PairingNumber, got[i].PairingNumber)
		}
		if got[i].Score != 0 {
			t.Errorf("%s: expected zero score, got %v", got[i].PairingNumber, got[i].Score)
		}
	}
}

func TestWrapUnranked(t *testing.T) {
	input := testPairings()
	wrapped := WrapUnranked(input)

	if len(wrapped) != len(input) {
		t.Fatalf("expected %d wrapped records, got %d", len(input), len(wrapped))
	}
	for i, w := range wrapped {
		if w.PairingNumber != input[i].PairingNumber {
			t.Errorf("retrieval order must be preserved at %d", i)
		}
		if w.Score != 0 {
			t.Errorf("unranked records carry a zero score, got %.2f", w.Score)
		}
	}
}
