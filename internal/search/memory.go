package search

import (
	"context"
	"sort"
	"strings"

	"github.com/jayscottaf/pairscout/internal/model"
)

// Memory searches an in-process pairing corpus. Used for local corpus
// files and as the test double for the external store. It applies the
// eq/gte/lte operators, substring matching on the free-text field, and the
// sort hint; the sentinel overall sort is left to the ranking engine.
type Memory struct {
	pairings []model.Pairing
}

// NewMemory creates an in-process searcher over the given corpus
func NewMemory(pairings []model.Pairing) *Memory {
	return &Memory{pairings: pairings}
}

// Search applies the spec to the corpus. The corpus itself is never
// mutated; results are returned in corpus order unless a sort hint is set.
func (m *Memory) Search(ctx context.Context, spec model.SearchSpec) ([]model.Pairing, error) {
	if err := ctx.Err(); err != nil {
		return nil, &model.SearchError{Err: err}
	}

	var out []model.Pairing
	for _, p := range m.pairings {
		if matches(p, spec) {
			out = append(out, p)
		}
	}

	applySort(out, spec)
	return out, nil
}

func matches(p model.Pairing, spec model.SearchSpec) bool {
	for _, f := range spec.Filters {
		if !matchesFilter(p, f) {
			return false
		}
	}

	if spec.Search != "" && !matchesText(p, spec.Search) {
		return false
	}

	return true
}

func matchesFilter(p model.Pairing, f model.FieldFilter) bool {
	val, ok := fieldValue(p, f.Field)
	if !ok {
		return false
	}

	want, ok := numeric(f.Value)
	if !ok {
		return false
	}

	switch f.Op {
	case model.OpEq:
		return val == want
	case model.OpGte:
		return val >= want
	case model.OpLte:
		return val <= want
	default:
		return false
	}
}

func fieldValue(p model.Pairing, field string) (float64, bool) {
	switch field {
	case model.FieldCreditHours:
		return p.CreditHours, true
	case model.FieldBlockHours:
		return p.BlockHours, true
	case model.FieldPairingDays:
		return float64(p.PairingDays), true
	case model.FieldHoldProbability:
		return p.HoldProbability, true
	case model.FieldTAFBHours:
		return p.TAFBHours, true
	case model.FieldLayoverHours:
		return p.LongestLayover().DurationHours, true
	case model.FieldEfficiency:
		if p.BlockHours <= 0 {
			return 0, true
		}
		return p.CreditHours / p.BlockHours, true
	default:
		return 0, false
	}
}

// matchesText checks the single full-text field: every search term must
// appear in the pairing number, route, or a layover city.
func matchesText(p model.Pairing, search string) bool {
	haystack := strings.ToLower(p.PairingNumber + " " + p.Route)
	for _, l := range p.Layovers {
		haystack += " " + strings.ToLower(l.City)
	}

	for _, term := range strings.Fields(strings.ToLower(search)) {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func applySort(pairings []model.Pairing, spec model.SearchSpec) {
	if spec.SortBy == "" || spec.SortBy == model.SortByOverall {
		return
	}

	desc := spec.SortOrder != "asc"
	sort.SliceStable(pairings, func(i, j int) bool {
		a, _ := fieldValue(pairings[i], spec.SortBy)
		b, _ := fieldValue(pairings[j], spec.SortBy)
		if desc {
			return a > b
		}
		return a < b
	})
}

func numeric(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
