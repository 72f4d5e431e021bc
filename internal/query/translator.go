// Package query maps validated intent filters to the canonical filter
// specification consumed by the external record search interface.
package query

import (
	"sort"
	"strings"

	"github.com/jayscottaf/pairscout/internal/model"
)

// ToSearchSpec translates intent filters into a SearchSpec. Pure and total:
// no side effects, identical output for identical input, safe to call any
// number of times. Each filter key maps 1:1 to a field/operator pair; the
// city and pairingNumber keys both feed the single free-text Search field,
// since the store exposes one full-text column for both.
func ToSearchSpec(filters map[model.FilterKey]interface{}) model.SearchSpec {
	spec := model.SearchSpec{}
	var searchTerms []string

	for key, val := range filters {
		switch key {
		case model.FilterPairingNumber, model.FilterCity:
			if s, ok := val.(string); ok && s != "" {
				searchTerms = append(searchTerms, s)
			}

		case model.FilterCreditMin:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldCreditHours, Op: model.OpGte, Value: val})
		case model.FilterCreditMax:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldCreditHours, Op: model.OpLte, Value: val})
		case model.FilterBlockMin:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldBlockHours, Op: model.OpGte, Value: val})
		case model.FilterBlockMax:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldBlockHours, Op: model.OpLte, Value: val})
		case model.FilterPairingDays:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldPairingDays, Op: model.OpEq, Value: val})
		case model.FilterHoldProbabilityMin:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldHoldProbability, Op: model.OpGte, Value: val})
		case model.FilterTAFBMax:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldTAFBHours, Op: model.OpLte, Value: val})
		case model.FilterLayoverMin:
			spec.Filters = append(spec.Filters, model.FieldFilter{Field: model.FieldLayoverHours, Op: model.OpGte, Value: val})
		}
	}

	// Deterministic order regardless of map iteration
	sort.Slice(spec.Filters, func(i, j int) bool {
		if spec.Filters[i].Field != spec.Filters[j].Field {
			return spec.Filters[i].Field < spec.Filters[j].Field
		}
		return spec.Filters[i].Op < spec.Filters[j].Op
	})

	if len(searchTerms) > 0 {
		sort.Strings(searchTerms)
		spec.Search = strings.Join(searchTerms, " ")
	}

	return spec
}

// WithSortHint attaches the descending sort hint implied by the ranking
// mode. For the overall composite the store cannot compute the score, so a
// sentinel key defers ordering to the ranking engine.
func WithSortHint(spec model.SearchSpec, mode model.RankingMode) model.SearchSpec {
	switch mode {
	case model.RankByCredit:
		spec.SortBy = model.FieldCreditHours
	case model.RankByEfficiency:
		spec.SortBy = model.FieldEfficiency
	case model.RankByHold:
		spec.SortBy = model.FieldHoldProbability
	case model.RankByOverall:
		spec.SortBy = model.SortByOverall
	default:
		return spec
	}
	spec.SortOrder = "desc"
	return spec
}
