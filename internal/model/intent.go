package model

// FilterKey identifies a structured search constraint. The set is closed:
// keys outside this enumeration are invalid and dropped during validation.
type FilterKey string

const (
	FilterPairingNumber      FilterKey = "pairingNumber"      // Exact match
	FilterCreditMin          FilterKey = "creditMin"          // Minimum credit hours
	FilterCreditMax          FilterKey = "creditMax"          // Maximum credit hours
	FilterBlockMin           FilterKey = "blockMin"           // Minimum block hours
	FilterBlockMax           FilterKey = "blockMax"           // Maximum block hours
	FilterPairingDays        FilterKey = "pairingDays"        // Trip length in days
	FilterHoldProbabilityMin FilterKey = "holdProbabilityMin" // Minimum hold probability
	FilterTAFBMax            FilterKey = "tafbMax"            // Maximum time away from base, hours
	FilterCity               FilterKey = "city"               // Layover city, free text
	FilterLayoverMin         FilterKey = "layoverMin"         // Minimum longest-layover hours
)

// ValidFilterKeys is the closed enumeration of accepted filter keys
var ValidFilterKeys = map[FilterKey]bool{
	FilterPairingNumber:      true,
	FilterCreditMin:          true,
	FilterCreditMax:          true,
	FilterBlockMin:           true,
	FilterBlockMax:           true,
	FilterPairingDays:        true,
	FilterHoldProbabilityMin: true,
	FilterTAFBMax:            true,
	FilterCity:               true,
	FilterLayoverMin:         true,
}

// RankingMode selects the scoring algorithm applied to retrieved pairings
type RankingMode string

const (
	RankByCredit     RankingMode = "credit"
	RankByEfficiency RankingMode = "efficiency"
	RankByHold       RankingMode = "hold_probability"
	RankByOverall    RankingMode = "overall"
	RankNone         RankingMode = "none"
)

// ParseRankingMode normalizes a raw mode string; anything unrecognized
// maps to RankNone rather than an error.
func ParseRankingMode(s string) RankingMode {
	switch RankingMode(s) {
	case RankByCredit, RankByEfficiency, RankByHold, RankByOverall:
		return RankingMode(s)
	default:
		return RankNone
	}
}

// Intent is the sole contract between free text and the deterministic
// pipeline stages.
//
// Invariant: when Filters is empty and Ranking is RankNone,
// NeedsClarification must be true and ClarificationQuestion non-empty.
// The extractor enforces this as a post-condition.
type Intent struct {
	Filters               map[FilterKey]interface{} `json:"filters"`
	Ranking               RankingMode               `json:"ranking"`
	Limit                 *int                      `json:"limit,omitempty"` // nil means return everything matched
	NeedsClarification    bool                      `json:"needs_clarification"`
	ClarificationQuestion string                    `json:"clarification_question,omitempty"`
}

// HasCriteria reports whether the intent carries any discriminating
// criteria (at least one filter or a ranking mode).
func (i Intent) HasCriteria() bool {
	return len(i.Filters) > 0 || i.Ranking != RankNone
}

// Clone returns a deep copy of the intent. Cached intents are cloned on
// retrieval so callers can never alias the stored filter map.
func (i Intent) Clone() Intent {
	out := i
	if i.Filters != nil {
		out.Filters = make(map[FilterKey]interface{}, len(i.Filters))
		for k, v := range i.Filters {
			out.Filters[k] = v
		}
	}
	if i.Limit != nil {
		limit := *i.Limit
		out.Limit = &limit
	}
	return out
}
