package model

// Pairing represents a schedulable trip: a sequence of duty periods with
// pay, time, and award-likelihood attributes. Fields beyond the scored
// attributes are opaque payload and pass through the pipeline unchanged.
type Pairing struct {
	ID              int64     `json:"id"`
	PairingNumber   string    `json:"pairing_number"`
	CreditHours     float64   `json:"credit_hours"`     // Pay-bearing metric
	BlockHours      float64   `json:"block_hours"`      // Time-consumption metric
	PairingDays     int       `json:"pairing_days"`     // Trip length in calendar days
	HoldProbability float64   `json:"hold_probability"` // 0-100 award likelihood
	TAFB            string    `json:"tafb,omitempty"`   // Time away from base, display form
	TAFBHours       float64   `json:"tafb_hours,omitempty"`
	Route           string    `json:"route,omitempty"`
	Layovers        []Layover `json:"layovers,omitempty"`

	// Payload carries any extra corpus fields verbatim. The pipeline never
	// reads or scores these.
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Layover is a rest interval between duty periods
type Layover struct {
	City          string  `json:"city"`
	DurationHours float64 `json:"duration_hours"`
}

// LongestLayover returns the longest layover of the pairing, or a zero
// Layover if it has none.
func (p Pairing) LongestLayover() Layover {
	var longest Layover
	for _, l := range p.Layovers {
		if l.DurationHours > longest.DurationHours {
			longest = l
		}
	}
	return longest
}

// RankedPairing is a Pairing plus the score and breakdown attached by the
// ranking engine. Created fresh per request; the underlying Pairing is
// never mutated.
type RankedPairing struct {
	Pairing
	Score float64 `json:"score"`

	// Breakdown holds the raw and normalized score components and the
	// weights used, so responses can explain a rank without recomputing.
	Breakdown map[string]interface{} `json:"breakdown,omitempty"`
}

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single prior exchange supplied by the caller.
// The pipeline only reads the most recent few turns; it never persists them.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// QueryResult is the final product of one pipeline run
type QueryResult struct {
	RequestID             string          `json:"request_id"`
	Response              string          `json:"response"`
	Data                  []RankedPairing `json:"data,omitempty"`
	Intent                *Intent         `json:"intent,omitempty"`
	RequiresClarification bool            `json:"requires_clarification,omitempty"`
	Truncated             bool            `json:"truncated,omitempty"`
}
