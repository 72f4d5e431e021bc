package model

// FilterOp is a comparison operator supported by the record search interface
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGte FilterOp = "gte"
	OpLte FilterOp = "lte"
)

// Searchable record fields
const (
	FieldCreditHours     = "creditHours"
	FieldBlockHours      = "blockHours"
	FieldPairingDays     = "pairingDays"
	FieldHoldProbability = "holdProbability"
	FieldTAFBHours       = "tafbHours"
	FieldLayoverHours    = "layoverHours"
	FieldEfficiency      = "efficiency" // credit per block hour, derived
)

// SortByOverall is a sentinel sort key: the store cannot compute the
// composite score, so ordering is deferred to the ranking engine.
const SortByOverall = "overall"

// FieldFilter is one field/operator/value constraint
type FieldFilter struct {
	Field string      `json:"field"`
	Op    FilterOp    `json:"op"`
	Value interface{} `json:"value"`
}

// SearchSpec is the canonical filter specification consumed by the external
// record search interface. City and pairing-number criteria both feed the
// single free-text Search field, since the store exposes one full-text
// column for both.
type SearchSpec struct {
	Filters   []FieldFilter `json:"filters,omitempty"`
	Search    string        `json:"search,omitempty"`
	SortBy    string        `json:"sort_by,omitempty"`
	SortOrder string        `json:"sort_order,omitempty"`
}
