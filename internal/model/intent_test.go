package model

import "testing"

func TestParseRankingMode(t *testing.T) {
	tests := []struct {
		input string
		want  RankingMode
	}{
		{"credit", RankByCredit},
		{"efficiency", RankByEfficiency},
		{"hold_probability", RankByHold},
		{"overall", RankByOverall},
		{"none", RankNone},
		{"", RankNone},
		{"CREDIT", RankNone},
		{"garbage", RankNone},
	}

	for _, tt := range tests {
		if got := ParseRankingMode(tt.input); got != tt.want {
			t.Errorf("ParseRankingMode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestIntent_HasCriteria(t *testing.T) {
	empty := Intent{Ranking: RankNone}
	if empty.HasCriteria() {
		t.Error("no filters and no ranking means no criteria")
	}

	withFilter := Intent{Filters: map[FilterKey]interface{}{FilterPairingDays: 4}, Ranking: RankNone}
	if !withFilter.HasCriteria() {
		t.Error("a filter is a criterion")
	}

	withRanking := Intent{Ranking: RankByCredit}
	if !withRanking.HasCriteria() {
		t.Error("a ranking mode is a criterion")
	}
}

func TestIntent_Clone(t *testing.T) {
	limit := 5
	original := Intent{
		Filters: map[FilterKey]interface{}{FilterCreditMin: 20.0},
		Ranking: RankByCredit,
		Limit:   &limit,
	}

	clone := original.Clone()
	clone.Filters[FilterCreditMin] = 99.0
	*clone.Limit = 1

	if original.Filters[FilterCreditMin] != 20.0 {
		t.Error("clone must not share the filter map")
	}
	if *original.Limit != 5 {
		t.Error("clone must not share the limit pointer")
	}
}

func TestPairing_LongestLayover(t *testing.T) {
	p := Pairing{Layovers: []Layover{
		{City: "ORD", DurationHours: 11},
		{City: "BOS", DurationHours: 26},
		{City: "SAN", DurationHours: 14},
	}}

	longest := p.LongestLayover()
	if longest.City != "BOS" || longest.DurationHours != 26 {
		t.Errorf("expected BOS 26h, got %+v", longest)
	}

	if zero := (Pairing{}).LongestLayover(); zero.City != "" || zero.DurationHours != 0 {
		t.Errorf("no layovers should yield the zero Layover, got %+v", zero)
	}
}
