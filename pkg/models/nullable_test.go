package models_test

import (
	"encoding/json"
	"testing"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

const upstreamTeam = `{
	"full_name": "Indiana",
	"short_name": "IND",
	"logo": null,
	"odds": {"opening": 123, "bovada": null, "betnow": "120", "gtbets": ""},
	"money_multiplier": 2.23,
	"win_probability": null
}`

func TestTeam_DecodesUpstreamPayload(t *testing.T) {
	var team models.Team
	if err := json.Unmarshal([]byte(upstreamTeam), &team); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if team.Logo != nil {
		t.Errorf("expected nil logo, got %v", *team.Logo)
	}
	if !team.MoneyMultiplier.Valid || team.MoneyMultiplier.Float64 != 2.23 {
		t.Errorf("money_multiplier = %+v, want 2.23", team.MoneyMultiplier)
	}
	if team.WinProbability.Valid {
		t.Errorf("expected null win_probability, got %+v", team.WinProbability)
	}

	tests := []struct {
		book  string
		valid bool
		price int
	}{
		{"opening", true, 123},
		{"bovada", false, 0},
		{"betnow", true, 120},
		{"gtbets", false, 0},
	}
	for _, tt := range tests {
		got, ok := team.Odds[tt.book]
		if !ok {
			t.Fatalf("book %s missing from odds", tt.book)
		}
		if got.Valid != tt.valid || got.Int != tt.price {
			t.Errorf("odds[%s] = %+v, want valid=%v price=%d", tt.book, got, tt.valid, tt.price)
		}
	}
}

func TestNullFloat64_NonNumericIsInvalid(t *testing.T) {
	inputs := []string{`null`, `"abc"`, `true`, `{}`, `[]`, `""`}
	for _, in := range inputs {
		var n models.NullFloat64
		if err := json.Unmarshal([]byte(in), &n); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", in, err)
		}
		if n.Valid {
			t.Errorf("Unmarshal(%s) = %+v, want invalid", in, n)
		}
	}
}

func TestNullFloat64_MarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(struct {
		A models.NullFloat64 `json:"a"`
		B models.NullFloat64 `json:"b"`
	}{A: models.Float(1.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(data) != `{"a":1.5,"b":null}` {
		t.Errorf("got %s", data)
	}
}

func TestFilterState_SportSet(t *testing.T) {
	state := models.FilterState{Sports: []string{"nba", "nhl", "nba"}}
	set := state.SportSet()

	if len(set) != 2 {
		t.Fatalf("expected 2 sports, got %d", len(set))
	}
	if _, ok := set["nhl"]; !ok {
		t.Error("expected nhl in set")
	}
}
