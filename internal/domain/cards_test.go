package domain

import "testing"

func placements(numbers ...int) []PlacedCard {
	out := make([]PlacedCard, len(numbers))
	for i, n := range numbers {
		out[i] = PlacedCard{PlayerID: "p", CardNumber: n, Order: i + 1}
	}
	return out
}

func TestCountInversions(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		want    int
	}{
		{
			name:    "Empty",
			numbers: nil,
			want:    0,
		},
		{
			name:    "SingleCard",
			numbers: []int{42},
			want:    0,
		},
		{
			name:    "Ascending",
			numbers: []int{1, 2, 3},
			want:    0,
		},
		{
			name:    "OneInversion",
			numbers: []int{3, 1, 2},
			want:    1,
		},
		{
			name:    "Descending",
			numbers: []int{4, 3, 2, 1},
			want:    3,
		},
		{
			name:    "AdjacentPairsOnly",
			numbers: []int{5, 1, 2, 1},
			want:    2,
		},
		{
			name:    "EqualNeighboursAllowed",
			numbers: []int{2, 2, 3},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountInversions(placements(tt.numbers...))
			if got != tt.want {
				t.Errorf("inversions = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewCardPool(t *testing.T) {
	pool := NewCardPool(1, 100)
	if len(pool) != 100 {
		t.Fatalf("pool size = %d, want 100", len(pool))
	}

	seen := make(map[int]bool, len(pool))
	for _, v := range pool {
		if v < 1 || v > 100 {
			t.Fatalf("value %d out of range", v)
		}
		if seen[v] {
			t.Fatalf("duplicate value %d", v)
		}
		seen[v] = true
	}
}

func TestRedactPlacements(t *testing.T) {
	placed := []PlacedCard{
		{PlayerID: "a", PlayerName: "Alice", CardNumber: 40, Order: 1, Label: "kinda scary"},
		{PlayerID: "b", PlayerName: "Bob", CardNumber: 87, Order: 2},
	}

	redacted := RedactPlacements(placed)
	for i, c := range redacted {
		if c.CardNumber != 0 {
			t.Errorf("redacted[%d].CardNumber = %d, want 0", i, c.CardNumber)
		}
		if c.PlayerID != placed[i].PlayerID || c.Order != placed[i].Order || c.Label != placed[i].Label {
			t.Errorf("redacted[%d] lost non-secret fields: %+v", i, c)
		}
	}

	// Canonical records stay populated.
	if placed[0].CardNumber != 40 || placed[1].CardNumber != 87 {
		t.Errorf("original placements mutated: %+v", placed)
	}
}
