package domain

// NewCardPool returns the ordered pool of distinct card values [min, max].
func NewCardPool(min, max int) []int {
	pool := make([]int, 0, max-min+1)
	for v := min; v <= max; v++ {
		pool = append(pool, v)
	}
	return pool
}

// CountInversions counts adjacent pairs of the placement sequence that
// violate ascending order. Only neighbouring entries are compared; equal
// neighbours do not count as an inversion.
func CountInversions(placed []PlacedCard) int {
	inversions := 0
	for i := 1; i < len(placed); i++ {
		if placed[i].CardNumber < placed[i-1].CardNumber {
			inversions++
		}
	}
	return inversions
}

// RedactPlacements returns a copy of the placement sequence with every card
// number withheld. The canonical records stay fully populated; this is the
// per-recipient projection applied at broadcast time.
func RedactPlacements(placed []PlacedCard) []PlacedCard {
	out := make([]PlacedCard, len(placed))
	for i, c := range placed {
		c.CardNumber = 0
		out[i] = c
	}
	return out
}
