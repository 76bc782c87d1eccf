package domain

// PlayerCard is one player's secret number for the current round.
type PlayerCard struct {
	PlayerID   string `json:"playerId"`
	CardNumber int    `json:"cardNumber"`
	HasPlaced  bool   `json:"hasPlaced"`
}

// PlacedCard is one entry of the placement sequence, in the order placed.
type PlacedCard struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	CardNumber int    `json:"cardNumber"`
	Order      int    `json:"order"`
	Label      string `json:"label,omitempty"`
}

// Round is one theme-and-deal cycle within a game.
type Round struct {
	RoundNumber      int          `json:"roundNumber"`
	Theme            string       `json:"theme"`
	PlayerCards      []PlayerCard `json:"-"`
	PlacedCards      []PlacedCard `json:"placedCards"`
	RemainingPlayers []string     `json:"remainingPlayers"`
}

// FindCard returns the dealt card for the given player, or nil.
func (r *Round) FindCard(playerID string) *PlayerCard {
	for i := range r.PlayerCards {
		if r.PlayerCards[i].PlayerID == playerID {
			return &r.PlayerCards[i]
		}
	}
	return nil
}

// RemoveRemaining drops the player from the round-local liveness tracker.
func (r *Round) RemoveRemaining(playerID string) {
	kept := r.RemainingPlayers[:0]
	for _, id := range r.RemainingPlayers {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	r.RemainingPlayers = kept
}
