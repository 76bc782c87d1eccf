package domain

import (
	"strings"
	"time"
)

// Settings is the host-tunable room configuration.
type Settings struct {
	MaxLives    int    `json:"maxLives"`
	TotalRounds int    `json:"totalRounds"`
	CustomTheme string `json:"customTheme"`
}

// Player holds the domain state for a seat in a room. ID is the stable seat
// identity and survives disconnects; UserID is the currently bound transport
// identity and is empty while the seat is disconnected.
type Player struct {
	ID             string
	Name           string
	UserID         string
	IsHost         bool
	DisconnectedAt time.Time
}

// Connected reports whether the seat has a live connection bound.
func (p *Player) Connected() bool {
	return p.UserID != ""
}

// Room is the unit of isolation: one game instance and its membership.
type Room struct {
	Code         string
	Players      []*Player
	HostID       string
	Settings     Settings
	Phase        Phase
	CurrentRound int
	Lives        int
	Round        *Round
	UsedThemes   []string
	Messages     []ChatMessage
}

// FindPlayer returns the seat with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindPlayerByUserID returns the seat bound to the given transport identity, or nil.
func (r *Room) FindPlayerByUserID(userID string) *Player {
	if userID == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// FindPlayerByName returns the seat whose trimmed name matches, or nil.
func (r *Room) FindPlayerByName(name string) *Player {
	trimmed := strings.TrimSpace(name)
	for _, p := range r.Players {
		if p.Name == trimmed {
			return p
		}
	}
	return nil
}

// FindDisconnectedByName returns a disconnected seat whose trimmed name
// matches, or nil. Used to decide whether a join is a reconnection.
func (r *Room) FindDisconnectedByName(name string) *Player {
	trimmed := strings.TrimSpace(name)
	for _, p := range r.Players {
		if p.Name == trimmed && !p.Connected() {
			return p
		}
	}
	return nil
}

// RemovePlayer drops the seat with the given id, preserving join order.
func (r *Room) RemovePlayer(id string) {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.Players = kept
}

// HostCandidate elects a host from current membership: the first connected
// seat by join order, falling back to the first seat. Returns nil for an
// empty room.
func HostCandidate(players []*Player) *Player {
	for _, p := range players {
		if p.Connected() {
			return p
		}
	}
	if len(players) > 0 {
		return players[0]
	}
	return nil
}

// ReassignHost recomputes the host when the current host seat no longer
// resolves. Reports whether the host changed and the new host id.
func ReassignHost(r *Room) (bool, string) {
	if r.FindPlayer(r.HostID) != nil {
		return false, r.HostID
	}
	candidate := HostCandidate(r.Players)
	if candidate == nil {
		return false, ""
	}
	for _, p := range r.Players {
		p.IsHost = p.ID == candidate.ID
	}
	r.HostID = candidate.ID
	return true, candidate.ID
}

// LabelPayload is the advertised match label for room listing and lookup.
type LabelPayload struct {
	Game  string `json:"game"`
	Code  string `json:"code"`
	Phase string `json:"phase"`
	Open  bool   `json:"open"`
}

// ComputeLabel derives the advertised label from room state.
func ComputeLabel(r *Room, maxPlayers int) LabelPayload {
	open := r.Phase == PhaseLobby && len(r.Players) < maxPlayers
	return LabelPayload{Game: "ito", Code: r.Code, Phase: string(r.Phase), Open: open}
}
