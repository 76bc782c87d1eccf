package app

import "ito/internal/domain"

// EventKind identifies emitted room events for gateway dispatch.
type EventKind string

const (
	EventPlayerJoined      EventKind = "player_joined"
	EventPlayerLeft        EventKind = "player_left"
	EventHostChanged       EventKind = "host_changed"
	EventSettingsUpdated   EventKind = "settings_updated"
	EventLobbyState        EventKind = "lobby_state"
	EventGameStarted       EventKind = "game_started"
	EventThemeAnnounced    EventKind = "theme_announced"
	EventCardDealt         EventKind = "card_dealt"
	EventDiscussionStarted EventKind = "discussion_started"
	EventPlacementStarted  EventKind = "placement_started"
	EventCardPlaced        EventKind = "card_placed"
	EventLifeLost          EventKind = "life_lost"
	EventRoundResult       EventKind = "round_result"
	EventGameOver          EventKind = "game_over"
	EventFullState         EventKind = "full_state"
	EventChatMessage       EventKind = "chat_message"
)

// Event is a room event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // seat IDs; empty means broadcast to the room
}

// ClientPlayer is the public roster projection of a seat.
type ClientPlayer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsHost      bool   `json:"isHost"`
	IsConnected bool   `json:"isConnected"`
}

type PlayerJoinedPayload struct {
	Player      ClientPlayer `json:"player"`
	Reconnected bool         `json:"reconnected"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
}

type HostChangedPayload struct {
	HostID string `json:"hostId"`
}

type SettingsUpdatedPayload struct {
	Settings domain.Settings `json:"settings"`
}

type LobbyStatePayload struct {
	Players  []ClientPlayer  `json:"players"`
	Settings domain.Settings `json:"settings"`
	HostID   string          `json:"hostId"`
}

type GameStartedPayload struct {
	Phase domain.Phase `json:"phase"`
}

type ThemeAnnouncedPayload struct {
	Theme string `json:"theme"`
}

// CardDealtPayload is always unicast to the card's owner.
type CardDealtPayload struct {
	CardNumber int `json:"cardNumber"`
}

type DiscussionStartedPayload struct{}

type PlacementStartedPayload struct{}

// CardPlacedPayload carries the placement with its number withheld; numbers
// are revealed by the round result.
type CardPlacedPayload struct {
	Card domain.PlacedCard `json:"card"`
}

type LifeLostPayload struct {
	Lives int `json:"lives"`
}

type RoundResultPayload struct {
	Success     bool                `json:"success"`
	Lives       int                 `json:"lives"`
	PlacedCards []domain.PlacedCard `json:"placedCards"`
}

type GameOverPayload struct {
	Won        bool `json:"won"`
	FinalRound int  `json:"finalRound"`
}

type ChatMessagePayload struct {
	Message domain.ChatMessage `json:"message"`
}

// RoundView is the round portion of a reconnection snapshot.
type RoundView struct {
	RoundNumber      int                 `json:"roundNumber"`
	Theme            string              `json:"theme"`
	PlacedCards      []domain.PlacedCard `json:"placedCards"`
	RemainingPlayers []string            `json:"remainingPlayers"`
}

// FullStatePayload is the reconnection snapshot, always unicast to the
// rejoining seat only.
type FullStatePayload struct {
	Phase        domain.Phase         `json:"phase"`
	CurrentRound int                  `json:"currentRound"`
	TotalRounds  int                  `json:"totalRounds"`
	Lives        int                  `json:"lives"`
	MaxLives     int                  `json:"maxLives"`
	Round        *RoundView           `json:"round"`
	MyCard       *int                 `json:"myCard"`
	IsSuccess    *bool                `json:"isSuccess"`
	Players      []ClientPlayer       `json:"players"`
	Messages     []domain.ChatMessage `json:"messages"`
}
