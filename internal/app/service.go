package app

import (
	"math/rand"
	"strings"
	"time"

	"ito/internal/config"
	"ito/internal/domain"

	"github.com/google/uuid"
)

// Service contains the room membership and game use-cases. Every method
// operates on a single room; the gateway guarantees calls against one room
// never interleave.
type Service struct {
	rng *rand.Rand
	cfg config.Config
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand, cfg config.Config) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, cfg: cfg}
}

// Config returns the constants the service was built with.
func (s *Service) Config() config.Config {
	return s.cfg
}

// NewRoom builds an empty room in the lobby phase with default settings.
func (s *Service) NewRoom(code string) *domain.Room {
	return &domain.Room{
		Code:  code,
		Phase: domain.PhaseLobby,
		Settings: domain.Settings{
			MaxLives:    s.cfg.DefaultLives,
			TotalRounds: s.cfg.DefaultRounds,
		},
		Lives: s.cfg.DefaultLives,
	}
}

// CanJoin is the non-mutating admission check run before a seat is touched.
// Reconnection to a disconnected same-name seat is allowed in any phase.
func (s *Service) CanJoin(room *domain.Room, name string) error {
	if !domain.ValidName(name, s.cfg.NameMaxLength) {
		return ErrInvalidName
	}
	if room.FindDisconnectedByName(name) != nil {
		return nil
	}
	if room.Phase != domain.PhaseLobby {
		return ErrGameInProgress
	}
	if len(room.Players) >= s.cfg.MaxPlayers {
		return ErrRoomFull
	}
	if room.FindPlayerByName(name) != nil {
		return ErrNameTaken
	}
	return nil
}

// Join binds a connection to a seat. A disconnected seat with the same
// trimmed name is rebound (reconnection, any phase); otherwise a new seat is
// created, which is only legal in the lobby. The first seat becomes host.
func (s *Service) Join(room *domain.Room, name, userID string, now time.Time) (*domain.Player, bool, []Event, error) {
	if err := s.CanJoin(room, name); err != nil {
		return nil, false, nil, err
	}

	trimmed := strings.TrimSpace(name)

	if seat := room.FindDisconnectedByName(trimmed); seat != nil {
		seat.UserID = userID
		seat.DisconnectedAt = time.Time{}

		events := []Event{{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{Player: clientPlayer(seat), Reconnected: true},
		}}
		if room.Phase != domain.PhaseLobby {
			events = append(events, Event{
				Kind:       EventFullState,
				Payload:    s.GameStateFor(room, seat.ID),
				Recipients: []string{seat.ID},
			})
		} else {
			events = append(events, s.lobbyStateEvent(room))
		}
		events = append(events, s.systemMessage(room, seat.Name+" reconnected", now))
		return seat, true, events, nil
	}

	seat := &domain.Player{
		ID:     uuid.NewString(),
		Name:   trimmed,
		UserID: userID,
		IsHost: len(room.Players) == 0,
	}
	room.Players = append(room.Players, seat)
	if seat.IsHost {
		room.HostID = seat.ID
	}

	events := []Event{
		{Kind: EventPlayerJoined, Payload: PlayerJoinedPayload{Player: clientPlayer(seat)}},
		s.lobbyStateEvent(room),
		s.systemMessage(room, seat.Name+" joined", now),
	}
	return seat, false, events, nil
}

// Leave releases a seat. In the lobby the seat is removed outright and the
// host reassigned; mid-game the seat is soft-disconnected so the player can
// rejoin by name. The second return reports whether the room emptied.
func (s *Service) Leave(room *domain.Room, playerID string, now time.Time) ([]Event, bool, error) {
	seat := room.FindPlayer(playerID)
	if seat == nil {
		return nil, false, ErrUnknownPlayer
	}

	if room.Phase != domain.PhaseLobby {
		seat.UserID = ""
		seat.DisconnectedAt = now
		events := []Event{
			{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{PlayerID: seat.ID}},
			s.systemMessage(room, seat.Name+" disconnected", now),
		}
		return events, false, nil
	}

	room.RemovePlayer(playerID)
	if len(room.Players) == 0 {
		return nil, true, nil
	}

	events := []Event{{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{PlayerID: seat.ID}}}
	if changed, newHostID := domain.ReassignHost(room); changed {
		events = append(events, Event{Kind: EventHostChanged, Payload: HostChangedPayload{HostID: newHostID}})
	}
	events = append(events, s.lobbyStateEvent(room))
	events = append(events, s.systemMessage(room, seat.Name+" left", now))
	return events, false, nil
}

// SettingsPatch carries the fields of an update-settings command; nil fields
// are left untouched.
type SettingsPatch struct {
	MaxLives    *int
	TotalRounds *int
	CustomTheme *string
}

// UpdateSettings applies a host-only, lobby-only settings change. Every
// present field is validated before any field is applied.
func (s *Service) UpdateSettings(room *domain.Room, playerID string, patch SettingsPatch) ([]Event, error) {
	if room.HostID != playerID {
		return nil, ErrNotHost
	}
	if room.Phase != domain.PhaseLobby {
		return nil, ErrWrongPhase
	}

	if patch.MaxLives != nil {
		if *patch.MaxLives < s.cfg.MinLives || *patch.MaxLives > s.cfg.MaxLives {
			return nil, ErrInvalidSetting
		}
	}
	if patch.TotalRounds != nil {
		if *patch.TotalRounds < s.cfg.MinRounds || *patch.TotalRounds > s.cfg.MaxRounds {
			return nil, ErrInvalidSetting
		}
	}

	if patch.MaxLives != nil {
		room.Settings.MaxLives = *patch.MaxLives
		room.Lives = *patch.MaxLives
	}
	if patch.TotalRounds != nil {
		room.Settings.TotalRounds = *patch.TotalRounds
	}
	if patch.CustomTheme != nil {
		room.Settings.CustomTheme = strings.TrimSpace(*patch.CustomTheme)
	}

	return []Event{{Kind: EventSettingsUpdated, Payload: SettingsUpdatedPayload{Settings: room.Settings}}}, nil
}

// AddChat validates and appends a user chat message.
func (s *Service) AddChat(room *domain.Room, playerID, text string, now time.Time) ([]Event, error) {
	seat := room.FindPlayer(playerID)
	if seat == nil {
		return nil, ErrUnknownPlayer
	}
	if !domain.ValidChatText(text, s.cfg.ChatMaxLength) {
		return nil, ErrMessageInvalid
	}

	msg := domain.ChatMessage{
		ID:         uuid.NewString(),
		PlayerID:   seat.ID,
		PlayerName: seat.Name,
		Text:       strings.TrimSpace(text),
		Timestamp:  now.UnixMilli(),
	}
	room.Messages = append(room.Messages, msg)
	return []Event{{Kind: EventChatMessage, Payload: ChatMessagePayload{Message: msg}}}, nil
}

// SweepStale hard-removes seats whose reconnect grace period expired and
// repairs the host reference. Runs under the same per-room serialization as
// ordinary commands. The second return reports whether the room emptied.
func (s *Service) SweepStale(room *domain.Room, now time.Time) ([]Event, bool) {
	var events []Event

	kept := room.Players[:0]
	for _, p := range room.Players {
		if !p.DisconnectedAt.IsZero() && now.Sub(p.DisconnectedAt) > s.cfg.ReconnectGrace {
			events = append(events, Event{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{PlayerID: p.ID}})
			continue
		}
		kept = append(kept, p)
	}
	room.Players = kept

	if len(room.Players) == 0 {
		return nil, true
	}

	if changed, newHostID := domain.ReassignHost(room); changed {
		events = append(events, Event{Kind: EventHostChanged, Payload: HostChangedPayload{HostID: newHostID}})
	}
	return events, false
}

func (s *Service) lobbyStateEvent(room *domain.Room) Event {
	return Event{
		Kind: EventLobbyState,
		Payload: LobbyStatePayload{
			Players:  clientPlayers(room),
			Settings: room.Settings,
			HostID:   room.HostID,
		},
	}
}

// systemMessage appends a system chat entry and returns its broadcast event.
func (s *Service) systemMessage(room *domain.Room, text string, now time.Time) Event {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: now.UnixMilli(),
		IsSystem:  true,
	}
	room.Messages = append(room.Messages, msg)
	return Event{Kind: EventChatMessage, Payload: ChatMessagePayload{Message: msg}}
}

func clientPlayer(p *domain.Player) ClientPlayer {
	return ClientPlayer{
		ID:          p.ID,
		Name:        p.Name,
		IsHost:      p.IsHost,
		IsConnected: p.Connected(),
	}
}

func clientPlayers(room *domain.Room) []ClientPlayer {
	out := make([]ClientPlayer, len(room.Players))
	for i, p := range room.Players {
		out[i] = clientPlayer(p)
	}
	return out
}
