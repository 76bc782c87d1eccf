package app

import (
	"strings"
	"time"

	"ito/internal/config"
	"ito/internal/domain"
)

// StartGame moves a lobby into its first round. Host-only; the player count
// must be within the configured bounds.
func (s *Service) StartGame(room *domain.Room, playerID string, now time.Time) ([]Event, error) {
	if room.HostID != playerID {
		return nil, ErrNotHost
	}
	n := len(room.Players)
	if n < s.cfg.MinPlayers || n > s.cfg.MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}
	if room.Phase != domain.PhaseLobby {
		return nil, ErrWrongPhase
	}

	room.Lives = room.Settings.MaxLives
	room.CurrentRound = 0
	room.UsedThemes = nil
	room.Phase = domain.PhaseThemeAnnouncement

	events := []Event{
		{Kind: EventGameStarted, Payload: GameStartedPayload{Phase: room.Phase}},
		s.systemMessage(room, "Game started!", now),
	}
	events = append(events, s.beginRound(room)...)
	return events, nil
}

// beginRound advances the round counter, picks a theme, deals one distinct
// card value per seat and opens discussion. Card numbers are only ever sent
// to their owners.
func (s *Service) beginRound(room *domain.Room) []Event {
	room.CurrentRound++

	theme := s.selectTheme(room)
	room.UsedThemes = append(room.UsedThemes, theme)

	pool := domain.NewCardPool(s.cfg.CardMin, s.cfg.CardMax)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	cards := make([]domain.PlayerCard, len(room.Players))
	remaining := make([]string, len(room.Players))
	for i, p := range room.Players {
		cards[i] = domain.PlayerCard{PlayerID: p.ID, CardNumber: pool[i]}
		remaining[i] = p.ID
	}

	room.Round = &domain.Round{
		RoundNumber:      room.CurrentRound,
		Theme:            theme,
		PlayerCards:      cards,
		PlacedCards:      []domain.PlacedCard{},
		RemainingPlayers: remaining,
	}
	room.Phase = domain.PhaseDiscussion

	events := []Event{{Kind: EventThemeAnnounced, Payload: ThemeAnnouncedPayload{Theme: theme}}}
	for _, card := range cards {
		events = append(events, Event{
			Kind:       EventCardDealt,
			Payload:    CardDealtPayload{CardNumber: card.CardNumber},
			Recipients: []string{card.PlayerID},
		})
	}
	events = append(events, Event{Kind: EventDiscussionStarted, Payload: DiscussionStartedPayload{}})
	return events
}

// selectTheme prefers the host's custom theme, then draws uniformly from the
// themes not yet used this game, falling back to the full pool once exhausted.
func (s *Service) selectTheme(room *domain.Room) string {
	if room.Settings.CustomTheme != "" {
		return room.Settings.CustomTheme
	}

	pool := config.ThemePool()
	used := make(map[string]bool, len(room.UsedThemes))
	for _, t := range room.UsedThemes {
		used[t] = true
	}

	available := make([]string, 0, len(pool))
	for _, t := range pool {
		if !used[t] {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		available = pool
	}
	return available[s.rng.Intn(len(available))]
}

// StartPlacement moves discussion into the placement phase. Host-only.
func (s *Service) StartPlacement(room *domain.Room, playerID string) ([]Event, error) {
	if room.HostID != playerID {
		return nil, ErrNotHost
	}
	if room.Phase != domain.PhaseDiscussion {
		return nil, ErrWrongPhase
	}
	room.Phase = domain.PhasePlacement
	return []Event{{Kind: EventPlacementStarted, Payload: PlacementStartedPayload{}}}, nil
}

// PlaceCard records a player's placement. The broadcast carries the card with
// its number withheld. When the last card lands the round is judged: one life
// per inversion, then the round result and, if applicable, the game end.
func (s *Service) PlaceCard(room *domain.Room, playerID, label string, now time.Time) ([]Event, error) {
	if room.Phase != domain.PhasePlacement {
		return nil, ErrWrongPhase
	}
	if room.Round == nil {
		return nil, ErrNoActiveRound
	}

	card := room.Round.FindCard(playerID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	if card.HasPlaced {
		return nil, ErrAlreadyPlaced
	}

	card.HasPlaced = true
	room.Round.RemoveRemaining(playerID)

	playerName := ""
	if seat := room.FindPlayer(playerID); seat != nil {
		playerName = seat.Name
	}
	placed := domain.PlacedCard{
		PlayerID:   playerID,
		PlayerName: playerName,
		CardNumber: card.CardNumber,
		Order:      len(room.Round.PlacedCards) + 1,
		Label:      strings.TrimSpace(label),
	}
	room.Round.PlacedCards = append(room.Round.PlacedCards, placed)

	redacted := placed
	redacted.CardNumber = 0
	events := []Event{{Kind: EventCardPlaced, Payload: CardPlacedPayload{Card: redacted}}}

	if len(room.Round.RemainingPlayers) == 0 {
		events = append(events, s.judgeRound(room, now)...)
	}
	return events, nil
}

// judgeRound applies the canonical inversion scoring to the completed
// placement sequence and runs the game-end check.
func (s *Service) judgeRound(room *domain.Room, now time.Time) []Event {
	placed := room.Round.PlacedCards
	inversions := domain.CountInversions(placed)

	var events []Event
	for i := 0; i < inversions; i++ {
		s.loseLife(room)
		events = append(events, Event{Kind: EventLifeLost, Payload: LifeLostPayload{Lives: room.Lives}})
	}

	room.Phase = domain.PhaseRoundResult
	events = append(events, Event{
		Kind: EventRoundResult,
		Payload: RoundResultPayload{
			Success:     inversions == 0,
			Lives:       room.Lives,
			PlacedCards: placed,
		},
	})

	return append(events, s.checkGameEnd(room, now)...)
}

// checkGameEnd moves the room to GAME_OVER when lives are exhausted or the
// final round has been played. Life exhaustion is checked first.
func (s *Service) checkGameEnd(room *domain.Room, now time.Time) []Event {
	var won bool
	switch {
	case room.Lives <= 0:
		won = false
	case room.CurrentRound >= room.Settings.TotalRounds:
		won = true
	default:
		return nil
	}

	room.Phase = domain.PhaseGameOver
	events := []Event{{
		Kind:    EventGameOver,
		Payload: GameOverPayload{Won: won, FinalRound: room.CurrentRound},
	}}
	if won {
		events = append(events, s.systemMessage(room, "All rounds cleared. Congratulations!", now))
	} else {
		events = append(events, s.systemMessage(room, "Game over...", now))
	}
	return events
}

// loseLife decrements the shared life counter, clamped at zero.
func (s *Service) loseLife(room *domain.Room) int {
	if room.Lives > 0 {
		room.Lives--
	}
	return room.Lives
}

// NextRound advances from a round result to the next theme announcement and
// starts the new round. Host-only.
func (s *Service) NextRound(room *domain.Room, playerID string) ([]Event, error) {
	if room.HostID != playerID {
		return nil, ErrNotHost
	}
	if room.Phase != domain.PhaseRoundResult {
		return nil, ErrWrongPhase
	}
	room.Phase = domain.PhaseThemeAnnouncement
	return s.beginRound(room), nil
}

// PlayAgain returns a finished game to the lobby, preserving membership,
// settings and the chat log. Host-only.
func (s *Service) PlayAgain(room *domain.Room, playerID string, now time.Time) ([]Event, error) {
	if room.HostID != playerID {
		return nil, ErrNotHost
	}
	if room.Phase != domain.PhaseGameOver {
		return nil, ErrWrongPhase
	}

	room.Phase = domain.PhaseLobby
	room.CurrentRound = 0
	room.Lives = room.Settings.MaxLives
	room.Round = nil
	room.UsedThemes = nil

	return []Event{
		s.lobbyStateEvent(room),
		s.systemMessage(room, "Returned to lobby", now),
	}, nil
}

// GameStateFor builds the reconnection snapshot for one seat: the recipient's
// own card, placements redacted while placement is still open, the full
// roster and the full chat log.
func (s *Service) GameStateFor(room *domain.Room, playerID string) FullStatePayload {
	state := FullStatePayload{
		Phase:        room.Phase,
		CurrentRound: room.CurrentRound,
		TotalRounds:  room.Settings.TotalRounds,
		Lives:        room.Lives,
		MaxLives:     room.Settings.MaxLives,
		Players:      clientPlayers(room),
		Messages:     room.Messages,
	}

	if room.Round != nil {
		placed := room.Round.PlacedCards
		if room.Phase == domain.PhasePlacement {
			placed = domain.RedactPlacements(placed)
		}
		state.Round = &RoundView{
			RoundNumber:      room.Round.RoundNumber,
			Theme:            room.Round.Theme,
			PlacedCards:      placed,
			RemainingPlayers: room.Round.RemainingPlayers,
		}
		if card := room.Round.FindCard(playerID); card != nil {
			num := card.CardNumber
			state.MyCard = &num
		}
	}

	if room.Phase == domain.PhaseGameOver {
		won := room.Lives > 0
		state.IsSuccess = &won
	}
	return state
}
