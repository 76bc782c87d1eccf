package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ito/internal/app"
	"ito/internal/config"
	"ito/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one room. The match
// loop is the room's actor: commands are applied one at a time, run to
// completion, and rooms never share mutable state.
type MatchState struct {
	Room      *domain.Room
	App       *app.Service
	Cfg       config.Config
	Presences map[string]runtime.Presence // userID -> presence
}

type matchHandler struct {
	registry *RoomRegistry
}

// MatchInit is called when the match is created; the room code arrives as a
// match parameter from the create_room RPC.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadThemePool(ThemePoolPath); err != nil {
		logger.Warn("MatchInit: Could not load theme pool: %v", err)
	}

	code, _ := params[MatchParamCode].(string)
	if code == "" {
		logger.Error("MatchInit: Missing room code param.")
		return nil, 0, ""
	}

	cfg := config.Default()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		cfg = config.FromEnv(env)
	}

	svc := app.NewService(nil, cfg)
	state := &MatchState{
		Room:      svc.NewRoom(code),
		App:       svc,
		Cfg:       cfg,
		Presences: make(map[string]runtime.Presence),
	}

	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Room, cfg.MaxPlayers))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // stale sweep granularity; commands are event-driven
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt admits or rejects a connection before any seat is touched.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if err := matchState.App.CanJoin(matchState.Room, presence.GetUsername()); err != nil {
		logger.Debug("MatchJoinAttempt: Rejecting %s: %v", presence.GetUserId(), err)
		return matchState, false, err.Error()
	}
	return matchState, true, ""
}

// MatchJoin binds admitted connections to seats: a fresh seat in the lobby,
// or a rebind of a disconnected same-name seat mid-game.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		seat, reconnected, events, err := matchState.App.Join(matchState.Room, p.GetUsername(), p.GetUserId(), time.Now())
		if err != nil {
			// Lost a race between join attempt and join; surface it to the
			// offending connection only.
			logger.Warn("MatchJoin: User %s could not take a seat: %v", p.GetUserId(), err)
			mh.sendError(matchState, dispatcher, logger, p.GetUserId(), err)
			continue
		}

		logger.Debug("MatchJoin: %s bound to seat %s (reconnected=%v)", p.GetUserId(), seat.ID, reconnected)
		mh.dispatch(matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is transport loss or an explicit disconnect: lobby seats are
// removed outright, in-game seats are held for reconnection.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.Room.FindPlayerByUserID(p.GetUserId())
		if seat == nil {
			continue
		}

		events, roomEmpty, err := matchState.App.Leave(matchState.Room, seat.ID, time.Now())
		if err != nil {
			logger.Error("MatchLeave: Failed to release seat %s: %v", seat.ID, err)
			continue
		}
		mh.dispatch(matchState, dispatcher, logger, events)

		if roomEmpty {
			logger.Info("MatchLeave: Room %s empty, terminating.", matchState.Room.Code)
			mh.registry.Release(matchState.Room.Code)
			return nil
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLoop applies queued commands one at a time and runs the stale-seat
// sweep each tick.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		mh.handleCommand(matchState, dispatcher, logger, msg)
	}

	events, roomEmpty := matchState.App.SweepStale(matchState.Room, time.Now())
	if len(events) > 0 {
		mh.dispatch(matchState, dispatcher, logger, events)
		mh.updateLabel(matchState, dispatcher, logger)
	}
	if roomEmpty {
		logger.Info("MatchLoop: Room %s empty after stale sweep, terminating.", matchState.Room.Code)
		mh.registry.Release(matchState.Room.Code)
		return nil
	}

	return matchState
}

// handleCommand resolves the sender's seat and invokes exactly one service
// operation; errors go back to the sender only.
func (mh *matchHandler) handleCommand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat := state.Room.FindPlayerByUserID(senderID)
	if seat == nil {
		logger.Warn("MatchLoop: Command %d from %s without a seat.", msg.GetOpCode(), senderID)
		return
	}

	now := time.Now()
	var events []app.Event
	var err error

	switch msg.GetOpCode() {
	case OpCodeUpdateSettings:
		var req UpdateSettingsRequest
		if jsonErr := json.Unmarshal(msg.GetData(), &req); jsonErr != nil {
			logger.Warn("MatchLoop: Invalid UpdateSettingsRequest from %s: %v", senderID, jsonErr)
			return
		}
		patch := app.SettingsPatch{MaxLives: req.MaxLives, TotalRounds: req.TotalRounds, CustomTheme: req.CustomTheme}
		events, err = state.App.UpdateSettings(state.Room, seat.ID, patch)

	case OpCodeStartGame:
		events, err = state.App.StartGame(state.Room, seat.ID, now)

	case OpCodeStartPlacement:
		events, err = state.App.StartPlacement(state.Room, seat.ID)

	case OpCodePlaceCard:
		var req PlaceCardRequest
		if len(msg.GetData()) > 0 {
			if jsonErr := json.Unmarshal(msg.GetData(), &req); jsonErr != nil {
				logger.Warn("MatchLoop: Invalid PlaceCardRequest from %s: %v", senderID, jsonErr)
				return
			}
		}
		events, err = state.App.PlaceCard(state.Room, seat.ID, req.Label, now)

	case OpCodeNextRound:
		events, err = state.App.NextRound(state.Room, seat.ID)

	case OpCodePlayAgain:
		events, err = state.App.PlayAgain(state.Room, seat.ID, now)

	case OpCodeSendChat:
		var req ChatRequest
		if jsonErr := json.Unmarshal(msg.GetData(), &req); jsonErr != nil {
			logger.Warn("MatchLoop: Invalid ChatRequest from %s: %v", senderID, jsonErr)
			return
		}
		events, err = state.App.AddChat(state.Room, seat.ID, req.Text, now)

	case OpCodeLeaveRoom:
		var roomEmpty bool
		events, roomEmpty, err = state.App.Leave(state.Room, seat.ID, now)
		if err == nil {
			if p, ok := state.Presences[senderID]; ok {
				if kickErr := dispatcher.MatchKick([]runtime.Presence{p}); kickErr != nil {
					logger.Error("MatchLoop: Failed to kick %s: %v", senderID, kickErr)
				}
			}
		}
		// An emptied lobby is torn down by the subsequent MatchLeave callback.
		_ = roomEmpty

	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Debug("MatchLoop: Command %d from %s rejected: %v", msg.GetOpCode(), senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.dispatch(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
}

// dispatch encodes and sends app events; targeted events go only to the
// presences bound to the recipient seats and are dropped when none are
// connected.
func (mh *matchHandler) dispatch(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, data, err := eventMessage(ev)
		if err != nil {
			logger.Error("Failed to encode event %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, seatID := range ev.Recipients {
				seat := state.Room.FindPlayer(seatID)
				if seat == nil || !seat.Connected() {
					continue
				}
				if p, ok := state.Presences[seat.UserID]; ok {
					recipients = append(recipients, p)
				}
			}
			// Targeted events must never fall back to a room broadcast.
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
		}
	}
}

// sendError unicasts a business-rule failure to one connection.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cmdErr error) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: presence not found", userID)
		return
	}

	data, err := json.Marshal(ErrorPayload{Message: cmdErr.Error()})
	if err != nil {
		logger.Error("Failed to marshal ErrorPayload: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpCodeError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Room, state.Cfg.MaxPlayers))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.registry.Release(matchState.Room.Code)
	}
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
