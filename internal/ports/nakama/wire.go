package nakama

import (
	"encoding/json"

	"ito/internal/app"
)

// Inbound command opcodes.
const (
	OpCodeUpdateSettings int64 = 1
	OpCodeStartGame      int64 = 2
	OpCodeStartPlacement int64 = 3
	OpCodePlaceCard      int64 = 4
	OpCodeNextRound      int64 = 5
	OpCodePlayAgain      int64 = 6
	OpCodeSendChat       int64 = 7
	OpCodeLeaveRoom      int64 = 8
)

// Outbound event opcodes.
const (
	OpCodePlayerJoined      int64 = 20
	OpCodePlayerLeft        int64 = 21
	OpCodeHostChanged       int64 = 22
	OpCodeSettingsUpdated   int64 = 23
	OpCodeLobbyState        int64 = 24
	OpCodeGameStarted       int64 = 25
	OpCodeThemeAnnounced    int64 = 26
	OpCodeCardDealt         int64 = 27
	OpCodeDiscussionStarted int64 = 28
	OpCodePlacementStarted  int64 = 29
	OpCodeCardPlaced        int64 = 30
	OpCodeLifeLost          int64 = 31
	OpCodeRoundResult       int64 = 32
	OpCodeGameOver          int64 = 33
	OpCodeFullState         int64 = 34
	OpCodeChatMessage       int64 = 35
	OpCodeError             int64 = 40
)

// UpdateSettingsRequest is the update-settings command payload; nil fields
// are not applied.
type UpdateSettingsRequest struct {
	MaxLives    *int    `json:"maxLives"`
	TotalRounds *int    `json:"totalRounds"`
	CustomTheme *string `json:"customTheme"`
}

// PlaceCardRequest is the place-card command payload.
type PlaceCardRequest struct {
	Label string `json:"label"`
}

// ChatRequest is the send-chat command payload.
type ChatRequest struct {
	Text string `json:"text"`
}

// ErrorPayload is unicast to the offending connection, never broadcast.
type ErrorPayload struct {
	Message string `json:"message"`
}

var eventOpCodes = map[app.EventKind]int64{
	app.EventPlayerJoined:      OpCodePlayerJoined,
	app.EventPlayerLeft:        OpCodePlayerLeft,
	app.EventHostChanged:       OpCodeHostChanged,
	app.EventSettingsUpdated:   OpCodeSettingsUpdated,
	app.EventLobbyState:        OpCodeLobbyState,
	app.EventGameStarted:       OpCodeGameStarted,
	app.EventThemeAnnounced:    OpCodeThemeAnnounced,
	app.EventCardDealt:         OpCodeCardDealt,
	app.EventDiscussionStarted: OpCodeDiscussionStarted,
	app.EventPlacementStarted:  OpCodePlacementStarted,
	app.EventCardPlaced:        OpCodeCardPlaced,
	app.EventLifeLost:          OpCodeLifeLost,
	app.EventRoundResult:       OpCodeRoundResult,
	app.EventGameOver:          OpCodeGameOver,
	app.EventFullState:         OpCodeFullState,
	app.EventChatMessage:       OpCodeChatMessage,
}

// eventMessage encodes an app event into its wire opcode and JSON payload.
func eventMessage(ev app.Event) (int64, []byte, error) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		return 0, nil, errUnknownEvent(ev.Kind)
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return 0, nil, err
	}
	return opCode, data, nil
}

type errUnknownEvent string

func (e errUnknownEvent) Error() string {
	return "unknown event kind: " + string(e)
}
