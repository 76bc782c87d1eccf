package nakama

import (
	"encoding/json"
	"testing"

	"ito/internal/app"
)

func TestEventMessageEncodesKnownKinds(t *testing.T) {
	ev := app.Event{Kind: app.EventThemeAnnounced, Payload: app.ThemeAnnouncedPayload{Theme: "Spiciness of food"}}

	opCode, data, err := eventMessage(ev)
	if err != nil {
		t.Fatalf("eventMessage: %v", err)
	}
	if opCode != OpCodeThemeAnnounced {
		t.Fatalf("opcode = %d, want %d", opCode, OpCodeThemeAnnounced)
	}

	var payload app.ThemeAnnouncedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Theme != "Spiciness of food" {
		t.Errorf("theme = %q", payload.Theme)
	}
}

func TestEventMessageRejectsUnknownKind(t *testing.T) {
	if _, _, err := eventMessage(app.Event{Kind: "bogus"}); err == nil {
		t.Fatal("unknown event kind encoded")
	}
}

func TestEveryEventKindHasAnOpCode(t *testing.T) {
	kinds := []app.EventKind{
		app.EventPlayerJoined, app.EventPlayerLeft, app.EventHostChanged,
		app.EventSettingsUpdated, app.EventLobbyState, app.EventGameStarted,
		app.EventThemeAnnounced, app.EventCardDealt, app.EventDiscussionStarted,
		app.EventPlacementStarted, app.EventCardPlaced, app.EventLifeLost,
		app.EventRoundResult, app.EventGameOver, app.EventFullState,
		app.EventChatMessage,
	}
	for _, kind := range kinds {
		if _, ok := eventOpCodes[kind]; !ok {
			t.Errorf("event kind %s has no opcode", kind)
		}
	}
}
