package domain

// ChatMessage is one entry of a room's append-only chat log.
type ChatMessage struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	IsSystem   bool   `json:"isSystem"`
}
