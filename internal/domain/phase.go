package domain

// Phase represents the lifecycle stage of a room.
type Phase string

const (
	// PhaseWaiting is the pre-room state a client sits in before joining.
	PhaseWaiting Phase = "WAITING"
	// PhaseLobby is the pre-game state where seats can be taken and settings changed.
	PhaseLobby Phase = "LOBBY"
	// PhaseThemeAnnouncement shows the round theme before discussion opens.
	PhaseThemeAnnouncement Phase = "THEME_ANNOUNCEMENT"
	// PhaseDiscussion is the free-talk stage after cards are dealt.
	PhaseDiscussion Phase = "DISCUSSION"
	// PhasePlacement is the stage where players place their hidden cards.
	PhasePlacement Phase = "PLACEMENT"
	// PhaseRoundResult shows the judged placement order and revealed numbers.
	PhaseRoundResult Phase = "ROUND_RESULT"
	// PhaseGameOver is reached when lives run out or all rounds are cleared.
	PhaseGameOver Phase = "GAME_OVER"
)
