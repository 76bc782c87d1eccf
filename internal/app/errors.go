package app

import "errors"

// Business-rule failures. Every operation returns at most one of these and
// leaves room state untouched on the error path.
var (
	ErrInvalidName        = errors.New("invalid player name")
	ErrInvalidRoomCode    = errors.New("invalid room code")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrNameTaken          = errors.New("name already in use")
	ErrGameInProgress     = errors.New("game already in progress")
	ErrWrongPhase         = errors.New("operation not allowed in current phase")
	ErrInvalidPlayerCount = errors.New("player count out of range")
	ErrNotHost            = errors.New("actor is not the host")
	ErrInvalidSetting     = errors.New("setting value out of range")
	ErrNoActiveRound      = errors.New("no active round")
	ErrCardNotFound       = errors.New("card not found")
	ErrAlreadyPlaced      = errors.New("card already placed")
	ErrMessageInvalid     = errors.New("invalid chat message")
	ErrUnknownPlayer      = errors.New("player not found")
)
