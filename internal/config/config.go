package config

import (
	"strconv"
	"time"
)

// Config carries every externally supplied constant the room core consumes.
// Values come from the Nakama runtime environment (ito_* keys) with the
// defaults below.
type Config struct {
	MinPlayers int
	MaxPlayers int

	CardMin int
	CardMax int

	MinLives  int
	MaxLives  int
	MinRounds int
	MaxRounds int

	DefaultLives  int
	DefaultRounds int

	RoomCodeLength int
	NameMaxLength  int
	ChatMaxLength  int

	// ReconnectGrace is how long a disconnected seat is held before the
	// stale sweep removes it.
	ReconnectGrace time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MinPlayers:     2,
		MaxPlayers:     8,
		CardMin:        1,
		CardMax:        100,
		MinLives:       1,
		MaxLives:       5,
		MinRounds:      1,
		MaxRounds:      10,
		DefaultLives:   3,
		DefaultRounds:  3,
		RoomCodeLength: 4,
		NameMaxLength:  20,
		ChatMaxLength:  200,
		ReconnectGrace: 2 * time.Minute,
	}
}

// FromEnv builds a Config from the runtime environment map, keeping the
// default for any key that is absent or unparsable.
func FromEnv(env map[string]string) Config {
	cfg := Default()

	intFromEnv(env, "ito_min_players", &cfg.MinPlayers)
	intFromEnv(env, "ito_max_players", &cfg.MaxPlayers)
	intFromEnv(env, "ito_card_min", &cfg.CardMin)
	intFromEnv(env, "ito_card_max", &cfg.CardMax)
	intFromEnv(env, "ito_min_lives", &cfg.MinLives)
	intFromEnv(env, "ito_max_lives", &cfg.MaxLives)
	intFromEnv(env, "ito_min_rounds", &cfg.MinRounds)
	intFromEnv(env, "ito_max_rounds", &cfg.MaxRounds)
	intFromEnv(env, "ito_default_lives", &cfg.DefaultLives)
	intFromEnv(env, "ito_default_rounds", &cfg.DefaultRounds)
	intFromEnv(env, "ito_room_code_length", &cfg.RoomCodeLength)
	intFromEnv(env, "ito_name_max_length", &cfg.NameMaxLength)
	intFromEnv(env, "ito_chat_max_length", &cfg.ChatMaxLength)

	if val, ok := env["ito_reconnect_grace_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			cfg.ReconnectGrace = time.Duration(i) * time.Second
		}
	}

	return cfg
}

func intFromEnv(env map[string]string, key string, dst *int) {
	val, ok := env[key]
	if !ok {
		return
	}
	if i, err := strconv.Atoi(val); err == nil && i > 0 {
		*dst = i
	}
}
