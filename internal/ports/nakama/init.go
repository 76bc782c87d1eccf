package nakama

import (
	"context"
	"database/sql"

	"ito/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and the match handler for the Nakama runtime. The
// room code registry is created once here and shared by reference.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	cfg := config.Default()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		cfg = config.FromEnv(env)
	}

	registry := NewRoomRegistry(cfg.RoomCodeLength, nil)

	if err := RegisterRPCs(initializer, registry); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameIto, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return &matchHandler{registry: registry}, nil
	}); err != nil {
		return err
	}

	logger.Info("ito Go module loaded.")
	return nil
}
