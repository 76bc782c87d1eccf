package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"ito/internal/app"
	"ito/internal/config"
	"ito/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateRoomRequest is the create_room RPC payload.
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// CreateRoomResponse returns the allocated room code and its match id.
type CreateRoomResponse struct {
	Code    string `json:"code"`
	MatchID string `json:"match_id"`
}

// JoinRoomRequest is the join_room RPC payload.
type JoinRoomRequest struct {
	Code string `json:"code"`
}

// JoinRoomResponse returns the match id behind a room code.
type JoinRoomResponse struct {
	Code    string `json:"code"`
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers the room lifecycle RPC endpoints against the shared
// registry.
func RegisterRPCs(initializer runtime.Initializer, registry *RoomRegistry) error {
	if err := initializer.RegisterRpc(RpcIDCreateRoom, rpcCreateRoom(registry)); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcIDJoinRoom, rpcJoinRoom(registry))
}

// rpcCreateRoom reserves a collision-free room code and creates the backing
// match. Seat and host assignment are server-authoritative in MatchJoin.
func rpcCreateRoom(registry *RoomRegistry) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req CreateRoomRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", app.ErrInvalidName
		}

		cfg := config.Default()
		if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
			cfg = config.FromEnv(env)
		}
		if !domain.ValidName(req.Name, cfg.NameMaxLength) {
			return "", app.ErrInvalidName
		}

		code := registry.Reserve()
		matchID, err := nk.MatchCreate(ctx, MatchNameIto, map[string]interface{}{MatchParamCode: code})
		if err != nil {
			registry.Release(code)
			logger.Error("rpcCreateRoom: MatchCreate failed: %v", err)
			return "", err
		}
		registry.Bind(code, matchID)

		logger.Info("rpcCreateRoom: Created room %s (match %s)", code, matchID)
		b, _ := json.Marshal(CreateRoomResponse{Code: code, MatchID: matchID})
		return string(b), nil
	}
}

// rpcJoinRoom resolves a room code to its match id; admission itself happens
// in the match join attempt.
func rpcJoinRoom(registry *RoomRegistry) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req JoinRoomRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", app.ErrInvalidRoomCode
		}

		cfg := config.Default()
		if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
			cfg = config.FromEnv(env)
		}
		if !domain.ValidRoomCode(req.Code, cfg.RoomCodeLength) {
			return "", app.ErrInvalidRoomCode
		}

		matchID, ok := registry.Lookup(req.Code)
		if !ok {
			return "", app.ErrRoomNotFound
		}

		b, _ := json.Marshal(JoinRoomResponse{Code: req.Code, MatchID: matchID})
		return string(b), nil
	}
}
