package nakama

const (
	// MatchNameIto is the match handler name registered with the runtime.
	MatchNameIto = "ito"

	// MatchParamCode carries the reserved room code into MatchInit.
	MatchParamCode = "code"

	// RpcIDCreateRoom allocates a room code and creates its match.
	RpcIDCreateRoom = "create_room"
	// RpcIDJoinRoom resolves a room code to a joinable match id.
	RpcIDJoinRoom = "join_room"

	// ThemePoolPath is the optional theme pool override in the data folder.
	ThemePoolPath = "data/themes.json"
)
