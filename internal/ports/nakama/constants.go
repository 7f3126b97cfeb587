package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create the shared match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call for a voice chat access token.
	RpcVoiceToken = "voice_token"

	// MatchNameShardRing is the authoritative match handler name registered with Nakama.
	MatchNameShardRing = "shardring_match"

	// GameLabel identifies shardring matches in the match label.
	GameLabel = "shardring"

	// GameConfigPath is read on match init; a missing file falls back to defaults.
	GameConfigPath = "data/game_config.json"

	// TickRate is the number of MatchLoop calls per second.
	TickRate = 5
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpJoinGame  int64 = 1
	OpStartGame int64 = 2
	OpRollDice  int64 = 3
	OpAction    int64 = 4

	// Server -> Client events
	OpStateSnapshot int64 = 101
	OpLog           int64 = 102
	OpError         int64 = 103 // sent to the requester only
)
