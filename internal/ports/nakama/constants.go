package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcRejoinToken verifies a signed rejoin token and returns the seat it binds.
	RpcRejoinToken = "rejoin_token"

	// MatchNameDeal is the authoritative match handler name registered with Nakama.
	MatchNameDeal = "deal_match"

	// MatchLabelKey_OpenSeats is the label key carrying the open seat count.
	MatchLabelKey_OpenSeats = "open"

	// rejoinIssuer signs and checks rejoin tokens minted by this runtime.
	rejoinIssuer = "lebdeal"
)

// Op codes for client messages and server events. Payloads are JSON.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCards int64 = 2
	OpPassTurn  int64 = 3

	// Server -> Client events
	OpLobbyState    int64 = 101
	OpHandDealt     int64 = 102 // send privately
	OpTableState    int64 = 103
	OpAutoPassArmed int64 = 104
	OpMatchEnded    int64 = 105
	OpGameEnded     int64 = 106
	OpGameError     int64 = 107
)
