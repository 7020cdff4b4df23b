package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"lebdeal/internal/app"
	"lebdeal/internal/bot"
	"lebdeal/internal/config"
	"lebdeal/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [4]string                   `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat            int                         `json:"owner_seat"` // seat index of the match owner
	Tick                 int64                       `json:"tick"`
	Presences            map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App                  *app.Service                `json:"-"`
	Table                *domain.TableState          `json:"-"` // current table snapshot (nil in lobby)
	Tokens               *app.RejoinTokenService     `json:"-"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"`           // min seconds a bot waits
	BotMaxDelay          int                         `json:"bot_max_delay"`           // max seconds a bot waits
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`     // seconds before auto-filling with bots
	BotWaitUntil         int64                       `json:"bot_wait_until"`          // tick when the acting bot moves
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // tick when a lone human started waiting
	AutoPassAt           int64                       `json:"auto_pass_at"`            // tick when the armed auto-pass fires, 0 when disarmed
	Bots                 map[string]*bot.Agent       `json:"-"`
	RejoinSeats          map[string]int              `json:"-"` // verified rejoin claims awaiting MatchJoin
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// tableActive reports whether a match is being played on the table.
func (ms *MatchState) tableActive() bool {
	return ms.Table != nil &&
		(ms.Table.Phase == domain.PhaseAwaitingOpen || ms.Table.Phase == domain.PhaseInProgress)
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:        time.Now().Unix(),
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(nil, config.Rules(), config.AutoPassDelay()),
		OwnerSeat:   -1,
		Bots:        make(map[string]*bot.Agent),
		RejoinSeats: make(map[string]int),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["deal_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["deal_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["deal_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["deal_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if secret, ok := env["deal_rejoin_secret"]; ok && secret != "" {
		state.Tokens = app.NewRejoinTokenService(secret, rejoinIssuer, 0)
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		if c := config.GetGameConfig(); c != nil && c.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = c.BotAutoFillDelaySeconds
		} else {
			state.BotAutoFillDelay = 5
		}
	}
	// An inverted delay window would make the bot scheduler draw from an
	// empty range; collapse it to the minimum instead.
	if state.BotMaxDelay < state.BotMinDelay {
		logger.Warn("MatchInit: bot max delay %d below min delay %d, clamping", state.BotMaxDelay, state.BotMinDelay)
		state.BotMaxDelay = state.BotMinDelay
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		State: "lobby",
		Game:  "deal",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A signed rejoin token admits its holder back to the seat it names, even
	// into a running game where a bot has taken over.
	if token := metadata["rejoin_token"]; token != "" && matchState.Tokens != nil {
		claims, err := matchState.Tokens.VerifyToken(token)
		matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
		if err == nil && claims.UserID == presence.GetUserId() && claims.TableID == matchID {
			matchState.RejoinSeats[claims.UserID] = claims.Seat
			return matchState, true, ""
		}
		logger.Warn("MatchJoinAttempt: Rejected rejoin token from %s: %v", presence.GetUserId(), err)
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Table == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// A verified rejoin reclaims its original seat first.
		if seat, ok := matchState.RejoinSeats[p.GetUserId()]; ok {
			delete(matchState.RejoinSeats, p.GetUserId())
			if seat >= 0 && seat < len(matchState.Seats) {
				if occupant := matchState.Seats[seat]; isBotUserId(occupant) {
					delete(matchState.Bots, occupant)
				}
				matchState.Seats[seat] = p.GetUserId()
				logger.Info("MatchJoin: User %s rejoined seat %d", p.GetUserId(), seat)
				mh.sendHandSnapshot(matchState, dispatcher, logger, p.GetUserId(), seat)
				continue
			}
		}

		// Assign seat: try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Table == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				if matchState.tableActive() {
					// Mid-game the seat must keep playing; a bot takes over
					// and the human can come back with a rejoin token.
					mh.seatBot(matchState, dispatcher, logger, i)
					logger.Info("MatchLeave: User %s left mid-game, bot seated at %d.", p.GetUserId(), i)
				} else {
					matchState.Seats[i] = ""
					logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				}

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	// Fire the armed auto-pass: the standing combo cannot be beaten, so the
	// remaining seats are passed for them once the countdown lapsed.
	if matchState.AutoPassAt != 0 && matchState.Tick >= matchState.AutoPassAt {
		matchState.AutoPassAt = 0
		mh.runAutoPass(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// runAutoPass submits passes for every seat facing the unbeatable combo until
// the trick resets back to its owner.
func (mh *matchHandler) runAutoPass(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for i := 0; i < len(state.Seats); i++ {
		if !state.tableActive() || state.Table.LastCombo == nil {
			return
		}
		seat := state.Table.ActingSeat
		if !mh.submit(ctx, state, dispatcher, logger, seat, domain.PassAction()) {
			return
		}
	}
}

// seatBot fills the given seat with a pooled bot identity and binds an agent.
func (mh *matchHandler) seatBot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	identity := bot.GetBotIdentity(seat)
	botID := identity.UserID
	state.Seats[seat] = botID

	agent, err := bot.NewAgent(botID, seat)
	if err != nil {
		logger.Error("Failed to create bot agent for %s: %v", botID, err)
		return
	}
	state.Bots[botID] = agent
	logger.Info("seatBot: Added bot %s (%s) to seat %d", identity.Username, botID, seat)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Table == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						mh.seatBot(state, dispatcher, logger, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastLobbyState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game
	if state.tableActive() {
		currentTurn := state.Table.ActingSeat
		currentUserID := state.Seats[currentTurn]

		if isBotUserId(currentUserID) {
			if state.BotWaitUntil == 0 {
				delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
				state.BotWaitUntil = state.Tick + int64(delay)
				logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, currentTurn, state.BotWaitUntil, state.Tick)
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0

				agent, exists := state.Bots[currentUserID]
				if !exists {
					var err error
					agent, err = bot.NewAgent(currentUserID, currentTurn)
					if err != nil {
						logger.Error("processBots: Failed to create fallback agent: %v", err)
						return
					}
					state.Bots[currentUserID] = agent
				}
				agent.Seat = currentTurn

				move, err := agent.Play(*state.Table)
				if err != nil {
					logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
					return
				}

				mh.submit(ctx, state, dispatcher, logger, currentTurn, move.Action())
			}
		} else {
			// Not a bot turn, reset wait if it was set
			state.BotWaitUntil = 0
		}
	}
}

// submit runs one action through the shared service, broadcasts the resulting
// events and keeps the label and auto-pass timer in step. It reports whether
// the action was accepted.
func (mh *matchHandler) submit(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int, action domain.Action) bool {
	next, events, rej, err := state.App.Submit(*state.Table, seat, action, state.Seats[:])
	if err != nil {
		// The deck partition broke; the table cannot be repaired.
		logger.Error("submit: Abandoning corrupt table: %v", err)
		state.Table = nil
		state.AutoPassAt = 0
		mh.updateLabel(state, dispatcher, logger)
		return false
	}
	if rej != nil {
		userID := state.Seats[seat]
		logger.Warn("submit: Seat %d (%s) refused: %s", seat, userID, rej)
		mh.sendRejection(state, dispatcher, logger, userID, rej)
		return false
	}

	state.Table = &next
	if next.LastCombo == nil {
		state.AutoPassAt = 0
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	return true
}

func (mh *matchHandler) broadcastLobbyState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var players []PlayerInfo
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Table != nil && i < state.Table.Seats {
			cardsRemaining = state.Table.RemainingCards(i)
		}

		players = append(players, PlayerInfo{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBotUserId(userId),
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
		})
	}

	snapshot := LobbyStateEvent{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   players,
	}
	bytes, _ := json.Marshal(snapshot)
	dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true)
}

// sendHandSnapshot re-sends a private hand to a rejoining player.
func (mh *matchHandler) sendHandSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, seat int) {
	if state.Table == nil || seat >= state.Table.Seats {
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	payload := app.HandDealtPayload{
		Seat: seat,
		Hand: append([]domain.Card{}, state.Table.Hands[seat]...),
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendHandSnapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpHandDealt, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := -1
	for i, seatUserId := range state.Seats {
		if seatUserId == senderID {
			senderSeat = i
			break
		}
	}

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Table != nil {
		logger.Warn("StartGame: Game already running.")
		return
	}

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	// Compact occupancy so seat indices are contiguous before dealing.
	var compacted [4]string
	n := 0
	for _, uid := range state.Seats {
		if uid != "" {
			compacted[n] = uid
			n++
		}
	}
	state.Seats = compacted
	for i := 0; i < n; i++ {
		if agent, ok := state.Bots[state.Seats[i]]; ok {
			agent.Seat = i
		}
	}

	if n < app.MinPlayersToStartGame || domain.DeckSize%n != 0 {
		logger.Warn("StartGame: Cannot start with %d players.", n)
		return
	}

	table, events, err := state.App.StartGame(n, state.Seats[:n])
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	state.Table = &table
	state.AutoPassAt = 0

	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game started with %d players.", n)
}

func (mh *matchHandler) handlePlayCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := -1
	for i, seatUserId := range state.Seats {
		if seatUserId == senderID {
			senderSeat = i
			break
		}
	}

	if state.Table == nil || senderSeat < 0 {
		logger.Warn("handlePlayCards: Game not started or sender unseated.")
		return
	}

	var request PlayCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal PlayCardsRequest: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed play request")
		return
	}

	mh.submit(ctx, state, dispatcher, logger, senderSeat, domain.PlayAction(request.Cards...))
}

func (mh *matchHandler) handlePassTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := -1
	for i, seatUserId := range state.Seats {
		if seatUserId == senderID {
			senderSeat = i
			break
		}
	}

	if state.Table == nil || senderSeat < 0 {
		logger.Warn("handlePassTurn: Game not started or sender unseated.")
		return
	}

	mh.submit(ctx, state, dispatcher, logger, senderSeat, domain.PassAction())
}

// broadcastEvent maps an app event onto its opcode and dispatches it.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64

	switch ev.Kind {
	case app.EventHandDealt:
		opCode = OpHandDealt
	case app.EventTableStateChanged:
		opCode = OpTableState
	case app.EventAutoPassArmed:
		opCode = OpAutoPassArmed
		// Schedule the countdown on the tick clock. Ticks run at one per
		// second, so round the delay up to a whole tick.
		p := ev.Payload.(app.AutoPassArmedPayload)
		seconds := (p.CountdownMillis + 999) / 1000
		state.AutoPassAt = state.Tick + int64(seconds)
	case app.EventMatchEnded:
		opCode = OpMatchEnded
	case app.EventGameEnded:
		opCode = OpGameEnded
		// Game over, back to the lobby.
		state.Table = nil
		state.AutoPassAt = 0
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendRejection reports a refused action back to the acting user only.
func (mh *matchHandler) sendRejection(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, rej *domain.Rejection) {
	payload := GameErrorEvent{
		Code:         422,
		Message:      rej.String(),
		Reason:       string(rej.Reason),
		RequiredCard: rej.RequiredCard,
	}
	mh.dispatchError(state, dispatcher, logger, userID, payload)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	mh.dispatchError(state, dispatcher, logger, userID, GameErrorEvent{Code: code, Message: message})
}

func (mh *matchHandler) dispatchError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, payload GameErrorEvent) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	matchState := "lobby"
	if state.Table != nil {
		matchState = "playing"
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		State: matchState,
		Game:  "deal",
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
