package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"math/rand"
	"time"

	"shardring/internal/app"
	"shardring/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Presences  map[string]runtime.Presence // Map UserId -> Presence for targeted messaging
	App        *app.Service                // Game rules bound to this match's config and rng
	Match      *domain.MatchState          // Authoritative game state
	MaxPlayers int                         // Lobby capacity used for the label
	Tick       int64                       // Last tick seen by MatchLoop
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. An optional numeric "seed"
// param makes dice and board generation reproducible.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	cfg := loadGameConfig(ctx, logger)
	seed, ok := seedParam(params)
	if !ok {
		logger.Warn("MatchInit: Ignoring non-integer seed param %v (%T).", params["seed"], params["seed"])
	}

	svc := app.NewService(cfg, rand.New(rand.NewSource(seed)))
	state := &MatchState{
		Presences:  make(map[string]runtime.Presence),
		App:        svc,
		Match:      svc.NewMatch(),
		MaxPlayers: cfg.MaxPlayers,
	}

	label, err := encodeLabel(state.Match, state.MaxPlayers)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Info("MatchInit: %dx%d board, up to %d players.", cfg.Rooms, cfg.Slots, cfg.MaxPlayers)
	return state, TickRate, label
}

// seedParam reads the "seed" match param. JSON callers deliver float64 while
// Go callers of MatchCreate may pass any integer kind. ok is false only when a
// seed was supplied but could not be used; a time seed is returned then.
func seedParam(params map[string]interface{}) (seed int64, ok bool) {
	switch v := params["seed"].(type) {
	case nil:
		return time.Now().UnixNano(), true
	case float64:
		if v != math.Trunc(v) {
			return time.Now().UnixNano(), false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	default:
		return time.Now().UnixNano(), false
	}
}

// MatchJoinAttempt admits every presence; seats are taken with OpJoinGame so
// spectators can watch without playing.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	if _, ok := state.(*MatchState); !ok {
		return state, false, "state not found"
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
		logger.Debug("MatchJoin: User %s connected.", p.GetUserId())
	}

	// Late arrivals need the current state before the next broadcast.
	mh.sendSnapshot(matchState, dispatcher, logger, presences)
	return matchState
}

// MatchLeave is called when one or more presences leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	var events []app.Event
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		evs, err := matchState.App.Apply(matchState.Match, app.Request{Kind: app.RequestDisconnect, UserID: p.GetUserId()})
		if err != nil {
			if !errors.Is(err, app.ErrUnknownPlayer) {
				logger.Warn("MatchLeave: Disconnect for %s failed: %v", p.GetUserId(), err)
			}
			continue
		}
		logger.Debug("MatchLeave: User %s left during %s.", p.GetUserId(), matchState.Match.Phase)
		events = append(events, evs...)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no presences.")
		return nil
	}

	if len(events) > 0 {
		mh.publish(matchState, dispatcher, logger, events)
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Messages are applied one at a time in arrival order.
	for _, msg := range messages {
		mh.handleMessage(ctx, nk, matchState, dispatcher, logger, msg)
	}

	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, nk runtime.NakamaModule, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	req, err := decodeRequest(msg)
	if err != nil {
		logger.Warn("MatchLoop: Bad message from %s: %v", msg.GetUserId(), err)
		return
	}
	if req.Kind == app.RequestJoin && req.Name == "" {
		req.Name = profileName(ctx, nk, logger, msg)
	}

	events, err := state.App.Apply(state.Match, req)
	if err != nil {
		if app.ShouldNotify(req, err) {
			logger.Info("MatchLoop: Rejected %s from %s: %v", req.Kind, req.UserID, err)
			mh.sendError(state, dispatcher, logger, req.UserID, err.Error())
			return
		}
		logger.Debug("MatchLoop: Dropped %s from %s: %v", req.Kind, req.UserID, err)
		return
	}

	mh.publish(state, dispatcher, logger, events)
}

// profileName prefers the account display name and falls back to the username.
func profileName(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger, p runtime.Presence) string {
	if nk != nil {
		users, err := nk.UsersGetId(ctx, []string{p.GetUserId()}, nil)
		if err != nil {
			logger.Warn("MatchLoop: Could not load profile for %s: %v", p.GetUserId(), err)
		} else if len(users) > 0 && users[0].GetDisplayName() != "" {
			return users[0].GetDisplayName()
		}
	}
	return p.GetUsername()
}

// publish broadcasts each event line, then the full state, then refreshes the label.
func (mh *matchHandler) publish(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		payload, err := encodeMessage(ev.Line)
		if err != nil {
			logger.Error("Failed to marshal log line for %s: %v", ev.Kind, err)
			continue
		}
		if err := dispatcher.BroadcastMessage(OpLog, payload, nil, nil, true); err != nil {
			logger.Error("Failed to broadcast %s: %v", ev.Kind, err)
		}
	}
	mh.sendSnapshot(state, dispatcher, logger, nil)
	mh.updateLabel(state, dispatcher, logger)
}

// sendSnapshot sends the full state to presences, or to everyone when presences is nil.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presences []runtime.Presence) {
	payload, err := EncodeSnapshot(state.Match)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpStateSnapshot, payload, presences, nil, true); err != nil {
		logger.Error("Failed to broadcast snapshot: %v", err)
	}
}

// sendError sends an error message to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	payload, err := encodeMessage(message)
	if err != nil {
		logger.Error("Failed to marshal error: %v", err)
		return
	}

	if err := dispatcher.BroadcastMessage(OpError, payload, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state.Match, state.MaxPlayers)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

// MatchSignal answers any signal with the current snapshot for admin tooling.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}
	payload, err := EncodeSnapshot(matchState.Match)
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal snapshot: %v", err)
		return state, ""
	}
	return state, string(payload)
}
