package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting the shared match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// rpcQuickMatch returns the running shardring match, creating one when none
// is listed. Lobbies with open capacity are preferred.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	queries := []string{
		"+label.game:" + GameLabel + " +label.open:>=1",
		"+label.game:" + GameLabel,
	}
	for _, query := range queries {
		matches, err := nk.MatchList(ctx, 1, true, "", nil, nil, query)
		if err != nil {
			logger.Error("QuickMatch [User:%s]: Failed to list matches: %v", userID, err)
			return "", err
		}
		if len(matches) > 0 {
			logger.Debug("QuickMatch [User:%s]: Found existing match %s", userID, matches[0].MatchId)
			return marshalQuickMatch(QuickMatchResponse{MatchID: matches[0].MatchId})
		}
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameShardRing, map[string]interface{}{})
	if err != nil {
		logger.Error("QuickMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("QuickMatch [User:%s]: Created new match %s", userID, matchID)
	return marshalQuickMatch(QuickMatchResponse{MatchID: matchID, IsNew: true})
}

func marshalQuickMatch(resp QuickMatchResponse) (string, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
