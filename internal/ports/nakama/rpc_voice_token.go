package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"shardring/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used for RPC errors.
const (
	codeInvalidArgument    = 3
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)

// voiceService is set by InitModule when voice credentials are configured.
var voiceService *app.VoiceService

type voiceTokenRequest struct {
	Action  string `json:"action"`
	MatchID string `json:"match_id"`
}

type voiceTokenResponse struct {
	Token string `json:"token"`
}

// RpcGetVoiceToken returns a signed voice token for the caller.
// Payload: {"action": "login" | "join", "match_id": "..."}; match_id is
// required for join.
func RpcGetVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", codeUnauthenticated)
	}

	var req voiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	if req.Action == "" {
		req.Action = app.VoiceActionLogin
	}

	token, err := voiceService.GenerateToken(userID, req.Action, req.MatchID)
	if err != nil {
		if errors.Is(err, app.ErrVoiceDisabled) {
			return "", runtime.NewError(err.Error(), codeFailedPrecondition)
		}
		logger.Warn("VoiceToken [User:%s]: %v", userID, err)
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	b, err := json.Marshal(voiceTokenResponse{Token: token})
	if err != nil {
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(b), nil
}
