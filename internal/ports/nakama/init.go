package nakama

import (
	"context"
	"database/sql"

	"shardring/internal/app"
	"shardring/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and the match handler for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	cfg := loadGameConfig(ctx, logger)
	if cfg.VoiceEnabled() {
		voiceService = app.NewVoiceService(cfg, nil)
	} else {
		logger.Info("Voice credentials not configured; %s is disabled.", RpcVoiceToken)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameShardRing, NewMatch); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("ShardRing Go module loaded.")
	return nil
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcVoiceToken, RpcGetVoiceToken)
}

// loadGameConfig reads the config file, overlays the runtime env and
// validates the result. Any failure falls back to the defaults.
func loadGameConfig(ctx context.Context, logger runtime.Logger) config.GameConfig {
	cfg, err := config.LoadGameConfig(GameConfigPath)
	if err != nil {
		logger.Warn("Could not load game config: %v", err)
		cfg = config.Default()
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if err := config.ApplyEnv(&cfg, env); err != nil {
			logger.Warn("Ignoring runtime env overrides: %v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid game config, using defaults: %v", err)
		def := config.Default()
		def.VoiceIssuer, def.VoiceDomain, def.VoiceSecret = cfg.VoiceIssuer, cfg.VoiceDomain, cfg.VoiceSecret
		return def
	}
	return cfg
}
