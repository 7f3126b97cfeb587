// Command nakama builds the shardring plugin loaded by the Nakama server.
package main

import (
	"context"
	"database/sql"

	"shardring/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule is the symbol Nakama looks up when it opens the plugin.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := nakama.InitModule(ctx, logger, db, nk, initializer); err != nil {
		logger.Error("InitModule: shardring failed to register: %v", err)
		return err
	}
	return nil
}

// main is unused when built with -buildmode=plugin; it lets `go build ./...` link the package.
func main() {}
