package main

import (
	"context"
	"os"

	"pawn-ledger/internal/app/runtime"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app, err := runtime.New(ctx)
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedInitializingRuntime, err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.CtxError(ctx, "app stopped with error", err)
		os.Exit(1)
	}
}
