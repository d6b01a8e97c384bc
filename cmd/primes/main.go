package main

import (
	"context"
	"os"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/primes/internal/primecli"
)

func main() {
	ctx := logging.ContextWith(context.Background(), logging.Field("app", "primes"))
	c, err := primecli.LoadConfig()
	if err != nil {
		logger.Fatal(ctx, "error in main", logging.ErrField(err))
		os.Exit(cli.ExitCodeBadRequest)
	}
	cli.Main(ctx, primecli.Mux(c))
}
