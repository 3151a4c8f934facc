package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dropDatabas3/mailerctl/internal/command"
	"github.com/dropDatabas3/mailerctl/internal/observability/logger"
)

// version se setea con -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := command.NewRootCommand(command.Options{Version: version})
	code := command.Execute(ctx, root)

	stop()
	_ = logger.Sync()
	os.Exit(code)
}
