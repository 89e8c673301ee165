package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Process exit codes.
const (
	exitReachable    = 0
	exitNotReachable = 1
	exitError        = 2
	exitInterrupted  = 130
)

var errNotReachable = errors.New("target is not reachable")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand(os.Stdout, os.Getenv).ExecuteContext(ctx)
	cancel()

	code := exitCode(err)
	if code == exitError {
		slog.Error("ping-url failed", slog.Any("err", err))
	}

	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitReachable
	case errors.Is(err, errNotReachable):
		return exitNotReachable
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitError
	}
}
