// Command askgen generates interactive prompt methods for annotated Go
// structs. It is meant to be run from go:generate:
//
//	//go:generate go run github.com/goliatone/go-askgen/cmd/askgen
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
