package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robert-malhotra/go-quake-client/internal/config"
	quakeclient "github.com/robert-malhotra/go-quake-client/pkg/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("QUAKE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	client, err := quakeclient.New(cfg.ClientOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tui := NewTUI(ctx, client, cfg.MinMagnitude)
	go func() {
		<-ctx.Done()
		tui.Stop()
	}()

	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
