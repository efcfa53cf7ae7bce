package main

import (
	"context"
	"os/signal"
	"syscall"

	"barberqueue/cmd/command"
	"barberqueue/config"
	"barberqueue/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	root := &cobra.Command{
		Use:          "barberqueue",
		Short:        "Walk-in queue coordination server",
		SilenceUsage: true,
	}
	root.AddCommand(command.Serve{Logger: logger}.Command(ctx))

	if err := root.Execute(); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}
