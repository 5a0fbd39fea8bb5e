package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tvenergy/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "local-runner",
		Short:         "Render the TV energy charts without running the server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExportCmd(), newRenderCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("local-runner failed", err)
		os.Exit(1)
	}
}
