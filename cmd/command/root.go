package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iota-uz/emprecords/pkg/commands"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "command",
		Short:         "Maintenance tool for the employee records service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(commands.NewUtilityCommands()...)
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}
