package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	command := NewRT2D42Command()
	if err := command.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func NewRT2D42Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rt2d42 [flags] [options]",
		Short: "rt2d42 migrates a RackTables inventory into Device42.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdMigrate())
	cmd.AddCommand(cli.NewCmdCheck())
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
