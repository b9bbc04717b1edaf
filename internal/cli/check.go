package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type CheckOptions struct {
	GlobalOptions
}

func DefaultCheckOptions() *CheckOptions {
	return &CheckOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdCheck() *cobra.Command {
	o := DefaultCheckOptions()
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the RackTables database and Device42 are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *CheckOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

func (o *CheckOptions) Run(ctx context.Context, args []string) error {
	cfg := o.Config()
	log := zap.S().Named("check")
	var errs []error

	reader := newSource(cfg)
	defer reader.Close()
	if err := reader.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("racktables database %s: %w", cfg.Source.Host, err))
	} else {
		fmt.Printf("RackTables database %s/%s: ok\n", cfg.Source.Host, cfg.Source.Name)
	}

	if cfg.Migration.DryRun {
		log.Info("dry run: Device42 not checked")
		return errors.Join(errs...)
	}

	buildings, err := newClient(cfg).Buildings(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("device42 %s: %w", cfg.Device42.URL, err))
	} else {
		fmt.Printf("Device42 %s: ok (%d buildings)\n", cfg.Device42.URL, len(buildings))
	}

	return errors.Join(errs...)
}
