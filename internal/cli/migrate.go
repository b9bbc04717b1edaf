package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/migration"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/report"
	"github.com/osanchez42/Racktables-to-Device42-Migration/pkg/metrics"
)

type MigrateOptions struct {
	GlobalOptions

	OptionsFile string
	DryRun      bool
	Stages      []string
	Report      string
}

func DefaultMigrateOptions() *MigrateOptions {
	return &MigrateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdMigrate() *cobra.Command {
	o := DefaultMigrateOptions()
	cmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Migrate RackTables inventory into Device42",
		Example: "migrate --stages racks,devices --report run.xlsx\nmigrate --dry-run --options mapping.yaml",
		Args:    cobra.NoArgs,
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

func (o *MigrateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.OptionsFile, "options", o.OptionsFile, "YAML file overriding the migration settings")
	fs.BoolVar(&o.DryRun, "dry-run", o.DryRun, "Run every stage without sending anything to Device42")
	fs.StringSliceVar(&o.Stages, "stages", o.Stages, fmt.Sprintf("Stages to run, in any order. One or more of %v", migration.StageNames))
	fs.StringVar(&o.Report, "report", o.Report, "Write a run report to this .csv or .xlsx file")
}

func (o *MigrateOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if o.OptionsFile != "" {
		if err := o.Config().LoadOptionsFile(o.OptionsFile); err != nil {
			return fmt.Errorf("reading options file %s: %w", o.OptionsFile, err)
		}
	}
	if o.DryRun {
		o.Config().Migration.DryRun = true
	}
	return nil
}

func (o *MigrateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	for _, stage := range o.Stages {
		if !funk.ContainsString(migration.StageNames, stage) {
			return fmt.Errorf("unknown stage %q: valid stages are %v", stage, migration.StageNames)
		}
	}

	if o.Report != "" {
		if _, err := report.FormatFromPath(o.Report); err != nil {
			return err
		}
	}
	return nil
}

func (o *MigrateOptions) Run(ctx context.Context, args []string) error {
	cfg := o.Config()
	log := zap.S().Named("migrate")
	defer func() { _ = zap.L().Sync() }()

	engine, err := migration.NewPipeline(o.Stages...)
	if err != nil {
		return err
	}

	reader := newSource(cfg)
	defer reader.Close()

	journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if journal != nil {
		defer journal.Close()
		if err := metrics.RegisterJournalCollector(journal); err != nil {
			log.Warnw("journal metrics disabled", "error", err)
		}
	}

	runID := uuid.New()
	dryRun := cfg.Migration.DryRun
	log.Infow("starting migration", "run", runID, "dry_run", dryRun, "stages", engine.Stages())

	state := migration.NewState(reader, newSink(cfg), migrationOptions(cfg))
	summary := engine.Run(ctx, state)

	totals := summary.Totals()
	log.Infow("migration finished",
		"run", runID,
		"success", totals.Success,
		"skipped", totals.Skipped,
		"failed", totals.Failed,
		"duration", summary.FinishedAt.Sub(summary.StartedAt))
	printSummary(os.Stdout, summary)

	// the run is recorded even when it was interrupted
	done := context.WithoutCancel(ctx)
	var errs []error

	if journal != nil {
		if err := recordRun(done, journal, runID, dryRun, engine.Stages(), summary); err != nil {
			log.Errorw("failed to journal run", "run", runID, "error", err)
			errs = append(errs, err)
		}
	}

	if o.Report != "" {
		data := &report.Data{RunID: runID, DryRun: dryRun, Summary: summary}
		if err := report.WriteFile(o.Report, data); err != nil {
			log.Errorw("failed to write report", "path", o.Report, "error", err)
			errs = append(errs, err)
		} else {
			log.Infow("report written", "path", o.Report)
		}
	}

	if cfg.Metrics.PushgatewayURL != "" {
		if err := metrics.Push(done, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			log.Errorw("failed to push metrics", "error", err)
			errs = append(errs, err)
		}
	}

	if ctx.Err() != nil {
		errs = append(errs, fmt.Errorf("migration interrupted: %w", ctx.Err()))
	}
	return errors.Join(errs...)
}

func printSummary(out io.Writer, summary migration.Summary) {
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ENTITY\tSUCCESS\tSKIPPED\tFAILED")
	for _, e := range summary.ByEntity() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", e.Entity, e.Success, e.Skipped, e.Failed)
	}
	totals := summary.Totals()
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\n", totals.Success, totals.Skipped, totals.Failed)
	w.Flush()

	failed := summary.Failed()
	if len(failed) == 0 {
		return
	}
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "STAGE\tENTITY\tNAME\tREASON")
	for _, f := range failed {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Stage, f.Entity, f.Name, f.Reason)
	}
	w.Flush()
}
