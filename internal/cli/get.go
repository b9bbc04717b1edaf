package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/config"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store/model"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

type GetOptions struct {
	GlobalOptions

	Output string
	Failed bool
	Limit  int
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:     "get (TYPE | TYPE/ID)",
		Short:   "Display journaled runs.",
		Example: "get runs\nget run/0b0b7f5e-5a43-4b53-9a0c-1d3b1b0e2f10 --failed -o yaml",
		Args:    cobra.ExactArgs(1),
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

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Failed, "failed", o.Failed, "Only show the failed outcomes of a run")
	fs.IntVar(&o.Limit, "limit", o.Limit, "Show at most this many runs (0 for all)")
}

// Validate only needs the journal settings, so the source and Device42
// settings are not checked.
func (o *GetOptions) Validate(args []string) error {
	if o.Config().Journal.Type == config.JournalNone {
		return errors.New("the run journal is disabled (JOURNAL_TYPE=none)")
	}

	if _, _, err := parseAndValidateKindId(args[0]); err != nil {
		return err
	}

	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	journal, err := openJournal(o.Config())
	if err != nil {
		return err
	}
	defer journal.Close()

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	switch {
	case kind == RunKind && id != nil:
		run, err := journal.Run().Get(ctx, *id)
		if err != nil {
			return fmt.Errorf("reading %s/%s: %w", kind, id, err)
		}
		if o.Failed {
			run.Outcomes = funk.Filter(run.Outcomes, func(oc model.Outcome) bool {
				return oc.Status == "failed"
			}).([]model.Outcome)
		}
		return printResource(os.Stdout, run, o.Output, func(w *tabwriter.Writer) { printOutcomesTable(w, run.Outcomes...) })
	case kind == RunKind:
		opts := store.NewRunQueryOptions().WithSortOrder(store.SortByStartedTime)
		runs, err := journal.Run().List(ctx, store.NewRunQueryFilter(), opts)
		if err != nil {
			return fmt.Errorf("listing %s: %w", plural(kind), err)
		}
		if o.Limit > 0 && len(runs) > o.Limit {
			runs = runs[len(runs)-o.Limit:]
		}
		return printResource(os.Stdout, runs, o.Output, func(w *tabwriter.Writer) { printRunsTable(w, runs...) })
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
}

func printResource(out io.Writer, v any, output string, table func(w *tabwriter.Writer)) error {
	switch output {
	case jsonFormat:
		marshalled, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(out, "%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(out, "%s\n", string(marshalled))
		return nil
	default:
		w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
		table(w)
		return w.Flush()
	}
}

func printRunsTable(w *tabwriter.Writer, runs ...model.Run) {
	fmt.Fprintln(w, "ID\tSTARTED\tFINISHED\tDRY RUN\tSUCCESS\tSKIPPED\tFAILED")
	for _, r := range runs {
		finished := ""
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\t%d\t%d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), finished, r.DryRun, r.Success, r.Skipped, r.Failed)
	}
}

func printOutcomesTable(w *tabwriter.Writer, outcomes ...model.Outcome) {
	fmt.Fprintln(w, "SEQ\tSTAGE\tENTITY\tNAME\tSTATUS\tREASON")
	for _, oc := range outcomes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", oc.Seq, oc.Stage, oc.Entity, oc.Name, oc.Status, oc.Reason)
	}
}
