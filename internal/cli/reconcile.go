package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/engine"
	"github.com/paceline/paceline/internal/model"
	"github.com/paceline/paceline/internal/store"
)

// ReconcileOptions holds flags for the reconcile command.
type ReconcileOptions struct {
	*RootOptions
	Database string
	From     string
	To       string
	Today    string

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens engine.TokenGenerator
}

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReconcileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile stored sessions against activities",
		Long: `Reconcile planned sessions against completed activities for a date range.

Reads the snapshot database, pairs sessions with activities by explicit
link, and emits one execution summary per planned or completed item,
grouped by day in ascending date order. JSON output is canonical:
byte-identical across runs over the same stored data.

Example:
  paceline reconcile --db ./paceline.db --from 2024-06-01 --to 2024-06-30
  paceline reconcile --db ./paceline.db --from 2024-06-01 --to 2024-06-30 --today 2024-06-15 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.From, "from", "", "start of date range, inclusive (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&opts.To, "to", "", "end of date range, inclusive (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&opts.Today, "today", "", "reference date for MISSED vs PLANNED_ONLY (defaults to the wall clock)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runReconcile(opts *ReconcileOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	from, err := model.ParseDay(opts.From)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("invalid --from: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid --from", err)
	}
	to, err := model.ParseDay(opts.To)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("invalid --to: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid --to", err)
	}
	if to.Before(from) {
		_ = formatter.Error(ErrCodeGeneric, "--to must not precede --from", nil)
		return NewExitError(ExitCommandError, "--to must not precede --from")
	}

	today := opts.Today
	if today == "" {
		today = time.Now().Format("2006-01-02")
	}

	rec, err := newReconciler(today, opts.Tokens)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("invalid --today: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid --today", err)
	}

	slog.Info("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to open database: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sessions, err := st.SessionsBetween(ctx, from, to)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to read sessions: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to read sessions", err)
	}
	activities, err := st.ActivitiesBetween(ctx, from, to)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to read activities: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to read activities", err)
	}
	formatter.VerboseLog("Reconciling %d session(s) against %d activity(ies)", len(sessions), len(activities))

	days, err := rec.Reconcile(sessions, activities)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("reconciliation failed: %v", err), nil)
		return WrapExitError(ExitCommandError, "reconciliation failed", err)
	}

	if formatter.Format == "json" {
		// Canonical snapshot bytes, emitted raw. Re-encoding through the
		// response envelope would break byte-level idempotence.
		snapshot, err := engine.SnapshotDays(days)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("snapshot failed: %v", err), nil)
			return WrapExitError(ExitCommandError, "snapshot failed", err)
		}
		return formatter.SuccessRaw(snapshot)
	}

	printDaysText(formatter, days)
	return nil
}

func newReconciler(today string, tokens engine.TokenGenerator) (*engine.Reconciler, error) {
	if tokens != nil {
		return engine.NewReconciler(today, engine.WithTokenGenerator(tokens))
	}
	return engine.NewReconciler(today)
}

func printDaysText(formatter *OutputFormatter, days []engine.DaySummary) {
	if len(days) == 0 {
		fmt.Fprintln(formatter.Writer, "no sessions or activities in range")
		return
	}
	for _, d := range days {
		fmt.Fprintf(formatter.Writer, "%s\n", d.Date)
		for _, s := range d.Summaries {
			fmt.Fprintf(formatter.Writer, "  %-22s %s\n", s.State, summaryLabel(s))
			if s.Deltas != nil {
				fmt.Fprintf(formatter.Writer, "    duration %+ds", s.Deltas.DurationSeconds)
				if s.Deltas.DistanceMeters != nil {
					fmt.Fprintf(formatter.Writer, ", distance %+dm", *s.Deltas.DistanceMeters)
				}
				fmt.Fprintln(formatter.Writer)
			}
		}
	}
}

// summaryLabel picks the most informative title for text output.
func summaryLabel(s model.ExecutionSummary) string {
	switch {
	case s.Activity != nil && s.Activity.Title != "":
		return s.Activity.Title
	case s.Planned != nil && s.Planned.Title != "":
		return s.Planned.Title
	case s.Activity != nil:
		return s.Activity.ID
	case s.Planned != nil:
		return s.Planned.ID
	}
	return "(empty)"
}
