package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/engine"
	"github.com/paceline/paceline/internal/model"
	"github.com/paceline/paceline/internal/normalize"
	"github.com/paceline/paceline/internal/store"
)

// ConflictsOptions holds flags for the conflicts command.
type ConflictsOptions struct {
	*RootOptions
	Database   string
	From       string
	To         string
	Candidates string
}

// NewConflictsCommand creates the conflicts command.
func NewConflictsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConflictsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Check candidate sessions against the stored calendar",
		Long: `Check a batch of candidate sessions for scheduling conflicts.

Candidates are planned-session records about to be created or moved.
Each is checked against the stored calendar and against the other
candidates for time overlap, all-day overlap regardless of sport, and
multiple key sessions on one day. A moved session never conflicts
with its own stored copy.

Exits 1 when conflicts are found, 0 when the batch is clean.

Example:
  paceline conflicts --db ./paceline.db --from 2024-06-01 --to 2024-06-30 --candidates new.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConflicts(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.From, "from", "", "start of date range, inclusive (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&opts.To, "to", "", "end of date range, inclusive (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&opts.Candidates, "candidates", "", "path to candidate-session payload (JSON array, required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("candidates")

	return cmd
}

func runConflicts(opts *ConflictsOptions, cmd *cobra.Command) error {
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

	records, err := LoadRecords(opts.Candidates)
	if err != nil {
		return loadFailure(formatter, err)
	}
	candidates := normalize.Sessions(records)
	formatter.VerboseLog("Loaded %d candidate(s), %d dropped", len(candidates.Sessions), candidates.Dropped)
	if len(candidates.Sessions) == 0 {
		_ = formatter.Error(ErrCodeNoRecords, "no usable candidate sessions in payload", nil)
		return NewExitError(ExitCommandError, "no usable candidate sessions")
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
	existing, err := st.SessionsBetween(ctx, from, to)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to read sessions: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to read sessions", err)
	}

	conflicts := engine.DetectConflicts(existing, candidates.Sessions)

	if formatter.Format == "json" {
		snapshot, err := engine.SnapshotConflicts(conflicts)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("snapshot failed: %v", err), nil)
			return WrapExitError(ExitCommandError, "snapshot failed", err)
		}
		if err := formatter.SuccessRaw(snapshot); err != nil {
			return err
		}
	} else {
		printConflictsText(formatter, conflicts)
	}

	if len(conflicts) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d conflict(s) detected", len(conflicts)))
	}
	return nil
}

func printConflictsText(formatter *OutputFormatter, conflicts []model.Conflict) {
	if len(conflicts) == 0 {
		fmt.Fprintln(formatter.Writer, "✓ No conflicts")
		return
	}
	fmt.Fprintf(formatter.Writer, "✗ %d conflict(s)\n\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(formatter.Writer, "  %s %s: %q vs %q\n", c.Date, c.Reason, c.ExistingSessionTitle, c.CandidateSessionTitle)
	}
}
