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

// CalendarOptions holds flags for the calendar command.
type CalendarOptions struct {
	*RootOptions
	Database string
	From     string
	To       string
}

// NewCalendarCommand creates the calendar command.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalendarOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Render the display calendar for a date range",
		Long: `Render stored sessions and activities as display-ordered workout groups.

Planned sessions and completed activities become calendar items, paired
items collapse into one group, and groups sort in display order:
completed before planned, then load, duration, title, id. The first
item of each group is the top card.

Example:
  paceline calendar --db ./paceline.db --from 2024-06-01 --to 2024-06-30 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.From, "from", "", "start of date range, inclusive (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&opts.To, "to", "", "end of date range, inclusive (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runCalendar(opts *CalendarOptions, cmd *cobra.Command) error {
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

	items := normalize.Items(sessions, activities)
	groups := engine.GroupItems(items)
	formatter.VerboseLog("Grouped %d item(s) into %d group(s)", len(items), len(groups))

	if formatter.Format == "json" {
		snapshot, err := engine.SnapshotGroups(groups)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("snapshot failed: %v", err), nil)
			return WrapExitError(ExitCommandError, "snapshot failed", err)
		}
		return formatter.SuccessRaw(snapshot)
	}

	printGroupsText(formatter, groups)
	return nil
}

func printGroupsText(formatter *OutputFormatter, groups []model.GroupedCalendarItem) {
	if len(groups) == 0 {
		fmt.Fprintln(formatter.Writer, "no sessions or activities in range")
		return
	}
	for _, g := range groups {
		top := g.Top()
		fmt.Fprintf(formatter.Writer, "%s  %-9s %-10s %s", top.StartLocal, top.Kind, top.Sport, itemLabel(top))
		if len(g.Items) > 1 {
			fmt.Fprintf(formatter.Writer, " (+%d paired)", len(g.Items)-1)
		}
		fmt.Fprintln(formatter.Writer)
	}
}

func itemLabel(item model.CalendarItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}
