package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/normalize"
	"github.com/paceline/paceline/internal/schema"
	"github.com/paceline/paceline/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database   string
	Sessions   string
	Activities string
	Strict     bool
}

// ImportResult summarizes an import run.
type ImportResult struct {
	SessionsImported   int `json:"sessions_imported"`
	SessionsDropped    int `json:"sessions_dropped"`
	ActivitiesImported int `json:"activities_imported"`
	ActivitiesDropped  int `json:"activities_dropped"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("imported %d session(s) (%d dropped), %d activity(ies) (%d dropped)",
		r.SessionsImported, r.SessionsDropped, r.ActivitiesImported, r.ActivitiesDropped)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalize and store calendar payloads",
		Long: `Import planned-session and completed-activity payloads into the snapshot database.

Payloads are JSON arrays of objects in any supported backend shape.
Records are normalized to canonical form before storage; malformed
records (missing id, date, or sport) are dropped and counted.
Cancelled and deleted sessions are filtered at this boundary.

Example:
  paceline import --db ./paceline.db --sessions plan.json --activities log.json
  paceline import --db ./paceline.db --sessions plan.json --strict`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Sessions, "sessions", "", "path to planned-session payload (JSON array)")
	cmd.Flags().StringVar(&opts.Activities, "activities", "", "path to completed-activity payload (JSON array)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject the whole payload on any schema violation")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Sessions == "" && opts.Activities == "" {
		_ = formatter.Error(ErrCodeGeneric, "nothing to import: provide --sessions and/or --activities", nil)
		return NewExitError(ExitCommandError, "nothing to import")
	}

	var sessionRecords, activityRecords []normalize.RawRecord
	if opts.Sessions != "" {
		records, err := LoadRecords(opts.Sessions)
		if err != nil {
			return loadFailure(formatter, err)
		}
		sessionRecords = records
		formatter.VerboseLog("Loaded %d session record(s) from %s", len(records), opts.Sessions)
	}
	if opts.Activities != "" {
		records, err := LoadRecords(opts.Activities)
		if err != nil {
			return loadFailure(formatter, err)
		}
		activityRecords = records
		formatter.VerboseLog("Loaded %d activity record(s) from %s", len(records), opts.Activities)
	}

	if opts.Strict {
		var findings []schema.ValidationError
		findings = append(findings, schema.ValidateSessions(asMaps(sessionRecords))...)
		findings = append(findings, schema.ValidateActivities(asMaps(activityRecords))...)
		if len(findings) > 0 {
			return outputValidationErrors(formatter, findings)
		}
	}

	sessions := normalize.Sessions(sessionRecords)
	activities := normalize.Activities(activityRecords)

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
	if err := st.PutSessions(ctx, sessions.Sessions); err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to store sessions: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to store sessions", err)
	}
	if err := st.PutActivities(ctx, activities.Activities); err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to store activities: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to store activities", err)
	}

	return formatter.Success(ImportResult{
		SessionsImported:   len(sessions.Sessions),
		SessionsDropped:    sessions.Dropped,
		ActivitiesImported: len(activities.Activities),
		ActivitiesDropped:  activities.Dropped,
	})
}

// loadFailure reports a payload load error and maps it to exit code 2.
func loadFailure(formatter *OutputFormatter, err error) error {
	if loadErr, ok := err.(*LoadError); ok {
		_ = formatter.Error(loadErr.Code, loadErr.Message, loadErr.Path)
		return WrapExitError(ExitCommandError, loadErr.Message, err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to load payload", err)
}
