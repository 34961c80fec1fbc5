package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paceline/paceline/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []schema.ValidationError `json:"errors,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Sessions   string
	Activities string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate payloads without importing",
		Long: `Validate calendar payloads against the record schema without storing anything.

Checks required fields (id, date, sport under any supported key),
date and clock formats, field types, and the session status enum.
Faster than a full import for development feedback.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateCmd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sessions, "sessions", "", "path to planned-session payload (JSON array)")
	cmd.Flags().StringVar(&opts.Activities, "activities", "", "path to completed-activity payload (JSON array)")

	return cmd
}

func runValidateCmd(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Sessions == "" && opts.Activities == "" {
		_ = formatter.Error(ErrCodeGeneric, "nothing to validate: provide --sessions and/or --activities", nil)
		return NewExitError(ExitCommandError, "nothing to validate")
	}

	var findings []schema.ValidationError
	if opts.Sessions != "" {
		records, err := LoadRecords(opts.Sessions)
		if err != nil {
			return loadFailure(formatter, err)
		}
		formatter.VerboseLog("Validating %d session record(s) from %s", len(records), opts.Sessions)
		findings = append(findings, schema.ValidateSessions(asMaps(records))...)
	}
	if opts.Activities != "" {
		records, err := LoadRecords(opts.Activities)
		if err != nil {
			return loadFailure(formatter, err)
		}
		formatter.VerboseLog("Validating %d activity record(s) from %s", len(records), opts.Activities)
		findings = append(findings, schema.ValidateActivities(asMaps(records))...)
	}

	if len(findings) > 0 {
		return outputValidationErrors(formatter, findings)
	}
	return outputValidateSuccess(formatter)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ All records valid")
	return nil
}

// outputValidationErrors outputs validation findings.
// Findings are domain failures, not command errors: exit code 1.
func outputValidationErrors(formatter *OutputFormatter, errs []schema.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
