package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/uqlt/uql"
)

// ValidationResult holds validation results for one query document.
type ValidationResult struct {
	Valid  bool       `json:"valid"`
	From   string     `json:"from,omitempty"`
	Errors []CLIError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <query-file>",
		Short: "Validate a query document without translating it",
		Long: `Validate a UQL query document (JSON or YAML) without translating it.

Checks the document shape, identifier grammar, operator/value arity and
field-type compatibility. Backend-specific constraints (operator support,
pagination limits) are only checked by translate.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	doc, err := LoadDocument(path)
	if err != nil {
		code := ClassifyError(err)
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading query", err)
	}

	formatter.VerboseLog("Loaded query document from %s", path)

	q, err := uql.ParseDocument(doc)
	if err != nil {
		code := ClassifyError(err)
		if opts.Format == "json" {
			result := ValidationResult{
				Valid:  false,
				Errors: []CLIError{{Code: code, Message: err.Error()}},
			}
			response := CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: code, Message: err.Error()},
			}
			encoder := json.NewEncoder(formatter.Writer)
			encoder.SetIndent("", "  ")
			if encErr := encoder.Encode(response); encErr != nil {
				return encErr
			}
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Query invalid")
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, err.Error())
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, From: q.From})
	}
	fmt.Fprintf(formatter.Writer, "✓ Query valid (from %s)\n", q.From)
	return nil
}
