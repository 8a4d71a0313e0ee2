package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/uqlt/translate"
)

// TranslationResult holds one backend's translation output. Exactly one
// of Query/Params (text backends) or Document (object backends) is set.
type TranslationResult struct {
	Backend  string         `json:"backend"`
	Query    string         `json:"query,omitempty"`
	Params   []any          `json:"params,omitempty"`
	Document map[string]any `json:"document,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	var backendFlag string

	cmd := &cobra.Command{
		Use:   "translate <query-file>",
		Short: "Translate a query document for one backend",
		Long: `Translate a UQL query document (JSON or YAML) into a backend-native
query: parameterized SQL/CQL/Cypher text for the text backends, a find
document for MongoDB, a search body for Elasticsearch.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, args[0], backendFlag, cmd)
		},
	}

	cmd.Flags().StringVarP(&backendFlag, "backend", "b", "", "target backend (required)")
	_ = cmd.MarkFlagRequired("backend")

	return cmd
}

func runTranslate(opts *RootOptions, path, backendName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	backend, err := translate.ParseBackend(backendName)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), translate.Backends())
		return WrapExitError(ExitCommandError, "unknown backend", err)
	}

	q, err := LoadQuery(path)
	if err != nil {
		code := ClassifyError(err)
		_ = formatter.Error(code, err.Error(), nil)
		if code == ErrCodeNotFound || code == ErrCodeReadFailed || code == ErrCodeDecodeError || code == ErrCodeNotObject {
			return WrapExitError(ExitCommandError, "loading query", err)
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	formatter.VerboseLog("Translating %s for %s", path, backend)

	tr, err := translate.New(backend)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "resolving backend", err)
	}

	artifact, err := tr.Translate(q)
	if err != nil {
		code := ClassifyError(err)
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	return outputArtifact(formatter, backend, artifact)
}

func outputArtifact(formatter *OutputFormatter, backend translate.Backend, artifact translate.Artifact) error {
	result := TranslationResult{Backend: string(backend)}
	switch a := artifact.(type) {
	case *translate.TextQuery:
		result.Query = a.Query
		result.Params = a.Params
	case *translate.ObjectQuery:
		result.Document = a.Doc
	default:
		return fmt.Errorf("unknown artifact type %T", artifact)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Text format
	if result.Document != nil {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result.Document)
	}

	fmt.Fprintln(formatter.Writer, result.Query)
	for i, p := range result.Params {
		fmt.Fprintf(formatter.Writer, "  param %d: %v\n", i+1, p)
	}
	return nil
}
