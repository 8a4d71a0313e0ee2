package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/uqlt/translate"
	"github.com/roach88/uqlt/uql"
)

// BackendCapabilities lists the operators one backend supports.
type BackendCapabilities struct {
	Backend   string   `json:"backend"`
	Kind      string   `json:"kind"` // "text" or "object"
	Operators []string `json:"operators"`
}

// NewBackendsCommand creates the backends command.
func NewBackendsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List backends and their operator support",
		Long: `List every translation backend together with the operators it
supports. Operators outside a backend's set are rejected at translate
time, never silently dropped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackends(rootOpts, cmd)
		},
	}

	return cmd
}

func runBackends(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	caps := make([]BackendCapabilities, 0, len(translate.Backends()))
	for _, b := range translate.Backends() {
		entry := BackendCapabilities{
			Backend: string(b),
			Kind:    backendKind(b),
		}
		for _, op := range uql.Operators() {
			if translate.Supports(b, op) {
				entry.Operators = append(entry.Operators, string(op))
			}
		}
		caps = append(caps, entry)
	}

	if formatter.Format == "json" {
		return formatter.Success(caps)
	}

	// Text format: operator × backend support matrix.
	w := tabwriter.NewWriter(formatter.Writer, 2, 4, 2, ' ', 0)
	fmt.Fprint(w, "OPERATOR")
	for _, b := range translate.Backends() {
		fmt.Fprintf(w, "\t%s", b)
	}
	fmt.Fprintln(w)

	for _, op := range uql.Operators() {
		fmt.Fprint(w, string(op))
		for _, b := range translate.Backends() {
			mark := "-"
			if translate.Supports(b, op) {
				mark = "x"
			}
			fmt.Fprintf(w, "\t%s", mark)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// backendKind reports whether a backend produces query text or a
// structured document.
func backendKind(b translate.Backend) string {
	switch b {
	case translate.BackendMongoDB, translate.BackendElasticsearch:
		return "object"
	default:
		return "text"
	}
}
