package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/punchamoorthee/revenueops/internal/engine"
	"github.com/punchamoorthee/revenueops/internal/models"
	"github.com/punchamoorthee/revenueops/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type evaluateOptions struct {
	file     string
	format   string
	strict   bool
	accounts string
}

var evalOpts evaluateOptions

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Print the journal entries for a fact file",
	Long: `Read a YAML or JSON fact file and print the journal entries it implies.

Formats:
- table: aligned text, dollars and DD/MM/YYYY dates
- beancount: one transaction per entry
- json: the same array the HTTP API returns

Example:
  revenue evaluate --file facts.yaml --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate(cmd.OutOrStdout(), evalOpts)
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalOpts.file, "file", "f", "", "fact file (YAML or JSON)")
	evaluateCmd.Flags().StringVar(&evalOpts.format, "format", "table", "output format: table | beancount | json")
	evaluateCmd.Flags().BoolVar(&evalOpts.strict, "strict", false, "reject over-receipts and out-of-order dates")
	evaluateCmd.Flags().StringVar(&evalOpts.accounts, "accounts", "", "YAML account mapping for beancount output")
	_ = evaluateCmd.MarkFlagRequired("file")
}

func runEvaluate(w io.Writer, opts evaluateOptions) error {
	switch opts.format {
	case "table", "beancount", "json":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	req, err := readFacts(opts.file)
	if err != nil {
		return err
	}
	facts, err := req.ToFacts()
	if err != nil {
		return err
	}

	trace, err := engine.New(engine.WithStrictConsistency(opts.strict)).Trace(facts)
	if err != nil {
		return err
	}
	for _, rule := range trace.Rules {
		logger.Debug("rule applied",
			zap.String("group", rule.Group),
			zap.String("variant", rule.Variant),
			zap.Int("entries", rule.Entries),
		)
	}

	switch opts.format {
	case "beancount":
		chart := render.DefaultChart()
		if opts.accounts != "" {
			if chart, err = render.LoadChart(opts.accounts); err != nil {
				return err
			}
		}
		return render.Beancount(w, trace.Entries, chart)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models.FromEntries(trace.Entries))
	default:
		return render.Table(w, trace.Entries)
	}
}

// readFacts decodes a fact file. JSON is valid YAML, so one decoder serves both.
func readFacts(path string) (models.FactsRequest, error) {
	var req models.FactsRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read fact file: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse fact file: %w", err)
	}
	return req, nil
}
