package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errBatchFailed is returned when at least one batch item fails.
var errBatchFailed = errors.New("batch had failures")

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	ShowSQL bool
}

// batchFile is the on-disk shape of a batch. Defaults and each item's
// config are decoded on top of the loaded settings, so items only name the
// fields they change.
type batchFile struct {
	Defaults yaml.Node   `yaml:"defaults"`
	Items    []yaml.Node `yaml:"items"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Build many queries concurrently from a YAML file",
		Long: `Build every item of a YAML batch file concurrently and report the
results in input order.

A batch file has optional defaults and a list of items:

  defaults:
    database: postgresql
  items:
    - name: active users
      input: |
        table: users
        where: status = 'active'
    - name: new product
      input: |
        table: products
        columns: name, price
        values: ('Mouse', 29.99)
      config:
        query_type: insert

Items without an id get a generated one. The command fails when any item
fails.`,
		Example: `  querykit batch queries.yaml
  querykit batch queries.yaml --show-sql --concurrency 8
  querykit batch queries.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ShowSQL, "show-sql", false, "Print the generated SQL of each item")

	return cmd
}

func runBatch(cmd *cobra.Command, path string, opts *BatchOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	items, err := loadBatch(path, cmdCtx.Query)
	if err != nil {
		return err
	}

	results, err := cmdCtx.Engine.ProcessBatch(cmd.Context(), items)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.Result.Success {
			failed++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(results); err != nil {
			return err
		}
	} else {
		renderBatch(r, results, opts.ShowSQL)
		r.Println()
		if failed == 0 {
			r.Success(fmt.Sprintf("%d queries built", len(results)))
		} else {
			r.Error(fmt.Sprintf("%d of %d queries failed", failed, len(results)))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errBatchFailed, failed, len(results))
	}
	return nil
}

// loadBatch reads a batch file and resolves each item's config on top of base.
func loadBatch(path string, base core.Config) ([]engine.BatchItem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var file batchFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	if !file.Defaults.IsZero() {
		if err := file.Defaults.Decode(&base); err != nil {
			return nil, fmt.Errorf("invalid batch defaults: %w", err)
		}
	}

	items := make([]engine.BatchItem, 0, len(file.Items))
	for i := range file.Items {
		item := engine.BatchItem{Config: base}
		if err := file.Items[i].Decode(&item); err != nil {
			return nil, fmt.Errorf("invalid batch item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("batch file %s has no items", path)
	}
	return items, nil
}

func renderBatch(r *output.Renderer, results []engine.BatchResult, showSQL bool) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status, complexity := "ok", "-"
		if !res.Result.Success {
			status = "failed: " + res.Result.Error
		} else if res.Result.QueryInfo != nil {
			complexity = string(res.Result.QueryInfo.Complexity)
		}
		rows = append(rows, []string{
			shortID(res.ID),
			res.Name,
			status,
			complexity,
			res.Duration.Round(time.Microsecond).String(),
		})
	}
	r.Table([]string{"ID", "Name", "Status", "Complexity", "Duration"}, rows)

	if !showSQL {
		return
	}
	for _, res := range results {
		if !res.Result.Success {
			continue
		}
		r.Println()
		label := res.Name
		if label == "" {
			label = res.ID
		}
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println(output.FormatHeader(2, label))
			r.Println()
			r.Println(output.FormatCodeBlock("sql", res.Result.Query))
			continue
		}
		r.Println(r.Styles().Bold.Render(label))
		r.Println(res.Result.Query)
	}
}

// shortID truncates generated UUIDs for table display.
func shortID(id string) string {
	if len(id) == 36 && id[8] == '-' {
		return id[:8]
	}
	return id
}
