package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/querykit/internal/cli/output"
	intconfig "github.com/leapstack-labs/querykit/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a querykit.yaml configuration",
		Long: `Create a querykit.yaml configuration file with every setting and its
default value.

Use --example to also create sample requirement files, a SQL file to
format and a batch file.`,
		Example: `  # Initialize in current directory
  querykit init

  # Initialize with examples in a new directory
  querykit init queries --example

  # Overwrite an existing config
  querykit init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContextWithoutQuery(cmd).Renderer

			if example {
				return runInitExample(r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Also create example requirement, SQL and batch files")

	return cmd
}

// prepareInitDir creates dir and refuses to overwrite an existing config
// unless force is set.
func prepareInitDir(dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}
	return nil
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := prepareInitDir(dir, force); err != nil {
		return err
	}

	files, err := copyTemplate("minimal", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	for _, f := range files {
		r.StatusLine(f, "created")
	}

	r.Println()
	r.Success("querykit initialized!")
	r.Println()
	r.Println("Next steps:")
	r.Println("  1. Edit querykit.yaml to pick your database")
	r.Println("  2. Write requirements such as 'table: users' to a file")
	r.Println("  3. Run 'querykit build <file>'")
	return nil
}

func runInitExample(r *output.Renderer, dir string, force bool) error {
	if err := prepareInitDir(dir, force); err != nil {
		return err
	}

	files, err := copyTemplate("example", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	groups := groupTemplateFiles(files)

	for _, section := range []struct{ title, key string }{
		{"Configuration", "config"},
		{"Queries", "queries"},
		{"Batches", "batches"},
	} {
		if len(groups[section.key]) == 0 {
			continue
		}
		r.Header(2, section.title)
		for _, f := range groups[section.key] {
			r.StatusLine(f, "created")
		}
		r.Println()
	}

	r.Success("querykit initialized with examples!")
	r.Println()
	r.Println("Next steps:")
	r.Println("  querykit build queries/active_users.intent")
	r.Println("  querykit build queries/new_product.intent --type insert")
	r.Println("  querykit format queries/report.sql")
	r.Println("  querykit batch batch.yaml --show-sql")
	return nil
}
