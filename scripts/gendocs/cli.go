package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/leapstack-labs/querykit/internal/cli"
	"github.com/leapstack-labs/querykit/internal/cli/config"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// intentCommands read intent lines and link to the intent reference.
var intentCommands = map[string]bool{"build": true, "batch": true, "repl": true}

// generateCLIDocs writes the CLI overview and one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	settings := settingKeys()

	pages := map[string][]byte{"index.md": cliIndex(root, settings)}
	for _, cmd := range documented(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd, settings)
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documented returns the commands that get a page.
func documented(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// settingKeys returns the querykit.yaml keys that feed core.Config, read
// from its koanf tags.
func settingKeys() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeFor[core.Config]()
	for i := range t.NumField() {
		if key := t.Field(i).Tag.Get("koanf"); key != "" {
			keys[key] = true
		}
	}
	return keys
}

func cliIndex(root *cobra.Command, settings map[string]bool) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for querykit")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/querykit/cmd/querykit@latest")

	cmds := documented(root)
	for _, g := range root.Groups() {
		var rows [][]string
		for _, cmd := range cmds {
			if cmd.GroupID == g.ID {
				rows = append(rows, commandRow(cmd))
			}
		}
		w.Header(2, strings.TrimSuffix(g.Title, ":"))
		w.Table([]string{"Command", "Description"}, rows)
	}

	var other [][]string
	for _, cmd := range cmds {
		if cmd.GroupID == "" {
			other = append(other, commandRow(cmd))
		}
	}
	if len(other) > 0 {
		w.Header(2, "Other commands")
		w.Table([]string{"Command", "Description"}, other)
	}

	query, global := splitFlags(root.PersistentFlags(), settings)

	w.Header(2, "Query settings")
	w.Paragraph("These flags select what is built and how it is rendered. Each one overrides the " +
		"matching `querykit.yaml` key and environment variable; the precedence is flags, then " +
		"environment, then the config file, then built-in defaults.")
	w.Table([]string{"Flag", "Setting", "Environment", "Default", "Description"}, settingRows(query))

	w.Header(2, "Global options")
	w.Table([]string{"Flag", "Default", "Description"}, flagRows(global))

	w.Header(2, "Exit status")
	w.Paragraph("querykit exits 1 when a build fails, when any batch item fails, and on usage or " +
		"configuration errors. The reason is printed to stderr, or in the `error` field with " +
		"`--output json`.")

	return w.Bytes()
}

func commandRow(cmd *cobra.Command) []string {
	return []string{
		fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
		cleanDescription(cmd.Short),
	}
}

func commandPage(cmd *cobra.Command, settings map[string]bool) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)
	w.CodeBlock("bash", cmd.UseLine())

	if intentCommands[cmd.Name()] {
		w.Paragraph("Input is read as intent lines. See the [intent reference](/reference/intent) " +
			"for the line prefixes each query type accepts.")
	}

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, a := range cmd.Aliases {
			aliases = append(aliases, InlineCode(a))
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table([]string{"Flag", "Default", "Description"}, flagRows(visibleFlags(cmd.LocalFlags())))
	}

	if cmd.HasInheritedFlags() {
		query, global := splitFlags(cmd.InheritedFlags(), settings)
		if len(query) > 0 {
			w.Header(2, "Query settings")
			w.Paragraph("Shared by every command; see the [CLI reference](/cli/#query-settings).")
			names := make([]string, 0, len(query))
			for _, f := range query {
				names = append(names, InlineCode("--"+f.Name))
			}
			w.Paragraph(strings.Join(names, " "))
		}
		if len(global) > 0 {
			w.Header(2, "Global options")
			w.Table([]string{"Flag", "Default", "Description"}, flagRows(global))
		}
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return w.Bytes()
}

// splitFlags separates flags that set a querykit.yaml key from the rest.
func splitFlags(fs *pflag.FlagSet, settings map[string]bool) (query, global []*pflag.Flag) {
	for _, f := range visibleFlags(fs) {
		if settings[config.FlagKey(f.Name)] {
			query = append(query, f)
		} else {
			global = append(global, f)
		}
	}
	return query, global
}

func visibleFlags(fs *pflag.FlagSet) []*pflag.Flag {
	var out []*pflag.Flag
	fs.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			out = append(out, f)
		}
	})
	return out
}

func settingRows(flags []*pflag.Flag) [][]string {
	rows := make([][]string, 0, len(flags))
	for _, f := range flags {
		key := config.FlagKey(f.Name)
		rows = append(rows, []string{
			flagName(f),
			InlineCode(key),
			InlineCode(envName(key)),
			flagDefault(f),
			cleanDescription(f.Usage),
		})
	}
	return rows
}

func flagRows(flags []*pflag.Flag) [][]string {
	rows := make([][]string, 0, len(flags))
	for _, f := range flags {
		rows = append(rows, []string{flagName(f), flagDefault(f), cleanDescription(f.Usage)})
	}
	return rows
}

// flagName renders `--output` (`-o`), or `--type` without a shorthand.
func flagName(f *pflag.Flag) string {
	name := InlineCode("--" + f.Name)
	if f.Shorthand != "" {
		name += " (" + InlineCode("-"+f.Shorthand) + ")"
	}
	return name
}

func flagDefault(f *pflag.Flag) string {
	switch {
	case f.DefValue == "", f.DefValue == "[]":
		return "-"
	case f.Value.Type() == "bool":
		return f.DefValue
	default:
		return InlineCode(f.DefValue)
	}
}

// cleanExample strips the indentation cobra examples are written with.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")

	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
