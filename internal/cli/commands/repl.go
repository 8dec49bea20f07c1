package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/querykit/internal/cli/output"
	"github.com/leapstack-labs/querykit/internal/engine"
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "querykit> "
	replContPrompt = "     ...> "
	historyName    = ".querykit_history"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively build queries",
		Long: `Start an interactive session. Type requirement lines such as
"table: users" and submit them with an empty line. Dot commands change the
session settings; type .help to list them.`,
		Example: `  querykit repl
  querykit repl --database postgresql --escape-identifiers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, historyName)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := newREPLSession(cmdCtx.Engine, cmdCtx.Renderer, cmdCtx.Query)

	r := cmdCtx.Renderer
	r.Println("querykit interactive mode (" + session.describe() + ")")
	r.Println("Enter requirements, then an empty line to build. Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			session.flush()
			return nil
		}
		if err != nil {
			return err
		}

		if session.handle(line) {
			return nil
		}
		if session.pending() {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

// replSession holds the state of an interactive session apart from the
// terminal so it can be driven line by line.
type replSession struct {
	engine *engine.Engine
	r      *output.Renderer
	cfg    core.Config
	buf    []string
}

func newREPLSession(eng *engine.Engine, r *output.Renderer, cfg core.Config) *replSession {
	return &replSession{engine: eng, r: r, cfg: cfg}
}

// handle processes one input line and reports whether the session should end.
func (s *replSession) handle(line string) bool {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		s.flush()
		return false
	}
	if strings.HasPrefix(trimmed, ".") && len(s.buf) == 0 {
		return s.dot(trimmed)
	}

	s.buf = append(s.buf, line)
	return false
}

func (s *replSession) pending() bool { return len(s.buf) > 0 }

func (s *replSession) reset() { s.buf = s.buf[:0] }

// flush builds the buffered input, if any.
func (s *replSession) flush() {
	if len(s.buf) == 0 {
		return
	}
	input := strings.Join(s.buf, "\n")
	s.reset()

	res := s.engine.Process(input, s.cfg)
	if !res.Success {
		s.r.Error(res.Error)
		return
	}
	s.r.Println(res.Output)
	for _, tip := range res.Suggestions {
		s.r.Println(s.r.Muted("• " + tip))
	}
	s.r.Println()
}

func (s *replSession) describe() string {
	return fmt.Sprintf("%s, %s", s.cfg.QueryType, s.cfg.Database)
}

// dot runs a dot command and reports whether the session should end.
func (s *replSession) dot(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		s.r.Println(replHelp)

	case ".type":
		kind, ok := core.ParseQueryType(arg)
		if !ok {
			s.r.Error(fmt.Sprintf("%v: %q", core.ErrUnsupportedQueryType, arg))
			break
		}
		s.cfg.QueryType = kind
		s.r.Success("query type: " + string(kind))

	case ".database", ".db":
		db, ok := core.ParseDatabase(arg)
		if !ok {
			s.r.Error(fmt.Sprintf("%v: %q", core.ErrUnknownDatabase, arg))
			break
		}
		s.cfg.Database = db
		s.r.Success("database: " + string(db))

	case ".escape":
		s.toggle(&s.cfg.EscapeIdentifiers, "escape identifiers", arg)

	case ".format":
		s.toggle(&s.cfg.FormatOutput, "format output", arg)

	case ".comments":
		s.toggle(&s.cfg.IncludeComments, "include comments", arg)

	case ".example":
		if ex := engine.Example(s.cfg.QueryType); ex != "" {
			s.r.Println(ex)
		}

	case ".config":
		s.r.StatusLine("Type", string(s.cfg.QueryType))
		s.r.StatusLine("Database", string(s.cfg.Database))
		s.r.StatusLine("Format", onOff(s.cfg.FormatOutput))
		s.r.StatusLine("Escape", onOff(s.cfg.EscapeIdentifiers))
		s.r.StatusLine("Comments", onOff(s.cfg.IncludeComments))
		s.r.StatusLine("Uppercase", onOff(s.cfg.UppercaseKeywords))

	case ".clear":
		s.r.Printf("\033[H\033[2J")

	default:
		s.r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

// toggle flips *v, or sets it from "on"/"off".
func (s *replSession) toggle(v *bool, label, arg string) {
	switch strings.ToLower(arg) {
	case "":
		*v = !*v
	case "on", "true", "yes":
		*v = true
	case "off", "false", "no":
		*v = false
	default:
		s.r.Error(fmt.Sprintf("expected on or off, got %q", arg))
		return
	}
	s.r.Success(label + ": " + onOff(*v))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

const replHelp = `
Commands:
  .type <kind>        Set the query type (select, insert, update, delete, create, custom)
  .database <name>    Set the target database
  .escape [on|off]    Toggle identifier escaping
  .format [on|off]    Toggle formatting
  .comments [on|off]  Toggle the comment banner and analysis
  .example            Show an example statement for the current type
  .config             Show the session settings
  .clear              Clear the screen
  .quit / .exit       Exit

Tips:
  - Submit the buffered requirements with an empty line
  - Ctrl-C discards the buffered requirements
  - Use arrow keys to navigate history`

// newREPLCompleter completes dot commands and their arguments.
func newREPLCompleter() *readline.PrefixCompleter {
	kinds := make([]readline.PrefixCompleterInterface, 0, len(core.QueryTypes))
	for _, k := range core.QueryTypes {
		kinds = append(kinds, readline.PcItem(string(k)))
	}
	dbs := make([]readline.PrefixCompleterInterface, 0, len(core.Databases))
	for _, d := range core.Databases {
		dbs = append(dbs, readline.PcItem(string(d)))
	}
	onOffItems := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{readline.PcItem("on"), readline.PcItem("off")}
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".type", kinds...),
		readline.PcItem(".database", dbs...),
		readline.PcItem(".escape", onOffItems()...),
		readline.PcItem(".format", onOffItems()...),
		readline.PcItem(".comments", onOffItems()...),
		readline.PcItem(".example"),
		readline.PcItem(".config"),
		readline.PcItem(".help"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, kw := range []string{"table:", "columns:", "where:", "join:", "order by:", "group by:", "having:", "limit:", "values:", "set:"} {
		items = append(items, readline.PcItem(kw))
	}
	return readline.NewPrefixCompleter(items...)
}
