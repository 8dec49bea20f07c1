// Package engine orchestrates query building: intent parsing or SQL
// passthrough, rendering, formatting, analysis, suggestions and output
// assembly.
//
// An Engine holds no per-call state. Process is synchronous, reentrant and
// never panics; every failure is reported through core.ToolResult.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
	_ "github.com/leapstack-labs/querykit/pkg/dialects" // Register built-in dialects
	"github.com/leapstack-labs/querykit/pkg/format"
	"github.com/leapstack-labs/querykit/pkg/intent"
	"github.com/leapstack-labs/querykit/pkg/lint"
	"github.com/leapstack-labs/querykit/pkg/query"
)

// DefaultConcurrency bounds ProcessBatch when Config.Concurrency is unset.
const DefaultConcurrency = 4

// Engine builds, formats and analyzes SQL.
type Engine struct {
	logger      *slog.Logger
	concurrency int
}

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Concurrency is the number of batch items processed at once.
	Concurrency int
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Engine{logger: logger, concurrency: concurrency}
}

var defaultEngine = New(Config{})

// Process runs input through the default engine.
func Process(input string, cfg core.Config) core.ToolResult {
	return defaultEngine.Process(input, cfg)
}

// Process turns input into SQL according to cfg.
//
// For custom queries input is used as the SQL text; for every other kind it
// is parsed as intent lines and rendered. The SQL is then optionally
// formatted, analyzed and wrapped in comment lines. cfg.ValidateSyntax is
// accepted but no syntax validation is performed.
func (e *Engine) Process(input string, cfg core.Config) core.ToolResult {
	if strings.TrimSpace(input) == "" {
		e.logger.Debug("rejecting empty input")
		return core.Failure(core.ErrEmptyInput)
	}
	if err := cfg.Validate(); err != nil {
		e.logger.Debug("invalid config", "error", err)
		return core.Failure(err)
	}
	d, err := dialect.Lookup(cfg.Database)
	if err != nil {
		return core.Failure(err)
	}

	sql, err := e.build(input, cfg, d)
	if err != nil {
		e.logger.Debug("build failed", "query_type", cfg.QueryType, "error", err)
		return core.Failure(err)
	}
	e.logger.Debug("rendered query", "query_type", cfg.QueryType, "database", cfg.Database, "sql", sql)

	if cfg.FormatOutput {
		sql = format.SQL(sql, format.Options{
			Dialect:           d,
			UppercaseKeywords: cfg.UppercaseKeywords,
			IndentSize:        cfg.IndentSize,
		})
	}

	info := lint.Analyze(sql)
	e.logger.Debug("analyzed query",
		"type", info.Type,
		"tables", len(info.Tables),
		"complexity", info.Complexity,
	)

	return core.ToolResult{
		Success:     true,
		Output:      assemble(sql, info, cfg, d),
		Query:       sql,
		QueryInfo:   &info,
		Suggestions: lint.SuggestionsFor(cfg.QueryType),
	}
}

// Analyze runs static analysis on sql.
func (e *Engine) Analyze(sql string) core.QueryInfo {
	return lint.Analyze(sql)
}

// build produces the unformatted SQL text.
func (e *Engine) build(input string, cfg core.Config, d *dialect.Dialect) (string, error) {
	if cfg.QueryType == core.QueryCustom {
		return input, nil
	}
	b, err := intent.Parse(input, cfg.QueryType)
	if err != nil {
		return "", err
	}
	return e.render(b, query.NewRenderer(d, cfg.EscapeIdentifiers))
}

// render renders b. Panics are converted to errors.
func (e *Engine) render(b query.Builder, r query.Renderer) (sql string, err error) {
	defer func() {
		if v := recover(); v != nil {
			e.logger.Error("recovered panic while building query", "panic", v)
			err = fmt.Errorf("%w: %v", core.ErrBuildFailed, v)
		}
	}()
	return b.Render(r)
}
