package engine

import (
	"strings"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
)

// examples holds the one-line example appended when GenerateExamples is set.
var examples = map[core.QueryType]string{
	core.QuerySelect: "SELECT id, name FROM users WHERE active = 1 ORDER BY name LIMIT 10;",
	core.QueryInsert: "INSERT INTO users (name, email) VALUES ('Jane Doe', 'jane@example.com');",
	core.QueryUpdate: "UPDATE users SET status = 'inactive' WHERE last_login < '2024-01-01';",
	core.QueryDelete: "DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP;",
	core.QueryCreate: "CREATE TABLE users (id INT NOT NULL, name VARCHAR(100), PRIMARY KEY (id));",
	core.QueryCustom: "SELECT u.name, COUNT(o.id) FROM users u LEFT JOIN orders o ON o.user_id = u.id GROUP BY u.name;",
}

// Example returns the example statement for kind.
func Example(kind core.QueryType) string {
	return examples[kind]
}

// assemble builds the displayed output: an optional banner, the SQL, an
// optional example line and an optional analysis block.
func assemble(sql string, info core.QueryInfo, cfg core.Config, d *dialect.Dialect) string {
	var b strings.Builder

	if cfg.IncludeComments {
		b.WriteString("-- SQL Query Builder\n")
		b.WriteString("-- Database: " + d.DisplayName + "\n")
		b.WriteString("-- Query Type: " + strings.ToUpper(string(cfg.QueryType)) + "\n\n")
	}

	b.WriteString(sql)

	if cfg.GenerateExamples {
		if ex := Example(cfg.QueryType); ex != "" {
			b.WriteString("\n\n-- Example: " + ex)
		}
	}

	if cfg.IncludeComments && info.Complexity != core.ComplexitySimple {
		tables := "none"
		if len(info.Tables) > 0 {
			tables = strings.Join(info.Tables, ", ")
		}
		b.WriteString("\n\n-- Query Analysis:\n")
		b.WriteString("-- Complexity: " + string(info.Complexity) + "\n")
		b.WriteString("-- Tables: " + tables + " | Joins: " + yesNo(info.HasJoins) + " | Subqueries: " + yesNo(info.HasSubqueries))
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
