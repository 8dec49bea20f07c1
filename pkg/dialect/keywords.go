package dialect

// CommonKeywords is the keyword set shared by every dialect. Dialects layer
// their own additions on top of it.
var CommonKeywords = []string{
	// Statements
	"SELECT", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "DROP", "ALTER", "INDEX", "WITH",
	// Clauses
	"FROM", "WHERE", "GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET",
	"UNION", "ALL", "DISTINCT", "AS",
	// Joins
	"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "ON",
	// Predicates
	"AND", "OR", "NOT", "IN", "IS", "NULL", "LIKE", "BETWEEN", "EXISTS",
	// Expressions
	"CASE", "WHEN", "THEN", "ELSE", "END", "ASC", "DESC", "IF",
	// Aggregates and windows
	"COUNT", "SUM", "AVG", "MIN", "MAX", "OVER", "PARTITION BY",
	// Constraints
	"PRIMARY KEY", "FOREIGN KEY", "REFERENCES", "DEFAULT", "UNIQUE",
	"CONSTRAINT", "CHECK",
}
