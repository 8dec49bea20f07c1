// Package dialects registers every built-in SQL dialect with pkg/dialect.
// Import it for its side effects.
package dialects

import (
	_ "github.com/leapstack-labs/querykit/pkg/dialects/generic"  // Register generic dialect
	_ "github.com/leapstack-labs/querykit/pkg/dialects/mssql"    // Register SQL Server dialect
	_ "github.com/leapstack-labs/querykit/pkg/dialects/mysql"    // Register MySQL dialect
	_ "github.com/leapstack-labs/querykit/pkg/dialects/oracle"   // Register Oracle dialect
	_ "github.com/leapstack-labs/querykit/pkg/dialects/postgres" // Register PostgreSQL dialect
	_ "github.com/leapstack-labs/querykit/pkg/dialects/sqlite"   // Register SQLite dialect
)
