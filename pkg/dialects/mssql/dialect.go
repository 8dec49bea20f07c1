package mssql

import (
	"github.com/leapstack-labs/querykit/pkg/dialect"
)

func init() {
	dialect.Register(MSSQL)
}

// MSSQL is the SQL Server dialect.
var MSSQL = dialect.New(Config).Build()
