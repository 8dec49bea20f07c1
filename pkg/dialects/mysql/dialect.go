package mysql

import (
	"github.com/leapstack-labs/querykit/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).Build()
