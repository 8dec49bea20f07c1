// Package generic provides the fallback dialect: the common keyword set and
// no identifier quoting.
package generic

import (
	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/leapstack-labs/querykit/pkg/dialect"
)

func init() {
	dialect.Register(Generic)
}

// Generic is the dialect used when the target database is unspecified.
var Generic = dialect.NewDialect(core.DatabaseGeneric).
	DisplayName("Generic SQL").
	Build()
