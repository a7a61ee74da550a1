package tabmodel

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Preconditions reports programmer errors. Strict mode panics; otherwise the
// violation is logged and the caller refuses the operation.
type Preconditions struct {
	Strict bool
	Logger zerolog.Logger
}

// check returns cond. When cond is false the violation is reported.
func (p Preconditions) check(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if p.Strict {
		panic("tabmodel: precondition violated: " + msg)
	}
	p.Logger.Error().Str("violation", msg).Msg("precondition violated")
	return false
}
