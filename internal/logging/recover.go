package logging

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Recover logs a panic with its stack instead of letting it take the process
// down. It must be deferred directly. If errp is not nil the panic is also
// turned into an error.
func Recover(ctx context.Context, where string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	FromContext(ctx).Error().
		Str("where", where).
		Interface("panic", r).
		Bytes("stack", debug.Stack()).
		Msg("recovered from panic")
	if errp != nil {
		*errp = fmt.Errorf("panic in %s: %v", where, r)
	}
}
