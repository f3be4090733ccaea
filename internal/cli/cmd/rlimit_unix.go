//go:build linux || darwin

package cmd

import (
	"context"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/bnema/tessellate/internal/logging"
)

func logCoreDumpLimits(ctx context.Context) {
	log := logging.FromContext(ctx)
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		log.Debug().Err(err).Msg("failed to read RLIMIT_CORE")
		return
	}

	log.Debug().
		Str("soft", formatRlimit(limit.Cur)).
		Str("hard", formatRlimit(limit.Max)).
		Msg("core dump limits")
}

func formatRlimit(value uint64) string {
	if value == unix.RLIM_INFINITY {
		return "infinity"
	}
	return strconv.FormatUint(value, 10)
}
