package escrowswap

import (
	"context"
	"time"
)

// TraceSection logs the beginning of a named section of program execution
// at debug level and returns a function that logs its end together with the
// time spent. Use it with defer, or call the returned function when the
// section is complete.
//
//	defer escrowswap.TraceSection(ctx, "process instruction")()
func TraceSection(ctx context.Context, name string) func() {
	logger := GetLogger(ctx).With("section", name)
	logger.Debug("section started")
	start := time.Now()
	return func() {
		logger.Debug("section finished", "elapsed", time.Since(start))
	}
}
