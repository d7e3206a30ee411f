package debug

// Goroutine metrics logger, started when the config debug flag is set.
// The monitor should never hold more than one polling goroutine, so a
// climbing count here points at a leaked session.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartGoroutineLogger logs goroutine count and stack memory every interval
// until ctx is done.
func StartGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var goroutines uint64
			if samples[0].Value.Kind() == metrics.KindUint64 {
				goroutines = samples[0].Value.Uint64()
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Debug("goroutine-stacks",
				slog.Uint64("goroutines", goroutines),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
			)
		}
	}()
}

// Start launches every debug logger.
func Start(ctx context.Context, logger *slog.Logger) {
	if logger == nil {
		return
	}
	StartGoroutineLogger(ctx, 5*time.Second, logger)
	StartMemLogger(ctx, 10*time.Second, logger)
}
