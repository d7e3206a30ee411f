//go:build !windows

package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs Go heap stats every interval until ctx is done.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Debug("memstats",
				slog.Int("goroutines", runtime.NumGoroutine()),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}
