package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vacansee/hh-collector/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// DefaultSignals are the signals that trigger a graceful stop.
var DefaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP}

// Graceful blocks until one of the given signals arrives, then shuts down
// every Stoppable in order within the shared timeout.
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, stoppables ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, s := range stoppables {
		if err := s.Shutdown(ctx); err != nil {
			log.Warn("graceful shutdown completed with error", "err", err)
			continue
		}
	}
	log.Info("graceful shutdown completed")
}
