package spinner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// HandleSignals returns a context that is canceled on SIGINT or SIGTERM. When that happens and s
// is running, s is stopped so the line is cleared and the cursor restored before the command sees
// the cancellation. Call the returned function to release the signal handler.
func HandleSignals(ctx context.Context, s *Spinner) (context.Context, context.CancelFunc) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCtx.Done():
			select {
			case <-done:
				return
			default:
			}
			// Only a signal, not the parent, should interrupt the spinner.
			if ctx.Err() == nil && s != nil {
				s.Stop()
			}
		case <-done:
		}
	}()
	return sigCtx, func() {
		close(done)
		stop()
	}
}
