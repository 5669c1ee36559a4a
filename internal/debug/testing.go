package debug

import (
	"log"
	"testing"
)

// TestLogTo sends the debug log to logger until the test finishes.
func TestLogTo(t testing.TB, logger *log.Logger) {
	prevLogger, prevEnabled := opts.logger, opts.isEnabled
	opts.logger = logger
	opts.isEnabled = true

	t.Cleanup(func() {
		opts.logger, opts.isEnabled = prevLogger, prevEnabled
	})
}
