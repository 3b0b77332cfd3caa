package terminal

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is the exit status used when a signal ends the process.
const ExitInterrupted = 130

// Restorer puts a terminal back into its normal mode.
type Restorer interface {
	Restore() error
}

// RestorerFunc adapts a function to Restorer.
type RestorerFunc func() error

func (f RestorerFunc) Restore() error { return f() }

var exit = os.Exit

// Guard restores the terminal if the process receives SIGINT, SIGTERM or
// SIGHUP, then exits with ExitInterrupted. The returned release function stops
// the guard; it must be called once the terminal is no longer in use.
func Guard(r Restorer, logger *slog.Logger) (release func()) {
	if logger == nil {
		logger = slog.Default()
	}

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case sig := <-sigs:
			if err := r.Restore(); err != nil {
				logger.Error("terminal restore failed", "signal", sig, "error", err)
			}
			exit(ExitInterrupted)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
