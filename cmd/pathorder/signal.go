//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// registerInterrupt adapts the teacher's registerSignals: instead of
// feeding a string channel consumed by a single CNC stream, it cancels
// the batch run's context so every in-flight worker stops picking up
// new layer files and the progress bar can be finalized cleanly.
func registerInterrupt(cancel func()) {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigchan
		cancel()
	}()
}
