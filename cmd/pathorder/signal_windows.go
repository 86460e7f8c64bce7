//go:build windows

package main

import (
	"os"
	"os/signal"
)

func registerInterrupt(cancel func()) {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt)
	go func() {
		<-sigchan
		cancel()
	}()
}
