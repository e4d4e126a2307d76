//go:build !windows

package main

import (
	"os"
	"syscall"
)

// stopSignals cancel a running batch.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
