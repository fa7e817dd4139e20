//go:build windows

package app

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}

func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess succeeds for any pid here; a nil signal reports whether it is alive.
	return proc.Signal(os.Signal(nil)) == nil
}

// terminate kills the daemon outright. Windows has no SIGTERM to deliver.
func terminate(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Kill()
}
