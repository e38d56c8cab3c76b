//go:build windows

package mcpserver

import "os"

// processRunning on Windows relies on FindProcess's own existence
// check, since arbitrary signal probing is not supported; liveness
// there falls back to the heartbeat's own timestamp freshness.
func processRunning(pid int) bool {
	if pid <= 0 {
		return true
	}
	_, err := os.FindProcess(pid)
	return err == nil
}
