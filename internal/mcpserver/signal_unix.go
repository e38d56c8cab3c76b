//go:build !windows

package mcpserver

import (
	"os"
	"syscall"
)

// processRunning is a best-effort liveness check: on Unix, signal 0
// probes whether a pid is alive without actually signaling it. A pid
// of 0 or less is not tracked, so it is reported alive to avoid false
// "not alive" reports (mirrors the teacher's checkParentProcessAlive
// tolerance for untracked pids).
func processRunning(pid int) bool {
	if pid <= 0 {
		return true
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
