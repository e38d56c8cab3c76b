package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// heartbeatStaleAfter is the health probe's freshness window.
const heartbeatStaleAfter = 90 * time.Second

// writeHeartbeat atomically writes "{pid}\n{now_seconds}\n" to path via
// temp-then-rename, so readers never observe a partial file (§5).
func writeHeartbeat(path string, pid int, now time.Time) error {
	tmp := path + ".tmp"
	content := fmt.Sprintf("%d\n%d\n", pid, now.Unix())
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write heartbeat temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename heartbeat file: %w", err)
	}
	return nil
}

// removeHeartbeat deletes the heartbeat file; absence is not an error.
func removeHeartbeat(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// heartbeatInfo is the parsed content of a heartbeat file.
type heartbeatInfo struct {
	PID       int
	Timestamp time.Time
}

func readHeartbeat(path string) (heartbeatInfo, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is resolver-derived
	if err != nil {
		return heartbeatInfo{}, err
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return heartbeatInfo{}, fmt.Errorf("malformed heartbeat file %s", filepath.Base(path))
	}
	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return heartbeatInfo{}, fmt.Errorf("malformed heartbeat pid: %w", err)
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(lines[1]), 10, 64)
	if err != nil {
		return heartbeatInfo{}, fmt.Errorf("malformed heartbeat timestamp: %w", err)
	}
	return heartbeatInfo{PID: pid, Timestamp: time.Unix(sec, 0)}, nil
}

// IsAlive reports whether the heartbeat file at path describes a live
// server: present, fresh within heartbeatStaleAfter of now, and (best
// effort) naming a running process.
func IsAlive(path string, now time.Time) bool {
	info, err := readHeartbeat(path)
	if err != nil {
		return false
	}
	if now.Sub(info.Timestamp) > heartbeatStaleAfter {
		return false
	}
	return processRunning(info.PID)
}

// DescribeStatus returns the human string `relctl mcp status` prints.
func DescribeStatus(path string, now time.Time) string {
	info, err := readHeartbeat(path)
	if err != nil {
		return "MCP server: not running (no heartbeat found)"
	}
	age := now.Sub(info.Timestamp)
	if age > heartbeatStaleAfter {
		return fmt.Sprintf("MCP server: not running (stale heartbeat, last seen %s ago)", age.Round(time.Second))
	}
	if !processRunning(info.PID) {
		return fmt.Sprintf("MCP server: not running (pid %d no longer exists)", info.PID)
	}
	return fmt.Sprintf("MCP server: running (pid %d, last heartbeat %s ago)", info.PID, age.Round(time.Second))
}

