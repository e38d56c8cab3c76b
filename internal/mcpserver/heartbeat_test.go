package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteHeartbeatThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	now := time.Unix(1_700_000_000, 0)

	if err := writeHeartbeat(path, 4242, now); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}

	info, err := readHeartbeat(path)
	if err != nil {
		t.Fatalf("read heartbeat: %v", err)
	}
	if info.PID != 4242 {
		t.Fatalf("want pid 4242, got %d", info.PID)
	}
	if !info.Timestamp.Equal(now) {
		t.Fatalf("want timestamp %v, got %v", now, info.Timestamp)
	}
}

func TestWriteHeartbeatLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	if err := writeHeartbeat(path, os.Getpid(), time.Now()); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("want the .tmp file renamed away, stat returned: %v", err)
	}
}

func TestRemoveHeartbeatAbsentIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	if err := removeHeartbeat(path); err != nil {
		t.Fatalf("want no error removing an absent heartbeat, got %v", err)
	}
}

func TestIsAliveFreshHeartbeatWithRunningPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	now := time.Now()
	if err := writeHeartbeat(path, os.Getpid(), now); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}
	if !IsAlive(path, now.Add(10*time.Second)) {
		t.Fatal("want alive: fresh heartbeat, running pid")
	}
}

func TestIsAliveFalseJustPastStaleness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	now := time.Now()
	if err := writeHeartbeat(path, os.Getpid(), now); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}
	if IsAlive(path, now.Add(heartbeatStaleAfter+time.Second)) {
		t.Fatal("want not alive: heartbeat one second past the staleness window")
	}
}

func TestIsAliveTrueJustBeforeStaleness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	now := time.Now()
	if err := writeHeartbeat(path, os.Getpid(), now); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}
	if !IsAlive(path, now.Add(heartbeatStaleAfter-time.Second)) {
		t.Fatal("want alive: heartbeat one second inside the staleness window")
	}
}

func TestIsAliveFalseOnMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	if IsAlive(path, time.Now()) {
		t.Fatal("want not alive when no heartbeat file exists")
	}
}

func TestIsAliveFalseOnDeadPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	now := time.Now()
	// PID 999999 is extremely unlikely to be a live process in any test
	// environment.
	if err := writeHeartbeat(path, 999999, now); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}
	if IsAlive(path, now) {
		t.Fatal("want not alive when the pid does not correspond to a running process")
	}
}

func TestDescribeStatusMissingHeartbeat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	got := DescribeStatus(path, time.Now())
	want := "MCP server: not running (no heartbeat found)"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestDescribeStatusRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp-heartbeat")
	now := time.Now()
	if err := writeHeartbeat(path, os.Getpid(), now); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}
	got := DescribeStatus(path, now.Add(5*time.Second))
	if !strings.Contains(got, "running") || !strings.Contains(got, "pid") {
		t.Fatalf("want a running status message, got %q", got)
	}
}
