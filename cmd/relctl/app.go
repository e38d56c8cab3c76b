package main

import (
	"os"

	"github.com/DRMacIver/claude-reliability-sub001/internal/config"
	"github.com/DRMacIver/claude-reliability-sub001/internal/gitadapter"
	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
	"github.com/DRMacIver/claude-reliability-sub001/internal/policy"
	"github.com/DRMacIver/claude-reliability-sub001/internal/runner"
	"github.com/DRMacIver/claude-reliability-sub001/internal/store/sqlite"
	"github.com/DRMacIver/claude-reliability-sub001/internal/subagent"
)

// resolveProjectRoot returns the --project-root flag value, or the
// current working directory if it was not set.
func resolveProjectRoot() string {
	if projectRoot != "" {
		return projectRoot
	}
	wd, err := os.Getwd()
	if err != nil {
		FatalError("cannot determine working directory: %v", err)
	}
	return wd
}

// resolvePaths resolves the project's data/marker/config paths,
// creating the data directory (but not the marker directory, which
// belongs to the host) if it does not already exist.
func resolvePaths() *config.Paths {
	paths, err := config.Resolve(resolveProjectRoot())
	if err != nil {
		FatalError("%v", err)
	}
	if err := paths.EnsureDataDir(); err != nil {
		FatalError("cannot create data directory: %v", err)
	}
	return paths
}

// openStore opens (creating and migrating, if necessary) the project's
// task store.
func openStore(paths *config.Paths) *sqlite.Store {
	dbPath := paths.DatabasePath()
	if envPath := os.Getenv("TASKS_DB_PATH"); envPath != "" {
		dbPath = envPath
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		FatalError("cannot open task store: %v", err)
	}
	return store
}

// buildDispatcher wires a policy.Dispatcher from the project's
// resolved paths: task store, git adapter, marker store, sub-agent
// client, and reliability config.
func buildDispatcher(paths *config.Paths) (*policy.Dispatcher, *sqlite.Store) {
	store := openStore(paths)
	cfg := config.LoadReliabilityConfig(paths.ConfigPath)

	var agent subagent.SubAgent
	client, err := subagent.NewAnthropicClient()
	if err != nil {
		agent = subagent.NewRecording()
	} else {
		agent = client
	}

	home, _ := os.UserHomeDir()

	d := &policy.Dispatcher{
		Store:                 store,
		Git:                   gitadapter.New(runner.NewExec(), paths.ProjectRoot),
		Markers:               markers.New(paths.MarkerDir),
		SubAgent:              agent,
		Config:                cfg,
		HomeDir:               home,
		ReliabilityConfigPath: paths.ConfigPath,
	}
	return d, store
}
