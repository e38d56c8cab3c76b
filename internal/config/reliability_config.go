package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ReliabilityConfig is the subset of reliability-config.yaml fields the
// core reads directly, bypassing viper. Grounded on the teacher's
// LocalConfig / LoadLocalConfig pattern (internal/config/local_config.go):
// read with plain yaml.v3, and tolerate a missing or malformed file by
// returning a zero-value config rather than an error, matching §7's
// "config parse failure -> no config" rule.
type ReliabilityConfig struct {
	DebugLogging     bool   `yaml:"debug_logging"`
	SingleWorkItem   string `yaml:"single_work_item"`
	CodeReviewGuide  string `yaml:"code_review_guide_path"`
}

// LoadReliabilityConfig reads and parses the config file at path.
// Returns a zero-value config (never nil, never an error) if the file
// is absent or fails to parse.
func LoadReliabilityConfig(path string) *ReliabilityConfig {
	data, err := os.ReadFile(path) // #nosec G304 -- path is resolver-derived
	if err != nil {
		return &ReliabilityConfig{}
	}
	var cfg ReliabilityConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &ReliabilityConfig{}
	}
	return &cfg
}
