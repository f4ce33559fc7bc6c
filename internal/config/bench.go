package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// DefaultConfigPath is the path to the canonical benchmark defaults file.
const DefaultConfigPath = "config/bench.defaults.json"

// BenchConfig drives cmd/gridbench. Every field is optional; the Get*
// methods supply defaults for anything the JSON leaves out.
type BenchConfig struct {
	// Workload
	Sizes      []int    `json:"sizes,omitempty"` // cube edge lengths, e.g. [5, 10, 20]
	Iterations *int     `json:"iterations,omitempty"`
	Seed       *uint64  `json:"seed,omitempty"`
	Groups     []string `json:"groups,omitempty"` // subset of "writes", "lookups", "edits"

	// Outputs
	SnapshotDB  *string `json:"snapshot_db,omitempty"`  // sqlite path; empty disables snapshots
	PlotDir     *string `json:"plot_dir,omitempty"`     // directory for slice plots; empty disables
	PlotSlice   *int    `json:"plot_slice,omitempty"`   // z slice to plot
	DebugListen *string `json:"debug_listen,omitempty"` // address for the debug HTTP server
	DebugLinger *string `json:"debug_linger,omitempty"` // duration string like "30s"
}

// Known workload groups, in run order.
var knownGroups = []string{"writes", "lookups", "edits"}

// EmptyBenchConfig returns a BenchConfig with all fields unset.
func EmptyBenchConfig() *BenchConfig {
	return &BenchConfig{}
}

// LoadBenchConfig loads a BenchConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadBenchConfig(path string) (*BenchConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyBenchConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *BenchConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadBenchConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *BenchConfig) Validate() error {
	for _, s := range c.Sizes {
		// RandomBox needs room for min < size-2 on every axis.
		if s < 3 {
			return fmt.Errorf("sizes must be >= 3, got %d", s)
		}
	}
	if c.Iterations != nil && *c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", *c.Iterations)
	}
	for _, g := range c.Groups {
		if !isKnownGroup(g) {
			return fmt.Errorf("unknown group %q (want one of %v)", g, knownGroups)
		}
	}
	if c.PlotSlice != nil && *c.PlotSlice < 0 {
		return fmt.Errorf("plot_slice must be non-negative, got %d", *c.PlotSlice)
	}
	if c.DebugLinger != nil && *c.DebugLinger != "" {
		if _, err := time.ParseDuration(*c.DebugLinger); err != nil {
			return fmt.Errorf("invalid debug_linger '%s': %w", *c.DebugLinger, err)
		}
	}
	return nil
}

func isKnownGroup(g string) bool {
	for _, k := range knownGroups {
		if g == k {
			return true
		}
	}
	return false
}

// GetSizes returns the cube edge lengths or the default [5, 10, 20].
func (c *BenchConfig) GetSizes() []int {
	if len(c.Sizes) == 0 {
		return []int{5, 10, 20}
	}
	return c.Sizes
}

// GetIterations returns the per-size iteration count or the default.
func (c *BenchConfig) GetIterations() int {
	if c.Iterations == nil {
		return 1000
	}
	return *c.Iterations
}

// GetSeed returns the rng seed or the default.
func (c *BenchConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 42
	}
	return *c.Seed
}

// GetGroups returns the groups to run, in canonical order.
func (c *BenchConfig) GetGroups() []string {
	if len(c.Groups) == 0 {
		return slices.Clone(knownGroups)
	}
	var out []string
	for _, k := range knownGroups {
		for _, g := range c.Groups {
			if g == k {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

// GetSnapshotDB returns the snapshot database path, or "" when disabled.
func (c *BenchConfig) GetSnapshotDB() string {
	if c.SnapshotDB == nil {
		return ""
	}
	return *c.SnapshotDB
}

// GetPlotDir returns the plot output directory, or "" when disabled.
func (c *BenchConfig) GetPlotDir() string {
	if c.PlotDir == nil {
		return ""
	}
	return *c.PlotDir
}

// GetPlotSlice returns the z slice to plot.
func (c *BenchConfig) GetPlotSlice() int {
	if c.PlotSlice == nil {
		return 0
	}
	return *c.PlotSlice
}

// GetDebugListen returns the debug HTTP address, or "" when disabled.
func (c *BenchConfig) GetDebugListen() string {
	if c.DebugListen == nil {
		return ""
	}
	return *c.DebugListen
}

// GetDebugLinger returns how long the debug server stays up after the run.
func (c *BenchConfig) GetDebugLinger() time.Duration {
	if c.DebugLinger == nil || *c.DebugLinger == "" {
		return 0
	}
	d, err := time.ParseDuration(*c.DebugLinger)
	if err != nil {
		return 0
	}
	return d
}
