package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ToolSettings carries ambient CLI defaults, the knobs that belong to the
// CLI collaborator rather than the core engine. It is deliberately never
// merged into types.FlagConfig: the two configuration objects answer
// different questions ("which flags, at what value" vs. "how should this
// run behave").
type ToolSettings struct {
	DefaultExclude  []string `toml:"default_exclude"`
	Verbose         bool     `toml:"verbose"`
	Workers         int      `toml:"workers"` // 0 = auto-detect (max(1, runtime.NumCPU()-1))
	WatchDebounceMs int      `toml:"watch_debounce_ms"`
	MCPBindAddress  string   `toml:"mcp_bind_address"`
}

// DefaultToolSettings returns the settings used when no .flagprune.toml is
// present.
func DefaultToolSettings() ToolSettings {
	return ToolSettings{
		DefaultExclude:  []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		WatchDebounceMs: 300,
		MCPBindAddress:  "127.0.0.1:8947",
	}
}

// LoadToolSettings reads projectRoot/.flagprune.toml if present, layering
// its values over DefaultToolSettings(); a missing file is not an error.
func LoadToolSettings(projectRoot string) (ToolSettings, error) {
	settings := DefaultToolSettings()

	path := filepath.Join(projectRoot, ".flagprune.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, err
	}
	return settings, nil
}
