package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs and the database.
const AppDir = ".p2048"

// LoadRules loads the game rules.
// Search order: customPath -> ~/.p2048/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
func LoadRules(customPath string) (Rules, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRules(data)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rules.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRules(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/rules.yaml"); err == nil {
		if cfg, err := ParseRules(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRules decodes YAML on top of DefaultRules, so omitted keys keep their
// defaults, then validates the result.
func ParseRules(data []byte) (Rules, error) {
	cfg := DefaultRules()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}
	return cfg, nil
}

// MarshalRules encodes rules as YAML (used by `p2048 rules`).
func MarshalRules(r Rules) ([]byte, error) {
	return yaml.Marshal(r)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}
