package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"primer/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
// An empty result means no config file exists.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig resolves and loads the config, defaulting to the working directory.
func loadConfig(configPath string) (config.Config, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, err
	}
	root := ""
	if resolved == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("get working directory: %w", err)
		}
		root = wd
	}
	return config.Load(resolved, root)
}
