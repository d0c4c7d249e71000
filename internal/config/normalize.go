package config

import (
	"strings"

	"primer/internal/quiz"
)

// Normalize applies defaults and resolves paths against root.
func Normalize(cfg *Config, root string) {
	cfg.LessonsDir = strings.TrimSpace(cfg.LessonsDir)
	if cfg.LessonsDir == "" {
		cfg.LessonsDir = DefaultLessonsDir
	}
	cfg.LessonsDir = resolvePath(root, cfg.LessonsDir)

	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	cfg.DataDir = resolvePath(root, cfg.DataDir)

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store == "" {
		cfg.Store = "file"
	}
	if cfg.PassThreshold == 0 {
		cfg.PassThreshold = quiz.DefaultPassThreshold
	}
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	if cfg.UI == "" {
		cfg.UI = "auto"
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:5000"
	}
}
