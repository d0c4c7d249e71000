package config

// Config is the application configuration loaded from .primer/config.yml.
type Config struct {
	LessonsDir    string       `yaml:"lessons_dir"`
	DataDir       string       `yaml:"data_dir"`
	Store         string       `yaml:"store"`
	History       *bool        `yaml:"history"`
	PassThreshold int          `yaml:"pass_threshold"`
	UI            string       `yaml:"ui"`
	LogLevel      string       `yaml:"log_level"`
	LogFormat     string       `yaml:"log_format"`
	Server        ServerConfig `yaml:"server"`
}

// ServerConfig configures the read-only HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// HistoryEnabled reports whether attempts are journaled.
func (c Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}
