/*
Package config manages the TOML config for wordtrie: server limits, where the
dictionary comes from, and CLI defaults.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Config is the whole config.toml.
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig bounds what one IPC request may ask for.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
	MaxSessions  int  `toml:"max_sessions"`
}

// DictConfig says where the words come from and how queries match them.
// A snapshot, when present, is preferred over rebuilding from the source.
type DictConfig struct {
	Source    string `toml:"source"`
	Column    string `toml:"column"`
	Snapshot  string `toml:"snapshot"`
	RowStore  string `toml:"row_store"`
	Match     string `toml:"match"`
	Lowercase bool   `toml:"lowercase"`
}

// CliConfig holds the interactive mode defaults. DefaultLimit also applies to
// IPC requests that leave the limit out.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// configDirName is the directory created under each candidate config root.
const configDirName = "wordtrie"

// GetConfigDir picks the first writable config directory from
// ~/.config/wordtrie and ~/Library/Application Support/wordtrie, falling back
// to the executable's directory when neither works or there is no home.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}

	for _, dir := range []string{
		filepath.Join(homeDir, ".config", configDirName),
		filepath.Join(homeDir, "Library", "Application Support", configDirName),
	} {
		if utils.CheckDirStatus(dir).Writable {
			return dir, nil
		}
		log.Debugf("Config dir %s is not writable", dir)
	}

	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath is config.toml inside GetConfigDir.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority returns the config at customPath when it loads, else
// the one at the default path (created if missing), else built-in defaults.
// The returned path is the file actually used, empty for built-in defaults.
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		cfg, err := loadExisting(customPath)
		if err == nil {
			log.Debugf("Loaded config from custom path: %s", customPath)
			return cfg, customPath, nil
		}
		log.Warnf("Custom config %s unusable: %v. Trying default path...", customPath, err)
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("No default config path: %v. Using built-in defaults", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Config at %s unusable: %v. Using built-in defaults", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

func loadExisting(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return LoadConfig(path)
}

// DefaultConfig is the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
			MaxSessions:  256,
		},
		Dict: DictConfig{
			Source:    "data/words.csv",
			Column:    "word",
			Snapshot:  "data/words.bin",
			RowStore:  "",
			Match:     trie.MatchExact.String(),
			Lowercase: true,
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// InitConfig reads configPath, writing the defaults there first when the
// file does not exist yet. Any failure degrades to built-in defaults.
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Cannot create config dir for %s: %v. Using built-in defaults", configPath, err)
		return DefaultConfig(), nil
	}

	if utils.FileExists(configPath) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			log.Warnf("Cannot read %s: %v. Using built-in defaults", configPath, err)
			return DefaultConfig(), nil
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if err := SaveConfig(cfg, configPath); err != nil {
		log.Warnf("Cannot write default config to %s: %v. Using built-in defaults", configPath, err)
		return DefaultConfig(), nil
	}
	log.Debugf("Created default config file at: %s", configPath)
	return cfg, nil
}

// LoadConfig decodes configPath over the defaults. When the file does not
// decode as a whole, every key that still has the right type is kept.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		cfg = recoverConfig(configPath)
	}
	cfg.Sanitize()
	return cfg, nil
}

// setter copies one key of a generic TOML table into a typed field.
type setter func(table map[string]any)

func intKey(key string, dst *int) setter {
	return func(table map[string]any) {
		if val, ok := utils.ExtractInt64(table, key); ok {
			*dst = val
		}
	}
}

func boolKey(key string, dst *bool) setter {
	return func(table map[string]any) {
		if val, ok := utils.ExtractBool(table, key); ok {
			*dst = val
		}
	}
}

func stringKey(key string, dst *string) setter {
	return func(table map[string]any) {
		if val, ok := utils.ExtractString(table, key); ok {
			*dst = val
		}
	}
}

// recoverConfig salvages what it can from a file the typed decode rejected.
func recoverConfig(configPath string) *Config {
	cfg := DefaultConfig()

	data, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Nothing recoverable in %s: %v. Using all defaults", configPath, err)
		return cfg
	}

	sections := map[string][]setter{
		"server": {
			intKey("max_limit", &cfg.Server.MaxLimit),
			intKey("min_prefix", &cfg.Server.MinPrefix),
			intKey("max_prefix", &cfg.Server.MaxPrefix),
			boolKey("enable_filter", &cfg.Server.EnableFilter),
			intKey("max_sessions", &cfg.Server.MaxSessions),
		},
		"dict": {
			stringKey("source", &cfg.Dict.Source),
			stringKey("column", &cfg.Dict.Column),
			stringKey("snapshot", &cfg.Dict.Snapshot),
			stringKey("row_store", &cfg.Dict.RowStore),
			stringKey("match", &cfg.Dict.Match),
			boolKey("lowercase", &cfg.Dict.Lowercase),
		},
		"cli": {
			intKey("default_limit", &cfg.CLI.DefaultLimit),
			intKey("default_min_len", &cfg.CLI.DefaultMinLen),
			intKey("default_max_len", &cfg.CLI.DefaultMaxLen),
			boolKey("default_no_filter", &cfg.CLI.DefaultNoFilter),
		},
	}
	for name, setters := range sections {
		table, ok := utils.ExtractSection(data, name)
		if !ok {
			continue
		}
		for _, set := range setters {
			set(table)
		}
	}
	return cfg
}

// RebuildConfigFile overwrites the default config.toml with DefaultConfig.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath names the config in use for log lines: configPath made
// absolute, or the default path when configPath is empty.
func GetActiveConfigPath(configPath string) string {
	if configPath != "" {
		return utils.GetAbsolutePath(configPath)
	}
	if defaultPath, err := GetDefaultConfigPath(); err == nil {
		return defaultPath
	}
	return "unknown"
}

// SaveConfig writes cfg as TOML.
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// MatchMode parses Dict.Match. Unknown values fall back to exact matching.
func (d DictConfig) MatchMode() trie.MatchMode {
	mode, ok := trie.ParseMatchMode(d.Match)
	if !ok {
		log.Warnf("Unknown match mode %q, using %s", d.Match, mode)
	}
	return mode
}

// Sanitize resets values that cannot work to their defaults.
func (c *Config) Sanitize() {
	defaults := DefaultConfig()
	server := &c.Server

	if server.MaxLimit < 1 {
		log.Warnf("max_limit must be positive, got %d. Using %d", server.MaxLimit, defaults.Server.MaxLimit)
		server.MaxLimit = defaults.Server.MaxLimit
	}
	if server.MinPrefix < 0 {
		log.Warnf("min_prefix cannot be negative, got %d. Using %d", server.MinPrefix, defaults.Server.MinPrefix)
		server.MinPrefix = defaults.Server.MinPrefix
	}
	if server.MaxPrefix < server.MinPrefix {
		log.Warnf("max_prefix %d is below min_prefix %d. Using defaults", server.MaxPrefix, server.MinPrefix)
		server.MinPrefix = defaults.Server.MinPrefix
		server.MaxPrefix = defaults.Server.MaxPrefix
	}
	if server.MaxSessions < 1 {
		log.Warnf("max_sessions must be positive, got %d. Using %d", server.MaxSessions, defaults.Server.MaxSessions)
		server.MaxSessions = defaults.Server.MaxSessions
	}
	if _, ok := trie.ParseMatchMode(c.Dict.Match); !ok {
		log.Warnf("Unknown match mode %q. Using %s", c.Dict.Match, defaults.Dict.Match)
		c.Dict.Match = defaults.Dict.Match
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
}
