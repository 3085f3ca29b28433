package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds movie metadata provider configuration
type TMDBConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Language string `mapstructure:"language"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	PageSize    int    `mapstructure:"page_size"` // Items the list view asks for per chunk
	Theme       string `mapstructure:"theme"`
	ShowRatings bool   `mapstructure:"show_ratings"`
}

// StorageConfig holds the on-disk data locations
type StorageConfig struct {
	DataDir  string `mapstructure:"data_dir"`  // Watchlist database
	CacheDir string `mapstructure:"cache_dir"` // Response cache ("" = memory only)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			Language: "en-US",
		},
		UI: UIConfig{
			PageSize:    30,
			Theme:       "default",
			ShowRatings: true,
		},
		Storage: StorageConfig{
			DataDir:  defaultDataPath(),
			CacheDir: filepath.Join(defaultDataPath(), "cache"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "moviebrowser.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "moviebrowser")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "moviebrowser")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "moviebrowser")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "moviebrowser")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("MOVIEBROWSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("tmdb.api_key", cfg.TMDB.APIKey)
	viper.Set("tmdb.language", cfg.TMDB.Language)

	viper.Set("ui.page_size", cfg.UI.PageSize)
	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.show_ratings", cfg.UI.ShowRatings)

	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("storage.cache_dir", cfg.Storage.CacheDir)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}

// WatchlistPath returns the watchlist database file path, ensuring the
// data directory exists.
func (c *Config) WatchlistPath() (string, error) {
	if err := os.MkdirAll(c.Storage.DataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(c.Storage.DataDir, "watchlist.db"), nil
}
