package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/qisthidev/Antigravity-Manager/internal/config"
	"github.com/qisthidev/Antigravity-Manager/internal/settings"
)

// DefaultDataDirName is the data directory created under the user's home.
const DefaultDataDirName = ".antigravity_tools"

// geminiKey describes the Gemini API key lookup.
var geminiKey = config.APIKey{
	Provider: "gemini",
	Name:     "GEMINI_API_KEY",
}

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Data locations
	DataDir     string
	CatalogPath string
	Locale      string
	LocalePath  string

	// Providers
	GeminiAPIKey string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.agm.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.SetEnvPrefix("AGM")
	_ = viper.BindEnv("gemini_api_key", geminiKey.Name)

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".agm")
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		DataDir:     viper.GetString("data_dir"),
		CatalogPath: viper.GetString("catalog_path"),
		Locale:      viper.GetString("locale"),
		LocalePath:  viper.GetString("locale_path"),

		GeminiAPIKey: viper.GetString("gemini_api_key"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if cfg.GeminiAPIKey == "" {
		key, err := config.GetAPIKey(geminiKey)
		if err != nil {
			return nil, err
		}
		cfg.GeminiAPIKey = key
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}

	return cfg, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataDir, locale string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if locale != "" {
		c.Locale = locale
	}
}

// AccountsDir returns the directory holding account files.
func (c *Config) AccountsDir() string {
	return filepath.Join(c.DataDir, "accounts")
}

// SettingsPath returns the settings document path.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, settings.FileName)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDirName
	}
	return filepath.Join(home, DefaultDataDirName)
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
