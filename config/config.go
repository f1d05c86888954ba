package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/meysamhadeli/zendocs/transport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version      string        `mapstructure:"version"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Theme        string        `mapstructure:"theme"`
	PreviewLimit int           `mapstructure:"preview_limit"`
	AutoDownload bool          `mapstructure:"auto_download"`
	OutputDir    string        `mapstructure:"output_dir"`
	ExportFormat string        `mapstructure:"export_format"`
	EnableCache  bool          `mapstructure:"enable_cache"`
	CacheDir     string        `mapstructure:"cache_dir"`
	LogLevel     string        `mapstructure:"log_level"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:      "0.3.0",
	BaseURL:      transport.DefaultBaseURL,
	Timeout:      transport.DefaultTimeout,
	Theme:        "dracula",
	PreviewLimit: 2000,
	AutoDownload: false,
	OutputDir:    ".",
	ExportFormat: "md",
	EnableCache:  true,
	CacheDir:     "",
	LogLevel:     "warn",
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// Validate checks the loaded values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.PreviewLimit, validation.Min(0)),
		validation.Field(&c.ExportFormat, validation.In("md", "html")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// LoadConfigs initializes the configuration from file, flags, and environment
// variables, and returns the final config. A .env file in cwd is loaded into
// the environment first; variables already set take precedence over it.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(cwd, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ZENDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if fileType := GetConfigFileType(cfgFile); fileType != "" {
			v.SetConfigType(fileType)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("zendocs-config")
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	config.ExportFormat = strings.ToLower(config.ExportFormat)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("base_url", DefaultConfig.BaseURL)
	v.SetDefault("timeout", DefaultConfig.Timeout)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("preview_limit", DefaultConfig.PreviewLimit)
	v.SetDefault("auto_download", DefaultConfig.AutoDownload)
	v.SetDefault("output_dir", DefaultConfig.OutputDir)
	v.SetDefault("export_format", DefaultConfig.ExportFormat)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
	v.SetDefault("cache_dir", DefaultConfig.CacheDir)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
}

// bindEnv binds the unprefixed variable names accepted alongside ZENDOCS_*.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("base_url", "ZENDOCS_BASE_URL", "BASE_URL")
	_ = v.BindEnv("timeout", "ZENDOCS_TIMEOUT", "TIMEOUT")
	_ = v.BindEnv("theme", "ZENDOCS_THEME", "THEME")
	_ = v.BindEnv("log_level", "ZENDOCS_LOG_LEVEL", "LOG_LEVEL")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	for _, key := range []string{
		"base_url", "timeout", "theme", "preview_limit", "auto_download",
		"output_dir", "export_format", "enable_cache", "cache_dir", "log_level",
	} {
		if flag := rootCmd.PersistentFlags().Lookup(key); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("base_url", DefaultConfig.BaseURL, "The base URL of the documentation service.")
	rootCmd.PersistentFlags().Duration("timeout", DefaultConfig.Timeout, "Maximum time to wait for the service to generate documentation.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the chroma theme used for code lines (e.g., 'dracula', 'monokai', 'github').")
	rootCmd.PersistentFlags().Int("preview_limit", DefaultConfig.PreviewLimit, "Number of characters of documentation shown in the preview (0 shows everything).")
	rootCmd.PersistentFlags().Bool("auto_download", DefaultConfig.AutoDownload, "Write the documentation artifact automatically after a successful upload.")
	rootCmd.PersistentFlags().String("output_dir", DefaultConfig.OutputDir, "Directory the documentation artifact is written to.")
	rootCmd.PersistentFlags().String("export_format", DefaultConfig.ExportFormat, "Artifact format: 'md' or 'html'.")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Keep generated reports on disk for 'show' and 'export'.")
	rootCmd.PersistentFlags().String("cache_dir", DefaultConfig.CacheDir, "Directory used for cached reports (default .zendocs-cache in the working directory).")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Diagnostic log level: 'debug', 'info', 'warn' or 'error'.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
