package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/garyjia/docsynth/internal/degrade"
	"github.com/garyjia/docsynth/internal/export"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/quality"
	"github.com/garyjia/docsynth/internal/storage"
)

// EnvPrefix prefixes environment overrides, e.g. DOCSYNTH_OUTPUT_DIR
const EnvPrefix = "DOCSYNTH"

// Config holds all application configuration
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Output    OutputConfig    `mapstructure:"output"`
	Render    RenderConfig    `mapstructure:"render"`
	Degrade   DegradeConfig   `mapstructure:"degrade"`
	Quality   QualityConfig   `mapstructure:"quality"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Lark      LarkConfig      `mapstructure:"lark"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// GeneratorConfig controls what gets generated
type GeneratorConfig struct {
	Seed         uint64         `mapstructure:"seed"`
	Counts       map[string]int `mapstructure:"counts"`
	TemplatesDir string         `mapstructure:"templates_dir"` // empty uses the embedded pool
	Extensions   []string       `mapstructure:"extensions"`
	CorpusPath   string         `mapstructure:"corpus_path"`
}

// OutputConfig controls where and how images are written
type OutputConfig struct {
	Dir         string        `mapstructure:"dir"`
	Format      string        `mapstructure:"format"`
	JPEGQuality int           `mapstructure:"jpeg_quality"`
	Labels      bool          `mapstructure:"labels"`
	Split       export.Ratios `mapstructure:"split"`
}

// RenderConfig holds page rendering settings
type RenderConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	DPI    float64 `mapstructure:"dpi"`
	TmpDir string  `mapstructure:"tmp_dir"`
}

// DegradeConfig holds the scan simulation settings
type DegradeConfig struct {
	Enabled bool           `mapstructure:"enabled"`
	Params  degrade.Params `mapstructure:",squash"`
}

// QualityConfig holds the image quality gate settings
type QualityConfig struct {
	Enabled    bool               `mapstructure:"enabled"`
	Thresholds quality.Thresholds `mapstructure:",squash"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	QueueSize    int           `mapstructure:"queue_size"`
	MaxCount     int           `mapstructure:"max_count"`
}

// OpenAIConfig holds OpenAI API configuration for the corpus builder
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// LarkConfig holds Lark API configuration for batch notifications
type LarkConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	AppID         string `mapstructure:"app_id"`
	AppSecret     string `mapstructure:"app_secret"`
	ReceiveIDType string `mapstructure:"receive_id_type"`
	ReceiveID     string `mapstructure:"receive_id"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from an optional file, a .env file in the working
// directory and environment variables. An empty path uses defaults only.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	cfg := Default()
	// lists and maps from the file replace the defaults instead of overlaying them
	if v.IsSet("generator.counts") {
		cfg.Generator.Counts = nil
	}
	if v.IsSet("generator.extensions") {
		cfg.Generator.Extensions = nil
	}
	if v.IsSet("degrade.effects") {
		cfg.Degrade.Params.Effects = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Counts: map[string]int{
				string(models.ClassTaxForm):       100,
				string(models.ClassPayStatement):  100,
				string(models.ClassMiscellaneous): 100,
			},
			Extensions: []string{".html", ".htm"},
		},
		Output: OutputConfig{
			Dir:         "./dataset",
			Format:      string(storage.FormatJPEG),
			JPEGQuality: 85,
			Labels:      true,
			Split:       export.DefaultRatios(),
		},
		Render: RenderConfig{Width: 850, Height: 1100, DPI: 144},
		Degrade: DegradeConfig{
			Enabled: true,
			Params:  degrade.DefaultParams(),
		},
		Quality: QualityConfig{
			Enabled:    true,
			Thresholds: quality.DefaultThresholds(),
		},
		Database: DatabaseConfig{
			Enabled:         true,
			Path:            "data/docsynth.db",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			QueueSize:    16,
			MaxCount:     10000,
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.9,
			Timeout:     60 * time.Second,
		},
		Lark: LarkConfig{ReceiveIDType: "chat_id"},
		Logger: LoggerConfig{
			Level:      "info",
			OutputPath: "stdout",
			Format:     "console",
		},
	}
}

// setDefaults registers the scalar defaults so env overrides resolve
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("generator.seed", d.Generator.Seed)
	v.SetDefault("generator.templates_dir", d.Generator.TemplatesDir)
	v.SetDefault("generator.corpus_path", d.Generator.CorpusPath)

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.jpeg_quality", d.Output.JPEGQuality)
	v.SetDefault("output.labels", d.Output.Labels)

	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.dpi", d.Render.DPI)
	v.SetDefault("render.tmp_dir", d.Render.TmpDir)

	v.SetDefault("degrade.enabled", d.Degrade.Enabled)
	v.SetDefault("quality.enabled", d.Quality.Enabled)

	v.SetDefault("database.enabled", d.Database.Enabled)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.queue_size", d.Server.QueueSize)
	v.SetDefault("server.max_count", d.Server.MaxCount)

	v.SetDefault("openai.model", d.OpenAI.Model)
	v.SetDefault("openai.temperature", d.OpenAI.Temperature)
	v.SetDefault("openai.timeout", d.OpenAI.Timeout)

	v.SetDefault("lark.enabled", d.Lark.Enabled)
	v.SetDefault("lark.receive_id_type", d.Lark.ReceiveIDType)
	v.SetDefault("lark.receive_id", d.Lark.ReceiveID)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.output_path", d.Logger.OutputPath)
	v.SetDefault("logger.format", d.Logger.Format)
}

// bindEnvVars binds the unprefixed credential variables
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("lark.app_id", "LARK_APP_ID")
	_ = v.BindEnv("lark.app_secret", "LARK_APP_SECRET")
	_ = v.BindEnv("lark.receive_id", "LARK_RECEIVE_ID")
}

// ClassCounts returns the configured counts keyed by document class
func (c *Config) ClassCounts() (map[models.DocumentClass]int, error) {
	out := make(map[models.DocumentClass]int, len(c.Generator.Counts))
	for name, n := range c.Generator.Counts {
		class, err := models.ParseClass(name)
		if err != nil {
			return nil, err
		}
		out[class] = n
	}
	return out, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.ClassCounts(); err != nil {
		return fmt.Errorf("generator.counts: %w", err)
	}
	for name, n := range c.Generator.Counts {
		if n < 0 {
			return fmt.Errorf("generator.counts.%s must not be negative", name)
		}
	}
	if c.Generator.TemplatesDir != "" {
		info, err := os.Stat(c.Generator.TemplatesDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("generator.templates_dir %q is not a directory", c.Generator.TemplatesDir)
		}
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if _, err := storage.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be within 1-100")
	}
	if err := c.Output.Split.Validate(); err != nil {
		return fmt.Errorf("output.split: %w", err)
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive")
	}
	if c.Render.DPI <= 0 {
		return fmt.Errorf("render.dpi must be positive")
	}

	if c.Degrade.Enabled {
		if err := c.Degrade.Params.Validate(); err != nil {
			return fmt.Errorf("degrade: %w", err)
		}
	}

	if c.Database.Enabled && c.Database.Path == "" {
		return fmt.Errorf("database.path is required when the ledger is enabled")
	}

	if c.Lark.Enabled {
		if c.Lark.AppID == "" || c.Lark.AppSecret == "" {
			return fmt.Errorf("lark.app_id and lark.app_secret are required when notifications are enabled")
		}
		if c.Lark.ReceiveID == "" {
			return fmt.Errorf("lark.receive_id is required when notifications are enabled")
		}
	}

	return nil
}

// ServerAddr returns host:port for the HTTP server
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
