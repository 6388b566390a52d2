package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input InputConfig `yaml:"input" mapstructure:"input"`
	Chart ChartConfig `yaml:"chart" mapstructure:"chart"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// InputConfig describes the score file to load.
type InputConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"` // auto, csv, or xlsx
}

// ChartConfig configures the rendered difference chart.
type ChartConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
	Width  int    `yaml:"width" mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MODELCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.path", "diff.csv")
	v.SetDefault("input.format", "auto")
	v.SetDefault("chart.output", "auroc_diff.png")
	v.SetDefault("chart.width", 1100)
	v.SetDefault("chart.height", 500)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return eris.New("config: input.path must not be empty")
	}
	switch c.Input.Format {
	case "auto", "csv", "xlsx":
	default:
		return eris.Errorf("config: input.format must be auto, csv, or xlsx (got %q)", c.Input.Format)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return eris.Errorf("config: chart dimensions must be positive (got %dx%d)", c.Chart.Width, c.Chart.Height)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
