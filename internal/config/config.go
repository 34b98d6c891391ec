// Package config loads sqlcover settings from a YAML file and the environment.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	m "github.com/mouse-blink/sqlcover/internal/model"
	"github.com/mouse-blink/sqlcover/internal/report"
)

// EnvPrefix prefixes every environment override, e.g. SQLCOVER_LOG_LEVEL.
const EnvPrefix = "SQLCOVER"

// DefaultConfigName is looked up in the working directory when no explicit
// config file is given.
const DefaultConfigName = "sqlcover"

// Config holds every tunable of a report run.
type Config struct {
	Output      string       `mapstructure:"output"`
	Formats     []string     `mapstructure:"formats"`
	Package     string       `mapstructure:"package"`
	Store       string       `mapstructure:"store"`
	SaveSources bool         `mapstructure:"save_sources"`
	UI          string       `mapstructure:"ui"`
	Log         LogConfig    `mapstructure:"log"`
	Trace       TraceConfig  `mapstructure:"trace"`
	Corrections []Correction `mapstructure:"corrections"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TraceConfig describes how sqlite:// trace locations are queried.
type TraceConfig struct {
	Driver string `mapstructure:"driver"`
	Query  string `mapstructure:"query"`
}

// Correction aligns the Cobertura output of one object with a differently
// indexed copy of its source.
type Correction struct {
	Object string `mapstructure:"object"`
	Line   int    `mapstructure:"line"`
	Offset int    `mapstructure:"offset"`
	Path   string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", ".")
	v.SetDefault("formats", []string{string(report.FormatHTML2), string(report.FormatCobertura)})
	v.SetDefault("package", report.DefaultPackageName)
	v.SetDefault("store", "")
	v.SetDefault("save_sources", false)
	v.SetDefault("ui", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("trace.driver", "sqlite3")
	v.SetDefault("trace.query", "")
}

// Load reads path, or sqlcover.yaml from the working directory when path is
// empty. A missing default file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "reading config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	return &cfg, nil
}

// ReportFormats parses the configured format names.
func (c *Config) ReportFormats() ([]report.Format, error) {
	formats := make([]report.Format, 0, len(c.Formats))

	for _, name := range c.Formats {
		f, err := report.ParseFormat(name)
		if err != nil {
			return nil, err
		}

		formats = append(formats, f)
	}

	return formats, nil
}

// CoberturaHook turns the configured corrections into a Cobertura
// customization hook. It returns nil when nothing is configured.
func (c *Config) CoberturaHook() func(m.Batch) report.FileCorrection {
	if len(c.Corrections) == 0 {
		return nil
	}

	byObject := make(map[string]report.FileCorrection, len(c.Corrections))

	for _, corr := range c.Corrections {
		byObject[strings.ToLower(corr.Object)] = report.FileCorrection{
			LineCorrection:   corr.Line,
			OffsetCorrection: corr.Offset,
			Path:             corr.Path,
		}
	}

	return func(b m.Batch) report.FileCorrection {
		return byObject[strings.ToLower(b.ObjectName)]
	}
}
