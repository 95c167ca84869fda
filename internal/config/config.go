// Package config loads command line configuration for pdflayout.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/pdflayout"
	"github.com/tsawler/pdflayout/export"
)

// EnvPrefix is the prefix of environment variables read by Load, e.g.
// PDFLAYOUT_IMAGESCALE.
const EnvPrefix = "PDFLAYOUT"

// Config holds all configuration settings for the command line tool.
// Configuration precedence: CLI flags > Environment variables > Config file > Defaults
type Config struct {
	// Options are the layout reconstruction options
	pdflayout.Options `mapstructure:",squash"`

	// Format is the output format (markdown, html, json, text)
	Format string `mapstructure:"format"`

	// Output is the output file path (empty = stdout)
	Output string `mapstructure:"output"`

	// ImageDir receives extracted images (empty = embed as data URIs)
	ImageDir string `mapstructure:"imageDir"`

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string `mapstructure:"logLevel"`

	// LogFormat is "console" or "json"
	LogFormat string `mapstructure:"logFormat"`

	// MuPDFBin is the mutool binary (empty = $MUPDF_BIN, then PATH)
	MuPDFBin string `mapstructure:"mupdfBin"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"paragraph-threshold": "paragraphThreshold",
	"line-threshold":      "lineThreshold",
	"image-scale":         "imageScale",
	"extract-images":      "extractImages",
	"ignore-empty-text":   "ignoreEmptyText",
	"join-paragraphs":     "joinParagraphs",
	"image-format":        "imageOutputFormat",
	"concurrency":         "concurrency",
	"ocr":                 "ocrImages",
	"ocr-language":        "ocrLanguage",
	"ocr-page-seg-mode":   "ocrPageSegMode",
	"format":              "format",
	"output":              "output",
	"image-dir":           "imageDir",
	"log-level":           "logLevel",
	"log-format":          "logFormat",
	"mupdf-bin":           "mupdfBin",
}

// Load reads configuration from a .env file, an optional config file, the
// environment and flags. configFile may be empty. flags may be nil; only
// flags that were changed override lower-precedence sources.
func Load(configFile, envFile string, flags *pflag.FlagSet) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	opts := pdflayout.DefaultOptions()

	v.SetDefault("paragraphThreshold", opts.ParagraphThreshold)
	v.SetDefault("lineThreshold", opts.LineThreshold)
	v.SetDefault("imageScale", opts.ImageScale)
	v.SetDefault("extractImages", opts.ExtractImages)
	v.SetDefault("ignoreEmptyText", opts.IgnoreEmptyText)
	v.SetDefault("joinParagraphs", opts.JoinParagraphs)
	v.SetDefault("imageOutputFormat", opts.ImageOutputFormat)
	v.SetDefault("concurrency", opts.Concurrency)
	v.SetDefault("ocrImages", opts.OCRImages)
	v.SetDefault("ocrLanguage", opts.OCRLanguage)
	v.SetDefault("ocrPageSegMode", opts.OCRPageSegMode)

	v.SetDefault("format", "markdown")
	v.SetDefault("output", "")
	v.SetDefault("imageDir", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("mupdfBin", "")
}

// Validate checks that the configuration is valid and internally consistent
func (c *Config) Validate() error {
	if _, err := export.ParseFormat(c.Format); err != nil {
		return err
	}
	return c.Options.Validate()
}

// ExportFormat returns the parsed output format.
func (c *Config) ExportFormat() export.Format {
	f, _ := export.ParseFormat(c.Format)
	return f
}
