package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	SymbolConfig struct {
		IDPrefix       string `yaml:"id_prefix" validate:"omitempty,excludesall=<>&"`
		IDTemplate     string `yaml:"id_template"`
		Slugify        bool   `yaml:"slugify"`
		DefaultViewBox string `yaml:"default_view_box" validate:"required"`
	}

	StylesConfig struct {
		Conflict ConflictPolicy `yaml:"conflict"`
		Equality EqualityMode   `yaml:"equality"`
	}

	PreviewConfig struct {
		Enable      bool    `yaml:"enable"`
		Destination string  `yaml:"destination"`
		Width       int     `yaml:"width" validate:"gte=0,lte=8192"`
		Height      int     `yaml:"height" validate:"gte=0,lte=8192"`
		StrokeScale float64 `yaml:"stroke_scale" validate:"gte=0.0"`
		Background  string  `yaml:"background" validate:"omitempty,hexcolor"`
	}

	SpriteConfig struct {
		Order       DiscoveryOrder `yaml:"order"`
		Concurrency int            `yaml:"concurrency" validate:"gte=0,lte=1024"`
		OnError     ErrorPolicy    `yaml:"on_error"`
		Symbol      SymbolConfig   `yaml:"symbol"`
		Styles      StylesConfig   `yaml:"styles"`
		Preview     PreviewConfig  `yaml:"preview"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Sprite    SpriteConfig   `yaml:"sprite"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	IDTemplateFieldName TemplateFieldName = "id_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(IDTemplateFieldName)),
)

// validateConfig performs cross field checks which cannot be expressed with
// tags.
func validateConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	if cfg.Sprite.Preview.Enable && len(cfg.Sprite.Preview.Destination) == 0 {
		sl.ReportError(cfg.Sprite.Preview.Destination, "Destination", "destination", "required_with_preview", "")
	}
	if !cfg.Sprite.Styles.Conflict.IsValid() {
		sl.ReportError(cfg.Sprite.Styles.Conflict, "Conflict", "conflict", "enum", "")
	}
	if !cfg.Sprite.Styles.Equality.IsValid() {
		sl.ReportError(cfg.Sprite.Styles.Equality, "Equality", "equality", "enum", "")
	}
	if !cfg.Sprite.Order.IsValid() {
		sl.ReportError(cfg.Sprite.Order, "Order", "order", "enum", "")
	}
	if !cfg.Sprite.OnError.IsValid() {
		sl.ReportError(cfg.Sprite.OnError, "OnError", "on_error", "enum", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(validateConfig)); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
