// Package config loads the dashboard configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/andareed/siftly-rangeview/rangeview"
)

// Page is one entry of the start menu: a titled data source with optional
// explanatory paragraphs shown under the charts.
type Page struct {
	Title        string   `yaml:"title" validate:"required"`
	Source       string   `yaml:"source" validate:"required"`
	Sheet        string   `yaml:"sheet"`
	Descriptions []string `yaml:"descriptions"`
}

type Export struct {
	Dir    string `yaml:"dir" default:"."`
	Format string `yaml:"format" default:"png" validate:"oneof=png svg"`
	Width  int    `yaml:"width" default:"800" validate:"min=100,max=8000"`
	Height int    `yaml:"height" default:"480" validate:"min=100,max=8000"`
}

type Config struct {
	DateField      string        `yaml:"date_field" default:"Date" validate:"required"`
	CoalitionField string        `yaml:"coalition_field" default:"Coalitions" validate:"required"`
	CoalitionSep   string        `yaml:"coalition_sep" default:"-" validate:"required"`
	DateLayouts    []string      `yaml:"date_layouts"`
	Palette        []string      `yaml:"palette" validate:"dive,hexcolor"`
	Watch          bool          `yaml:"watch"`
	WatchDebounce  time.Duration `yaml:"watch_debounce" default:"300ms"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" default:"15s"`
	Export         Export        `yaml:"export"`
	Pages          []Page        `yaml:"pages" validate:"dive"`
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// only fails on malformed default tags
		panic(err)
	}
	return cfg
}

// Load reads path. An empty path yields the defaults. Relative page sources
// are resolved against the directory of the config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range cfg.Pages {
		src := cfg.Pages[i].Source
		if !strings.Contains(src, "://") && !filepath.IsAbs(src) {
			cfg.Pages[i].Source = filepath.Join(base, src)
		}
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RangeOptions maps the config onto the core loader options.
func (c *Config) RangeOptions() rangeview.Options {
	return rangeview.Options{
		DateField:      c.DateField,
		CoalitionField: c.CoalitionField,
		CoalitionSep:   c.CoalitionSep,
		DateLayouts:    c.DateLayouts,
	}
}

// PagesOrSingle returns the configured pages, or a single untitled page for
// location when one was given on the command line.
func (c *Config) PagesOrSingle(location string) []Page {
	if location != "" {
		return []Page{{Title: filepath.Base(location), Source: location}}
	}
	return c.Pages
}
