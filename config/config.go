package config

import (
	"bytes"
	"os"
	"time"

	"github.com/adrianliechti/lens/pkg/extractor"
	"github.com/adrianliechti/lens/pkg/provider"
	"github.com/adrianliechti/lens/pkg/session"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Title   string
	Tagline string
	Logo    string

	Origins []string

	Sessions *session.Store

	completer map[string]provider.Completer
	extractor map[string]extractor.Provider
}

// Parse reads the configuration file at path. An empty path yields the
// defaults: a local Ollama server on port 11434 serving gemma3:12b.
func Parse(path string) (*Config, error) {
	file := &configFile{}

	if path != "" {
		f, err := parseFile(path)

		if err != nil {
			return nil, err
		}

		file = f
	}

	c := &Config{
		Address: ":8080",

		Title:   "Lens OCR",
		Tagline: "Extract structured text from images using a local vision model!",
		Logo:    "logo.png",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerUI(file); err != nil {
		return nil, err
	}

	if err := c.registerSessions(file); err != nil {
		return nil, err
	}

	if err := c.registerProviders(file); err != nil {
		return nil, err
	}

	if err := c.registerExtractors(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	UI   uiConfig   `yaml:"ui"`
	CORS corsConfig `yaml:"cors"`

	Provider  providerConfig  `yaml:"provider"`
	Extractor extractorConfig `yaml:"extractor"`

	Sessions sessionConfig `yaml:"sessions"`
}

type uiConfig struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Logo    string `yaml:"logo"`
}

type corsConfig struct {
	Origins []string `yaml:"origins"`
}

type sessionConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (cfg *Config) registerUI(f *configFile) error {
	if f.UI.Title != "" {
		cfg.Title = f.UI.Title
	}

	if f.UI.Tagline != "" {
		cfg.Tagline = f.UI.Tagline
	}

	if f.UI.Logo != "" {
		cfg.Logo = f.UI.Logo
	}

	cfg.Origins = f.CORS.Origins

	return nil
}

func (cfg *Config) registerSessions(f *configFile) error {
	var options []session.Option

	if f.Sessions.Size > 0 {
		options = append(options, session.WithSize(f.Sessions.Size))
	}

	if f.Sessions.TTL > 0 {
		options = append(options, session.WithTTL(f.Sessions.TTL))
	}

	if len(cfg.Origins) > 0 {
		options = append(options, session.WithCrossSite())
	}

	cfg.Sessions = session.New(options...)

	return nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
