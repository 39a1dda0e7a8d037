package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/lens/pkg/limiter"
	"github.com/adrianliechti/lens/pkg/otel"
	"github.com/adrianliechti/lens/pkg/provider"
	"github.com/adrianliechti/lens/pkg/provider/openai"
)

const (
	DefaultModel = "gemma3:12b"

	DefaultOllamaURL = "http://localhost:11434/v1/"
	DefaultOpenAIURL = "https://api.openai.com/v1/"
)

func (cfg *Config) RegisterCompleter(id string, p provider.Completer) {
	if cfg.completer == nil {
		cfg.completer = make(map[string]provider.Completer)
	}

	if _, ok := cfg.completer[""]; !ok {
		cfg.completer[""] = p
	}

	cfg.completer[id] = p
}

func (cfg *Config) Completer(id string) (provider.Completer, error) {
	if cfg.completer != nil {
		if c, ok := cfg.completer[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("completer not found: " + id)
}

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model string `yaml:"model"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) registerProviders(f *configFile) error {
	config := f.Provider

	if config.Type == "" {
		config.Type = "ollama"
	}

	if config.Model == "" {
		config.Model = DefaultModel
	}

	completer, err := createCompleter(config)

	if err != nil {
		return err
	}

	if _, ok := completer.(limiter.Completer); !ok {
		completer = limiter.NewCompleter(createLimiter(config.Limit), completer)
	}

	if _, ok := completer.(otel.Completer); !ok {
		completer = otel.NewCompleter(strings.ToLower(config.Type), config.Model, completer)
	}

	cfg.RegisterCompleter(config.Model, completer)

	return nil
}

func createCompleter(cfg providerConfig) (provider.Completer, error) {
	switch strings.ToLower(cfg.Type) {
	case "ollama":
		if cfg.URL == "" {
			cfg.URL = DefaultOllamaURL
		}

		return openaiCompleter(cfg)

	case "openai":
		if cfg.URL == "" {
			cfg.URL = DefaultOpenAIURL
		}

		return openaiCompleter(cfg)

	default:
		return nil, errors.New("invalid provider type: " + cfg.Type)
	}
}

func openaiCompleter(cfg providerConfig) (provider.Completer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, openai.WithClient(client))
	}

	return openai.NewCompleter(cfg.URL, cfg.Model, options...)
}
