package config

import (
	"errors"

	"github.com/adrianliechti/lens/pkg/extractor"
	"github.com/adrianliechti/lens/pkg/extractor/llm"
	"github.com/adrianliechti/lens/pkg/limiter"
	"github.com/adrianliechti/lens/pkg/otel"
)

func (cfg *Config) RegisterExtractor(id string, p extractor.Provider) {
	if cfg.extractor == nil {
		cfg.extractor = make(map[string]extractor.Provider)
	}

	if _, ok := cfg.extractor[""]; !ok {
		cfg.extractor[""] = p
	}

	cfg.extractor[id] = p
}

func (cfg *Config) Extractor(id string) (extractor.Provider, error) {
	if cfg.extractor != nil {
		if e, ok := cfg.extractor[id]; ok {
			return e, nil
		}
	}

	return nil, errors.New("extractor not found: " + id)
}

type extractorConfig struct {
	Model  string `yaml:"model"`
	Prompt string `yaml:"prompt"`

	MaxTokens   *int     `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) registerExtractors(f *configFile) error {
	config := f.Extractor

	completer, err := cfg.Completer(config.Model)

	if err != nil {
		return err
	}

	var options []llm.Option

	if config.Prompt != "" {
		options = append(options, llm.WithPrompt(config.Prompt))
	}

	if config.MaxTokens != nil {
		options = append(options, llm.WithMaxTokens(*config.MaxTokens))
	}

	if config.Temperature != nil {
		options = append(options, llm.WithTemperature(*config.Temperature))
	}

	var e extractor.Provider

	e, err = llm.New(completer, options...)

	if err != nil {
		return err
	}

	model := config.Model

	if model == "" {
		model = f.Provider.Model
	}

	if model == "" {
		model = DefaultModel
	}

	if _, ok := e.(limiter.Extractor); !ok {
		e = limiter.NewExtractor(createLimiter(config.Limit), e)
	}

	if _, ok := e.(otel.Extractor); !ok {
		e = otel.NewExtractor("llm", model, e)
	}

	cfg.RegisterExtractor("llm", e)

	return nil
}
