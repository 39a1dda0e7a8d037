package config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/lens/pkg/extractor"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, "logo.png", cfg.Logo)
	require.NotEmpty(t, cfg.Title)
	require.NotNil(t, cfg.Sessions)

	_, err = cfg.Completer(DefaultModel)
	require.NoError(t, err)

	_, err = cfg.Completer("")
	require.NoError(t, err)

	_, err = cfg.Extractor("")
	require.NoError(t, err)

	_, err = cfg.Extractor("llm")
	require.NoError(t, err)
}

func TestParseFile(t *testing.T) {
	t.Setenv("LENS_TEST_TOKEN", "secret")

	path := writeConfig(t, `
address: ":9090"

ui:
  title: Scanner
  logo: assets/brand.png

cors:
  origins:
    - https://example.com

provider:
  type: openai
  url: http://inference.local/v1
  token: ${LENS_TEST_TOKEN}
  model: llava:13b
  limit: 5
  proxy:
    url: http://proxy.local:3128

extractor:
  prompt: Transcribe the image.

sessions:
  size: 10
  ttl: 30m
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, "Scanner", cfg.Title)
	require.Equal(t, "assets/brand.png", cfg.Logo)
	require.Equal(t, []string{"https://example.com"}, cfg.Origins)

	_, err = cfg.Completer("llava:13b")
	require.NoError(t, err)

	_, err = cfg.Completer(DefaultModel)
	require.Error(t, err)

	rec := httptest.NewRecorder()
	cfg.Sessions.Middleware(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
}

func TestParseExtractorSettings(t *testing.T) {
	var body struct {
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`

		Messages []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "1", "object": "chat.completion", "model": "m", "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "ok"}}]}`))
	}))

	defer server.Close()

	path := writeConfig(t, `
provider:
  url: `+server.URL+`/v1
  model: test-model
  limit: 1

extractor:
  prompt: Transcribe the image.
  max_tokens: 1024
  temperature: 0.5
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	e, err := cfg.Extractor("")
	require.NoError(t, err)

	input := extractor.File{
		Content:     []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
		ContentType: "image/png",
	}

	_, err = e.Extract(context.Background(), input, nil)
	require.NoError(t, err)

	require.Len(t, body.Messages, 1)
	require.NotEmpty(t, body.Messages[0].Content)
	require.Equal(t, "Transcribe the image.", body.Messages[0].Content[0].Text)
	require.Equal(t, 1024, body.MaxTokens)
	require.Equal(t, 0.5, body.Temperature)

	// one request per second, the burst is spent
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = e.Extract(ctx, input, nil)
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("LENS_TEST_MODEL", "qwen2.5vl:7b")

	path := writeConfig(t, `
provider:
  model: ${LENS_TEST_MODEL}
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	_, err = cfg.Completer("qwen2.5vl:7b")
	require.NoError(t, err)
}

func TestParseUnknownField(t *testing.T) {
	path := writeConfig(t, `
provider:
  type: ollama
  modle: gemma3:12b
`)

	_, err := Parse(path)
	require.Error(t, err)
}

func TestParseInvalidType(t *testing.T) {
	path := writeConfig(t, `
provider:
  type: carrier-pigeon
`)

	_, err := Parse(path)
	require.ErrorContains(t, err, "invalid provider type")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExtractorUsesConfiguredProvider(t *testing.T) {
	var requestPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "1", "object": "chat.completion", "model": "m", "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "# Receipt"}}]}`))
	}))

	defer server.Close()

	path := writeConfig(t, `
provider:
  url: `+server.URL+`/v1
  model: test-model
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	e, err := cfg.Extractor("")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := e.Extract(ctx, extractor.File{
		Content:     []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
		ContentType: "image/png",
	}, nil)

	require.NoError(t, err)
	require.Equal(t, "# Receipt", result.Text)
	require.Equal(t, "/v1/chat/completions", requestPath)
}

func TestProxyClient(t *testing.T) {
	var p *proxyConfig

	client, err := p.proxyClient()
	require.NoError(t, err)
	require.Nil(t, client)

	p = &proxyConfig{URL: "http://proxy.local:3128"}

	client, err = p.proxyClient()
	require.NoError(t, err)
	require.NotNil(t, client)
}
