package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/lens/config"
	"github.com/adrianliechti/lens/pkg/extractor"
	"github.com/adrianliechti/lens/pkg/session"
	"github.com/adrianliechti/lens/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const testSession = "6f1c2a4e-52a1-4d55-9d7c-0f6f0b8b7a10"

var testImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeExtractor struct {
	reply string
	err   error

	input   extractor.File
	options *extractor.ExtractOptions
}

func (e *fakeExtractor) Extract(ctx context.Context, input extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	e.input = input
	e.options = options

	if e.err != nil {
		return nil, e.err
	}

	return &extractor.Document{Text: e.reply}, nil
}

func newTestHandler(t *testing.T, e extractor.Provider) (http.Handler, *session.Session) {
	t.Helper()

	cfg := &config.Config{
		Sessions: session.New(),
	}

	cfg.RegisterExtractor("", e)

	h, err := api.New(cfg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(cfg.Sessions.Middleware)

	h.Attach(r)

	return r, cfg.Sessions.Session(testSession)
}

func newRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: testSession})

	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestExtractRawBody(t *testing.T) {
	e := &fakeExtractor{reply: "# Title\n\nBody text"}
	h, s := newTestHandler(t, e)

	req := newRequest(http.MethodPost, "/extract", testImage)
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Content-Disposition", `attachment; filename="scan.png"`)

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "# Title\n\nBody text", rec.Body.String())

	require.Equal(t, "scan.png", e.input.Name)
	require.Equal(t, testImage, e.input.Content)

	result, ok := s.Get()
	require.True(t, ok)
	require.Equal(t, "# Title\n\nBody text", result)
}

func TestExtractMultipart(t *testing.T) {
	e := &fakeExtractor{reply: "text"}
	h, _ := newTestHandler(t, e)

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)

	part.Write([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"))
	require.NoError(t, w.Close())

	req := newRequest(http.MethodPost, "/extract", body.Bytes())
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "photo.jpg", e.input.Name)
}

func TestExtractPrompt(t *testing.T) {
	e := &fakeExtractor{reply: "text"}
	h, _ := newTestHandler(t, e)

	req := newRequest(http.MethodPost, "/extract?prompt=List+the+prices.", testImage)
	req.Header.Set("Content-Type", "image/png")

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "List the prices.", e.options.Prompt)

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", "photo.png")
	require.NoError(t, err)

	part.Write(testImage)

	require.NoError(t, w.WriteField("prompt", "Transcribe the table."))
	require.NoError(t, w.Close())

	req = newRequest(http.MethodPost, "/extract", body.Bytes())
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec = serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Transcribe the table.", e.options.Prompt)

	req = newRequest(http.MethodPost, "/extract", testImage)
	req.Header.Set("Content-Type", "image/png")

	rec = serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, e.options.Prompt)
}

func TestExtractJSON(t *testing.T) {
	h, _ := newTestHandler(t, &fakeExtractor{reply: "| a | b |"})

	req := newRequest(http.MethodPost, "/extract", testImage)
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Accept", "application/json")

	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc api.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "| a | b |", doc.Text)
}

func TestExtractFailure(t *testing.T) {
	e := &fakeExtractor{reply: "previous"}
	h, s := newTestHandler(t, e)

	s.Set("previous")

	e.err = errors.New("connection refused")

	req := newRequest(http.MethodPost, "/extract", testImage)
	req.Header.Set("Content-Type", "image/png")

	rec := serve(h, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "connection refused", rec.Body.String())

	result, ok := s.Get()
	require.True(t, ok)
	require.Equal(t, "previous", result)
}

func TestExtractEmpty(t *testing.T) {
	h, _ := newTestHandler(t, &fakeExtractor{reply: "unused"})

	req := newRequest(http.MethodPost, "/extract", nil)
	req.Header.Set("Content-Type", "image/png")

	rec := serve(h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractUnsupported(t *testing.T) {
	e := &fakeExtractor{reply: "unused"}
	h, _ := newTestHandler(t, e)

	req := newRequest(http.MethodPost, "/extract", []byte("%PDF-1.7"))
	req.Header.Set("Content-Type", "application/pdf")

	rec := serve(h, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	require.Nil(t, e.input.Content)
}

func TestExtractUnknownExtractor(t *testing.T) {
	h, _ := newTestHandler(t, &fakeExtractor{reply: "unused"})

	req := newRequest(http.MethodPost, "/extract?extractor=tesseract", testImage)
	req.Header.Set("Content-Type", "image/png")

	rec := serve(h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResult(t *testing.T) {
	h, s := newTestHandler(t, &fakeExtractor{})

	rec := serve(h, newRequest(http.MethodGet, "/result", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	s.Set("# Title\n\nBody text")

	rec = serve(h, newRequest(http.MethodGet, "/result", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "# Title\n\nBody text", rec.Body.String())
}

func TestClear(t *testing.T) {
	h, s := newTestHandler(t, &fakeExtractor{})

	s.Set("result")

	rec := serve(h, newRequest(http.MethodDelete, "/result", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := s.Get()
	require.False(t, ok)

	rec = serve(h, newRequest(http.MethodDelete, "/result", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(h, newRequest(http.MethodGet, "/result", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
