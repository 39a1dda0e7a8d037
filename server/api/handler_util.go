package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/adrianliechti/lens/pkg/provider"
)

func valueExtractor(r *http.Request) string {
	if val := r.URL.Query().Get("extractor"); val != "" {
		return val
	}

	return ""
}

func valuePrompt(r *http.Request) string {
	if val := r.URL.Query().Get("prompt"); val != "" {
		return val
	}

	if val := r.FormValue("prompt"); val != "" {
		return val
	}

	return ""
}

func readFile(r *http.Request) (*provider.File, error) {
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)

		if err != nil {
			return nil, err
		}

		return &provider.File{
			Name: header.Filename,

			Content:     data,
			ContentType: header.Header.Get("Content-Type"),
		}, nil
	}

	contentType := r.Header.Get("Content-Type")
	contentDisposition := r.Header.Get("Content-Disposition")

	if val, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = val
	}

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(r.Body)

	if err != nil {
		return nil, err
	}

	return &provider.File{
		Name: filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}
