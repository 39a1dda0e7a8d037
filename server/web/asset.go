package web

import (
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/http"
	"os"
)

// loadImage returns the file at path as a data URI, or an empty URL when
// it cannot be read.
func loadImage(path string) template.URL {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)

	if err != nil {
		slog.Error("logo file not found", "path", path, "error", err)
		return ""
	}

	mime := http.DetectContentType(data)

	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}
