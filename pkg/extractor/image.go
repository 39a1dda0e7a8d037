package extractor

import (
	"fmt"
	"net/http"
)

// DetectImageType returns the MIME type of a PNG or JPEG upload, sniffing
// the content when the declared type is missing or generic.
func DetectImageType(input File) (string, error) {
	contentType := input.ContentType

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(input.Content)
	}

	switch contentType {
	case "image/png", "image/jpeg":
		return contentType, nil

	case "image/jpg":
		return "image/jpeg", nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupported, contentType)
}
