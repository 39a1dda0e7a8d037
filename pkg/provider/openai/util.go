package openai

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
)

var (
	ErrNoChoices = errors.New("response contains no choices")
)

func convertError(err error) error {
	var apierr *openai.Error

	if errors.As(err, &apierr) {
		message := apierr.Message

		if message == "" {
			message = http.StatusText(apierr.StatusCode)
		}

		return fmt.Errorf("inference service returned %d: %s", apierr.StatusCode, message)
	}

	return err
}
