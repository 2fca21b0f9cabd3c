package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the tracker search API
type APIError struct {
	// StatusCode is the HTTP response status code
	StatusCode int

	// Messages are the errorMessages entries from the Jira error body,
	// or the raw body when it is not Jira's error shape
	Messages []string
}

func (err *APIError) Error() string {
	if len(err.Messages) == 0 {
		return fmt.Sprintf("tracker: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("tracker: HTTP %d: %s", err.StatusCode, strings.Join(err.Messages, "; "))
}

// IsUnauthorized reports whether err is a 401 or 403 from the tracker
func IsUnauthorized(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	return apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden
}

// parseAPIError reads a Jira error body. Jira reports failures as
// {"errorMessages": [...], "errors": {"field": "message"}}.
func parseAPIError(statusCode int, body io.Reader) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))

	var wireError struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(raw, &wireError) == nil && (len(wireError.ErrorMessages) > 0 || len(wireError.Errors) > 0) {
		apiError.Messages = append(apiError.Messages, wireError.ErrorMessages...)
		for field, message := range wireError.Errors {
			apiError.Messages = append(apiError.Messages, field+": "+message)
		}
		return apiError
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		apiError.Messages = []string{text}
	}
	return apiError
}
