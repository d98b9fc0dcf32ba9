package monetr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Veraticus/monetr-client/internal/common"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the monetr API.
type APIError struct {
	Message    string
	RequestID  string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("monetr API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("monetr API error: %d - %s", e.StatusCode, e.Message)
}

// Is lets errors.Is classify session failures: 401 is common.ErrUnauthorized and 428 is
// common.ErrEmailNotVerified.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case common.ErrEmailNotVerified:
		return e.StatusCode == http.StatusPreconditionRequired
	default:
		return false
	}
}

func readAPIError(resp *http.Response, requestID string) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}
