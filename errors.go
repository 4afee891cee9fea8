package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingInstruction is returned when a timeline carries no
// TimelineAddEntries instruction. Older clients crashed on this; it is an
// explicit failure here so callers can distinguish it from an empty
// timeline.
var ErrMissingInstruction = errors.New("no TimelineAddEntries instruction")

// APIError is a Twitter API error carried inside an HTTP 200 body.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter API error %d: %s", e.Code, e.Message)
}

// apiError inspects a response body for a top-level errors array and
// returns the first entry as an *APIError. Bodies without one (including
// unparseable bodies, which fail later with a real location) return nil.
func apiError(body []byte) error {
	var raw struct {
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &raw) != nil || len(raw.Errors) == 0 {
		return nil
	}
	return &APIError{Code: raw.Errors[0].Code, Message: raw.Errors[0].Message}
}
