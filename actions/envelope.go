package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"

	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
)

// Envelope is the uniform result of every action.
type Envelope struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body,omitempty"`
}

// Attributes are the caller supplied action parameters.
type Attributes map[string]any

// Handler is the signature shared by all actions.
type Handler func(ctx context.Context, credentials *auth.Credentials, attributes Attributes) Envelope

// Get returns the attribute as a string, or "" if it is not present.
func (a Attributes) Get(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""

	case string:
		return v

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case json.Number:
		return v.String()

	default:
		return fmt.Sprintf("%v", v)
	}
}

func ok(body any) Envelope {
	return Envelope{
		StatusCode: http.StatusOK,
		Body:       body,
	}
}

// failed converts a Google API error into an envelope with the remote status and reason. Any other
// error is reported as an internal error.
func failed(err error) Envelope {
	var e *googleapi.Error
	if errors.As(err, &e) {
		reason := e.Message
		if reason == "" {
			reason = http.StatusText(e.Code)
		}

		return Envelope{
			StatusCode: e.Code,
			Body:       reason,
		}
	}

	return Envelope{
		StatusCode: http.StatusInternalServerError,
		Body:       err.Error(),
	}
}
