package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/uhppoted/uhppoted-lambda-sheets/actions"
	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
)

// Request is the invocation event.
type Request struct {
	Action     string             `json:"action"`
	Attributes actions.Attributes `json:"attributes"`
}

// Authenticator builds credentials restricted to the scopes.
type Authenticator func(ctx context.Context, scopes ...string) (*auth.Credentials, error)

type Dispatcher struct {
	authenticate Authenticator
}

type action struct {
	handler actions.Handler
	scopes  []string
}

var table = map[string]action{
	"add_viewer": {
		handler: actions.AddViewer,
		scopes:  []string{auth.DRIVE},
	},

	"count_rows": {
		handler: actions.CountRows,
		scopes:  []string{auth.SHEETS},
	},

	"create_sheet": {
		handler: actions.CreateSheet,
		scopes:  []string{auth.SHEETS, auth.DRIVE},
	},
}

// NewDispatcher returns a Dispatcher that uses the authenticator to build the credentials for each
// request. A nil authenticator defaults to the service account configured in the environment.
func NewDispatcher(authenticate Authenticator) *Dispatcher {
	if authenticate == nil {
		authenticate = auth.Authenticate
	}

	return &Dispatcher{
		authenticate: authenticate,
	}
}

// Scopes returns a copy of the OAuth2 scopes required by the action.
func Scopes(name string) ([]string, bool) {
	if a, ok := table[name]; ok {
		return append([]string{}, a.scopes...), true
	}

	return nil, false
}

// Handle invokes the action handler for the request with freshly built credentials. Failures of
// the request or of the remote API are returned as an envelope; the error return is reserved for a
// misconfigured deployment.
func (d *Dispatcher) Handle(ctx context.Context, rq Request) (*actions.Envelope, error) {
	id := uuid.NewString()
	logger := slog.With(slog.String("invocation", id), slog.String("action", rq.Action))

	if rq.Action == "" {
		logger.Warn("rejected request without action")

		return &actions.Envelope{
			StatusCode: http.StatusBadRequest,
			Body:       "No action provided to Lambda",
		}, nil
	}

	a, ok := table[rq.Action]
	if !ok {
		logger.Warn("rejected unrecognised action")

		return &actions.Envelope{
			StatusCode: http.StatusBadRequest,
			Body:       fmt.Sprintf("Unrecognised action '%v'", rq.Action),
		}, nil
	}

	scopes := append([]string{}, a.scopes...)

	credentials, err := d.authenticate(ctx, scopes...)
	if err != nil {
		logger.Error("failed to build credentials", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%v: %w", rq.Action, err)
	}

	start := time.Now()
	reply := a.handler(ctx, credentials, rq.Attributes)

	logger.Info("dispatched",
		slog.Int("status", reply.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	return &reply, nil
}
