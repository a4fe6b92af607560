package actions

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
)

// DEFAULT_EMAIL is the environment variable holding the address granted 'writer' on new spreadsheets.
const DEFAULT_EMAIL = "DEFAULT_EMAIL"

// Created is the body returned by CreateSheet. Grant is only set if the default editor could not be
// added, in which case the spreadsheet exists but is only accessible to the service account.
type Created struct {
	SpreadsheetID string    `json:"spreadsheetId"`
	Grant         *Envelope `json:"grant,omitempty"`
}

// CreateSheet creates a blank spreadsheet and makes DEFAULT_EMAIL an editor. Attributes are ignored.
// Requires both the spreadsheets and drive.file scopes.
func CreateSheet(ctx context.Context, credentials *auth.Credentials, _ Attributes) Envelope {
	google, err := sheets.NewService(ctx, credentials.ClientOptions()...)
	if err != nil {
		return failed(err)
	}

	spreadsheet, err := google.Spreadsheets.Create(&sheets.Spreadsheet{}).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return failed(err)
	}

	created := Created{
		SpreadsheetID: spreadsheet.SpreadsheetId,
	}

	params := Attributes{
		"spreadsheetId": spreadsheet.SpreadsheetId,
		"emailAddress":  os.Getenv(DEFAULT_EMAIL),
	}

	if grant := AdjustRole(ctx, credentials, params, WRITER); grant.StatusCode != http.StatusOK {
		slog.Warn("failed to add default editor to spreadsheet",
			slog.String("spreadsheet", spreadsheet.SpreadsheetId),
			slog.Int("status", grant.StatusCode),
			slog.Any("reason", grant.Body))

		created.Grant = &grant
	}

	return ok(created)
}
