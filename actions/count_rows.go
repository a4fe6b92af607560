package actions

import (
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
	"github.com/uhppoted/uhppoted-lambda-sheets/sheet"
)

type RowCount struct {
	RowCount int `json:"rowCount"`
}

// CountRows counts the non-empty rows below the header of the 'spreadsheetId' spreadsheet.
func CountRows(ctx context.Context, credentials *auth.Credentials, attributes Attributes) Envelope {
	google, err := sheets.NewService(ctx, credentials.ClientOptions()...)
	if err != nil {
		return failed(err)
	}

	response, err := google.Spreadsheets.Values.Get(attributes.Get("spreadsheetId"), sheet.DATA_RANGE).Context(ctx).Do()
	if err != nil {
		return failed(err)
	}

	return ok(RowCount{
		RowCount: sheet.CountRows(response),
	})
}
