package actions

import (
	"context"
	"net/http"

	"google.golang.org/api/drive/v3"

	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
)

const (
	READER = "reader"
	WRITER = "writer"
)

// AddViewer grants read access on the spreadsheet to the group e-mail address.
func AddViewer(ctx context.Context, credentials *auth.Credentials, attributes Attributes) Envelope {
	return AdjustRole(ctx, credentials, attributes, READER)
}

// AdjustRole adds a group permission with the role to the 'spreadsheetId' file. A missing
// 'emailAddress' is left to the Drive API to reject.
func AdjustRole(ctx context.Context, credentials *auth.Credentials, attributes Attributes, role string) Envelope {
	gdrive, err := drive.NewService(ctx, credentials.ClientOptions()...)
	if err != nil {
		return failed(err)
	}

	fileId := attributes.Get("spreadsheetId")
	permission := drive.Permission{
		Type:         "group",
		Role:         role,
		EmailAddress: attributes.Get("emailAddress"),
	}

	if _, err := gdrive.Permissions.Create(fileId, &permission).Context(ctx).Do(); err != nil {
		return failed(err)
	}

	return Envelope{
		StatusCode: http.StatusOK,
	}
}
