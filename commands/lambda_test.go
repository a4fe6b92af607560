package commands

import (
	"context"
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/uhppoted/uhppoted-lambda-sheets/actions"
	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
	"github.com/uhppoted/uhppoted-lambda-sheets/dispatch"
)

func TestLambdaHandlerWithoutAction(t *testing.T) {
	authenticate := func(ctx context.Context, scopes ...string) (*auth.Credentials, error) {
		t.Errorf("Unexpected authentication for request without action")
		return nil, auth.ErrConfiguration
	}

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "c6af9ac6-7b61-11e6-9a41-93e8deadbeef"})
	expected := actions.Envelope{StatusCode: 400, Body: "No action provided to Lambda"}

	reply, err := handler(dispatch.NewDispatcher(authenticate))(ctx, dispatch.Request{})
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if reply == nil || !reflect.DeepEqual(*reply, expected) {
		t.Errorf("Incorrect reply\n   expected: %+v\n   got:      %+v", expected, reply)
	}
}

func TestLambdaHandlerCountRows(t *testing.T) {
	expected := actions.Envelope{StatusCode: 200, Body: actions.RowCount{RowCount: 2}}
	rq := dispatch.Request{
		Action:     "count_rows",
		Attributes: actions.Attributes{"spreadsheetId": "abc"},
	}

	reply, err := handler(dispatch.NewDispatcher(fakeAuthenticator(t)))(context.Background(), rq)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if reply == nil || !reflect.DeepEqual(*reply, expected) {
		t.Errorf("Incorrect reply\n   expected: %+v\n   got:      %+v", expected, reply)
	}
}
