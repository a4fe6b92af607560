package commands

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/uhppoted/uhppoted-lambda-sheets/actions"
	"github.com/uhppoted/uhppoted-lambda-sheets/dispatch"
)

var LambdaCmd = Lambda{}

// Lambda runs the AWS Lambda runtime loop. It is the default command inside the Lambda execution
// environment and does not return.
type Lambda struct {
	command
}

func (cmd *Lambda) Name() string {
	return "lambda"
}

func (cmd *Lambda) Description() string {
	return "Runs the AWS Lambda handler"
}

func (cmd *Lambda) Usage() string {
	return ""
}

func (cmd *Lambda) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s lambda\n", APP)
	fmt.Println()
	fmt.Println("  Runs the AWS Lambda handler. Only useful inside the AWS Lambda execution environment, where it")
	fmt.Println("  is also the default when no command is given. The function event is:")
	fmt.Println()
	fmt.Println(`    {"action":"add_viewer|count_rows|create_sheet","attributes":{...}}`)
	fmt.Println()
	fmt.Println("  and the result is the {statusCode, body} envelope.")
	fmt.Println()
}

func (cmd *Lambda) FlagSet() *flag.FlagSet {
	return cmd.flagset("lambda")
}

func (cmd *Lambda) Execute(args ...any) error {
	lambda.Start(handler(dispatch.NewDispatcher(nil)))

	return nil
}

func handler(dispatcher *dispatch.Dispatcher) func(context.Context, dispatch.Request) (*actions.Envelope, error) {
	return func(ctx context.Context, rq dispatch.Request) (*actions.Envelope, error) {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			slog.Debug("lambda invocation", slog.String("request", lc.AwsRequestID), slog.String("action", rq.Action))
		}

		return dispatcher.Handle(ctx, rq)
	}
}
