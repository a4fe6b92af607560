package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/uhppoted/uhppoted-lambda-sheets/actions"
	"github.com/uhppoted/uhppoted-lambda-sheets/dispatch"
)

var InvokeCmd = Invoke{
	action:     "",
	attributes: "",
	url:        "",
	email:      "",
}

type Invoke struct {
	command
	action     string
	attributes string
	url        string
	email      string
}

func (cmd *Invoke) Name() string {
	return "invoke"
}

func (cmd *Invoke) Description() string {
	return "Runs a single action against Google Sheets using the service account configured in the environment"
}

func (cmd *Invoke) Usage() string {
	return "--action <action> [--url <url>] [--email <address>] [--attributes <json>]"
}

func (cmd *Invoke) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] invoke [options] --action <action>\n", APP)
	fmt.Println()
	fmt.Println("  Runs a single add_viewer, count_rows or create_sheet action and prints the result envelope.")
	fmt.Println("  The service account is read from the environment (or a .env file in the current directory).")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-lambda-sheets invoke --action count_rows \`)
	fmt.Println(`                                  --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
	fmt.Println(`    uhppoted-lambda-sheets invoke --action add_viewer \`)
	fmt.Println(`                                  --attributes '{"spreadsheetId":"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms","emailAddress":"viewers@example.com"}'`)
	fmt.Println()
	fmt.Println(`    uhppoted-lambda-sheets --debug invoke --action create_sheet`)
	fmt.Println()
}

func (cmd *Invoke) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("invoke")

	flagset.StringVar(&cmd.action, "action", cmd.action, "Action to invoke (add_viewer, count_rows or create_sheet)")
	flagset.StringVar(&cmd.attributes, "attributes", cmd.attributes, "Action attributes as a JSON object")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL. Sets the 'spreadsheetId' attribute")
	flagset.StringVar(&cmd.email, "email", cmd.email, "Group e-mail address. Sets the 'emailAddress' attribute")

	return flagset
}

func (cmd *Invoke) Execute(args ...any) error {
	ctx, _ := arguments(args...)

	rq, err := cmd.request()
	if err != nil {
		return err
	}

	slog.Debug("invoke", slog.String("action", rq.Action), slog.Any("attributes", rq.Attributes))

	reply, err := dispatch.NewDispatcher(nil).Handle(ctx, rq)
	if err != nil {
		return fmt.Errorf("invoke failed (%w)", err)
	}

	b, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(b))

	if reply.StatusCode >= 400 {
		return fmt.Errorf("%v failed with status %v", rq.Action, reply.StatusCode)
	}

	return nil
}

// request builds the invocation event from the command line. The action is deliberately not
// validated here so that a missing or unknown action is reported by the dispatcher.
func (cmd *Invoke) request() (dispatch.Request, error) {
	rq := dispatch.Request{
		Action:     strings.TrimSpace(cmd.action),
		Attributes: actions.Attributes{},
	}

	if strings.TrimSpace(cmd.attributes) != "" {
		if err := json.Unmarshal([]byte(cmd.attributes), &rq.Attributes); err != nil {
			return rq, fmt.Errorf("invalid --attributes JSON (%v)", err)
		} else if rq.Attributes == nil {
			rq.Attributes = actions.Attributes{}
		}
	}

	if strings.TrimSpace(cmd.url) != "" {
		id, err := spreadsheetID(cmd.url)
		if err != nil {
			return rq, err
		}

		rq.Attributes["spreadsheetId"] = id
	}

	if email := strings.TrimSpace(cmd.email); email != "" {
		rq.Attributes["emailAddress"] = email
	}

	return rq, nil
}
