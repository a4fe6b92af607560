package commands

import (
	"context"
	"testing"

	"github.com/uhppoted/uhppoted-lib/command"
)

var _ uhppoted.Command = &LambdaCmd
var _ uhppoted.Command = &InvokeCmd
var _ uhppoted.Command = &ServeCmd
var _ uhppoted.Command = &EncodeKeyCmd
var _ uhppoted.Command = &VersionCmd

func TestParseDefaultsToLambda(t *testing.T) {
	lambda := Lambda{}
	cli := []uhppoted.Command{&lambda, &Invoke{}, &Serve{bind: DEFAULT_BIND}}

	cmd, err := uhppoted.Parse(cli, &lambda, uhppoted.NewHelp(APP, cli, &lambda))
	if err != nil {
		t.Fatalf("Unexpected error parsing command line (%v)", err)
	}

	if cmd != &lambda {
		t.Errorf("Incorrect default command - expected:%v, got:%v", lambda.Name(), cmd)
	}
}

func TestParseWithoutDefault(t *testing.T) {
	cli := []uhppoted.Command{&Lambda{}, &Invoke{}}

	cmd, err := uhppoted.Parse(cli, nil, uhppoted.NewHelp(APP, cli, nil))
	if err != nil {
		t.Fatalf("Unexpected error parsing command line (%v)", err)
	}

	if cmd != nil {
		t.Errorf("Expected no command outside the Lambda environment, got %v", cmd.Name())
	}
}

func TestArguments(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "invocation")
	options := Options{Debug: true, LogFormat: "json"}

	c, o := arguments(ctx, &options)
	if c.Value(key{}) != "invocation" {
		t.Errorf("Incorrect context - expected the context passed to Execute")
	}

	if o != &options {
		t.Errorf("Incorrect options - expected:%+v, got:%+v", options, *o)
	}

	c, o = arguments()
	if c == nil || o == nil || o.Debug {
		t.Errorf("Incorrect defaults - got context:%v options:%+v", c, o)
	}
}

func TestVersion(t *testing.T) {
	if VersionCmd.Application != APP || VersionCmd.Version != VERSION {
		t.Errorf("Incorrect version command - expected:%v %v, got:%v %v", APP, VERSION, VersionCmd.Application, VersionCmd.Version)
	}

	if VERSION != "v0.1.0" {
		t.Errorf("Incorrect version - expected:%v, got:%v", "v0.1.0", VERSION)
	}
}
