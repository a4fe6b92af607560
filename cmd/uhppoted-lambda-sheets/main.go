package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/uhppoted-lambda-sheets/commands"
)

var cli = []uhppoted.Command{
	&commands.LambdaCmd,
	&commands.InvokeCmd,
	&commands.ServeCmd,
	&commands.EncodeKeyCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug:     false,
	LogFormat: "text",
}

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.StringVar(&options.LogFormat, "log-format", options.LogFormat, "Log format (text or json)")
	flag.Parse()

	// defaults to the Lambda handler inside the Lambda execution environment
	var run uhppoted.Command
	if commands.IsLambda() {
		run = &commands.LambdaCmd
	}

	help := uhppoted.NewHelp(commands.APP, cli, run)

	cmd, err := uhppoted.Parse(cli, run, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if _, ok := cmd.(*commands.Lambda); ok {
		options.LogFormat = "json"
	}

	commands.SetupLogger(&options)

	ctx := context.Background()

	if err := cmd.Execute(ctx, &options); err != nil {
		slog.Error(fmt.Sprintf("%v", err), slog.String("command", cmd.Name()))
		os.Exit(1)
	}
}
