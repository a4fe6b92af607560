package commands

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

const APP = "uhppoted-lambda-sheets"
const VERSION = "v0.1.0"

const DEFAULT_BIND = "127.0.0.1:8080"

type Options struct {
	Debug     bool
	LogFormat string
}

type command struct {
}

func (c *command) flagset(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

// arguments unpacks the context and options passed to Execute.
func arguments(args ...any) (context.Context, *Options) {
	ctx := context.Background()
	options := &Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = v
		}
	}

	return ctx, options
}

// IsLambda returns true when running inside the AWS Lambda execution environment.
func IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
}

// SetupLogger replaces the default logger with a text or JSON handler writing to stderr, leaving
// stdout for command output.
func SetupLogger(options *Options) *slog.Logger {
	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	handlerOptions := slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &handlerOptions))
	if strings.EqualFold(options.LogFormat, "json") {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &handlerOptions))
	}

	slog.SetDefault(logger)

	return logger
}

func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}
