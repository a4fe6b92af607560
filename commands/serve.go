package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/uhppoted/uhppoted-lambda-sheets/actions"
	"github.com/uhppoted/uhppoted-lambda-sheets/dispatch"
)

var ServeCmd = Serve{
	bind: DEFAULT_BIND,
}

// Serve exposes the dispatcher on a local HTTP endpoint, for development and for callers that are
// not AWS Lambda events.
type Serve struct {
	command
	bind string
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	StatusText string `json:"statusText"`
}

type routes struct {
	dispatcher *dispatch.Dispatcher
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs a local HTTP server that dispatches actions posted to /api/v1/actions"
}

func (cmd *Serve) Usage() string {
	return "[--bind <address>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [--bind <address>]\n", APP)
	fmt.Println()
	fmt.Println("  Runs a local HTTP server that accepts the same requests as the Lambda function:")
	fmt.Println()
	fmt.Println(`    POST /api/v1/actions          {"action":"count_rows","attributes":{"spreadsheetId":"..."}}`)
	fmt.Println(`    POST /api/v1/actions/<action> {"spreadsheetId":"..."}`)
	fmt.Println()
	fmt.Println("  The reply is the result envelope, with the envelope status code as the HTTP status.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, fmt.Sprintf("HTTP server bind address. Defaults to %v", DEFAULT_BIND))

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	ctx, _ := arguments(args...)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := newApp(dispatch.NewDispatcher(nil))

	cleanup := func() {
		if ctx.Err() != nil {
			return
		}

		slog.Info("server shutting down")
		if err := app.Shutdown(); err != nil {
			slog.Error("server shutdown with errors", slog.String("error", err.Error()))
		}

		cancel()
	}

	go monitorSignals(ctx, func(s os.Signal) {
		slog.Info("received signal", slog.String("signal", s.String()))
		cleanup()
	})

	slog.Info("server listening", slog.String("bind", cmd.bind))

	if err := app.Listen(cmd.bind); err != nil {
		cleanup()
		return err
	}

	return nil
}

func monitorSignals(ctx context.Context, callback func(os.Signal)) {
	signals := make(chan os.Signal, 1)

	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	for {
		select {
		case <-ctx.Done():
			return

		case s := <-signals:
			callback(s)
		}
	}
}

func newApp(dispatcher *dispatch.Dispatcher) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
		AppName:               APP,
		ServerHeader:          fmt.Sprintf("%v %v", APP, VERSION),
	})

	app.Use(recover.New())

	r := routes{
		dispatcher: dispatcher,
	}

	api := app.Group("/api/v1")
	api.Post("/actions", r.post)
	api.Post("/actions/:action", r.postAction)

	return app
}

func (r *routes) post(c *fiber.Ctx) error {
	rq := dispatch.Request{}

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&rq); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return r.handle(c, rq)
}

func (r *routes) postAction(c *fiber.Ctx) error {
	rq := dispatch.Request{
		Action:     c.Params("action"),
		Attributes: actions.Attributes{},
	}

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&rq.Attributes); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	return r.handle(c, rq)
}

func (r *routes) handle(c *fiber.Ctx, rq dispatch.Request) error {
	reply, err := r.dispatcher.Handle(c.UserContext(), rq)
	if err != nil {
		return err
	}

	return c.Status(reply.StatusCode).JSON(reply)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(errorResponse{
		StatusCode: code,
		StatusText: err.Error(),
	})
}
