package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/goliatone/go-recipebook"
	"github.com/goliatone/go-recipebook/pkg/config"
	"github.com/goliatone/go-recipebook/pkg/prompt"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"recipes", "list, add, update, delete or search recipes", runCollection("recipes")},
	{"ingredients", "list, add, delete or search ingredients (admins only)", runCollection("ingredients")},
	{"register", "create an account", runRegister},
	{"logout", "end the current session", runLogout},
	{"session", "set, show or clear the stored credentials", runSession},
	{"export", "export a collection as text, html, xlsx or csv", runExport},
	{"serve", "serve the lists over HTTP", runServe},
	{"contract", "print the API contract", runContract},
	{"config", "print the effective configuration", runConfig},
	{"interactive", "menu driven session", runInteractive},
}

// env is what every command receives.
type env struct {
	app     *recipebook.App
	alerter *prompt.Alerter
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to $"+config.EnvPath+")")
	baseURL := flag.String("base-url", "", "backend origin")
	sessionFile := flag.String("session", "", "session file")
	renderer := flag.String("renderer", "", "list renderer: text, html, xlsx or csv")
	timeout := flag.Duration("timeout", 0, "HTTP client timeout (0 keeps the transport default)")
	validate := flag.Bool("validate", false, "validate requests against the API contract")
	contractSource := flag.String("contract", "", "OpenAPI document path or URL replacing the embedded contract")
	styled := flag.Bool("styled", false, "style terminal output")
	verbose := flag.Bool("v", false, "log requests to stderr")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	options := []config.Option{
		config.WithBaseURL(*baseURL),
		config.WithSessionFile(*sessionFile),
		config.WithRenderer(*renderer),
		config.WithTimeout(*timeout),
		config.WithContract(*contractSource),
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "validate":
			options = append(options, config.WithValidateRequests(*validate))
		case "styled":
			options = append(options, config.WithStyles(*styled))
		}
	})

	cfg, err := config.Load(*configPath, options...)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := recipebook.New(ctx, cfg, recipebook.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}

	e := &env{
		app:     app,
		alerter: prompt.NewAlerter(os.Stderr, cfg.Styled),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(ctx, e, args); err != nil {
			if !errors.Is(err, errReported) {
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			}
			os.Exit(1)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

// errReported marks failures that were already alerted to the user.
var errReported = errors.New("reported")

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [args]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-12s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	flag.PrintDefaults()
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}
