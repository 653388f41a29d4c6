package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/systemstart/deploy-sequencer/pkg/logging"
	"github.com/systemstart/deploy-sequencer/pkg/output"
	"github.com/systemstart/deploy-sequencer/pkg/processing"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

var version = "dev"

const (
	_ = iota
	exitFailure
)

var (
	planFile    string
	loggingType string
	logLevel    string
	showVersion bool
)

func init() {
	flag.StringVar(
		&planFile,
		"plan",
		api.DefaultPlanFile,
		"deployment plan; the built-in plan is used when the file does not exist")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"warn",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")

	flag.Usage = usage
}

func usage() {
	out := flag.CommandLine.Output()
	_, _ = fmt.Fprintf(out, "usage: %s [flags] <registry-account>\n\nflags:\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := logging.Initialize(os.Stderr, loggingType, logLevel); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	includeEnv()

	console := output.NewConsole(os.Stdout)

	plan, err := loadPlan()
	if err != nil {
		console.Error("%v", err)
		os.Exit(exitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deployer := &processing.Deployer{
		Runner:   command.NewExecRunner(),
		Reporter: console,
	}

	_, err = deployer.Deploy(ctx, plan, flag.Args())
	if err != nil {
		if errors.Is(err, sequencer.ErrConfiguration) {
			usage()
		}
		slog.Error("deployment failed", "error", err)
		stop()
		os.Exit(exitFailure)
	}

	slog.Info("done")
}

func loadPlan() (*api.Plan, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	p, err := api.LoadPlanOrDefault(planFile, wd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sequencer.ErrConfiguration, err)
	}
	if p.FilePath == "" {
		slog.Info("no plan file found, using built-in plan", "filename", planFile)
	} else {
		slog.Info("using plan file", "filename", p.FilePath)
	}

	p.ApplyEnv(os.Getenv)
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", sequencer.ErrConfiguration, err)
	}
	return p, nil
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitFailure)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
