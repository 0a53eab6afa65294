package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kshyr/linkstash/internal/checker"
	"github.com/kshyr/linkstash/internal/enricher"
	"github.com/kshyr/linkstash/internal/opener"
	"github.com/kshyr/linkstash/internal/picker"
	"github.com/kshyr/linkstash/internal/render"
	"github.com/kshyr/linkstash/internal/stash"
	"github.com/kshyr/linkstash/internal/storage"
)

// app holds what every command needs; set up once per invocation.
var app struct {
	service *stash.Service
	printer *render.Printer
	logger  *log.Logger
}

// setup reads the config and wires the service for the running command.
func setup(cmd *cobra.Command, args []string) error {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		return fmt.Errorf("finding config: %w", err)
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg.LogLevel)

	stashPath, err := cfg.ResolveStashPath()
	if err != nil {
		return fmt.Errorf("finding stash file: %w", err)
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	store := storage.NewJSONStorage(stashPath, logger)
	system := opener.NewSystem()
	printer := render.NewPrinter(cmd.OutOrStdout())

	app.printer = printer
	app.logger = logger
	app.service = stash.NewService(stash.ServiceParams{
		Storage:   store,
		Enricher:  enricher.NewHTMLEnricher(enricher.HTMLEnricherParams{Timeout: timeout, Logger: logger}),
		Opener:    system,
		Clipboard: system,
		Selector:  picker.NewSelector(),
		Checker:   checker.New(checker.Params{Timeout: timeout}),
		Printer:   printer,
		Logger:    logger,
		Program:   cfg.Program,
	})

	logger.Debug("ready", "config", configPath, "stash", store.Path())
	return nil
}

func newLogger(cmd *cobra.Command, level string) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "linkstash",
		Level:  log.WarnLevel,
	})

	if level == "" {
		return logger
	}
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warn("unknown logLevel in config, using warn", "logLevel", level)
		return logger
	}
	logger.SetLevel(parsed)
	return logger
}

// report prints a command failure. The exit status stays 0: the stash
// itself is never left half-written.
func report(err error) error {
	if err != nil {
		app.printer.Error(err)
	}
	return nil
}

// parseIndex parses a display index argument. Range is checked by the stash.
func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("index must be a number, got %q", arg)
	}
	return index, nil
}
