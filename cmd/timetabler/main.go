package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexanderramin/timetabler/internal/cli"
	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/llm"
	"github.com/alexanderramin/timetabler/internal/logging"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := logging.New(os.Getenv("TIMETABLER_LOG_MODE"), false)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	app := &cli.App{Log: log}

	// History is on unless TIMETABLER_HISTORY=off.
	var uow db.UnitOfWork
	if !strings.EqualFold(os.Getenv("TIMETABLER_HISTORY"), "off") {
		dbPath := os.Getenv("TIMETABLER_DB")
		if dbPath == "" {
			dbPath = db.DefaultPath()
		}
		database, err := db.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		uow = db.NewSQLiteUnitOfWork(database)
		app.History = service.NewHistoryService(repository.NewSQLiteRunRepo(database))
	}

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewZapObserver(log)
	}
	client, err := llm.NewClient(ctx, llmCfg, observer)
	if err != nil {
		// Commands other than generate and serve never need the model.
		log.Debug("llm client not configured", "provider", string(llmCfg.Provider), "error", err)
		client = llm.Unconfigured(err)
	}
	app.Generate = service.NewGenerateService(client, llmCfg, uow, log, service.NewZapUseCaseObserver(log))

	// Detect interactive terminal for the roster wizard and progress view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
