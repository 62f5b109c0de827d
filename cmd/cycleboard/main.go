package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/cycleboard/internal/cli"
	"github.com/alexanderramin/cycleboard/internal/config"
	"github.com/alexanderramin/cycleboard/internal/db"
	"github.com/alexanderramin/cycleboard/internal/repository"
	"github.com/alexanderramin/cycleboard/internal/service"
	"github.com/alexanderramin/cycleboard/internal/viewstate"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// A broken registry file is a configuration bug; refuse to start.
	registry := viewstate.DefaultRegistry()
	if cfg.ViewsPath != "" {
		registry, err = viewstate.LoadRegistry(cfg.ViewsPath)
		if err != nil {
			return err
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	sessionRepo := repository.NewSQLiteViewSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Import:          service.NewImportService(snapshotRepo, uow, cfg.SnapshotRetention, observer),
		Board:           service.NewBoardService(snapshotRepo, sessionRepo, registry, observer),
		Sessions:        service.NewViewSessionService(sessionRepo, registry, uow, observer),
		SessionID:       cfg.SessionID,
		HTTPAddr:        cfg.HTTPAddr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		AccessLog:       os.Stderr,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
