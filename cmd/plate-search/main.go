package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"plate-service/internal/config"
	"plate-service/internal/db"
	"plate-service/internal/importer"
	"plate-service/internal/logger"
	"plate-service/internal/model"
	"plate-service/internal/repository"
	"plate-service/internal/service"
	"plate-service/internal/tui"
)

// localUser owns imports made from the terminal.
var localUser = model.Principal{UserID: "local", Role: model.RoleAdmin}

func main() {
	importPath := flag.String("import", "", "replace the plate list with this file (plain, TSV or HTML)")
	column := flag.Int("column", 0, "1-based plate column when several headers mention \"plate\"")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(*importPath, *column, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "plate-search: %v\n", err)
		os.Exit(1)
	}
}

func run(importPath string, column int, logPath string) error {
	cfg, err := config.LoadLocal()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.NewWithWriter("production", logOut)

	database, err := db.New(cfg, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx := context.Background()
	plates := service.NewPlateService(repository.NewPlateRepository(database), nil, cfg.Plates, log)
	plates.Restore(ctx)

	if importPath != "" {
		if err := importFile(ctx, plates, importPath, column); err != nil {
			return err
		}
	}

	_, err = tea.NewProgram(tui.New(plates), tea.WithAltScreen()).Run()
	return err
}

func importFile(ctx context.Context, plates *service.PlateService, path string, column int) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	_, err = plates.Import(ctx, localUser, service.ImportInput{
		Text:   string(body),
		HTML:   ext == ".html" || ext == ".htm",
		Column: column,
	})
	var ambiguous *importer.AmbiguousColumnError
	if errors.As(err, &ambiguous) {
		return fmt.Errorf("import %s: %w; rerun with -column N", path, ambiguous)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	return nil
}
