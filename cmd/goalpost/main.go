package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/goalpost-app/goalpost/internal/cli"
	"github.com/goalpost-app/goalpost/internal/db"
	"github.com/goalpost-app/goalpost/internal/dissect"
	"github.com/goalpost-app/goalpost/internal/llm"
	"github.com/goalpost-app/goalpost/internal/repository"
	"github.com/goalpost-app/goalpost/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.goalpost/goalpost.db
	dbPath := os.Getenv("GOALPOST_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".goalpost", "goalpost.db")
	}

	user := os.Getenv("GOALPOST_USER")
	if user == "" {
		user = "local"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	goalRepo := repository.NewSQLiteGoalRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// AI planning only when the LLM is enabled; goal creation falls back
	// to the even split otherwise.
	var agent *dissect.Agent
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		agent = dissect.NewAgent(llm.NewOllamaClient(llmCfg, observer))
	}

	app := &cli.App{
		Goals:     service.NewGoalService(goalRepo, taskRepo, uow, agent),
		Tasks:     service.NewTaskService(taskRepo, goalRepo, uow),
		Rebalance: service.NewRebalanceService(taskRepo),
		User:      user,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
