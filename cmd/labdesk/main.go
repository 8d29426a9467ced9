package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/jask/labdesk/internal/client"
	"github.com/jask/labdesk/internal/config"
	"github.com/jask/labdesk/internal/database"
	"github.com/jask/labdesk/internal/database/repository"
	"github.com/jask/labdesk/internal/logging"
	"github.com/jask/labdesk/internal/tui"
)

func main() {
	var (
		configPath  = flag.StringP("config", "c", "", "path to config.toml (default $LABDESK_CONFIG or ~/.config/labdesk/config.toml)")
		baseURL     = flag.String("base-url", "", "backend base URL for all three routes")
		logLevel    = flag.String("log-level", "", "log level (trace, debug, info, warn, error)")
		startTab    = flag.String("tab", "", "tab to open first: chat, weather or similarity")
		writeConfig = flag.Bool("write-config", false, "write the effective config to --config and exit")
	)
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	overrides := map[string]any{}
	if *baseURL != "" {
		overrides["backend.base_url"] = *baseURL
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}
	if *startTab != "" {
		overrides["ui.start_tab"] = *startTab
	}

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *writeConfig {
		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(path, cfg); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Println("wrote", path)
		return
	}

	logFile, err := logging.InitLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logFile.Close()
	logger := logging.GetLogger()

	loc, err := cfg.UI.Location()
	if err != nil {
		logger.WithError(err).Warn("using local timezone")
	}

	session, err := database.OpenSession(cfg.Session.Dir)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.WithError(err).Warn("remove session store")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := client.New(client.Endpoints{
		Chat:       cfg.Backend.ChatBase(),
		Weather:    cfg.Backend.WeatherBase(),
		Similarity: cfg.Backend.SimilarityBase(),
	}, client.WithTimeout(cfg.HTTP.Timeout))

	logger.WithFields(logrus.Fields{
		"chat":       cfg.Backend.ChatBase(),
		"weather":    cfg.Backend.WeatherBase(),
		"similarity": cfg.Backend.SimilarityBase(),
		"session":    session.Dir(),
	}).Info("labdesk starting")

	app := tui.New(tui.Deps{
		Ctx:        ctx,
		Backend:    backend,
		History:    repository.NewSubmissionRepo(session.DB),
		Location:   loc,
		TimeFormat: cfg.UI.TimeFormat,
	}, cfg.UI.StartTab)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
