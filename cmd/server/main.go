package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/vocaquiz/internal/api"
	"github.com/vytor/vocaquiz/internal/config"
	"github.com/vytor/vocaquiz/internal/db"
	"github.com/vytor/vocaquiz/internal/logger"
	"github.com/vytor/vocaquiz/internal/quiz"
	"github.com/vytor/vocaquiz/internal/repository"
	"github.com/vytor/vocaquiz/internal/repository/cached"
	"github.com/vytor/vocaquiz/internal/repository/sheets"
	"github.com/vytor/vocaquiz/internal/repository/sqlite"
	"github.com/vytor/vocaquiz/internal/services"
	"github.com/vytor/vocaquiz/web"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Vocabulary Quiz Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("sheet_tab=%q", cfg.SheetTab)
	log.Debug("session_dir=%q", cfg.SessionDir)
	log.Debug("quiz_max_questions=%d", cfg.QuizMaxQuestions)
	log.Debug("register_rows=%d", cfg.RegisterRows)
	log.Debug("cache_ttl=%s", cfg.CacheTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open word store
	var store repository.WordStore
	switch cfg.StoreBackend {
	case config.BackendSheets:
		log.Info("using Google Sheets word store")
		sheetStore, err := sheets.New(ctx, cfg.SheetURL, cfg.SheetCredentialsJSON, cfg.SheetTab)
		if err != nil {
			log.Error("failed to connect to spreadsheet: %v", err)
			os.Exit(1)
		}
		store = sheetStore
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		store = sqlite.NewWordRepository(database.DB)
	}
	if cfg.CacheTTL > 0 {
		store = cached.New(store, cfg.CacheTTL)
	}

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(web.FS)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	sessionDir := cfg.SessionDir
	if sessionDir != "" {
		if err := os.MkdirAll(sessionDir, 0o700); err != nil {
			log.Error("failed to create session directory: %v", err)
			os.Exit(1)
		}
	}

	// Initialize services
	vocabService := services.NewVocabService(store)
	quizService := services.NewQuizService(store, quiz.NewEngine(nil, cfg.QuizMaxQuestions))

	srv := &api.Server{
		VocabService: vocabService,
		QuizService:  quizService,
		Sessions:     api.NewSessionStore(sessionDir, []byte(cfg.SessionSecret)),
		Templates:    tmpl,
		RegisterRows: cfg.RegisterRows,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Vocabulary Quiz Server Stopped")
	log.Info("===========================================")
}
