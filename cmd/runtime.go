package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/config"
	"github.com/studykit/studykit/internal/logging"
	"github.com/studykit/studykit/internal/screen"
	"github.com/studykit/studykit/internal/store"
)

// runtime holds what every command needs once settings are resolved.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
	store    *store.Store
}

// setup loads .env and settings, starts the logger and opens the store.
// Callers must Close the returned runtime.
func setup(cmd *cobra.Command) (*runtime, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(settings, configPath)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("start logger: %w", err)
	}
	log = log.With(zap.String("profile", cfg.Profile), zap.String("command", cmd.Name()))

	dbPath, err := store.ResolveDBPath(cfg.DB)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		log.Error("open store", zap.String("path", dbPath), zap.Error(err))
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &runtime{cfg: cfg, log: log, closeLog: closeLog, store: st}, nil
}

// Close releases the store and flushes the log.
func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Warn("close store", zap.Error(err))
	}
	_ = r.closeLog()
}

func (r *runtime) env() screen.Env {
	return screen.Env{
		Sets:     r.store.QuestionSetRepo(),
		Attempts: r.store.AttemptRepo(),
		Owner:    r.cfg.Profile,
		Log:      r.log,
	}
}
