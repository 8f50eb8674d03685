// Package simulate runs scripted rounds from YAML scenarios, journaling
// events to SQLite and rendering progress to the terminal.
package simulate

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/goathill/wolfgoatpig/internal/game/event"
	entrypoint "github.com/goathill/wolfgoatpig/internal/platform/cmd"
	"github.com/goathill/wolfgoatpig/internal/storage"
	"github.com/goathill/wolfgoatpig/internal/storage/sqlite"
)

// Config holds simulate command configuration.
type Config struct {
	Scenario string `env:"WGP_SCENARIO_FILE"`
	DBPath   string `env:"WGP_DB_PATH"`
	Quiet    bool   `env:"WGP_QUIET"`
}

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario yaml file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to sqlite journal (empty for in-memory run)")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress terminal rendering")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the simulate command.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	scenario, err := LoadScenarioFile(cfg.Scenario)
	if err != nil {
		return err
	}

	var eventStore event.Store
	var roundStore storage.RoundStore
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		eventStore = store
		roundStore = store
	}

	var renderer *Renderer
	if !cfg.Quiet {
		renderer = NewRenderer(scenario)
	}

	runner, err := NewRunner(ctx, scenario, eventStore, renderer)
	if err != nil {
		return err
	}
	if roundStore != nil {
		if err := putRoundRecord(ctx, roundStore, runner, scenario); err != nil {
			return err
		}
	}

	if err := runner.Run(ctx, scenario); err != nil {
		return err
	}
	if roundStore != nil {
		if err := putRoundRecord(ctx, roundStore, runner, scenario); err != nil {
			return err
		}
	}
	return nil
}

// putRoundRecord upserts round metadata so the replay command can list
// journaled rounds.
func putRoundRecord(ctx context.Context, store storage.RoundStore, runner *Runner, scenario Scenario) error {
	session := runner.Session()
	status := storage.RoundStatusActive
	switch {
	case session.Halted():
		status = storage.RoundStatusHalted
	case session.Completed():
		status = storage.RoundStatusFinished
	}
	now := time.Now().UTC()
	record, err := store.GetRound(ctx, session.RoundID())
	if errors.Is(err, storage.ErrNotFound) {
		record = storage.RoundRecord{
			ID:          session.RoundID(),
			CourseName:  scenario.Course.Name,
			PlayerCount: len(scenario.Players),
			CreatedAt:   now,
		}
	} else if err != nil {
		return err
	}
	record.Status = status
	record.UpdatedAt = now
	return store.PutRound(ctx, record)
}
