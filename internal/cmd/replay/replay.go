// Package replay rebuilds standings from a journaled round and prints
// them, or lists the rounds stored in a journal database.
package replay

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/goathill/wolfgoatpig/internal/game/projection"
	entrypoint "github.com/goathill/wolfgoatpig/internal/platform/cmd"
	"github.com/goathill/wolfgoatpig/internal/storage/sqlite"
)

// Config holds replay command configuration.
type Config struct {
	DBPath  string `env:"WGP_DB_PATH"`
	RoundID string `env:"WGP_ROUND_ID"`
}

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to sqlite journal")
	fs.StringVar(&cfg.RoundID, "round", cfg.RoundID, "round id to replay (empty lists rounds)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the replay command.
func Run(ctx context.Context, cfg Config) error {
	if cfg.DBPath == "" {
		return errors.New("db path is required")
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.RoundID == "" {
		return listRounds(ctx, store)
	}
	return replayRound(ctx, store, cfg.RoundID)
}

func listRounds(ctx context.Context, store *sqlite.Store) error {
	records, err := store.ListRounds(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		pterm.Info.Println("No rounds journaled")
		return nil
	}
	rows := pterm.TableData{{"Round", "Course", "Players", "Status", "Updated"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.CourseName, fmt.Sprintf("%d", r.PlayerCount),
			r.Status, r.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func replayRound(ctx context.Context, store *sqlite.Store, roundID string) error {
	standings := projection.NewStandings()
	if _, err := projection.ReplayRound(ctx, store, standings, roundID); err != nil {
		return err
	}
	if standings.RoundID == "" {
		return fmt.Errorf("round %s has no journal", roundID)
	}

	pterm.DefaultSection.Printfln("%s - %s", standings.RoundID, standings.CourseName)
	for _, hole := range standings.Holes {
		switch {
		case hole.Halved:
			pterm.Printfln("Hole %d halved, %d quarters carry over", hole.Hole, hole.CarriedOver)
		case hole.ByDecline:
			pterm.Printfln("Hole %d decided by a declined double, side %s wins %d quarters",
				hole.Hole, hole.WinningSide, hole.Wager)
		default:
			pterm.Printfln("Hole %d won by side %s at %d quarters", hole.Hole, hole.WinningSide, hole.Wager)
		}
	}

	ids := append([]string(nil), standings.Players...)
	sort.SliceStable(ids, func(i, j int) bool {
		return standings.Totals[ids[i]] > standings.Totals[ids[j]]
	})
	rows := pterm.TableData{{"Player", "Quarters"}}
	for _, id := range ids {
		name := standings.Names[id]
		if name == "" {
			name = id
		}
		rows = append(rows, []string{name, standings.Totals[id].String()})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	switch {
	case standings.Halted:
		pterm.Error.Println("Round halted")
	case standings.Finished:
		pterm.Success.Println("Round complete")
	}
	return nil
}
