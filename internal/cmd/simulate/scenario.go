package simulate

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/goathill/wolfgoatpig/internal/course"
	"github.com/goathill/wolfgoatpig/internal/game/event"
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/roster"
	"github.com/goathill/wolfgoatpig/internal/game/round"
	"github.com/goathill/wolfgoatpig/internal/game/stroke"
	"github.com/goathill/wolfgoatpig/internal/game/team"
	"github.com/goathill/wolfgoatpig/internal/id"
)

// Scenario is a scripted round: the field, the course, and the actions
// taken on each hole.
type Scenario struct {
	Name      string        `yaml:"name"`
	BaseWager int           `yaml:"base_wager"`
	Course    course.Course `yaml:"course"`
	Players   []PlayerSpec  `yaml:"players"`
	Holes     []HoleScript  `yaml:"holes"`
}

// PlayerSpec describes one player of the scripted field. Handicap is in
// strokes and may carry a half.
type PlayerSpec struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Handicap float64 `yaml:"handicap"`
}

// HoleScript is the ordered action list for one hole, with the gross
// scores that settle it. A hole without scores is left to a scripted
// double decline.
type HoleScript struct {
	Hole    int            `yaml:"hole"`
	Actions []Action       `yaml:"actions"`
	Scores  map[string]int `yaml:"scores,omitempty"`
}

// Action is one scripted step on a hole.
type Action struct {
	Action   string `yaml:"action"`
	Actor    string `yaml:"actor"`
	Target   string `yaml:"target,omitempty"`
	Side     string `yaml:"side,omitempty"`
	Accept   bool   `yaml:"accept,omitempty"`
	Distance int    `yaml:"distance,omitempty"`
	Position int    `yaml:"position,omitempty"`
	Value    int    `yaml:"value,omitempty"`
}

// LoadScenario decodes and validates a scripted round.
func LoadScenario(r io.Reader) (Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if len(s.Players) == 0 {
		return Scenario{}, fmt.Errorf("scenario has no players")
	}
	if s.BaseWager <= 0 {
		s.BaseWager = 1
	}
	if err := s.Course.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// LoadScenarioFile reads a scripted round from disk.
func LoadScenarioFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return LoadScenario(f)
}

// Field converts the player specs into roster players, rounding handicaps
// to half strokes.
func (s Scenario) Field() []roster.Player {
	players := make([]roster.Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = roster.Player{
			ID:       p.ID,
			Name:     p.Name,
			Handicap: stroke.Half(p.Handicap*2 + 0.5),
		}
	}
	return players
}

// Runner walks a session through a scripted round.
type Runner struct {
	session  *round.Session
	renderer *Renderer
}

// NewRunner builds a session for the scenario and prepares rendering.
func NewRunner(ctx context.Context, s Scenario, store event.Store, renderer *Renderer) (*Runner, error) {
	session, err := round.NewSession(ctx, round.Config{
		Players:    s.Field(),
		Course:     s.Course,
		BaseWager:  points.Quarters(s.BaseWager),
		EventStore: store,
	})
	if err != nil {
		return nil, err
	}
	return &Runner{session: session, renderer: renderer}, nil
}

// Session exposes the underlying session for inspection after a run.
func (r *Runner) Session() *round.Session { return r.session }

// Run executes every scripted hole in order.
func (r *Runner) Run(ctx context.Context, s Scenario) error {
	tracer := otel.Tracer("wolfgoatpig/simulate")
	r.renderer.RoundHeader(s, r.session.Snapshot())

	for _, script := range s.Holes {
		ctx, span := tracer.Start(ctx, "simulate.hole")
		err := r.runHole(ctx, script)
		span.End()
		if err != nil {
			return fmt.Errorf("hole %d: %w", script.Hole, err)
		}
		if r.session.Completed() || r.session.Halted() {
			break
		}
	}

	r.renderer.Standings(r.session)
	return nil
}

func (r *Runner) runHole(ctx context.Context, script HoleScript) error {
	current := r.session.CurrentHole()
	if current == nil {
		return fmt.Errorf("no open hole")
	}
	if current.Number() != script.Hole {
		return fmt.Errorf("script is for hole %d but hole %d is open", script.Hole, current.Number())
	}
	r.renderer.HoleHeader(r.session.Snapshot())

	for i, action := range script.Actions {
		if err := r.step(ctx, action); err != nil {
			return fmt.Errorf("action %d (%s): %w", i+1, action.Action, err)
		}
	}

	if len(script.Scores) > 0 {
		cmd, err := r.command("")
		if err != nil {
			return err
		}
		if err := r.session.SubmitHoleScores(ctx, cmd, script.Scores); err != nil {
			return err
		}
	}

	current = r.session.CurrentHole()
	if current == nil || !current.Resolved() {
		return fmt.Errorf("hole did not resolve; script must score or settle it")
	}
	result, _ := current.Result()
	r.renderer.HoleResult(result, r.session.Totals())

	cmd, err := r.command("")
	if err != nil {
		return err
	}
	return r.session.AdvanceHole(ctx, cmd)
}

func (r *Runner) command(actor string) (round.Command, error) {
	requestID, err := id.NewID()
	if err != nil {
		return round.Command{}, err
	}
	return round.Command{RequestID: requestID, ActorID: actor}, nil
}

func (r *Runner) step(ctx context.Context, action Action) error {
	cmd, err := r.command(action.Actor)
	if err != nil {
		return err
	}
	switch action.Action {
	case "offer_partnership":
		return r.session.OfferPartnership(ctx, cmd, action.Target)
	case "respond_partnership":
		return r.session.RespondPartnership(ctx, cmd, action.Accept)
	case "declare_solo":
		return r.session.DeclareSolo(ctx, cmd)
	case "request_join":
		return r.session.RequestJoinSide(ctx, cmd, team.SideID(action.Side))
	case "respond_join":
		return r.session.RespondJoinRequest(ctx, cmd, action.Accept)
	case "offer_double":
		return r.session.OfferDouble(ctx, cmd)
	case "respond_double":
		return r.session.RespondDouble(ctx, cmd, action.Accept)
	case "float":
		return r.session.InvokeFloat(ctx, cmd)
	case "toggle_option":
		return r.session.ToggleOption(ctx, cmd)
	case "shot":
		return r.session.RecordShot(ctx, cmd, action.Distance)
	case "select_position":
		return r.session.SelectPosition(ctx, cmd, action.Position)
	case "joes_special":
		return r.session.SetJoesSpecial(ctx, cmd, points.Quarters(action.Value))
	default:
		return fmt.Errorf("unknown action %q", action.Action)
	}
}
