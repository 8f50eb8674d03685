package simulate

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/round"
)

// Renderer prints scripted-round progress with pterm. A nil renderer is
// silent, so tests can run scenarios without terminal output.
type Renderer struct {
	names map[string]string
}

// NewRenderer builds a renderer that labels players by name.
func NewRenderer(s Scenario) *Renderer {
	names := make(map[string]string, len(s.Players))
	for _, p := range s.Players {
		names[p.ID] = p.Name
	}
	return &Renderer{names: names}
}

func (r *Renderer) name(id string) string {
	if r == nil {
		return id
	}
	if name, ok := r.names[id]; ok && name != "" {
		return name
	}
	return id
}

// RoundHeader prints the scenario banner and the field.
func (r *Renderer) RoundHeader(s Scenario, snap round.Snapshot) {
	if r == nil {
		return
	}
	pterm.DefaultSection.Printfln("%s - %s", s.Name, snap.CourseName)
	rows := pterm.TableData{{"Player", "Handicap"}}
	for _, p := range s.Players {
		rows = append(rows, []string{p.Name, fmt.Sprintf("%.1f", p.Handicap)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// HoleHeader prints the hole banner: number, phase, captain and stakes.
func (r *Renderer) HoleHeader(snap round.Snapshot) {
	if r == nil {
		return
	}
	carried := ""
	if snap.CarriedOver > 0 {
		carried = pterm.LightYellow(fmt.Sprintf(" (carrying %d)", snap.CarriedOver))
	}
	pterm.DefaultSection.WithLevel(2).Printfln("Hole %d - %s, captain %s, wager %d%s",
		snap.HoleNumber, snap.Phase, r.name(snap.Captain), snap.Wager, carried)
}

// HoleResult prints the settled hole and running totals.
func (r *Renderer) HoleResult(result round.HoleResult, totals map[string]points.Quarters) {
	if r == nil {
		return
	}
	switch {
	case result.Halved:
		pterm.Info.Printfln("Hole %d halved, %d quarters carry over", result.Hole, result.CarriedOver)
	case result.ByDecline:
		pterm.Info.Printfln("Hole %d decided by a declined double, side %s wins %d quarters",
			result.Hole, result.WinningSide, result.Wager)
	default:
		pterm.Info.Printfln("Hole %d won by side %s at %d quarters",
			result.Hole, result.WinningSide, result.Wager)
	}
	for _, id := range sortedIDs(result.Deltas) {
		delta := result.Deltas[id]
		if delta == 0 {
			continue
		}
		pterm.Printfln("  %s %s (total %s)", r.name(id), delta.String(), totals[id].String())
	}
}

// Standings prints the final table.
func (r *Renderer) Standings(session *round.Session) {
	if r == nil {
		return
	}
	totals := session.Totals()
	ids := sortedIDs(totals)
	sort.SliceStable(ids, func(i, j int) bool { return totals[ids[i]] > totals[ids[j]] })

	pterm.DefaultSection.Println("Standings")
	rows := pterm.TableData{{"Player", "Quarters"}}
	for _, id := range ids {
		rows = append(rows, []string{r.name(id), totals[id].String()})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	switch {
	case session.Halted():
		pterm.Error.Println("Round halted")
	case session.Completed():
		pterm.Success.Println("Round complete")
	default:
		pterm.Warning.Println("Round unfinished")
	}
}

func sortedIDs(m map[string]points.Quarters) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
