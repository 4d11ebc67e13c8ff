package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/service"
)

func statusLine(state *engine.GameState) string {
	switch {
	case state.Victory:
		return "🎉 VICTORY!"
	case state.GameOver:
		return "💀 GAME OVER"
	case state.Stalled:
		return "⏸ STALLED (no critter can be placed)"
	default:
		return "in progress"
	}
}

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\n", info.ID, info.ConfigName)
	if len(info.Roster) > 0 {
		names := make([]string, len(info.Roster))
		for i, ct := range info.Roster {
			names[i] = ct.Title()
		}
		fmt.Fprintf(&b, "Roster: %s\n", strings.Join(names, ", "))
	}
	for _, w := range info.Warnings {
		fmt.Fprintf(&b, "⚠ %s\n", w.Error())
	}
	if info.RunID != "" {
		fmt.Fprintf(&b, "Archived run: %s\n", info.RunID)
	}
	if info.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(info.GameState))
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Day: %d/%d  Turn: %d  Mushrooms left: %d\n", state.Day, state.MaxDays, state.Turn, state.TotalMushrooms)
	fmt.Fprintf(&b, "Status: %s\n", statusLine(state))

	b.WriteString("\nLocations:\n")
	for i, loc := range state.Locations {
		fmt.Fprintf(&b, "  %d. %s (%d/%d occupied)\n", i, loc.String(), len(loc.Occupants), loc.Capacity)
	}

	fmt.Fprintf(&b, "\nSelectable critters (%d in queue):\n", state.QueueLength)
	if len(state.Queue) == 0 {
		b.WriteString("  none\n")
	}
	for i, c := range state.Queue {
		fmt.Fprintf(&b, "  %d. %s - %s\n", i, c.String(), engine.AbilityText[c.Type])
	}

	if len(state.ValidMoves) > 0 {
		moves := make([]string, len(state.ValidMoves))
		for i, m := range state.ValidMoves {
			moves[i] = m.String()
		}
		fmt.Fprintf(&b, "\nValid moves (critter,location): %s\n", strings.Join(moves, " "))
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", state.Message)
	}
	return b.String()
}

func formatMoveOptions(moves []service.MoveOption) string {
	if len(moves) == 0 {
		return "No valid moves."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Valid moves (%d):\n", len(moves))
	for _, m := range moves {
		fmt.Fprintf(&b, "  critter_index=%d location_index=%d: %s\n", m.CritterIndex, m.LocationIndex, m.Description)
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Placement resolved\n")
	} else {
		b.WriteString("✗ Placement failed\n")
		if result.Error != "" {
			fmt.Fprintf(&b, "Error: %s\n", result.Error)
		}
	}

	if step := result.Step; step != nil {
		fmt.Fprintf(&b, "Turn %d (day %d): %s to %s, gathered %d, mushrooms %d → %d\n",
			step.Turn, step.Day, step.Critter.Title(), step.Location.Title(),
			step.Collected, step.MushroomsBefore, step.MushroomsAfter)
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, ev := range result.Events {
			fmt.Fprintf(&b, "  [%s] %s\n", ev.Type, ev.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: executed %d/%d placements\n", sessionID, result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Request truncated to %d placements\n", result.Limit)
	}
	if result.StopReasonCode != "" {
		fmt.Fprintf(&b, "Stopped (%s) on move %d: %s\n", result.StopReasonCode, result.StoppedOnMove, result.StoppedReason)
	}
	fmt.Fprintf(&b, "Days %d → %d, mushrooms %d → %d (gathered %d)\n",
		result.StartDay, result.EndDay, result.StartMushrooms, result.EndMushrooms, result.Collected)

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			line := fmt.Sprintf("  %d. %s → %s: +%d (left %d)", s.Idx, s.Critter.Title(), s.Location.Title(), s.Collected, s.MushroomsAfter)
			if s.Duplicates > 0 {
				line += fmt.Sprintf(" dup×%d", s.Duplicates)
			}
			if s.Expired > 0 {
				line += fmt.Sprintf(" expired×%d", s.Expired)
			}
			if s.Depleted {
				line += " depleted"
			}
			if s.Victory {
				line += " VICTORY"
			}
			b.WriteString(line + "\n")
		}
	}

	if result.StopReasonCode == service.StopInvalidMove && len(result.ValidMoves) > 0 {
		b.WriteString("\n")
		b.WriteString(formatMoveOptions(result.ValidMoves))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn History (page %d/%d, %d turns):\n\n", history.Page, history.TotalPages, history.TotalTurns)
	for _, t := range history.Turns {
		fmt.Fprintf(&b, "Turn %d (day %d): %s → %s, gathered %d\n",
			t.Turn, t.Day, t.Critter.Title(), t.Location.Title(), t.TotalCollected())
		for _, ev := range t.Events {
			if ev.Kind == engine.EventRotated {
				continue
			}
			fmt.Fprintf(&b, "    %s\n", ev.Message)
		}
	}
	if history.HasNext {
		fmt.Fprintf(&b, "\nMore turns on page %d\n", history.Page+1)
	}
	return b.String()
}

func formatSummary(summary *engine.CollectionSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total mushrooms gathered: %d\n\nBy type:\n", summary.TotalCollected)
	for _, ts := range summary.ByType {
		fmt.Fprintf(&b, "  %s ×%d: %d\n", ts.Type.Title(), ts.Count, ts.TotalCollected)
	}
	b.WriteString("\nCritters:\n")
	for _, cs := range summary.Individual {
		name := cs.Type.Title()
		if cs.Duplicate {
			name += " (copy)"
		}
		fmt.Fprintf(&b, "  #%d %s: %d gathered, final %s, %s\n", cs.ID, name, cs.Collected, cs.FinalStats, cs.Status)
	}
	return b.String()
}

func instructions() string {
	var b strings.Builder
	b.WriteString(`🍄 Spilled Mushrooms - Complete Instructions

GAME OBJECTIVE:
Mushrooms spilled across three locations. Gather every last one within 7 days.

TURN STRUCTURE:
• Your roster waits in a queue. Only the first two critters can be chosen.
• Each turn, send one of them (critter_index 0 or 1) to a location (location_index 0-2).
• Every location holds at most 3 critters.
• After a placement the rest of the queue rotates and every placed critter gathers
  up to its mushrooms per day from its location.
• At night Gophers move on, and critters lose 1 lifespan unless they are at the Beach.
• A critter whose lifespan reaches 0 leaves the game, and so do the critters at a
  location that runs out of mushrooms.
• A Gopher that finds the next location full goes back to the end of the queue.

VICTORY CONDITIONS:
- Every location reaches 0 mushrooms.

GAME OVER CONDITIONS:
- Day 7 ends with mushrooms left.
- If no critter can be placed the game stalls; reset to try again.

LOCATIONS:
`)
	for _, lt := range engine.LocationTypes {
		fmt.Fprintf(&b, "• %s (%d mushrooms by default): %s\n", lt.Title(), lt.DefaultMushrooms(), engine.LocationEffectText[lt])
	}

	b.WriteString("\nCRITTERS (mushrooms per day / lifespan):\n")
	for _, ct := range engine.CritterTypes {
		stats, _ := ct.BaseStats()
		fmt.Fprintf(&b, "• %s %s: %s\n", ct.Title(), stats, engine.AbilityText[ct])
	}

	b.WriteString(`
STRATEGY TIPS:
- Check valid_moves before planning; a full location cannot be chosen.
- Crocodiles only gather alone, so give them a location of their own.
- Slow critters gather nothing in the Jungle; the Canyon's bonus can push them to 2.
- Rhinos and Sheep grow when others join them. A Penguin swaps which stat a buff raises.
- A Goose fills its location with copies, which helps most at a fresh location.
- Use bulk_place for a planned sequence and turn_history to review what happened.

Good luck gathering! 🍄`)
	return b.String()
}
