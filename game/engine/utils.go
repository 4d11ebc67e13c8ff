package engine

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TypeSummary aggregates every critter of one type
type TypeSummary struct {
	Type           CritterType `json:"type"`
	Count          int         `json:"count"`
	TotalCollected int         `json:"total_collected"`
}

// CritterSummary is the end-of-run record of one critter
type CritterSummary struct {
	ID           CritterID       `json:"id"`
	Type         CritterType     `json:"type"`
	Duplicate    bool            `json:"duplicate,omitempty"`
	Collected    int             `json:"collected"`
	FinalStats   Stats           `json:"final_stats"`
	Status       PlacementStatus `json:"status"`
	LastLocation int             `json:"last_location"` // NoLocation if never placed or back in the queue
}

// CollectionSummary reports what every critter ever created gathered
type CollectionSummary struct {
	ByType         []TypeSummary    `json:"by_type"` // in CritterTypes order, only types that appeared
	Individual     []CritterSummary `json:"individual"`
	TotalCollected int              `json:"total_collected"`
}

// Summary builds the collection summary from the full critter history
func (e *GameEngine) Summary() *CollectionSummary {
	summary := &CollectionSummary{
		ByType:     []TypeSummary{},
		Individual: make([]CritterSummary, 0, len(e.critters)),
	}

	byType := make(map[CritterType]*TypeSummary)
	for _, c := range e.critters {
		ts, ok := byType[c.Type]
		if !ok {
			ts = &TypeSummary{Type: c.Type}
			byType[c.Type] = ts
		}
		ts.Count++
		ts.TotalCollected += c.Collected
		summary.TotalCollected += c.Collected

		summary.Individual = append(summary.Individual, CritterSummary{
			ID:           c.ID,
			Type:         c.Type,
			Duplicate:    c.Duplicate,
			Collected:    c.Collected,
			FinalStats:   c.Stats(),
			Status:       c.Status,
			LastLocation: c.LocationID,
		})
	}

	for _, t := range CritterTypes {
		if ts, ok := byType[t]; ok {
			summary.ByType = append(summary.ByType, *ts)
		}
	}
	return summary
}

// String renders the summary as the end-of-run report
func (s *CollectionSummary) String() string {
	var b strings.Builder
	b.WriteString("Mushrooms collected by critter type:\n")
	for _, ts := range s.ByType {
		fmt.Fprintf(&b, "  %-10s x%d: %d\n", ts.Type.Title(), ts.Count, ts.TotalCollected)
	}
	b.WriteString("Individual critters:\n")
	for _, c := range s.Individual {
		where := "queue"
		if c.LastLocation != NoLocation {
			where = fmt.Sprintf("location %d", c.LastLocation)
		}
		name := c.Type.Title()
		if c.Duplicate {
			name += " (copy)"
		}
		fmt.Fprintf(&b, "  #%-3d %-16s collected %-3d final %s, %s, last seen at %s\n",
			c.ID, name, c.Collected, c.FinalStats, c.Status, where)
	}
	fmt.Fprintf(&b, "Total collected: %d\n", s.TotalCollected)
	return b.String()
}

// CheckInvariants verifies that every in-play critter sits in exactly one
// container, that no location is over capacity and that no live critter has
// run out of lifespan
func (e *GameEngine) CheckInvariants() error {
	seen := make(map[CritterID]string, len(e.critters))
	claim := func(id CritterID, where string) error {
		if id < 0 || int(id) >= len(e.critters) {
			return fmt.Errorf("%s holds unknown critter %d", where, id)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("critter %d is in both %s and %s", id, prev, where)
		}
		seen[id] = where
		c := e.critter(id)
		if c.Lifespan <= 0 {
			return fmt.Errorf("critter %d in %s has lifespan %d", id, where, c.Lifespan)
		}
		return nil
	}

	for _, id := range e.queue {
		if err := claim(id, "queue"); err != nil {
			return err
		}
		if s := e.critter(id).Status; s != StatusQueued {
			return fmt.Errorf("critter %d is queued with status %s", id, s)
		}
	}
	for _, loc := range e.locations {
		if len(loc.Occupants) > loc.Capacity {
			return fmt.Errorf("location %d holds %d critters, capacity %d", loc.ID, len(loc.Occupants), loc.Capacity)
		}
		where := fmt.Sprintf("location %d", loc.ID)
		for _, id := range loc.Occupants {
			if err := claim(id, where); err != nil {
				return err
			}
			c := e.critter(id)
			if c.Status != StatusPlaced || c.LocationID != loc.ID {
				return fmt.Errorf("critter %d at %s reports %s at %d", id, where, c.Status, c.LocationID)
			}
		}
	}
	for _, c := range e.critters {
		if _, ok := seen[c.ID]; !ok && c.Status.InPlay() {
			return fmt.Errorf("critter %d is %s but in no container", c.ID, c.Status)
		}
	}
	return nil
}

// SuggestCritterType returns the closest critter type to a misspelled name, or "" if none is close
func SuggestCritterType(name string) CritterType {
	candidates := make([]string, len(CritterTypes))
	for i, t := range CritterTypes {
		candidates[i] = string(t)
	}
	return CritterType(closest(name, candidates))
}

// SuggestLocationType returns the closest location type to a misspelled name, or "" if none is close
func SuggestLocationType(name string) LocationType {
	candidates := make([]string, len(LocationTypes))
	for i, t := range LocationTypes {
		candidates[i] = string(t)
	}
	return LocationType(closest(name, candidates))
}

func closest(token string, candidates []string) string {
	token = normalizeName(token)
	if token == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
