package engine

import "fmt"

// turn accumulates the events and collection totals of one ApplyMove call
type turn struct {
	report *TurnReport
}

func (t *turn) add(ev TurnEvent) {
	t.report.Events = append(t.report.Events, ev)
}

// ApplyMove resolves one full turn: placement, placement effects, the
// location-entry bonus, queue rotation, collection, depletion, night
// movement, decay and the terminal check. An invalid move returns a wrapped
// ErrInvalidMove and leaves the game untouched.
func (e *GameEngine) ApplyMove(critterIndex, locationIndex int) (*TurnReport, error) {
	if !e.CanMove(critterIndex, locationIndex) {
		return nil, fmt.Errorf("%w: critter %d to location %d", ErrInvalidMove, critterIndex, locationIndex)
	}

	e.turn++
	placedID := e.queue[critterIndex]
	placed := e.critter(placedID)
	loc := e.locations[locationIndex]

	t := &turn{report: &TurnReport{
		Turn:      e.turn,
		Day:       e.day,
		Move:      Move{CritterIndex: critterIndex, LocationIndex: locationIndex},
		CritterID: placedID,
		Critter:   placed.Type,
		Location:  loc.Type,
		Collected: make([]int, len(e.locations)),
		Events:    []TurnEvent{},
	}}

	// 1. Placement
	e.queue = append(e.queue[:critterIndex:critterIndex], e.queue[critterIndex+1:]...)
	residents := append([]CritterID(nil), loc.Occupants...)
	e.place(placed, loc)
	t.add(TurnEvent{
		Kind:       EventPlaced,
		CritterID:  placedID,
		Critter:    placed.Type,
		LocationID: loc.ID,
		Message:    fmt.Sprintf("%s placed at %s", placed.Type.Title(), loc.Type.Title()),
	})

	// 2. Placement effects
	if PenalizesOnPlacement(placed.Type) {
		penalty := PlacementPenalty()
		for _, id := range residents {
			c := e.critter(id)
			before := c.MushroomsPerDay
			c.apply(penalty)
			d := Stats{MushroomsPerDay: c.MushroomsPerDay - before}
			t.add(TurnEvent{
				Kind:       EventGrizzlyPenalty,
				CritterID:  id,
				Critter:    c.Type,
				LocationID: loc.ID,
				Delta:      &d,
				Message:    fmt.Sprintf("%s loses mushrooms per day to the Grizzly (now %s)", c.Type.Title(), c.Stats()),
			})
		}
	}
	e.applyEntryBuffs(t, placed, loc, residents)
	if ReplicatesOnPlacement(placed.Type) && !placed.Duplicate {
		e.duplicate(t, loc)
	}

	// 3. Location-entry effect on the placed critter
	e.applyLocationBonus(t, placed, loc)

	// 4. Queue rotation
	if len(e.queue) > 0 {
		front := e.queue[0]
		e.queue = append(e.queue[1:], front)
		if len(e.queue) > 1 {
			c := e.critter(front)
			t.add(TurnEvent{
				Kind:       EventRotated,
				CritterID:  front,
				Critter:    c.Type,
				LocationID: NoLocation,
				Message:    fmt.Sprintf("%s moves to the back of the queue", c.Type.Title()),
			})
		}
	}

	// 5. Collection
	e.collect(t)

	// 6. Depletion
	e.evictDepleted(t)

	// 7. Night movement
	e.moveGophers(t)

	// 8. Decay and day advance
	e.decay(t)
	e.day++

	// 9. Terminal check
	e.checkTerminal(t)

	t.report.GameOver = e.gameOver
	t.report.Victory = e.victory
	e.history = append(e.history, *t.report)
	return t.report, nil
}

// place appends c to loc and marks it placed
func (e *GameEngine) place(c *Critter, loc *Location) {
	loc.Occupants = append(loc.Occupants, c.ID)
	c.Status = StatusPlaced
	c.LocationID = loc.ID
}

// applyEntryBuffs lets every resident react to the arrival of c
func (e *GameEngine) applyEntryBuffs(t *turn, arriving *Critter, loc *Location, residents []CritterID) {
	for _, id := range residents {
		r := e.critter(id)
		d := EntryBuff(r.Type, arriving.Type)
		if d.isZero() {
			continue
		}
		r.apply(d)
		t.add(TurnEvent{
			Kind:       EventBuff,
			CritterID:  id,
			Critter:    r.Type,
			LocationID: loc.ID,
			Delta:      &d,
			Message:    fmt.Sprintf("%s reacts to %s arriving (now %s)", r.Type.Title(), arriving.Type.Title(), r.Stats()),
		})
	}
}

func (e *GameEngine) applyLocationBonus(t *turn, c *Critter, loc *Location) {
	d := LocationEntryBonus(loc.Type)
	if d.isZero() {
		return
	}
	c.apply(d)
	t.add(TurnEvent{
		Kind:       EventLocationBonus,
		CritterID:  c.ID,
		Critter:    c.Type,
		LocationID: loc.ID,
		Delta:      &d,
		Message:    fmt.Sprintf("%s gets the %s bonus (now %s)", c.Type.Title(), loc.Type.Title(), c.Stats()),
	})
}

// duplicate fills loc with basic Goose copies. Each copy is a full arrival:
// it gets the location bonus and triggers entry buffs on everyone already there.
func (e *GameEngine) duplicate(t *turn, loc *Location) {
	for !loc.IsFull() {
		residents := append([]CritterID(nil), loc.Occupants...)
		c := e.spawn(Goose, true)
		e.place(c, loc)
		t.add(TurnEvent{
			Kind:       EventDuplicate,
			CritterID:  c.ID,
			Critter:    c.Type,
			LocationID: loc.ID,
			Message:    fmt.Sprintf("A Goose copy joins at %s", loc.Type.Title()),
		})
		e.applyLocationBonus(t, c, loc)
		e.applyEntryBuffs(t, c, loc, residents)
	}
}

func (e *GameEngine) collect(t *turn) {
	for i, loc := range e.locations {
		for _, id := range loc.Occupants {
			if loc.Mushrooms <= 0 {
				break
			}
			c := e.critter(id)
			if !CanCollect(c.Type, c.MushroomsPerDay, loc.Type, len(loc.Occupants)) {
				continue
			}
			take := min(c.MushroomsPerDay, loc.Mushrooms)
			if take <= 0 {
				continue
			}
			c.Collected += take
			loc.Mushrooms -= take
			t.report.Collected[i] += take
			t.add(TurnEvent{
				Kind:       EventCollected,
				CritterID:  id,
				Critter:    c.Type,
				LocationID: loc.ID,
				Amount:     take,
				Message:    fmt.Sprintf("%s gathers %d mushrooms at %s", c.Type.Title(), take, loc.Type.Title()),
			})
		}
	}
}

func (e *GameEngine) evictDepleted(t *turn) {
	for _, loc := range e.locations {
		if !loc.IsDepleted() || len(loc.Occupants) == 0 {
			continue
		}
		for _, id := range loc.Occupants {
			e.critter(id).Status = StatusEvicted
		}
		t.add(TurnEvent{
			Kind:       EventDepleted,
			CritterID:  -1,
			LocationID: loc.ID,
			Amount:     len(loc.Occupants),
			Message:    fmt.Sprintf("%s is out of mushrooms; %d critters leave", loc.Type.Title(), len(loc.Occupants)),
		})
		loc.Occupants = []CritterID{}
	}
}

// moveGophers runs night movement. The set of movers is taken before anyone moves,
// so a Gopher never moves twice in one night.
func (e *GameEngine) moveGophers(t *turn) {
	type mover struct {
		id  CritterID
		loc int
	}
	var movers []mover
	for _, loc := range e.locations {
		for _, id := range loc.Occupants {
			if MovesAtNight(e.critter(id).Type) {
				movers = append(movers, mover{id: id, loc: loc.ID})
			}
		}
	}

	for _, m := range movers {
		c := e.critter(m.id)
		from := e.locations[m.loc]
		to := e.locations[(m.loc+1)%len(e.locations)]

		switch {
		case !to.IsFull():
			from.remove(m.id)
			residents := append([]CritterID(nil), to.Occupants...)
			e.place(c, to)
			t.add(TurnEvent{
				Kind:       EventMoved,
				CritterID:  m.id,
				Critter:    c.Type,
				LocationID: to.ID,
				Message:    fmt.Sprintf("%s moves from %s to %s", c.Type.Title(), from.Type.Title(), to.Type.Title()),
			})
			e.applyEntryBuffs(t, c, to, residents)
			e.applyLocationBonus(t, c, to)
		case len(e.queue) < MaxQueueSize:
			from.remove(m.id)
			e.queue = append(e.queue, m.id)
			c.Status = StatusQueued
			c.LocationID = NoLocation
			t.add(TurnEvent{
				Kind:       EventReturnedToQueue,
				CritterID:  m.id,
				Critter:    c.Type,
				LocationID: from.ID,
				Message:    fmt.Sprintf("%s finds %s full and returns to the queue", c.Type.Title(), to.Type.Title()),
			})
		default:
			t.add(TurnEvent{
				Kind:       EventStayed,
				CritterID:  m.id,
				Critter:    c.Type,
				LocationID: from.ID,
				Message:    fmt.Sprintf("%s cannot move and stays at %s", c.Type.Title(), from.Type.Title()),
			})
		}
	}
}

func (e *GameEngine) decay(t *turn) {
	for _, loc := range e.locations {
		if !Decays(loc.Type) {
			continue
		}
		survivors := loc.Occupants[:0:0]
		for _, id := range loc.Occupants {
			c := e.critter(id)
			c.Lifespan--
			if c.Lifespan > 0 {
				survivors = append(survivors, id)
				continue
			}
			c.Status = StatusExpired
			t.add(TurnEvent{
				Kind:       EventExpired,
				CritterID:  id,
				Critter:    c.Type,
				LocationID: loc.ID,
				Message:    fmt.Sprintf("%s at %s has run out of lifespan", c.Type.Title(), loc.Type.Title()),
			})
		}
		loc.Occupants = survivors
	}
}

func (e *GameEngine) checkTerminal(t *turn) {
	allDepleted := true
	for _, loc := range e.locations {
		if !loc.IsDepleted() {
			allDepleted = false
			break
		}
	}

	switch {
	case allDepleted:
		e.gameOver = true
		e.victory = true
		e.message = fmt.Sprintf("Victory! Every location was cleared on day %d.", e.day-1)
		t.add(TurnEvent{Kind: EventVictory, CritterID: -1, LocationID: NoLocation, Message: e.message})
	case e.day > MaxDays:
		e.gameOver = true
		e.message = fmt.Sprintf("Game over: %d mushrooms left after %d days.", e.GetTotalMushrooms(), MaxDays)
		t.add(TurnEvent{Kind: EventGameOver, CritterID: -1, LocationID: NoLocation, Message: e.message})
	default:
		e.message = fmt.Sprintf("Day %d of %d: %d mushrooms remaining.", e.day, MaxDays, e.GetTotalMushrooms())
	}
}
