package engine

// The ability table. Every rule is a pure function of the critter and
// location types involved; the turn pipeline decides when each one runs.

// PenalizesOnPlacement reports whether placing t weakens the critters already there (Grizzly)
func PenalizesOnPlacement(t CritterType) bool {
	return t == Grizzly
}

// PlacementPenalty is the delta a Grizzly placement applies to each pre-existing occupant
func PlacementPenalty() Stats {
	return Stats{MushroomsPerDay: -1}
}

// ReplicatesOnPlacement reports whether placing t fills the location with copies (Goose)
func ReplicatesOnPlacement(t CritterType) bool {
	return t == Goose
}

// MovesAtNight reports whether t relocates during end-of-day movement (Gopher)
func MovesAtNight(t CritterType) bool {
	return t == Gopher
}

// SwapsBuffs reports whether an arriving critter of type t swaps the stat that
// Rhino and Sheep residents gain (Penguin)
func SwapsBuffs(t CritterType) bool {
	return t == Penguin
}

// EntryBuff returns what a resident gains when another critter arrives at its location.
// Rhino gains mushrooms per day and Sheep gains lifespan; a Penguin arrival swaps the two.
func EntryBuff(resident, arriving CritterType) Stats {
	rate := Stats{MushroomsPerDay: 1}
	life := Stats{Lifespan: 1}

	switch resident {
	case Rhino:
		if SwapsBuffs(arriving) {
			return life
		}
		return rate
	case Sheep:
		if SwapsBuffs(arriving) {
			return rate
		}
		return life
	}
	return Stats{}
}

// LocationEntryBonus returns the delta a critter receives on arriving at a location of type t.
// Only Canyon grants one, and it applies on every arrival.
func LocationEntryBonus(t LocationType) Stats {
	if t == Canyon {
		return Stats{MushroomsPerDay: 1, Lifespan: 1}
	}
	return Stats{}
}

// CanCollect reports whether a critter may gather mushrooms this tick.
// A Crocodile only gathers when alone; at a Jungle only critters with 2+ mushrooms per day gather.
func CanCollect(t CritterType, mushroomsPerDay int, loc LocationType, occupants int) bool {
	if t == Crocodile && occupants > 1 {
		return false
	}
	if loc == Jungle && mushroomsPerDay < 2 {
		return false
	}
	return true
}

// Decays reports whether critters at a location of type t lose lifespan overnight
func Decays(t LocationType) bool {
	return t != Beach
}

// AbilityText describes each critter ability for help screens and tool descriptions
var AbilityText = map[CritterType]string{
	Frog:      "No special effects",
	Crocodile: "Can only gather mushrooms when alone at an area",
	Gopher:    "At night, move to the next area",
	Penguin:   "Swap any effects that change this critter's stats",
	Rhino:     "When another critter enters the area, give this critter +1 mushrooms per day",
	Grizzly:   "When played, give -1 mushrooms per day to other critters at the area",
	Goose:     "When played, summon additional copies until the area is full",
	Sheep:     "When another critter enters the area, give this critter +1 lifespan",
}

// LocationEffectText describes each location effect
var LocationEffectText = map[LocationType]string{
	Beach:  "When gathering mushrooms here, critters do not use lifespan",
	Canyon: "When a critter enters here, give it +1 mushrooms per day and +1 lifespan",
	Jungle: "Only critters with 2 mushrooms per day or more can gather mushrooms here",
}

func (s Stats) isZero() bool {
	return s.MushroomsPerDay == 0 && s.Lifespan == 0
}
