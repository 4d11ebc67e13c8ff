// Package engine provides the core game logic for Spilled Mushrooms.
//
// The engine package implements the game mechanics including:
//   - The critter queue and its rotation after every placement
//   - Placement abilities (Grizzly penalty, Goose duplication)
//   - Entry buffs (Rhino, Sheep, swapped by Penguin) and the Canyon bonus
//   - Mushroom collection, depletion, night movement and lifespan decay
//   - Roster and location configuration with warnings for bad entries
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameEngine owns every critter ever created in an
// arena indexed by CritterID; the queue and the location occupant lists hold
// IDs, so a critter can only ever sit in one container. GameState is a
// read-only snapshot, TurnReport records what one move did, and
// CollectionSummary is the end-of-run report.
//
// Usage:
//
//	cfg, err := engine.LoadGameConfig("configs/balanced.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, warnings, err := engine.NewEngineFromConfig(cfg, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, w := range warnings {
//		log.Println(w)
//	}
//
//	report, err := game.ApplyMove(0, 1) // first critter to the Canyon
//	state := game.GetState()
//
// Game Rules:
//
// Each turn the player sends one of the first two queued critters to one of
// three locations. Every critter then gathers up to its mushrooms per day,
// Gophers wander to the next location and critters away from the Beach age by
// one day. The game is won when all three locations run out of mushrooms, and
// lost when day 7 ends with mushrooms left.
package engine
