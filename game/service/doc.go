// Package service provides the business logic layer for Spilled Mushrooms.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration listing, loading and saving
//   - Single and bulk critter placement
//   - Turn history pagination and collection summaries
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, lifecycle and archiving
// of finished runs. ConfigManager manages game configuration loading.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service serializes
// every operation with a single lock so a turn is never observed half applied.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "balanced")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Send the first queued critter to the Canyon
//	result, err := gameService.Move(ctx, sessionInfo.ID, 0, 1, false)
//	if errors.Is(err, engine.ErrInvalidMove) {
//		// full location, bad index or finished game
//	}
package service
