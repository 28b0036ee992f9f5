package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Task errors
	ErrMsgTaskNotFound       = "task not found"
	ErrMsgQueueFull          = "task queue is full"
	ErrMsgInsufficientEnergy = "insufficient energy"

	// Scene errors
	ErrMsgSceneDestroyed = "game scene destroyed"
	ErrMsgNotInGame      = "session is not in the game scene"

	// Session errors
	ErrMsgSessionNotFound = "session not found"
	ErrMsgSessionClosed   = "session closed"

	// Catalog errors
	ErrMsgInvalidCatalog = "invalid task catalog"
	ErrMsgEmptyCatalog   = "task catalog is empty"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	ErrMsgNotImplemented = "not implemented"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Task errors
	ErrTaskNotFound       = errors.New(ErrMsgTaskNotFound)
	ErrQueueFull          = errors.New(ErrMsgQueueFull) // generation no-op, not a failure
	ErrInsufficientEnergy = errors.New(ErrMsgInsufficientEnergy)

	// Scene errors
	ErrSceneDestroyed = errors.New(ErrMsgSceneDestroyed)
	ErrNotInGame      = errors.New(ErrMsgNotInGame)

	// Session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrSessionClosed   = errors.New(ErrMsgSessionClosed)

	// Catalog errors
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)
	ErrEmptyCatalog   = errors.New(ErrMsgEmptyCatalog)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrNotImplemented = errors.New(ErrMsgNotImplemented)
)
