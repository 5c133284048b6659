package ecs

import "errors"

// Error kinds from the core error taxonomy. Operations that mutate the
// world return these to the caller; deferred commands that turn out to be
// invalid at flush time are silently skipped rather than surfaced (see
// World.FlushCommands). The broader taxonomy's ErrPlatformFailure and
// ScriptError live in internal/event instead of here (see errors.go there):
// both are shared across ecs, event, and input callback boundaries, and
// event imports none of the others (ecs and input import it), so it's the
// only place they can live without a cycle.
var (
	// ErrOutOfSpace is returned when a fixed-capacity structure (handle
	// pool, component map, command buffer, observer list) is saturated.
	// SystemScheduler has no fixed capacity and never returns it.
	ErrOutOfSpace = errors.New("ecs: out of space")
	// ErrInvalidHandle is returned when an entity handle's generation no
	// longer matches the slot's current generation.
	ErrInvalidHandle = errors.New("ecs: invalid handle")
	// ErrComponentExists is returned by Add when the entity already has a
	// component of that type.
	ErrComponentExists = errors.New("ecs: component already exists")
	// ErrComponentMissing is returned by Set/Get when the entity has no
	// component of that type. Remove on a missing component is NOT an
	// error; it is a silent no-op per spec.
	ErrComponentMissing = errors.New("ecs: component missing")
)
