// Package game is the client's state-reconciliation and notification
// engine: it polls the server, diffs successive snapshots, keeps the map
// surface in sync, and queues notifications for display one at a time.
package game

import "zombierun/world"

// MarkerKind selects the glyph a marker is drawn with.
type MarkerKind int

const (
	MarkerPlayer MarkerKind = iota
	MarkerZombie
	MarkerZombieChasing
	MarkerDestination
	MarkerMyLocation
)

// MarkerHandle is one live marker on the map surface.
type MarkerHandle interface {
	SetPosition(at world.LatLng)
	SetKind(kind MarkerKind)
	Remove()
}

// ShapeHandle is one live circle or rectangle on the map surface.
type ShapeHandle interface {
	SetPosition(at world.LatLng)
	Remove()
}

// Surface is the map widget contract the engine draws on. The concrete
// implementation lives in the client package; tests use fakes.
type Surface interface {
	AddMarker(kind MarkerKind, at world.LatLng, hidden bool) MarkerHandle
	AddCircle(at world.LatLng, radiusMeters float64) ShapeHandle
	AddRect(bounds world.Bounds) ShapeHandle

	// VisibleBounds reports the current viewport, false when the surface
	// can't provide one. Requests still work without it.
	VisibleBounds() (world.Bounds, bool)
	SetCenter(at world.LatLng, zoom int)

	// AddClickListener registers fn for map clicks and returns its
	// removal function.
	AddClickListener(fn func(world.LatLng)) func()
}

// MessageSurface is where a promoted notification presents itself. The
// engine never builds presentation markup; it hands the surface text (or a
// prompt) plus the dismiss callback that advances the queue.
type MessageSurface interface {
	ShowParagraph(text string, dismiss func())
	ShowPrompt(prompt string, submit func(value string), dismiss func())
}
