package game

import "zombierun/world"

// Entity views wrap the surface objects for one renderable game entity.
// Views are matched to snapshot entries by index, not by identity: the
// reconciliation pass keeps the view slices the same length as the
// snapshot lists and updates matching indices in place.

type zombieView struct {
	marker   MarkerHandle
	noticing bool
}

func newZombieView(s Surface, at world.LatLng, noticing bool) *zombieView {
	kind := MarkerZombie
	if noticing {
		kind = MarkerZombieChasing
	}
	return &zombieView{
		marker:   s.AddMarker(kind, at, false),
		noticing: noticing,
	}
}

func (v *zombieView) locationUpdate(at world.LatLng) {
	v.marker.SetPosition(at)
}

func (v *zombieView) setNoticing(noticing bool) {
	if v.noticing == noticing {
		return
	}
	v.noticing = noticing
	if noticing {
		v.marker.SetKind(MarkerZombieChasing)
	} else {
		v.marker.SetKind(MarkerZombie)
	}
}

func (v *zombieView) remove() {
	v.marker.Remove()
}

type playerView struct {
	marker MarkerHandle
}

// newPlayerView creates a roster marker. The local player's own entry is
// hidden rather than skipped so view indices stay aligned with the
// snapshot's player list.
func newPlayerView(s Surface, at world.LatLng, hidden bool) *playerView {
	return &playerView{marker: s.AddMarker(MarkerPlayer, at, hidden)}
}

func (v *playerView) locationUpdate(at world.LatLng) {
	v.marker.SetPosition(at)
}

func (v *playerView) remove() {
	v.marker.Remove()
}

const fortificationRadiusMeters = 100

type fortificationView struct {
	circle ShapeHandle
}

func newFortificationView(s Surface, at world.LatLng) *fortificationView {
	return &fortificationView{circle: s.AddCircle(at, fortificationRadiusMeters)}
}

func (v *fortificationView) locationUpdate(at world.LatLng) {
	v.circle.SetPosition(at)
}

func (v *fortificationView) remove() {
	v.circle.Remove()
}

// destinationView is the flag marker plus the fortified zone around it.
type destinationView struct {
	marker MarkerHandle
	circle ShapeHandle
}

func newDestinationView(s Surface, at world.LatLng) *destinationView {
	return &destinationView{
		marker: s.AddMarker(MarkerDestination, at, false),
		circle: s.AddCircle(at, fortificationRadiusMeters),
	}
}

func (v *destinationView) locationUpdate(at world.LatLng) {
	v.marker.SetPosition(at)
	v.circle.SetPosition(at)
}

func (v *destinationView) remove() {
	v.marker.Remove()
	v.circle.Remove()
}

type tileView struct {
	rect ShapeHandle
}

func newTileView(s Surface, tile world.Tile) *tileView {
	return &tileView{rect: s.AddRect(world.Bounds{SW: tile.SW, NE: tile.NE})}
}

func (v *tileView) remove() {
	v.rect.Remove()
}
