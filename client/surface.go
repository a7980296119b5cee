// Package client renders the game: an ebiten window with a mercator map
// surface, emoji markers, and the one-at-a-time message panel.
package client

import (
	"image/color"
	"math"
	"sync"

	"github.com/ebiten/emoji"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"zombierun/game"
	"zombierun/world"
)

const (
	tileSize         = 256
	emojiSize        = 128
	markerScale      = 0.1875 // 128px glyph down to 24px
	earthCircumfMtrs = 40075016.686
)

func markerImage(kind game.MarkerKind) *ebiten.Image {
	switch kind {
	case game.MarkerZombie:
		return emoji.Image("🧟")
	case game.MarkerZombieChasing:
		return emoji.Image("👹")
	case game.MarkerDestination:
		return emoji.Image("🚩")
	case game.MarkerMyLocation:
		return emoji.Image("🔵")
	default:
		return emoji.Image("🏃")
	}
}

// Map implements the engine's rendering surface on a web-mercator
// projection around a movable center.
type Map struct {
	mu sync.Mutex

	center        world.LatLng
	zoom          int
	width, height int
	centered      bool

	markers map[*Marker]struct{}
	shapes  map[*Shape]struct{}

	clickListeners map[int]func(world.LatLng)
	nextListener   int
}

func NewMap(width, height int) *Map {
	return &Map{
		zoom:           2,
		width:          width,
		height:         height,
		markers:        make(map[*Marker]struct{}),
		shapes:         make(map[*Shape]struct{}),
		clickListeners: make(map[int]func(world.LatLng)),
	}
}

// worldCoords projects at onto the mercator plane for the current zoom,
// in pixels from the north-west corner of the world.
func worldCoords(at world.LatLng, zoom int) (float64, float64) {
	worldPx := float64(tileSize * (int(1) << zoom))
	x := (at.Lon + 180) / 360 * worldPx
	siny := math.Sin(at.Lat * math.Pi / 180)
	// Clamp away from the poles so y stays finite.
	siny = math.Min(math.Max(siny, -0.9999), 0.9999)
	y := (0.5 - math.Log((1+siny)/(1-siny))/(4*math.Pi)) * worldPx
	return x, y
}

func unprojectWorld(x, y float64, zoom int) world.LatLng {
	worldPx := float64(tileSize * (int(1) << zoom))
	lon := x/worldPx*360 - 180
	t := math.Exp((0.5 - y/worldPx) * 4 * math.Pi)
	siny := (t - 1) / (t + 1)
	return world.LatLng{
		Lat: math.Asin(siny) * 180 / math.Pi,
		Lon: lon,
	}
}

// screenCoords holds no lock; callers do.
func (m *Map) screenCoords(at world.LatLng) (float64, float64) {
	cx, cy := worldCoords(m.center, m.zoom)
	x, y := worldCoords(at, m.zoom)
	return x - cx + float64(m.width)/2, y - cy + float64(m.height)/2
}

func (m *Map) unproject(screenX, screenY float64) world.LatLng {
	cx, cy := worldCoords(m.center, m.zoom)
	return unprojectWorld(
		screenX-float64(m.width)/2+cx,
		screenY-float64(m.height)/2+cy,
		m.zoom)
}

func (m *Map) metersPerPixel() float64 {
	worldPx := float64(tileSize * (int(1) << m.zoom))
	return math.Cos(m.center.Lat*math.Pi/180) * earthCircumfMtrs / worldPx
}

// Marker implements game.MarkerHandle.
type Marker struct {
	m      *Map
	at     world.LatLng
	kind   game.MarkerKind
	hidden bool
}

func (mk *Marker) SetPosition(at world.LatLng) {
	mk.m.mu.Lock()
	mk.at = at
	mk.m.mu.Unlock()
}

func (mk *Marker) SetKind(kind game.MarkerKind) {
	mk.m.mu.Lock()
	mk.kind = kind
	mk.m.mu.Unlock()
}

func (mk *Marker) Remove() {
	mk.m.mu.Lock()
	delete(mk.m.markers, mk)
	mk.m.mu.Unlock()
}

type shapeKind int

const (
	shapeCircle shapeKind = iota
	shapeRect
)

// Shape implements game.ShapeHandle for circles and rectangles.
type Shape struct {
	m            *Map
	kind         shapeKind
	at           world.LatLng
	radiusMeters float64
	bounds       world.Bounds
}

func (sh *Shape) SetPosition(at world.LatLng) {
	sh.m.mu.Lock()
	sh.at = at
	sh.m.mu.Unlock()
}

func (sh *Shape) Remove() {
	sh.m.mu.Lock()
	delete(sh.m.shapes, sh)
	sh.m.mu.Unlock()
}

func (m *Map) AddMarker(kind game.MarkerKind, at world.LatLng, hidden bool) game.MarkerHandle {
	marker := &Marker{m: m, at: at, kind: kind, hidden: hidden}
	m.mu.Lock()
	m.markers[marker] = struct{}{}
	m.mu.Unlock()
	return marker
}

func (m *Map) AddCircle(at world.LatLng, radiusMeters float64) game.ShapeHandle {
	shape := &Shape{m: m, kind: shapeCircle, at: at, radiusMeters: radiusMeters}
	m.mu.Lock()
	m.shapes[shape] = struct{}{}
	m.mu.Unlock()
	return shape
}

func (m *Map) AddRect(bounds world.Bounds) game.ShapeHandle {
	shape := &Shape{m: m, kind: shapeRect, bounds: bounds}
	m.mu.Lock()
	m.shapes[shape] = struct{}{}
	m.mu.Unlock()
	return shape
}

// VisibleBounds reports the viewport. Before the first SetCenter the map
// shows the whole world at an arbitrary spot, which is useless to the
// server, so no bounds are reported.
func (m *Map) VisibleBounds() (world.Bounds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.centered {
		return world.Bounds{}, false
	}
	sw := m.unproject(0, float64(m.height))
	ne := m.unproject(float64(m.width), 0)
	return world.Bounds{SW: sw, NE: ne}, true
}

func (m *Map) SetCenter(at world.LatLng, zoom int) {
	m.mu.Lock()
	m.center = at
	m.zoom = zoom
	m.centered = true
	m.mu.Unlock()
}

// AddClickListener registers fn for map clicks and returns its removal
// function.
func (m *Map) AddClickListener(fn func(world.LatLng)) func() {
	m.mu.Lock()
	id := m.nextListener
	m.nextListener++
	m.clickListeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.clickListeners, id)
		m.mu.Unlock()
	}
}

// Click dispatches a screen-space click to every registered listener.
func (m *Map) Click(screenX, screenY float64) {
	m.mu.Lock()
	at := m.unproject(screenX, screenY)
	listeners := make([]func(world.LatLng), 0, len(m.clickListeners))
	for _, fn := range m.clickListeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(at)
	}
}

// Pan moves the center by screen pixels.
func (m *Map) Pan(dx, dy float64) {
	m.mu.Lock()
	cx, cy := worldCoords(m.center, m.zoom)
	m.center = unprojectWorld(cx+dx, cy+dy, m.zoom)
	m.mu.Unlock()
}

// Zoom adjusts the zoom level by delta, clamped to sane tile levels.
func (m *Map) Zoom(delta int) {
	m.mu.Lock()
	m.zoom += delta
	if m.zoom < 1 {
		m.zoom = 1
	}
	if m.zoom > 20 {
		m.zoom = 20
	}
	m.mu.Unlock()
}

var (
	backgroundColor    = color.RGBA{34, 40, 49, 255}
	gridColor          = color.RGBA{57, 62, 70, 255}
	fortificationColor = color.RGBA{0xCC, 0x16, 0x23, 255}
	tileFillColor      = color.RGBA{255, 0, 0, 25}
	tileStrokeColor    = color.RGBA{255, 0, 0, 255}
)

// Draw renders the surface. Called from the game loop every frame.
func (m *Map) Draw(screen *ebiten.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()

	screen.Fill(backgroundColor)
	m.drawGrid(screen)

	for shape := range m.shapes {
		switch shape.kind {
		case shapeCircle:
			x, y := m.screenCoords(shape.at)
			m.drawCircle(screen, x, y, shape.radiusMeters/m.metersPerPixel())
		case shapeRect:
			swX, swY := m.screenCoords(shape.bounds.SW)
			neX, neY := m.screenCoords(shape.bounds.NE)
			ebitenutil.DrawRect(screen, swX, neY, neX-swX, swY-neY, tileFillColor)
			ebitenutil.DrawLine(screen, swX, neY, neX, neY, tileStrokeColor)
			ebitenutil.DrawLine(screen, neX, neY, neX, swY, tileStrokeColor)
			ebitenutil.DrawLine(screen, neX, swY, swX, swY, tileStrokeColor)
			ebitenutil.DrawLine(screen, swX, swY, swX, neY, tileStrokeColor)
		}
	}

	for marker := range m.markers {
		if marker.hidden {
			continue
		}
		x, y := m.screenCoords(marker.at)
		options := &ebiten.DrawImageOptions{}
		options.GeoM.Scale(markerScale, markerScale)
		scaled := emojiSize * markerScale
		options.GeoM.Translate(x-scaled/2, y-scaled)
		options.Filter = ebiten.FilterLinear
		screen.DrawImage(markerImage(marker.kind), options)
	}
}

// drawGrid draws graticule lines so panning has a visible frame of
// reference even without map tiles.
func (m *Map) drawGrid(screen *ebiten.Image) {
	worldPx := float64(tileSize * (int(1) << m.zoom))
	// About one line per 128 screen pixels.
	stepDeg := 360 * 128 / worldPx

	bottomLeft := m.unproject(0, float64(m.height))
	topRight := m.unproject(float64(m.width), 0)

	for lon := math.Floor(bottomLeft.Lon/stepDeg) * stepDeg; lon <= topRight.Lon; lon += stepDeg {
		x, _ := m.screenCoords(world.LatLng{Lat: m.center.Lat, Lon: lon})
		ebitenutil.DrawLine(screen, x, 0, x, float64(m.height), gridColor)
	}
	for lat := math.Floor(bottomLeft.Lat/stepDeg) * stepDeg; lat <= topRight.Lat; lat += stepDeg {
		_, y := m.screenCoords(world.LatLng{Lat: lat, Lon: m.center.Lon})
		ebitenutil.DrawLine(screen, 0, y, float64(m.width), y, gridColor)
	}
}

func (m *Map) drawCircle(screen *ebiten.Image, cx, cy, radius float64) {
	const segments = 40
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / segments
		a1 := 2 * math.Pi * float64(i+1) / segments
		ebitenutil.DrawLine(screen,
			cx+radius*math.Cos(a0), cy+radius*math.Sin(a0),
			cx+radius*math.Cos(a1), cy+radius*math.Sin(a1),
			fortificationColor)
	}
}
