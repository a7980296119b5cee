package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"zombierun/api"
	"zombierun/geo"
	"zombierun/world"
)

// Test fakes for the engine's collaborators. They record calls and let
// tests drive responses; none of them talk to the network or the screen.

type fakeMarker struct {
	surface *fakeSurface
	kind    MarkerKind
	at      world.LatLng
	hidden  bool
	removed bool
}

func (m *fakeMarker) SetPosition(at world.LatLng) {
	m.surface.mu.Lock()
	defer m.surface.mu.Unlock()
	m.at = at
}

func (m *fakeMarker) SetKind(kind MarkerKind) {
	m.surface.mu.Lock()
	defer m.surface.mu.Unlock()
	m.kind = kind
}

func (m *fakeMarker) Remove() {
	m.surface.mu.Lock()
	defer m.surface.mu.Unlock()
	m.removed = true
}

type fakeShape struct {
	surface *fakeSurface
	at      world.LatLng
	bounds  world.Bounds
	radius  float64
	removed bool
}

func (s *fakeShape) SetPosition(at world.LatLng) {
	s.surface.mu.Lock()
	defer s.surface.mu.Unlock()
	s.at = at
}

func (s *fakeShape) Remove() {
	s.surface.mu.Lock()
	defer s.surface.mu.Unlock()
	s.removed = true
}

type fakeSurface struct {
	mu       sync.Mutex
	markers  []*fakeMarker
	circles  []*fakeShape
	rects    []*fakeShape
	bounds   *world.Bounds
	center   world.LatLng
	zoom     int
	centers  int
	clicks   []func(world.LatLng)
	removals int
}

func (s *fakeSurface) AddMarker(kind MarkerKind, at world.LatLng, hidden bool) MarkerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &fakeMarker{surface: s, kind: kind, at: at, hidden: hidden}
	s.markers = append(s.markers, m)
	return m
}

func (s *fakeSurface) AddCircle(at world.LatLng, radiusMeters float64) ShapeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &fakeShape{surface: s, at: at, radius: radiusMeters}
	s.circles = append(s.circles, c)
	return c
}

func (s *fakeSurface) AddRect(bounds world.Bounds) ShapeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &fakeShape{surface: s, bounds: bounds}
	s.rects = append(s.rects, r)
	return r
}

func (s *fakeSurface) VisibleBounds() (world.Bounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bounds == nil {
		return world.Bounds{}, false
	}
	return *s.bounds, true
}

func (s *fakeSurface) SetCenter(at world.LatLng, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = at
	s.zoom = zoom
	s.centers++
}

func (s *fakeSurface) AddClickListener(fn func(world.LatLng)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks = append(s.clicks, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.removals++
	}
}

// liveMarkers returns the markers of the given kind that haven't been
// removed.
func (s *fakeSurface) liveMarkers(kind MarkerKind) []*fakeMarker {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*fakeMarker
	for _, m := range s.markers {
		if !m.removed && m.kind == kind {
			live = append(live, m)
		}
	}
	return live
}

func (s *fakeSurface) liveCircles() []*fakeShape {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*fakeShape
	for _, c := range s.circles {
		if !c.removed {
			live = append(live, c)
		}
	}
	return live
}

func (s *fakeSurface) liveRects() []*fakeShape {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*fakeShape
	for _, r := range s.rects {
		if !r.removed {
			live = append(live, r)
		}
	}
	return live
}

type fakeMessageSurface struct {
	mu         sync.Mutex
	paragraphs []string
	prompts    []string
	submit     func(value string)
	dismiss    func()
}

func (s *fakeMessageSurface) ShowParagraph(text string, dismiss func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paragraphs = append(s.paragraphs, text)
	s.submit = nil
	s.dismiss = dismiss
}

func (s *fakeMessageSurface) ShowPrompt(prompt string, submit func(value string), dismiss func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	s.submit = submit
	s.dismiss = dismiss
}

func (s *fakeMessageSurface) shown() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paragraphs...)
}

func (s *fakeMessageSurface) shownPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func (s *fakeMessageSurface) dismissCurrent() {
	s.mu.Lock()
	dismiss := s.dismiss
	s.dismiss = nil
	s.mu.Unlock()
	if dismiss != nil {
		dismiss()
	}
}

func (s *fakeMessageSurface) submitCurrent(value string) {
	s.mu.Lock()
	submit := s.submit
	s.mu.Unlock()
	if submit != nil {
		submit(value)
	}
}

type fakeAPI struct {
	mu        sync.Mutex
	gets      []api.Params
	puts      []api.Params
	starts    []world.LatLng
	friends   []string
	snapshot  *world.Snapshot
	err       error
	friendErr error

	// release, when set, blocks every snapshot request until it is closed.
	release chan struct{}
}

func (f *fakeAPI) respond() (*world.Snapshot, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot, f.err
}

func (f *fakeAPI) Get(ctx context.Context, p api.Params) (*world.Snapshot, error) {
	f.mu.Lock()
	f.gets = append(f.gets, p)
	f.mu.Unlock()
	return f.respond()
}

func (f *fakeAPI) Put(ctx context.Context, p api.Params) (*world.Snapshot, error) {
	f.mu.Lock()
	f.puts = append(f.puts, p)
	f.mu.Unlock()
	return f.respond()
}

func (f *fakeAPI) Start(ctx context.Context, at world.LatLng) (*world.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, at)
	return f.snapshot, f.err
}

func (f *fakeAPI) AddFriend(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.friends = append(f.friends, email)
	return f.friendErr
}

func (f *fakeAPI) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.gets) + len(f.puts)
}

func (f *fakeAPI) putParams() []api.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Params(nil), f.puts...)
}

func (f *fakeAPI) startedAt() []world.LatLng {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]world.LatLng(nil), f.starts...)
}

func (f *fakeAPI) invited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.friends...)
}

type fakeGeocoder struct {
	mu        sync.Mutex
	at        world.LatLng
	err       error
	addresses []string
	bounds    *world.Bounds
}

func (g *fakeGeocoder) Geocode(ctx context.Context, address string, bounds *world.Bounds) (world.LatLng, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addresses = append(g.addresses, address)
	g.bounds = bounds
	return g.at, g.err
}

type fakeLocationSource struct {
	ok       bool
	listener geo.Listener
}

func (s *fakeLocationSource) AddListener(l geo.Listener) bool {
	if !s.ok {
		return false
	}
	s.listener = l
	return true
}

func newTestEngine(a *fakeAPI) (*Engine, *fakeSurface, *fakeMessageSurface) {
	surface := &fakeSurface{}
	messageSurface := &fakeMessageSurface{}
	e := NewEngine(a, &fakeGeocoder{}, surface, NewQueue(messageSurface), DefaultRegistry(), false)
	return e, surface, messageSurface
}

func engineIdle(e *Engine) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.updating
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
