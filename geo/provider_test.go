package geo

import (
	"errors"
	"reflect"
	"testing"

	"zombierun/world"
)

type fakeSource struct {
	name    string
	err     error
	started bool
	fix     func(at world.LatLng)
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Start(fix func(at world.LatLng)) error {
	if s.err != nil {
		return s.err
	}
	s.started = true
	s.fix = fix
	return nil
}

type recordingListener struct {
	fixes []world.LatLng
}

func (l *recordingListener) LocationUpdate(at world.LatLng) {
	l.fixes = append(l.fixes, at)
}

func TestProviderPrefersFirstWorkingSource(t *testing.T) {
	broken := &fakeSource{name: "broken", err: errors.New("port busy")}
	first := &fakeSource{name: "first"}
	second := &fakeSource{name: "second"}
	p := NewProvider(broken, first, second)

	if !p.Active() {
		t.Fatal("Active() = false with a working source")
	}
	if !first.started {
		t.Error("first working source never started")
	}
	if second.started {
		t.Error("later source started even though an earlier one worked")
	}
}

func TestProviderInactiveWithoutSources(t *testing.T) {
	p := NewProvider(&fakeSource{name: "broken", err: errors.New("nope")})
	if p.Active() {
		t.Error("Active() = true with no working source")
	}
	if p.AddListener(&recordingListener{}) {
		t.Error("AddListener() = true with no working source")
	}
}

func TestProviderFanOut(t *testing.T) {
	source := &fakeSource{name: "test"}
	p := NewProvider(source)
	a := &recordingListener{}
	b := &recordingListener{}
	if !p.AddListener(a) || !p.AddListener(b) {
		t.Fatal("AddListener() = false with a working source")
	}

	fix := world.LatLng{Lat: 37.5, Lon: -122.5}
	source.fix(fix)
	if !reflect.DeepEqual(a.fixes, []world.LatLng{fix}) {
		t.Errorf("listener a got %v", a.fixes)
	}
	if !reflect.DeepEqual(b.fixes, []world.LatLng{fix}) {
		t.Errorf("listener b got %v", b.fixes)
	}

	p.RemoveListener(a)
	source.fix(world.LatLng{Lat: 1, Lon: 1})
	if len(a.fixes) != 1 {
		t.Errorf("removed listener still got fixes: %v", a.fixes)
	}
	if len(b.fixes) != 2 {
		t.Errorf("remaining listener got %v", b.fixes)
	}
}

type fakeClickSource struct {
	fn func(at world.LatLng)
}

func (s *fakeClickSource) AddClickListener(fn func(at world.LatLng)) func() {
	s.fn = fn
	return func() {}
}

func TestDebugLocation(t *testing.T) {
	p := NewProvider()
	clicks := &fakeClickSource{}
	p.StartDebuggingLocation(clicks)

	if !p.Active() {
		t.Fatal("Active() = false after enabling debug location")
	}
	l := &recordingListener{}
	if !p.AddListener(l) {
		t.Fatal("AddListener() = false after enabling debug location")
	}

	at := world.LatLng{Lat: 37.7, Lon: -122.4}
	clicks.fn(at)
	if !reflect.DeepEqual(l.fixes, []world.LatLng{at}) {
		t.Errorf("listener got %v, want the clicked position", l.fixes)
	}
}
