// Package geo abstracts location acquisition: sources produce fixes, the
// provider fans every accepted fix out to all subscribed listeners.
package geo

import (
	"log"
	"sync"

	"zombierun/world"
)

// Listener receives location fixes.
type Listener interface {
	LocationUpdate(at world.LatLng)
}

// Source is one way of acquiring location fixes. Start begins delivering
// fixes through the callback; an error means the source is unavailable.
type Source interface {
	Name() string
	Start(fix func(at world.LatLng)) error
}

// Provider probes its sources in priority order and subscribes listeners
// to the first one that starts. With no working source the provider is
// inactive and AddListener reports false; there is no retry of source
// selection.
type Provider struct {
	mu        sync.Mutex
	listeners []Listener
	active    bool
}

func NewProvider(sources ...Source) *Provider {
	p := &Provider{}
	for _, source := range sources {
		if err := source.Start(p.update); err != nil {
			log.Printf("location source %s unavailable: %v", source.Name(), err)
			continue
		}
		log.Printf("location source: %s", source.Name())
		p.active = true
		break
	}
	return p
}

// Active reports whether any source started.
func (p *Provider) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// AddListener subscribes l to location fixes. Returns false when no
// source is available.
func (p *Provider) AddListener(l Listener) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return false
	}
	p.listeners = append(p.listeners, l)
	return true
}

// RemoveListener unsubscribes l.
func (p *Provider) RemoveListener(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	remaining := p.listeners[:0]
	for _, listener := range p.listeners {
		if listener != l {
			remaining = append(remaining, listener)
		}
	}
	p.listeners = remaining
}

func (p *Provider) update(at world.LatLng) {
	p.mu.Lock()
	listeners := make([]Listener, len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, listener := range listeners {
		listener.LocationUpdate(at)
	}
}

// ClickSource is the slice of the map surface the debug location mode
// needs: click registration with a removal function.
type ClickSource interface {
	AddClickListener(fn func(world.LatLng)) func()
}

// StartDebuggingLocation turns map clicks into location fixes. Clicks
// feed listeners even when no real source started, so the debug mode
// also marks the provider active.
func (p *Provider) StartDebuggingLocation(s ClickSource) {
	p.mu.Lock()
	p.active = true
	p.mu.Unlock()
	s.AddClickListener(p.update)
}
