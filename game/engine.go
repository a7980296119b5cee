package game

import (
	"context"
	"log"
	"sync"
	"time"

	"zombierun/api"
	"zombierun/geo"
	"zombierun/world"
)

const (
	requestTimeout = 30 * time.Second
	// A failure notice is shown once when this many requests in a row
	// have failed.
	failureNoticeThreshold = 11
	fortifyCooldown        = 10 * time.Minute
	centerZoom             = 15
)

// API is the server transport the engine drives. Get fetches state only;
// Put pushes the player's location and fetches in one round trip.
type API interface {
	Get(ctx context.Context, p api.Params) (*world.Snapshot, error)
	Put(ctx context.Context, p api.Params) (*world.Snapshot, error)
	Start(ctx context.Context, at world.LatLng) (*world.Snapshot, error)
	AddFriend(ctx context.Context, email string) error
}

// Geocoder resolves a typed destination address to a position.
type Geocoder interface {
	Geocode(ctx context.Context, address string, bounds *world.Bounds) (world.LatLng, error)
}

// LocationSource is where the engine subscribes for location fixes.
// AddListener returns false when no location provider is available, in
// which case location-driven sync never starts.
type LocationSource interface {
	AddListener(l geo.Listener) bool
}

// Engine drives the poll/update cycle: it synchronizes local state with
// the server under an at-most-one-outstanding-request guard, diffs
// successive snapshots for notifications, and reconciles the map surface
// with the latest snapshot.
type Engine struct {
	api      API
	geocoder Geocoder
	surface  Surface
	messages *Queue
	registry *Registry
	debug    bool

	now func() time.Time

	mu             sync.Mutex
	snapshot       *world.Snapshot
	location       *world.LatLng
	updating       bool
	isOwner        bool
	fortifySignal  bool
	lastFortified  time.Time
	failedRequests int

	destinationPickArmed  bool
	removeDestinationPick func()

	zombies        []*zombieView
	players        []*playerView
	fortifications []*fortificationView
	tiles          []*tileView
	destination    *destinationView
	myLocation     MarkerHandle

	stop chan struct{}
}

func NewEngine(a API, geocoder Geocoder, surface Surface, messages *Queue, registry *Registry, debug bool) *Engine {
	return &Engine{
		api:      a,
		geocoder: geocoder,
		surface:  surface,
		messages: messages,
		registry: registry,
		debug:    debug,
		now:      time.Now,
		snapshot: &world.Snapshot{},
		stop:     make(chan struct{}),
	}
}

// Start subscribes to location updates and begins polling: one
// unconditional synchronization immediately, then one per interval until
// Stop. Returns false (and never polls) when no location provider is
// available.
func (e *Engine) Start(interval time.Duration, source LocationSource) bool {
	if !source.AddListener(e) {
		return false
	}

	e.Synchronize()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.Synchronize()
			case <-e.stop:
				return
			}
		}
	}()
	return true
}

// Stop ends the poll loop. An outstanding request still completes and is
// still processed.
func (e *Engine) Stop() {
	close(e.stop)
}

// Synchronize sends one synchronization request, unless one is already
// outstanding, in which case it does nothing. The fortify signal, when
// armed, is consumed here: it goes out with exactly this request and is
// cleared before the request is even sent.
func (e *Engine) Synchronize() {
	e.mu.Lock()
	if e.updating {
		e.mu.Unlock()
		return
	}
	e.updating = true

	p := api.Params{Debug: e.debug}
	if e.location != nil {
		location := *e.location
		p.Location = &location
		if e.fortifySignal {
			p.Fortify = true
			e.fortifySignal = false
		}
	}
	if bounds, ok := e.surface.VisibleBounds(); ok {
		b := bounds
		p.Bounds = &b
	}
	e.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var snapshot *world.Snapshot
		var err error
		if p.Location != nil {
			snapshot, err = e.api.Put(ctx, p)
		} else {
			snapshot, err = e.api.Get(ctx, p)
		}
		if err != nil {
			e.OnSynchronizeFailed(err)
			return
		}
		e.OnSnapshot(snapshot)
	}()
}

// OnSnapshot applies a server snapshot: notification rules run against
// the (previous, next) pair, the snapshot becomes current, the failure
// counter resets, and the surface is reconciled.
func (e *Engine) OnSnapshot(next *world.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.snapshot
	for _, message := range e.registry.Evaluate(old, next) {
		message.ComputeMessage(old, next)
		e.messages.Show(message)
	}

	e.snapshot = next
	e.failedRequests = 0
	e.updating = false
	e.isOwner = next.Owner != "" && next.Owner == next.Player
	e.reconcile(next)
}

// OnSynchronizeFailed records a failed request. After enough consecutive
// failures a single notice is shown; the counter keeps climbing but the
// notice doesn't repeat until a success resets it.
func (e *Engine) OnSynchronizeFailed(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log.Printf("synchronize failed: %v", err)
	e.failedRequests++
	if e.failedRequests == failureNoticeThreshold {
		e.messages.Show(NewTooManyFailedRequestsMessage())
	}
	e.updating = false
}

// Fortify arms the one-shot fortify signal for the next synchronization.
// Infected players can't fortify, and fortifications are rate limited to
// one per ten minutes, measured from when the signal was armed rather than
// from server acknowledgment.
func (e *Engine) Fortify() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if self := e.snapshot.Self(); self != nil && self.Infected {
		e.messages.Show(NewZombiesCantFortifyMessage())
		return
	}
	if e.now().Sub(e.lastFortified) < fortifyCooldown {
		e.messages.Show(NewTooFrequentFortificationMessage())
		return
	}
	e.messages.Show(NewFortifyingMessage())
	e.fortifySignal = true
	e.lastFortified = e.now()
}

// LocationUpdate receives a location fix. The first fix recenters the map
// and, when the owner's game has no destination yet, arms the one-time
// choose-a-destination prompt. Every fix triggers an immediate
// synchronization.
func (e *Engine) LocationUpdate(at world.LatLng) {
	e.mu.Lock()
	first := e.location == nil
	location := at
	e.location = &location

	if first {
		e.surface.SetCenter(at, centerZoom)
	}
	if e.myLocation == nil {
		e.myLocation = e.surface.AddMarker(MarkerMyLocation, at, false)
	} else {
		e.myLocation.SetPosition(at)
	}

	if e.snapshot.Destination == nil && e.isOwner && !e.destinationPickArmed {
		e.destinationPickArmed = true
		e.removeDestinationPick = e.surface.AddClickListener(e.destinationPicked)
		e.messages.Show(NewChooseDestinationMessage(e.resolveDestination))
	}
	e.mu.Unlock()

	e.Synchronize()
}

func (e *Engine) destinationPicked(at world.LatLng) {
	e.SetDestination(at)
}

// resolveDestination geocodes a typed address, biased by the visible
// viewport, and sets the destination on success. The error return drives
// the prompt's inline retry.
func (e *Engine) resolveDestination(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var bounds *world.Bounds
	if b, ok := e.surface.VisibleBounds(); ok {
		bounds = &b
	}
	at, err := e.geocoder.Geocode(ctx, address, bounds)
	if err != nil {
		log.Printf("geocode %q: %v", address, err)
		return err
	}
	e.SetDestination(at)
	return nil
}

// SetDestination tells the server where the game's destination is and
// draws it immediately, without waiting for the next snapshot.
func (e *Engine) SetDestination(at world.LatLng) {
	e.mu.Lock()
	if e.destination == nil {
		e.destination = newDestinationView(e.surface, at)
	} else {
		e.destination.locationUpdate(at)
	}
	if e.removeDestinationPick != nil {
		e.removeDestinationPick()
		e.removeDestinationPick = nil
	}
	e.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := e.api.Start(ctx, at); err != nil {
			// TODO: re-issue the RPC on failure.
			log.Printf("set destination: %v", err)
			return
		}
		e.messages.Show(NewDestinationChosenMessage())
	}()
}

// PromptAddFriend shows the invite-a-friend prompt.
func (e *Engine) PromptAddFriend() {
	e.messages.Show(NewAddFriendMessage(e.AddFriend))
}

// AddFriend invites another player by email and reports the result as a
// notification.
func (e *Engine) AddFriend(email string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := e.api.AddFriend(ctx, email); err != nil {
			log.Printf("add friend: %v", err)
			e.messages.Show(NewFailedToInviteFriendMessage())
			return
		}
		e.messages.Show(NewSuccessfullyInvitedFriendMessage())
	}()
}

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() *world.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// IsOwner reports whether the local player owns the game, as of the last
// snapshot.
func (e *Engine) IsOwner() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isOwner
}
