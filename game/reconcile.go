package game

import "zombierun/world"

// reconcile brings the view collections in line with the snapshot's entity
// lists by positional index: surplus views are removed from the tail,
// shared indices are updated in place, and new indices get new views.
// After one pass each view slice has exactly the length of its snapshot
// list. Callers hold e.mu.
func (e *Engine) reconcile(s *world.Snapshot) {
	e.reconcileZombies(s)
	fortifications := e.reconcilePlayers(s)
	e.reconcileFortifications(fortifications)
	e.reconcileDestination(s)
	e.reconcileTiles(s)
}

func (e *Engine) reconcileZombies(s *world.Snapshot) {
	for len(e.zombies) > len(s.Zombies) {
		last := len(e.zombies) - 1
		e.zombies[last].remove()
		e.zombies = e.zombies[:last]
	}
	for i := range s.Zombies {
		zombie := &s.Zombies[i]
		noticing := zombie.Chasing != ""
		if i < len(e.zombies) {
			e.zombies[i].locationUpdate(zombie.Location())
			e.zombies[i].setNoticing(noticing)
		} else {
			e.zombies = append(e.zombies, newZombieView(e.surface, zombie.Location(), noticing))
		}
	}
}

// reconcilePlayers syncs the roster markers and collects fortification
// positions in roster order. The local player's marker exists but is
// hidden; their position shows as the location dot instead.
func (e *Engine) reconcilePlayers(s *world.Snapshot) []world.LatLng {
	for len(e.players) > len(s.Players) {
		last := len(e.players) - 1
		e.players[last].remove()
		e.players = e.players[:last]
	}

	var fortifications []world.LatLng
	for i := range s.Players {
		player := &s.Players[i]
		if player.Fortification != nil {
			fortifications = append(fortifications, *player.Fortification)
		}
		if i < len(e.players) {
			e.players[i].locationUpdate(player.Location())
		} else {
			hidden := player.Email == s.Player
			e.players = append(e.players, newPlayerView(e.surface, player.Location(), hidden))
		}
	}
	return fortifications
}

func (e *Engine) reconcileFortifications(fortifications []world.LatLng) {
	for len(e.fortifications) > len(fortifications) {
		last := len(e.fortifications) - 1
		e.fortifications[last].remove()
		e.fortifications = e.fortifications[:last]
	}
	for i, at := range fortifications {
		if i < len(e.fortifications) {
			e.fortifications[i].locationUpdate(at)
		} else {
			e.fortifications = append(e.fortifications, newFortificationView(e.surface, at))
		}
	}
}

func (e *Engine) reconcileDestination(s *world.Snapshot) {
	if s.Destination == nil {
		return
	}
	if e.destination == nil {
		e.destination = newDestinationView(e.surface, *s.Destination)
	} else {
		e.destination.locationUpdate(*s.Destination)
	}
}

// reconcileTiles tears the debug overlay down and rebuilds it every pass.
// Tile counts are small enough that diffing isn't worth it.
func (e *Engine) reconcileTiles(s *world.Snapshot) {
	for _, tile := range e.tiles {
		tile.remove()
	}
	e.tiles = nil
	if s.Debug == nil {
		return
	}
	for _, tile := range s.Debug.Tiles {
		e.tiles = append(e.tiles, newTileView(e.surface, tile))
	}
}
