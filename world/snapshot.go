package world

import "encoding/json"

// Player is one member of the game roster as the server reports it.
type Player struct {
	Email              string  `json:"email"`
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	Infected           bool    `json:"infected"`
	InfectedTime       float64 `json:"infected_time,omitempty"`
	IsZombie           bool    `json:"is_zombie"`
	ReachedDestination bool    `json:"reached_destination"`
	Fortification      *LatLng `json:"fortification,omitempty"`
}

func (p *Player) Location() LatLng {
	return LatLng{Lat: p.Lat, Lon: p.Lon}
}

// Zombie is one zombie as the server reports it. Chasing carries the email
// of the player the zombie has noticed, empty when it is just meandering.
type Zombie struct {
	GUID    string  `json:"guid"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Speed   float64 `json:"speed"`
	Chasing string  `json:"chasing,omitempty"`
}

func (z *Zombie) Location() LatLng {
	return LatLng{Lat: z.Lat, Lon: z.Lon}
}

// Tile is one server-side partition of the play area, only present in debug
// responses.
type Tile struct {
	NE LatLng `json:"ne"`
	SW LatLng `json:"sw"`
}

// DebugInfo is the optional debug overlay attached to a snapshot.
type DebugInfo struct {
	Tiles []Tile `json:"tiles"`
}

// Snapshot is one server response: the whole visible game state at a point
// in time. Snapshots are never mutated; every poll decodes a fresh one and
// the previous snapshot is only kept for diffing.
type Snapshot struct {
	GameID      int64      `json:"game_id"`
	Owner       string     `json:"owner"`
	Player      string     `json:"player"`
	Started     bool       `json:"started"`
	Done        bool       `json:"done"`
	Players     []Player   `json:"players"`
	Zombies     []Zombie   `json:"zombies"`
	Destination *LatLng    `json:"destination,omitempty"`
	Debug       *DebugInfo `json:"debug,omitempty"`
}

// DecodeSnapshot parses a server response. Absent player and zombie lists
// decode to empty slices so callers never have to nil-check them.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Players == nil {
		s.Players = []Player{}
	}
	if s.Zombies == nil {
		s.Zombies = []Zombie{}
	}
	return &s, nil
}

// PlayerByEmail returns the roster entry with the given email, or nil.
func (s *Snapshot) PlayerByEmail(email string) *Player {
	for i := range s.Players {
		if s.Players[i].Email == email {
			return &s.Players[i]
		}
	}
	return nil
}

// Self returns the requesting player's own roster entry, or nil if the
// server hasn't added them yet.
func (s *Snapshot) Self() *Player {
	if s.Player == "" {
		return nil
	}
	return s.PlayerByEmail(s.Player)
}
