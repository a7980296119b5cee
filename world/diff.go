package world

// Diff helpers over successive snapshots. These are pure functions: the
// notification rules call them with the (previous, next) pair and the
// snapshots themselves are never modified.

// NewlyInfected returns the emails of players whose infected flag flipped
// from false to true between old and next. Players that only appear in
// next are not counted; joining infected is not an infection event.
func NewlyInfected(old, next *Snapshot) []string {
	infected := make(map[string]bool, len(old.Players))
	for _, p := range old.Players {
		infected[p.Email] = p.Infected
	}

	var newly []string
	for _, p := range next.Players {
		was, present := infected[p.Email]
		if present && !was && p.Infected {
			newly = append(newly, p.Email)
		}
	}
	return newly
}

// OtherNewPlayers returns the emails of players appended to the roster
// since old, excluding the requesting player. The server only ever appends
// to the roster, so the tail of next beyond old's length is the set of
// joins.
func OtherNewPlayers(old, next *Snapshot) []string {
	var joined []string
	for i := len(old.Players); i < len(next.Players); i++ {
		if next.Players[i].Email != next.Player {
			joined = append(joined, next.Players[i].Email)
		}
	}
	return joined
}

// NewlyFinished returns the emails of players whose reached_destination
// flag flipped to true between old and next.
func NewlyFinished(old, next *Snapshot) []string {
	finished := make(map[string]bool, len(old.Players))
	for _, p := range old.Players {
		finished[p.Email] = p.ReachedDestination
	}

	var newly []string
	for _, p := range next.Players {
		if p.ReachedDestination && !finished[p.Email] {
			newly = append(newly, p.Email)
		}
	}
	return newly
}

// GameJustEnded reports whether the done flag flipped on a game that had
// started.
func GameJustEnded(old, next *Snapshot) bool {
	return old.Started && !old.Done && next.Done
}

// AllInfected reports whether every player in s is infected.
func AllInfected(s *Snapshot) bool {
	for _, p := range s.Players {
		if !p.Infected {
			return false
		}
	}
	return true
}

// NoneInfected reports whether no player in s is infected.
func NoneInfected(s *Snapshot) bool {
	for _, p := range s.Players {
		if p.Infected {
			return false
		}
	}
	return true
}
