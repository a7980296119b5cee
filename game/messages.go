package game

import (
	"strings"

	"zombierun/world"
)

// Message is one notification: a trigger predicate over a snapshot
// transition, a formatter, and a presenter. Rules keep no state between
// evaluations other than the text computed for the pair they fired on.
type Message interface {
	// ShouldShow reports whether this message applies to the transition
	// from old to next.
	ShouldShow(old, next *world.Snapshot) bool
	// ComputeMessage prepares the display text for the transition. Only
	// called when ShouldShow returned true, or for messages that are
	// shown directly without a trigger.
	ComputeMessage(old, next *world.Snapshot)
	// PopulateMessage presents the message on the surface. dismiss hides
	// it and lets the queue promote the next one.
	PopulateMessage(s MessageSurface, dismiss func())
}

// paragraph is the base for every message that displays a single block of
// text with a dismiss affordance.
type paragraph struct {
	text string
}

func (p *paragraph) ShouldShow(old, next *world.Snapshot) bool { return false }

func (p *paragraph) ComputeMessage(old, next *world.Snapshot) {}

func (p *paragraph) PopulateMessage(s MessageSurface, dismiss func()) {
	s.ShowParagraph(p.text, dismiss)
}

// Static messages. These never trigger off a snapshot transition; the
// engine shows them directly.

func NewWaitingForFirstFixMessage() Message {
	return &paragraph{text: "Thank you for using the Zombie, Run! Zombie Finder!  We'll show " +
		"you your current location as soon as we get an accurate gps fix.  " +
		"Please be patient, this can take a few minutes, and works best if " +
		"you're outside with a clear view of the sky."}
}

func NewDestinationChosenMessage() Message {
	return &paragraph{text: "Now, put your shoes on, get outside, and get to your " +
		"destination before the zombies eat your brains!"}
}

func NewTooManyFailedRequestsMessage() Message {
	return &paragraph{text: "There's been a problem connecting to central intelligence.  " +
		"Reinitializing systems."}
}

func NewSuccessfullyInvitedFriendMessage() Message {
	return &paragraph{text: "We have successfully invited your friend.  Tell them to check " +
		"their email soon."}
}

func NewFailedToInviteFriendMessage() Message {
	return &paragraph{text: "There was a problem inviting your friend.  Please try again soon."}
}

func NewFortifyingMessage() Message {
	return &paragraph{text: "Fortifying.  You can fortify again after 10 minutes."}
}

func NewTooFrequentFortificationMessage() Message {
	return &paragraph{text: "You can only fortify once every ten minutes."}
}

func NewZombiesCantFortifyMessage() Message {
	return &paragraph{text: "Infected players can't fortify!  You're a zombie now, whose team " +
		"do you think you're on??"}
}

// HumanInfectedMessage fires when any player's infected flag flips to
// true.
type HumanInfectedMessage struct {
	paragraph
}

func (m *HumanInfectedMessage) ShouldShow(old, next *world.Snapshot) bool {
	return len(world.NewlyInfected(old, next)) > 0
}

func (m *HumanInfectedMessage) ComputeMessage(old, next *world.Snapshot) {
	newlyInfected := world.NewlyInfected(old, next)
	switch {
	case len(newlyInfected) == 1 && newlyInfected[0] == next.Player:
		m.text = "You were just infected by a zombie!"
	case len(newlyInfected) == 1:
		m.text = newlyInfected[0] + " was just infected by a zombie!"
	default:
		m.text = strings.Join(newlyInfected, ", ") + " were just infected by zombies!"
	}
	m.text += "  (Players receive an antidote after an hour.)"
}

// PlayerJoinedGameMessage fires when the roster grows on a game that had
// already started, excluding the local player's own join.
type PlayerJoinedGameMessage struct {
	paragraph
}

func (m *PlayerJoinedGameMessage) ShouldShow(old, next *world.Snapshot) bool {
	return old.Started && len(world.OtherNewPlayers(old, next)) > 0
}

func (m *PlayerJoinedGameMessage) ComputeMessage(old, next *world.Snapshot) {
	joined := world.OtherNewPlayers(old, next)
	if len(joined) == 1 {
		m.text = joined[0] + " just joined the game."
	} else {
		m.text = strings.Join(joined, " and ") + " have just joined the game."
	}
}

// PlayerReachesDestinationMessage fires when any player's
// reached_destination flag flips to true.
type PlayerReachesDestinationMessage struct {
	paragraph
}

func (m *PlayerReachesDestinationMessage) ShouldShow(old, next *world.Snapshot) bool {
	return len(world.NewlyFinished(old, next)) > 0
}

func (m *PlayerReachesDestinationMessage) ComputeMessage(old, next *world.Snapshot) {
	finished := world.NewlyFinished(old, next)
	switch {
	case len(finished) > 1:
		finished[len(finished)-1] = "and " + finished[len(finished)-1]
		m.text = strings.Join(finished, ", ") + " have reached the destination!"
	case finished[0] == next.Player:
		m.text = "You have reached the destination!"
	default:
		m.text = finished[0] + " has reached the destination!"
	}
}

// AllHumansSurviveMessage fires when the game ends with nobody infected.
type AllHumansSurviveMessage struct {
	paragraph
}

func (m *AllHumansSurviveMessage) ShouldShow(old, next *world.Snapshot) bool {
	return world.GameJustEnded(old, next) && world.NoneInfected(next)
}

func (m *AllHumansSurviveMessage) ComputeMessage(old, next *world.Snapshot) {
	m.text = "All uninfected humans have reached the destination!  Humanity is safe!"
}

// AllHumansInfectedMessage fires when the game ends with everyone
// infected.
type AllHumansInfectedMessage struct {
	paragraph
}

func (m *AllHumansInfectedMessage) ShouldShow(old, next *world.Snapshot) bool {
	return world.GameJustEnded(old, next) && len(next.Players) > 0 && world.AllInfected(next)
}

func (m *AllHumansInfectedMessage) ComputeMessage(old, next *world.Snapshot) {
	m.text = "All humans infected!  Humanity is lost!"
}
