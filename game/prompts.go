package game

import "zombierun/world"

// ChooseDestinationMessage asks the game owner for a destination address.
// It is shown directly when the owner gets their first location fix on a
// game with no destination; it never triggers off a snapshot transition.
type ChooseDestinationMessage struct {
	// resolve geocodes the address and sets the destination. A non-nil
	// error means the address couldn't be resolved and the prompt is
	// shown again with an inline error.
	resolve func(address string) error
	errText string
}

func NewChooseDestinationMessage(resolve func(address string) error) *ChooseDestinationMessage {
	return &ChooseDestinationMessage{resolve: resolve}
}

func (m *ChooseDestinationMessage) ShouldShow(old, next *world.Snapshot) bool { return false }

func (m *ChooseDestinationMessage) ComputeMessage(old, next *world.Snapshot) {}

func (m *ChooseDestinationMessage) PopulateMessage(s MessageSurface, dismiss func()) {
	prompt := "What is your destination?"
	if m.errText != "" {
		prompt = m.errText + "\n" + prompt
	}
	s.ShowPrompt(prompt, func(address string) {
		go func() {
			if err := m.resolve(address); err != nil {
				m.errText = "Oh No!  Something went wrong, try again?"
				m.PopulateMessage(s, dismiss)
				return
			}
			dismiss()
		}()
	}, dismiss)
}

// AddFriendMessage asks for a friend's email and sends the invitation.
type AddFriendMessage struct {
	invite func(email string)
}

func NewAddFriendMessage(invite func(email string)) *AddFriendMessage {
	return &AddFriendMessage{invite: invite}
}

func (m *AddFriendMessage) ShouldShow(old, next *world.Snapshot) bool { return false }

func (m *AddFriendMessage) ComputeMessage(old, next *world.Snapshot) {}

func (m *AddFriendMessage) PopulateMessage(s MessageSurface, dismiss func()) {
	s.ShowPrompt("What is your friend's email?", func(email string) {
		m.invite(email)
		dismiss()
	}, dismiss)
}
