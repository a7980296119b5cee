package game

import (
	"log"
	"sync"

	"github.com/segmentio/ksuid"
)

type queuedMessage struct {
	id      ksuid.KSUID
	message Message
}

// Queue serializes notification display: at most one message is presented
// at a time, and the queue only advances when the visible message is
// dismissed. Display order is most-recently-queued first. The queue is
// unbounded; a pathological failure storm grows it rather than dropping
// messages.
type Queue struct {
	surface MessageSurface

	mu      sync.Mutex
	pending []queuedMessage
	showing bool
}

func NewQueue(surface MessageSurface) *Queue {
	return &Queue{surface: surface}
}

// Show enqueues the message and presents it immediately if nothing is on
// screen.
func (q *Queue) Show(message Message) {
	q.mu.Lock()
	q.pending = append(q.pending, queuedMessage{
		id:      ksuid.New(),
		message: message,
	})
	q.mu.Unlock()
	q.showNext()
}

func (q *Queue) showNext() {
	q.mu.Lock()
	if q.showing || len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	q.showing = true
	next := q.pending[len(q.pending)-1]
	q.pending = q.pending[:len(q.pending)-1]
	q.mu.Unlock()

	log.Printf("showing message %s", next.id)
	next.message.PopulateMessage(q.surface, func() {
		q.mu.Lock()
		q.showing = false
		q.mu.Unlock()
		q.showNext()
	})
}

// Pending reports how many messages are queued behind the visible one.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
