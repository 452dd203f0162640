package assistant

import (
	"sync"
	"time"
)

// Exchange is one user turn and the assistant's reply.
type Exchange struct {
	User      string
	Assistant string
	At        time.Time
}

// maxExchanges bounds the per-user history sent to the LLM.
const maxExchanges = 6

// History keeps the recent exchanges per user in process memory. It is
// injected into the chat service; under multi-instance deployment each
// instance sees its own slice of the conversation, which is acceptable
// for a consultant that re-reads the profile every turn.
type History struct {
	mu    sync.Mutex
	users map[uint][]Exchange
}

func NewHistory() *History {
	return &History{users: map[uint][]Exchange{}}
}

func (h *History) Append(userID uint, user, assistant string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := append(h.users[userID], Exchange{
		User:      user,
		Assistant: assistant,
		At:        time.Now(),
	})

	if len(list) > maxExchanges {
		list = list[len(list)-maxExchanges:]
	}

	h.users[userID] = list
}

func (h *History) Recent(userID uint) []Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.users[userID]
	out := make([]Exchange, len(list))
	copy(out, list)
	return out
}

func (h *History) Clear(userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.users, userID)
}
