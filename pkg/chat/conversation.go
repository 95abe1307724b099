// FILE: pkg/chat/conversation.go
// PURPOSE: Ordered, in-memory conversation for a single coaching session

package chat

import "sync"

// Snapshot is what observers receive after every mutation
type Snapshot struct {
	Turns []Turn
	Goal  string
}

// Observer is notified synchronously after each mutation of the conversation
type Observer func(Snapshot)

// Conversation owns the ordered list of turns and the user's stated goal.
// It is append-only except for Reset and TruncateTrailingErrors.
type Conversation struct {
	mu        sync.RWMutex
	turns     []Turn
	goal      string
	observers map[int]Observer
	nextID    int
}

func NewConversation() *Conversation {
	return &Conversation{
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer and returns a func that removes it
func (c *Conversation) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Append adds turn to the end of the conversation. Content is not validated here.
func (c *Conversation) Append(turn Turn) {
	c.mu.Lock()
	c.turns = append(c.turns, turn)
	c.mu.Unlock()
	c.notify()
}

func (c *Conversation) SetGoal(goal string) {
	c.mu.Lock()
	c.goal = goal
	c.mu.Unlock()
	c.notify()
}

// Reset clears turns and goal back to the initial empty state
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.turns = nil
	c.goal = ""
	c.mu.Unlock()
	c.notify()
}

// TruncateTrailingErrors removes assistant error turns from the end of the
// conversation, stopping at the first turn that is not an error.
// It returns the number of turns removed.
func (c *Conversation) TruncateTrailingErrors() int {
	c.mu.Lock()
	n := len(c.turns)
	for n > 0 {
		last := c.turns[n-1]
		if !last.IsAssistant() || !last.IsError {
			break
		}
		n--
	}
	removed := len(c.turns) - n
	if removed > 0 {
		// Copy so earlier snapshots keep their view of the old backing array
		kept := make([]Turn, n)
		copy(kept, c.turns[:n])
		c.turns = kept
	}
	c.mu.Unlock()

	if removed > 0 {
		c.notify()
	}
	return removed
}

// Turns returns a copy of the conversation, oldest first
func (c *Conversation) Turns() []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyTurns()
}

func (c *Conversation) Goal() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.goal
}

func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

// Last returns the most recent turn, if any
func (c *Conversation) Last() (Turn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// LastUserTurn scans backward for the most recent user turn
func (c *Conversation) LastUserTurn() (Turn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].IsUser() {
			return c.turns[i], true
		}
	}
	return Turn{}, false
}

func (c *Conversation) copyTurns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// notify runs observers outside the lock so they may read the conversation
func (c *Conversation) notify() {
	c.mu.RLock()
	snap := Snapshot{Turns: c.copyTurns(), Goal: c.goal}
	observers := make([]Observer, 0, len(c.observers))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(snap)
	}
}
