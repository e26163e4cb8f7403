package zone

import "sync"

// mailbox is the zone's inbound queue: unbounded, multi-producer, single-consumer.
// Producers never block; order of push is the order of pop.
type mailbox struct {
	mu     sync.Mutex
	queue  []command
	closed bool
	signal chan struct{} // cap 1, set when queue becomes non-empty
}

func newMailbox() *mailbox {
	return &mailbox{
		queue:  make([]command, 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// push appends cmd. Returns false if the mailbox is closed.
func (m *mailbox) push(cmd command) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, cmd)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
	return true
}

// pop removes the oldest command.
func (m *mailbox) pop() (command, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil, false
	}
	cmd := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return cmd, true
}

// ready fires after pushes. Spurious wakeups are possible; pop until empty.
func (m *mailbox) ready() <-chan struct{} {
	return m.signal
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// close rejects further pushes and drops whatever is still queued.
func (m *mailbox) close() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	dropped := len(m.queue)
	m.queue = nil
	return dropped
}
