package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/udisondev/zonesrv/internal/protocol"
	"github.com/udisondev/zonesrv/internal/world"
)

const (
	defaultSendQueueSize    = 256
	defaultRequestQueueSize = 32
)

// ErrHandleClosed is returned by handle calls after the session has exited.
var ErrHandleClosed = errors.New("player session closed")

// Options tune a Session. Zero values select defaults.
type Options struct {
	SendQueueSize int
	Visibility    world.Visibility
}

// Session is the actor owning one character. Zones reach it only through
// its Handle: state reads and writes run on the Run goroutine, notices
// go to a bounded outbound queue drained by the transport.
type Session struct {
	char Character
	vis  world.Visibility
	log  *slog.Logger

	requests chan func(*Character)
	sendCh   chan protocol.Packet

	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewSession creates a session for char. Call Run to start serving it.
func NewSession(char Character, opts Options) *Session {
	if opts.SendQueueSize <= 0 {
		opts.SendQueueSize = defaultSendQueueSize
	}

	return &Session{
		char:     char,
		vis:      opts.Visibility,
		log:      slog.With("player", char.ID),
		requests: make(chan func(*Character), defaultRequestQueueSize),
		sendCh:   make(chan protocol.Packet, opts.SendQueueSize),
		closeCh:  make(chan struct{}),
	}
}

// Run serves handle requests until ctx is canceled or the session is closed.
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.closeCh:
			return nil
		case fn := <-s.requests:
			fn(&s.char)
		}
	}
}

// Close stops the session. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}

// Done is closed when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.closeCh
}

// Outbound returns the queue of notices waiting for the transport.
func (s *Session) Outbound() <-chan protocol.Packet {
	return s.sendCh
}

// Handle returns the capability handed to zones.
func (s *Session) Handle() *Handle {
	return &Handle{id: s.char.ID, s: s}
}

// enqueue queues a notice without blocking. A full queue means the client
// cannot keep up and the session is closed.
func (s *Session) enqueue(pkt protocol.Packet) {
	select {
	case <-s.closeCh:
		return
	default:
	}

	select {
	case s.sendCh <- pkt:
	default:
		s.log.Warn("send queue full, closing slow session",
			"family", pkt.Family,
			"action", pkt.Action)
		s.Close()
	}
}
