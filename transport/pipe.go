package transport

import (
	"errors"
	"sync"

	"github.com/sveinns/rolebot/core"
)

// ErrPipeClosed is returned by Feed and Send after Close.
var ErrPipeClosed = errors.New("transport: pipe is closed")

// Pipe is a volatile in-process transport. Inbound lines are pushed with
// Feed and surface on Lines; outbound commands accumulate for inspection via
// Sent. Safe for concurrent use; best suited for tests and examples.
type Pipe struct {
	mu      sync.Mutex
	lines   chan string
	done    chan struct{}
	feeders sync.WaitGroup
	sent    []core.Command
	closed  bool
}

// NewPipe constructs a pipe with a small inbound buffer.
func NewPipe() *Pipe {
	return &Pipe{
		lines: make(chan string, 64),
		done:  make(chan struct{}),
	}
}

// Feed pushes one inbound raw line. It blocks if the buffer is full until a
// consumer drains a slot or the pipe closes.
func (p *Pipe) Feed(line string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPipeClosed
	}
	p.feeders.Add(1)
	p.mu.Unlock()
	defer p.feeders.Done()

	select {
	case p.lines <- line:
		return nil
	case <-p.done:
		return ErrPipeClosed
	}
}

// Send records one outbound command.
func (p *Pipe) Send(cmd core.Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPipeClosed
	}
	p.sent = append(p.sent, cmd)
	return nil
}

// Lines returns the inbound line stream. The channel closes with Close.
func (p *Pipe) Lines() <-chan string { return p.lines }

// Sent returns a copy of every command sent so far, in order.
func (p *Pipe) Sent() []core.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.Command, len(p.sent))
	copy(out, p.sent)
	return out
}

// Close ends the inbound stream and rejects further Feed/Send calls. Blocked
// feeders are released with ErrPipeClosed; the line channel closes only after
// the last of them has let go, so Feed never races the close.
func (p *Pipe) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	p.feeders.Wait()
	close(p.lines)
	return nil
}

var _ core.Transport = (*Pipe)(nil)
var _ core.LineSource = (*Pipe)(nil)
