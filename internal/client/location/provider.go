package location

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/logging"
)

// User-facing messages for a refused permission.
const (
	MessageLocationDenied       = "Allow location access in Settings so the map can center on your position"
	MessageLocationDeniedChange = "Allow location access in Settings"
)

// Kind is the coarse location state.
type Kind int

const (
	// Unknown: no coordinate yet and no error.
	Unknown Kind = iota
	// Available: Coordinate is the latest fix.
	Available
	// Unavailable: Message says why there is no coordinate.
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// State is a snapshot published to subscribers.
type State struct {
	Kind       Kind
	Coordinate models.Coordinate
	Message    string
	Status     AuthorizationStatus
}

// Provider bridges a Source into an observable state. Create one per app
// session and Close it when the session ends. All methods are safe for
// concurrent use.
type Provider struct {
	source Source
	log    logging.Logger

	mu     sync.Mutex
	state  State
	subs   map[int]chan State
	nextID int
	closed bool
}

func NewProvider(source Source, log logging.Logger) *Provider {
	return &Provider{
		source: source,
		log:    log,
		state:  State{Kind: Unknown, Status: source.AuthorizationStatus()},
		subs:   make(map[int]chan State),
	}
}

// RequestLocation walks the permission state: prompts when undetermined,
// takes a one-shot fix when authorized, and reports a denial otherwise. It
// blocks until the resulting state is published and returns it.
func (p *Provider) RequestLocation(ctx context.Context) State {
	status := p.source.AuthorizationStatus()
	p.update(func(s *State) { s.Status = status })

	switch status {
	case NotDetermined:
		answer, err := p.source.RequestAuthorization(ctx)
		if err != nil {
			p.HandleError(err)
			break
		}
		p.HandleAuthorizationChange(ctx, answer)
	case Authorized:
		p.locate(ctx)
	case Denied, Restricted:
		p.update(func(s *State) {
			s.Kind = Unavailable
			s.Coordinate = models.Coordinate{}
			s.Message = MessageLocationDenied
		})
	}

	return p.State()
}

// HandleAuthorizationChange is the permission-change callback. A grant
// triggers a one-shot fix; a denial or restriction makes the state
// Unavailable.
func (p *Provider) HandleAuthorizationChange(ctx context.Context, status AuthorizationStatus) {
	p.log.Debug(ctx, "location authorization changed", "status", status.String())

	switch status {
	case Authorized:
		p.update(func(s *State) {
			s.Status = status
			s.Message = ""
			if s.Kind == Unavailable {
				s.Kind = Unknown
			}
		})
		p.locate(ctx)
	case Denied, Restricted:
		p.update(func(s *State) {
			s.Status = status
			s.Kind = Unavailable
			s.Coordinate = models.Coordinate{}
			s.Message = MessageLocationDeniedChange
		})
	default:
		p.update(func(s *State) { s.Status = status })
	}
}

// HandleLocation is the position-update callback.
func (p *Provider) HandleLocation(c models.Coordinate) {
	p.update(func(s *State) {
		s.Kind = Available
		s.Coordinate = c
		s.Message = ""
	})
}

// HandleError is the location-failure callback.
func (p *Provider) HandleError(err error) {
	p.update(func(s *State) {
		s.Kind = Unavailable
		s.Coordinate = models.Coordinate{}
		s.Message = err.Error()
	})
}

func (p *Provider) locate(ctx context.Context) {
	c, err := p.source.Locate(ctx)
	if err != nil {
		p.log.Warn(ctx, "location fix failed", "err", err)
		p.HandleError(err)
		return
	}
	p.HandleLocation(c)
}

// State returns the current snapshot.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Coordinate returns the latest fix, if any.
func (p *Provider) Coordinate() (models.Coordinate, bool) {
	s := p.State()
	return s.Coordinate, s.Kind == Available
}

// AuthorizationStatus returns the last known permission state.
func (p *Provider) AuthorizationStatus() AuthorizationStatus {
	return p.State().Status
}

// ErrorMessage returns the current error message, if any.
func (p *Provider) ErrorMessage() (string, bool) {
	s := p.State()
	return s.Message, s.Message != ""
}

// Subscribe delivers the current state immediately and then every change.
// A subscriber that falls behind only sees the latest state. Call the
// returned function to unsubscribe; the channel is closed then or when the
// provider is closed.
func (p *Provider) Subscribe() (<-chan State, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan State, 1)
	if p.closed {
		close(ch)
		return ch, func() {}
	}

	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	ch <- p.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if c, ok := p.subs[id]; ok {
				delete(p.subs, id)
				close(c)
			}
		})
	}
}

// Close stops publishing and closes all subscriber channels.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
}

func (p *Provider) update(fn func(s *State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	next := p.state
	fn(&next)
	if next == p.state {
		return
	}
	p.state = next

	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
