package tripevents

import (
	"context"
	"sync"

	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/tripevents"
)

// Publisher records published events in memory.
// It is safe for concurrent use.
type Publisher struct {
	mu     sync.Mutex
	topic  string
	events []tripevents.Event
}

func NewPublisher(topic string) *Publisher {
	return &Publisher{topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, e tripevents.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *Publisher) Topic() string { return p.topic }

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []tripevents.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]tripevents.Event, len(p.events))
	copy(out, p.events)
	return out
}
