package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/bus"
)

// Projector keeps each chat's denormalized last-message pointer in sync
// with the message store by applying "message." events from the bus. The
// pointer may momentarily trail the message store between an append and
// the event being applied; readers tolerate that lag.
type Projector struct {
	chats    *Chats
	messages *Messages
	bus      *bus.Bus
	logger   *zap.Logger
	cancel   context.CancelFunc
}

// NewProjector creates a projector over the given containers.
func NewProjector(chats *Chats, messages *Messages, b *bus.Bus, logger *zap.Logger) *Projector {
	return &Projector{chats: chats, messages: messages, bus: b, logger: logger}
}

// Start subscribes to message events and applies them until Stop.
func (p *Projector) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	ch, unsub := p.bus.Subscribe("message.", 256)

	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				p.apply(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the projector.
func (p *Projector) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Projector) apply(evt bus.Event) {
	ref, ok := evt.Payload.(MessageRef)
	if !ok {
		return
	}
	switch evt.Kind {
	case bus.KindMessageAdded, bus.KindMessageUpdated, bus.KindMessageDeleted, bus.KindReactionUpdated:
		// Recompute from the message store rather than trusting the event:
		// a delete may have removed the chat's newest entry.
		if last, ok := p.messages.Last(ref.ChatID); ok {
			p.chats.SetLastMessage(ref.ChatID, &last)
		} else {
			p.chats.SetLastMessage(ref.ChatID, nil)
		}
	}
}
