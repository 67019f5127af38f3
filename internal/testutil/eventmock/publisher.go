package eventmock

import (
	"context"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/event"
)

var _ event.Publisher = (*Events)(nil)

// Events records published events.
type Events struct {
	Published []Published
	Err       error
}

type Published struct {
	Stream string
	Type   string
	Data   any
}

func (e *Events) Publish(_ context.Context, stream, eventType string, data any) error {
	e.Published = append(e.Published, Published{Stream: stream, Type: eventType, Data: data})
	return e.Err
}

func (e *Events) Types() []string {
	out := make([]string, 0, len(e.Published))
	for _, p := range e.Published {
		out = append(out, p.Type)
	}
	return out
}
