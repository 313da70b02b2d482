package input

import (
	"context"

	"github.com/lixenwraith/termtris/terminal"
	"github.com/pkg/errors"
)

// Pump drains terminal events into state until ctx ends or the stream closes
// Ctrl-C calls interrupt instead of binding a key
func Pump(ctx context.Context, events <-chan terminal.Event, state *KeyState, interrupt func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}

			switch ev.Type {
			case terminal.EventClosed:
				return nil
			case terminal.EventError:
				return errors.Wrap(ev.Err, "read input")
			case terminal.EventKey:
				if ev.Key == terminal.KeyCtrlC {
					if interrupt != nil {
						interrupt()
					}
					continue
				}
				if k, ok := Bind(ev); ok {
					state.Press(k)
				}
			}
		}
	}
}
