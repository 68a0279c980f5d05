package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// evdev key event values.
const (
	keyReleased = 0
	keyPressed  = 1
)

// pollInterval is how often the listener checks for key repeats while a
// direction is held.
const pollInterval = 10 * time.Millisecond

// Handler receives decoded commands from a Listener. Calls arrive from
// the listener's goroutine, one at a time.
type Handler func(Command)

// ListenerOptions configures a Listener.
type ListenerOptions struct {
	// Keymap overrides DefaultKeymap.
	Keymap map[evdev.EvCode]Command

	// RepeatDelay and RepeatInterval tune key repeat. Zero means the
	// defaults (300ms delay, 50ms interval).
	RepeatDelay    time.Duration
	RepeatInterval time.Duration
}

// Listener reads key events from an evdev device, decodes them through a
// keymap, and emits commands with software key repeat for held
// directions. Input capture can be toggled at runtime without closing
// the device.
type Listener struct {
	device  *evdev.InputDevice
	keymap  map[evdev.EvCode]Command
	repeat  DirectionalRepeat
	handler Handler
	enabled *atomic.Bool
	log     *slog.Logger
}

// NewListener opens the evdev device at path. The listener starts
// enabled; call Run to begin reading.
func NewListener(path string, handler Handler, opts ListenerOptions) (*Listener, error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", path, err)
	}

	keymap := opts.Keymap
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	delay := opts.RepeatDelay
	if delay == 0 {
		delay = 300 * time.Millisecond
	}
	interval := opts.RepeatInterval
	if interval == 0 {
		interval = 50 * time.Millisecond
	}

	return &Listener{
		device:  device,
		keymap:  keymap,
		repeat:  NewDirectionalRepeatWithTiming(delay, interval),
		handler: handler,
		enabled: atomic.NewBool(true),
		log:     internal.GetInternalLogger(),
	}, nil
}

// SetEnabled toggles command delivery. While disabled, key events are
// still drained from the device but dropped, and held-direction state is
// cleared so re-enabling does not fire a stale repeat.
func (l *Listener) SetEnabled(enabled bool) {
	l.enabled.Store(enabled)
}

// Run reads the device until the context is cancelled or the device
// fails. It blocks; run it in its own goroutine.
func (l *Listener) Run(ctx context.Context) error {
	events := make(chan *evdev.InputEvent)
	readErr := make(chan error, 1)

	go func() {
		defer close(events)
		for {
			ev, err := l.device.ReadOne()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	defer l.device.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input device: %w", err)

		case ev, ok := <-events:
			if !ok {
				continue
			}
			l.handleEvent(ev)

		case <-ticker.C:
			if !l.enabled.Load() {
				continue
			}
			if dir := l.repeat.Update(); dir != stromboli.DirectionNone {
				l.handler(commandFor(dir))
			}
		}
	}
}

func (l *Listener) handleEvent(ev *evdev.InputEvent) {
	if ev.Type != evdev.EV_KEY {
		return
	}

	cmd, ok := l.keymap[ev.Code]
	if !ok {
		return
	}

	if !l.enabled.Load() {
		l.repeat.Reset()
		return
	}

	switch ev.Value {
	case keyPressed:
		l.log.Debug("key pressed", "code", ev.Code, "command", cmd)
		if dir := cmd.Direction(); dir != stromboli.DirectionNone {
			l.repeat.SetHeld(dir, true)
		}
		l.handler(cmd)

	case keyReleased:
		if dir := cmd.Direction(); dir != stromboli.DirectionNone {
			l.repeat.SetHeld(dir, false)
		}
	}

	// Kernel autorepeat (value 2) is ignored; repeat timing is ours.
}

// commandFor maps a direction back to its command for repeat delivery.
func commandFor(dir stromboli.Direction) Command {
	switch dir {
	case stromboli.DirectionUp:
		return CommandUp
	case stromboli.DirectionDown:
		return CommandDown
	case stromboli.DirectionLeft:
		return CommandLeft
	case stromboli.DirectionRight:
		return CommandRight
	default:
		return CommandNone
	}
}
