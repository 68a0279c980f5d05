// Package shell wires the navigator to its collaborators: it turns
// directional input into cursor movement with sound feedback, completes
// domain boundary crossings, and glues window lifecycle to focus
// return. Consumers receive the outcome as events through a callback.
package shell

import (
	"log/slog"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/audio"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/compositor"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/input"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// EventKind names a shell event.
type EventKind int

const (
	EventCursorMoved EventKind = iota
	EventBoundaryReached
	EventDomainSwitched
	EventButtonActivate
	EventWindowCreated
	EventWindowStateChanged
	EventWindowClosed
)

// String returns a string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCursorMoved:
		return "cursor-moved"
	case EventBoundaryReached:
		return "boundary-reached"
	case EventDomainSwitched:
		return "domain-switched"
	case EventButtonActivate:
		return "button-activate"
	case EventWindowCreated:
		return "window-created"
	case EventWindowStateChanged:
		return "window-state-changed"
	case EventWindowClosed:
		return "window-closed"
	default:
		return "unknown"
	}
}

// Event is one shell outcome delivered to the consumer. Which fields
// are set depends on Kind, mirroring the navigator's Result.
type Event struct {
	Kind EventKind

	DomainID  string
	ElementID string

	FromDomain   string
	ToDomain     string
	NewElementID string

	Direction stromboli.Direction

	Window *compositor.Window
}

// Sound plays one-shot interface cues.
type Sound interface {
	PlayCue(audio.Cue)
}

// Ambience follows the active domain with a background bed.
type Ambience interface {
	OnDomainChange(domainID string)
}

// Options configures a Shell. Sound and Ambience may be nil for a
// silent shell.
type Options struct {
	Navigator *stromboli.Navigator
	Windows   *compositor.Manager
	Sound     Sound
	Ambience  Ambience

	// Emit receives every shell event. Required.
	Emit func(Event)
}

// Shell is the orchestrating layer between input and the navigator.
// Its methods are not reentrant from Emit callbacks but are otherwise
// safe from multiple goroutines, as the underlying managers lock
// themselves.
type Shell struct {
	nav      *stromboli.Navigator
	windows  *compositor.Manager
	sound    Sound
	ambience Ambience
	emit     func(Event)
	log      *slog.Logger
}

// New creates a Shell.
func New(opts Options) *Shell {
	return &Shell{
		nav:      opts.Navigator,
		windows:  opts.Windows,
		sound:    opts.Sound,
		ambience: opts.Ambience,
		emit:     opts.Emit,
		log:      internal.GetLogger(),
	}
}

// HandleDirection processes one directional press. A movement inside
// the active domain plays the nav cue. A boundary crossing is completed
// immediately: the navigator reports the adjacent domain and the shell
// performs the switch, plays the switch cue, retargets the ambience,
// and emits both the switch and the resulting cursor position.
func (s *Shell) HandleDirection(dir stromboli.Direction) {
	result := s.nav.HandleInput(dir)

	switch result.Kind {
	case stromboli.ResultCursorMoved:
		s.playCue(audio.CueNav)
		s.emit(Event{
			Kind:      EventCursorMoved,
			DomainID:  result.DomainID,
			ElementID: result.ElementID,
		})

	case stromboli.ResultBoundaryReached:
		s.emit(Event{Kind: EventBoundaryReached, Direction: dir})

	case stromboli.ResultDomainBoundaryCrossed:
		switched := s.nav.SwitchToDomain(result.ToDomain)
		if switched.Kind != stromboli.ResultDomainSwitched {
			s.log.Warn("boundary crossing could not complete",
				"target", result.ToDomain, "result", switched.Kind)
			return
		}

		s.playCue(audio.CueDomainSwitch)
		if s.ambience != nil {
			s.ambience.OnDomainChange(switched.ToDomain)
		}
		s.emit(Event{
			Kind:         EventDomainSwitched,
			FromDomain:   switched.FromDomain,
			ToDomain:     switched.ToDomain,
			NewElementID: switched.NewElementID,
		})
		s.emit(Event{
			Kind:      EventCursorMoved,
			DomainID:  switched.ToDomain,
			ElementID: switched.NewElementID,
		})

	case stromboli.ResultError:
		s.log.Warn("navigation error", "message", result.Message)
	}
}

// Activate emits a button activation for the focused element, with a
// click cue. No cursor means no event.
func (s *Shell) Activate() {
	cursor := s.nav.CursorPosition()
	if cursor == nil {
		return
	}

	s.playCue(audio.CueClick)
	s.emit(Event{
		Kind:      EventButtonActivate,
		DomainID:  cursor.DomainID,
		ElementID: cursor.ElementID,
	})
}

// HandleCommand dispatches a decoded input command.
func (s *Shell) HandleCommand(cmd input.Command) {
	if cmd == input.CommandActivate {
		s.Activate()
		return
	}
	if dir := cmd.Direction(); dir != stromboli.DirectionNone {
		s.HandleDirection(dir)
	}
}

// SpawnWindow opens a window for the given content, recording the
// focused element as its focus-return source.
func (s *Shell) SpawnWindow(contentKey string) (compositor.Window, error) {
	var sourceElement, sourceDomain string
	if cursor := s.nav.CursorPosition(); cursor != nil {
		sourceElement = cursor.ElementID
		sourceDomain = cursor.DomainID
	}

	w, err := s.windows.Spawn(contentKey, sourceElement, sourceDomain)
	if err != nil {
		return compositor.Window{}, err
	}

	s.emit(Event{Kind: EventWindowCreated, Window: &w})
	return w, nil
}

// SetWindowState changes a window's display state, with a resize cue.
func (s *Shell) SetWindowState(id string, state compositor.State) error {
	w, err := s.windows.SetState(id, state)
	if err != nil {
		return err
	}

	s.playCue(audio.CueResize)
	s.emit(Event{Kind: EventWindowStateChanged, Window: &w})
	return nil
}

// CloseWindow starts a window's close: the window enters the Closing
// state so the consumer can animate, then calls RemoveWindow.
func (s *Shell) CloseWindow(id string) error {
	return s.SetWindowState(id, compositor.StateClosing)
}

// RemoveWindow removes a closed window and returns focus to the element
// that spawned it, when that element still exists.
func (s *Shell) RemoveWindow(id string) error {
	w, err := s.windows.Close(id)
	if err != nil {
		return err
	}

	s.emit(Event{Kind: EventWindowClosed, Window: &w})

	if w.SourceDomainID != "" && w.SourceElementID != "" {
		if err := s.nav.SetCursorPosition(w.SourceDomainID, w.SourceElementID); err != nil {
			s.log.Debug("focus return skipped", "domain", w.SourceDomainID,
				"element", w.SourceElementID, "error", err)
			return nil
		}
		s.emit(Event{
			Kind:      EventCursorMoved,
			DomainID:  w.SourceDomainID,
			ElementID: w.SourceElementID,
		})
	}
	return nil
}

func (s *Shell) playCue(cue audio.Cue) {
	if s.sound != nil {
		s.sound.PlayCue(cue)
	}
}
