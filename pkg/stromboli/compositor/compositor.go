// Package compositor allocates windows into a two-slot layout: a left
// and a right half, each holding at most one window. Windows remember
// the element and domain that spawned them so focus can return there
// when they close.
package compositor

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// State is the display state of a window.
type State int

const (
	// StateMinimized is a half-size window in its assigned slot.
	StateMinimized State = iota
	// StateMaximized spans the entire compositor.
	StateMaximized
	// StateHidden is not rendered.
	StateHidden
	// StateClosing is playing its close animation; removal follows.
	StateClosing
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateHidden:
		return "hidden"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Slot identifies one of the two window positions.
type Slot int

const (
	SlotLeft Slot = iota
	SlotRight
)

// String returns a string representation of the slot.
func (s Slot) String() string {
	if s == SlotRight {
		return "right"
	}
	return "left"
}

// ErrNoFreeSlot is returned by Spawn when both slots are occupied.
var ErrNoFreeSlot = errors.New("both compositor slots occupied")

// Window is one spawned window instance.
type Window struct {
	ID         string
	ContentKey string // what to render, e.g. "SYS_TERMINAL"
	Title      string
	State      State
	Slot       Slot
	ZOrder     int // stacking order, 1 is bottom

	// SourceElementID and SourceDomainID name the element that spawned
	// the window, for focus return on close. Either may be empty.
	SourceElementID string
	SourceDomainID  string
}

// Manager owns the window set, the two slots, and the focus-history
// stack. Safe for use from multiple goroutines.
type Manager struct {
	mu sync.Mutex

	windows   map[string]*Window
	stack     []string // window ids, bottom to top
	leftSlot  string   // window id, empty when free
	rightSlot string

	log *slog.Logger
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		windows: make(map[string]*Window),
		log:     internal.GetLogger(),
	}
}

// Spawn creates a window in the first available slot, left first. The
// window starts minimized. Fails with ErrNoFreeSlot when both slots are
// occupied.
func (m *Manager) Spawn(contentKey, sourceElementID, sourceDomainID string) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var slot Slot
	switch {
	case m.leftSlot == "":
		slot = SlotLeft
	case m.rightSlot == "":
		slot = SlotRight
	default:
		return Window{}, ErrNoFreeSlot
	}

	w := &Window{
		ID:              uuid.NewString(),
		ContentKey:      contentKey,
		Title:           fmt.Sprintf("Window - %s", contentKey),
		State:           StateMinimized,
		Slot:            slot,
		ZOrder:          len(m.stack) + 1,
		SourceElementID: sourceElementID,
		SourceDomainID:  sourceDomainID,
	}

	if slot == SlotLeft {
		m.leftSlot = w.ID
	} else {
		m.rightSlot = w.ID
	}
	m.windows[w.ID] = w
	m.stack = append(m.stack, w.ID)

	m.log.Info("window spawned", "id", w.ID, "content", contentKey, "slot", slot)
	return *w, nil
}

// Close removes a window, frees its slot, and renumbers the remaining
// stack. The closed window is returned so the caller can recover its
// focus source. Fails with ErrNotFound if the id is unknown.
func (m *Manager) Close(id string) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return Window{}, fmt.Errorf("window %q: %w", id, stromboli.ErrNotFound)
	}

	if m.leftSlot == id {
		m.leftSlot = ""
	} else if m.rightSlot == id {
		m.rightSlot = ""
	}

	for i, stacked := range m.stack {
		if stacked == id {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			break
		}
	}
	delete(m.windows, id)
	m.normalizeStack()

	m.log.Info("window closed", "id", id, "content", w.ContentKey)
	return *w, nil
}

// SetState changes a window's display state and returns the updated
// window. Fails with ErrNotFound if the id is unknown.
func (m *Manager) SetState(id string, state State) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return Window{}, fmt.Errorf("window %q: %w", id, stromboli.ErrNotFound)
	}

	w.State = state
	return *w, nil
}

// SlotAvailable reports whether the slot holds no window.
func (m *Manager) SlotAvailable(slot Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slot == SlotLeft {
		return m.leftSlot == ""
	}
	return m.rightSlot == ""
}

// WindowInSlot returns the window occupying the slot, and false if the
// slot is free.
func (m *Manager) WindowInSlot(slot Slot) (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.leftSlot
	if slot == SlotRight {
		id = m.rightSlot
	}
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of all windows in stack order, bottom to top.
func (m *Manager) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Window, 0, len(m.stack))
	for _, id := range m.stack {
		if w, ok := m.windows[id]; ok {
			out = append(out, *w)
		}
	}
	return out
}

// normalizeStack renumbers z-orders to 1..n after removals. Requires the
// lock.
func (m *Manager) normalizeStack() {
	for i, id := range m.stack {
		if w, ok := m.windows[id]; ok {
			w.ZOrder = i + 1
		}
	}
}
