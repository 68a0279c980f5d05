package stromboli

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// DefaultFallbackDomain is the reserved domain id used for focus recovery
// when the active domain is unregistered. The host application should keep
// a domain with this id registered, with at least one element, for
// recovery to succeed; if it is absent, focus is simply cleared.
const DefaultFallbackDomain = "osbar-nav"

// Options configures a Navigator.
type Options struct {
	// FallbackDomain overrides the reserved recovery domain id.
	// Empty means DefaultFallbackDomain.
	FallbackDomain string
}

// Navigator is the core focus navigation state machine. It owns the
// mapping of domain id to domain, the single active domain id, the single
// cursor position, and the pending-restoration cache consulted across UI
// churn.
//
// The entire state is one unit of mutual exclusion: every public operation
// executes as a single critical section, and operations apply strictly in
// the order their lock is acquired. No operation blocks on I/O or spawns
// work, so all calls complete in time proportional to the number of
// domains and elements. A Navigator is safe for use from multiple
// goroutines.
type Navigator struct {
	mu sync.Mutex

	domains        map[string]*domain
	activeDomainID string
	cursor         *CursorPosition

	// savedCursors holds the last cursor position per domain for domains
	// whose focused element (or the domain itself) disappeared while
	// holding focus. Entries are consulted and cleared as matching
	// elements re-register.
	savedCursors map[string]CursorPosition

	// savedActiveDomain remembers the active domain id across its
	// unregistration, so the domain reclaims activity when it returns.
	savedActiveDomain string

	fallbackDomain string
	log            *slog.Logger
}

// New creates an empty Navigator with default options.
func New() *Navigator {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty Navigator.
func NewWithOptions(opts Options) *Navigator {
	fallback := opts.FallbackDomain
	if fallback == "" {
		fallback = DefaultFallbackDomain
	}
	return &Navigator{
		domains:        make(map[string]*domain),
		savedCursors:   make(map[string]CursorPosition),
		fallbackDomain: fallback,
		log:            internal.GetInternalLogger(),
	}
}

// RegisterDomain creates a new, initially empty domain with the given
// layout. parentID is informational metadata only; empty means no parent.
// Fails with ErrAlreadyExists if the id is present and ErrInvalidInput
// if the id is empty.
//
// If this domain was the active domain when it was last unregistered, it
// becomes active again and any cached cursor for it stays staged until the
// matching element re-registers. Otherwise, if no domain is active, the
// new domain becomes active by default.
func (n *Navigator) RegisterDomain(id, parentID string, layout Layout) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	// The empty string is the no-active-domain sentinel and can never
	// be registered.
	if id == "" {
		return fmt.Errorf("domain id: %w", ErrInvalidInput)
	}
	if _, ok := n.domains[id]; ok {
		return fmt.Errorf("domain %q: %w", id, ErrAlreadyExists)
	}

	n.domains[id] = newDomain(id, parentID, layout)

	if n.savedActiveDomain == id {
		// Restore activity. The staged cursor, if any, remains in
		// savedCursors until the element it names re-registers.
		n.activeDomainID = id
		n.savedActiveDomain = ""
		n.log.Debug("domain re-registered, activity restored", "domain", id)
	} else if n.activeDomainID == "" {
		n.activeDomainID = id
	}

	return nil
}

// UnregisterDomain removes a domain. Fails with ErrNotFound if absent.
//
// If the cursor pointed into the domain, the position is cached for
// restoration on re-registration. If the domain was active, activity is
// also cached and a fallback recovery runs: when the reserved fallback
// domain exists with at least one element, it becomes active and the
// cursor lands on its lowest-order element. The recovery cursor, if any,
// is returned so the caller can re-emit a focus event.
func (n *Navigator) UnregisterDomain(id string) (*CursorPosition, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.domains[id]; !ok {
		return nil, fmt.Errorf("domain %q: %w", id, ErrNotFound)
	}

	held := n.cursor != nil && n.cursor.DomainID == id
	wasActive := n.activeDomainID == id

	if held {
		// Cache and clear even when another domain is active: the
		// cursor must never outlive the domain it points into.
		n.savedCursors[id] = *n.cursor
		n.cursor = nil
	}

	var recovered *CursorPosition

	if wasActive {
		n.savedActiveDomain = id
		n.activeDomainID = ""
		n.cursor = nil

		// Fall back to the reserved domain so closing a window never
		// strands navigation. Skipped when the fallback itself is the
		// domain being removed: the cursor must not outlive its domain.
		if fb, ok := n.domains[n.fallbackDomain]; ok && id != n.fallbackDomain && fb.elementCount() > 0 {
			first, _ := fb.elementAt(0)
			n.activeDomainID = n.fallbackDomain
			n.cursor = &CursorPosition{
				DomainID:  n.fallbackDomain,
				ElementID: first.ID,
				Kind:      ElementButton,
			}
			c := *n.cursor
			recovered = &c
			n.log.Debug("active domain lost, recovered to fallback",
				"domain", id, "fallback", n.fallbackDomain, "element", first.ID)
		}
	}

	delete(n.domains, id)

	// A cursor cached in this round (directly above, or by element
	// unregistration while the domain was active) stays staged for the
	// restoration protocol. Anything else is a stale leftover.
	if !held && !wasActive {
		delete(n.savedCursors, id)
	}

	return recovered, nil
}

// RegisterButton adds an element to a domain. Fails with ErrNotFound if
// the domain is missing and ErrAlreadyExists if the element id is already
// present in it. Elements are kept sorted by order ascending.
//
// When the domain is active, registration participates in the restoration
// protocol: a cached cursor for the domain is applied only when the
// element it names re-registers, regardless of the order the region
// remounts its children. Focus never lands on a placeholder while a cached
// cursor is pending. With no cursor and no pending restoration, the
// domain's first element receives the cursor.
func (n *Navigator) RegisterButton(domainID, elementID string, bounds *Rect, order int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}
	if _, ok := d.indexOf(elementID); ok {
		return fmt.Errorf("element %q in domain %q: %w", elementID, domainID, ErrAlreadyExists)
	}

	d.insert(Element{ID: elementID, Bounds: bounds, Enabled: true, Order: order})

	if n.activeDomainID != domainID {
		return nil
	}

	if saved, ok := n.savedCursors[domainID]; ok {
		if saved.ElementID == elementID {
			n.cursor = &CursorPosition{DomainID: domainID, ElementID: elementID, Kind: ElementButton}
			delete(n.savedCursors, domainID)
			n.log.Debug("cursor restored", "domain", domainID, "element", elementID)
		}
		// A different element: keep waiting for the one that held focus.
		return nil
	}

	if n.cursor == nil && d.elementCount() == 1 {
		n.cursor = &CursorPosition{DomainID: domainID, ElementID: elementID, Kind: ElementButton}
		n.log.Debug("cursor set to first element", "domain", domainID, "element", elementID)
	}

	return nil
}

// UnregisterButton removes an element from a domain. Fails with
// ErrNotFound if the domain or element is missing.
//
// If the cursor was on the element, the position is cached for restoration
// and the cursor cleared. Focus deliberately does not jump to a neighbor:
// a resize that briefly removes then re-adds every element must not move
// focus away and back.
func (n *Navigator) UnregisterButton(domainID, elementID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}
	idx, ok := d.indexOf(elementID)
	if !ok {
		return fmt.Errorf("element %q in domain %q: %w", elementID, domainID, ErrNotFound)
	}

	if n.cursor != nil && n.cursor.DomainID == domainID && n.cursor.ElementID == elementID {
		n.savedCursors[domainID] = *n.cursor
		n.cursor = nil
		n.log.Debug("cursor saved for restoration", "domain", domainID, "element", elementID)
	}

	d.remove(idx)
	return nil
}

// UpdateButtonBounds replaces an element's bounds without unregistering
// it, so a resize does not disturb the cursor or restoration state.
// nil clears the bounds. Fails with ErrNotFound if missing.
func (n *Navigator) UpdateButtonBounds(domainID, elementID string, bounds *Rect) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}
	idx, ok := d.indexOf(elementID)
	if !ok {
		return fmt.Errorf("element %q in domain %q: %w", elementID, domainID, ErrNotFound)
	}

	d.elements[idx].Bounds = bounds
	return nil
}

// UpdateDomainBounds replaces a domain's bounds, used for spatial
// navigation between domains. nil clears the bounds. Fails with
// ErrNotFound if missing.
func (n *Navigator) UpdateDomainBounds(domainID string, bounds *Rect) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}

	d.bounds = bounds
	return nil
}

// UpdateLayout replaces a domain's layout mode. Fails with ErrNotFound if
// missing.
func (n *Navigator) UpdateLayout(domainID string, layout Layout) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}

	d.layout = layout
	return nil
}

// SetLockedExits replaces the set of directions in which boundary
// crossing out of the domain is refused. Fails with ErrNotFound if
// missing.
func (n *Navigator) SetLockedExits(domainID string, dirs ...Direction) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}

	d.lockedExits = make(map[Direction]bool, len(dirs))
	for _, dir := range dirs {
		d.lockedExits[dir] = true
	}
	return nil
}

// SetActiveDomain makes the given domain active and moves the cursor to
// its first element, if it has one. Fails with ErrNotFound if missing.
func (n *Navigator) SetActiveDomain(domainID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}

	n.activeDomainID = domainID
	if first, ok := d.elementAt(0); ok {
		n.cursor = &CursorPosition{DomainID: domainID, ElementID: first.ID, Kind: ElementButton}
	}
	return nil
}

// SetCursorPosition explicitly places the cursor, e.g. from pointer
// hover, bypassing navigation and restoration logic. The element's domain
// becomes active. Fails with ErrNotFound if the domain is missing or the
// element is not in it.
func (n *Navigator) SetCursorPosition(domainID, elementID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[domainID]
	if !ok {
		return fmt.Errorf("domain %q: %w", domainID, ErrNotFound)
	}
	if _, ok := d.indexOf(elementID); !ok {
		return fmt.Errorf("element %q in domain %q: %w", elementID, domainID, ErrNotFound)
	}

	n.activeDomainID = domainID
	n.cursor = &CursorPosition{DomainID: domainID, ElementID: elementID, Kind: ElementButton}
	return nil
}

// HandleInput processes one directional key press against the active
// domain and returns the movement outcome.
//
// Within the domain the layout mode decides the next element. When the
// move would leave the domain, the exit may be refused by the domain's
// locked-exit set; otherwise an adjacent domain is searched for
// geometrically, and a hit is reported as DomainBoundaryCrossed without
// switching. The caller is expected to invoke SwitchToDomain on the named
// target; the two-step is intentional so side-effecting callers can
// intercept the transition.
func (n *Navigator) HandleInput(dir Direction) Result {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.activeDomainID == "" {
		return Result{Kind: ResultNoActiveDomain}
	}

	d, ok := n.domains[n.activeDomainID]
	if !ok {
		return errorResult("active domain %q not found", n.activeDomainID)
	}

	if d.elementCount() == 0 {
		return Result{Kind: ResultBoundaryReached}
	}

	current := 0
	if n.cursor != nil {
		if idx, ok := d.indexOf(n.cursor.ElementID); ok {
			current = idx
		}
	}

	next, moved := 0, false
	switch d.layout.Kind {
	case LayoutGrid:
		next, moved = navigateGrid(current, d.elementCount(), d.layout.Columns, dir)
	case LayoutList:
		next, moved = navigateList(current, d.elementCount(), d.layout.Orientation == OrientationVertical, dir)
	case LayoutSpatial:
		next, moved = n.navigateSpatial(d, current, dir)
	}

	if moved {
		element, ok := d.elementAt(next)
		if !ok {
			return errorResult("element index %d out of range in domain %q", next, d.id)
		}
		d.currentIndex = next
		n.cursor = &CursorPosition{DomainID: d.id, ElementID: element.ID, Kind: ElementButton}
		return Result{Kind: ResultCursorMoved, DomainID: d.id, ElementID: element.ID}
	}

	// No element to move to inside this domain: look across the boundary.
	if !d.canExit(dir) {
		return Result{Kind: ResultBoundaryReached}
	}

	if target, ok := n.findAdjacentDomain(d, dir); ok {
		return Result{
			Kind:       ResultDomainBoundaryCrossed,
			FromDomain: d.id,
			ToDomain:   target,
			Direction:  dir,
		}
	}

	return Result{Kind: ResultBoundaryReached}
}

// navigateSpatial finds the next element index by free-form spatial
// search among siblings that have bounds. Requires the lock.
func (n *Navigator) navigateSpatial(d *domain, current int, dir Direction) (int, bool) {
	origin, ok := d.elementAt(current)
	if !ok || origin.Bounds == nil {
		return 0, false
	}

	candidates := make([]candidate, 0, d.elementCount()-1)
	for i := range d.elements {
		if i == current || d.elements[i].Bounds == nil {
			continue
		}
		candidates = append(candidates, candidate{id: d.elements[i].ID, bounds: *d.elements[i].Bounds})
	}

	id, ok := findNearestInDirection(*origin.Bounds, candidates, dir)
	if !ok {
		return 0, false
	}
	return d.indexOf(id)
}

// findAdjacentDomain searches for another domain in the given direction
// using domain-level bounding boxes. Only domains with bounds and at least
// one element qualify. Candidates are gathered in id order so equal-score
// ties resolve deterministically. Requires the lock.
func (n *Navigator) findAdjacentDomain(from *domain, dir Direction) (string, bool) {
	if from.bounds == nil {
		return "", false
	}

	ids := make([]string, 0, len(n.domains))
	for id := range n.domains {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]candidate, 0, len(ids))
	for _, id := range ids {
		d := n.domains[id]
		if d.id == from.id || d.bounds == nil || d.elementCount() == 0 {
			continue
		}
		candidates = append(candidates, candidate{id: d.id, bounds: *d.bounds})
	}

	return findNearestInDirection(*from.bounds, candidates, dir)
}

// SwitchToDomain makes the target domain active and places the cursor on
// its lowest-order element. A missing or empty target yields an Error
// result; used by callers acting on DomainBoundaryCrossed.
func (n *Navigator) SwitchToDomain(targetID string) Result {
	n.mu.Lock()
	defer n.mu.Unlock()

	target, ok := n.domains[targetID]
	if !ok {
		return errorResult("target domain %q not found", targetID)
	}

	first, ok := target.elementAt(0)
	if !ok {
		return errorResult("no elements in domain %q", targetID)
	}

	from := n.activeDomainID
	n.activeDomainID = targetID
	n.cursor = &CursorPosition{DomainID: targetID, ElementID: first.ID, Kind: ElementButton}

	return Result{
		Kind:         ResultDomainSwitched,
		FromDomain:   from,
		ToDomain:     targetID,
		NewElementID: first.ID,
	}
}

// CursorPosition returns a copy of the current cursor position, or nil if
// nothing is focused.
func (n *Navigator) CursorPosition() *CursorPosition {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cursor == nil {
		return nil
	}
	c := *n.cursor
	return &c
}

// ActiveDomainID returns the active domain id, and false if no domain is
// active.
func (n *Navigator) ActiveDomainID() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.activeDomainID, n.activeDomainID != ""
}

// DomainIDs returns all registered domain ids in lexicographic order.
func (n *Navigator) DomainIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	ids := make([]string, 0, len(n.domains))
	for id := range n.domains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DomainInfo returns a read-only snapshot of a domain for debugging, and
// false if the domain does not exist.
func (n *Navigator) DomainInfo(id string) (DomainInfo, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	d, ok := n.domains[id]
	if !ok {
		return DomainInfo{}, false
	}
	return d.snapshot(), true
}
